package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ParsingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "schemagen_parsing_seconds",
		Help:    "Time spent parsing a schema source file.",
		Buckets: prometheus.DefBuckets,
	}, []string{"language"})

	GenerationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "schemagen_generation_seconds",
		Help:    "Time spent on one full generation run.",
		Buckets: prometheus.DefBuckets,
	})

	FilesScanned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "schemagen_files_scanned_total",
		Help: "Total number of schema source files scanned.",
	})

	FilesSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "schemagen_files_skipped_total",
		Help: "Total number of files skipped during the scan as unsupported or excluded.",
	})

	DeclarationsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "schemagen_declarations_emitted_total",
		Help: "Total number of declaration blocks emitted into the artifact.",
	}, []string{"kind"})

	ReferencesResolved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "schemagen_references_resolved_total",
		Help: "Total number of cross-file type references detected.",
	})

	ImportsMaterialized = promauto.NewCounter(prometheus.CounterOpts{
		Name: "schemagen_imports_materialized_total",
		Help: "Total number of import lines materialized into the artifact.",
	})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "schemagen_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})

	RegenerationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "schemagen_regenerations_total",
		Help: "Total number of watch-mode regeneration runs.",
	})
)
