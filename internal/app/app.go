package app

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"schemagen/internal/config"
	"schemagen/internal/core/errors"
	"schemagen/internal/generator"
	"schemagen/internal/history"
	"schemagen/internal/parser"
	"schemagen/internal/shared/observability"
	"schemagen/internal/shared/util"
	"schemagen/internal/watcher"
)

// App owns one generation pipeline: scan the schemas directory, parse every
// schema source, run the generator, and write the artifact exactly once.
type App struct {
	Config      *config.Config
	SchemasPath string
	OutputPath  string

	parser    *parser.Parser
	generator *generator.Generator
	history   *history.Store

	warnLimiters *util.LimiterRegistry

	mu          sync.Mutex
	lastRunErr  error
	lastRunTime time.Time
}

func NewApp(cfg *config.Config, schemasPath, outputPath string) (*App, error) {
	if err := ValidatePaths(schemasPath, outputPath); err != nil {
		return nil, err
	}

	overrides := make(map[string]parser.LanguageOverride, len(cfg.Languages))
	for id, lang := range cfg.Languages {
		overrides[id] = parser.LanguageOverride{
			Enabled:    lang.Enabled,
			Extensions: lang.Extensions,
		}
	}
	registry, err := parser.BuildLanguageRegistry(overrides)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeValidationError, "invalid language configuration")
	}
	loader, err := parser.NewGrammarLoader(registry)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to load grammars")
	}

	a := &App{
		Config:       cfg,
		SchemasPath:  schemasPath,
		OutputPath:   outputPath,
		parser:       parser.NewParser(loader),
		generator:    generator.New(cfg.Output.Banner),
		warnLimiters: util.NewLimiterRegistry(0.2, 1, 10*time.Minute),
	}

	if cfg.History.Enabled {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, "failed to open history store")
		}
		a.history = store
	}

	return a, nil
}

// ValidatePaths enforces the invocation contract: the schemas path must
// exist and be a directory, and the output path must not look like a file
// path. Both checks run before any schema file is read.
func ValidatePaths(schemasPath, outputPath string) error {
	if strings.TrimSpace(schemasPath) == "" {
		return errors.New(errors.CodeUsage, "schemas path is required")
	}
	if strings.TrimSpace(outputPath) == "" {
		return errors.New(errors.CodeUsage, "output path is required")
	}

	info, err := os.Stat(schemasPath)
	if err != nil {
		return errors.AddContext(errors.Wrap(err, errors.CodeUsage, "schemas path does not exist"), errors.CtxPath, schemasPath)
	}
	if !info.IsDir() {
		return errors.AddContext(errors.New(errors.CodeUsage, "schemas path is not a directory"), errors.CtxPath, schemasPath)
	}

	if filepath.Ext(outputPath) != "" {
		return errors.AddContext(errors.New(errors.CodeUsage, "output path must be a directory, not a file"), errors.CtxPath, outputPath)
	}
	return nil
}

// Run executes one full generation: scan, parse, generate, write. The
// artifact is built entirely in memory and written once at the end; a
// failure anywhere leaves no partial output behind.
func (a *App) Run(runID string) (*generator.Summary, error) {
	if runID == "" {
		runID = uuid.NewString()
	}
	started := time.Now()

	summary, artifact, err := a.generate()
	a.recordRun(err)
	if err != nil {
		return nil, err
	}

	target := filepath.Join(a.OutputPath, a.Config.Output.Filename)
	if err := util.WriteFileWithDirs(target, artifact, 0o644); err != nil {
		wrapped := errors.Wrap(err, errors.CodeInternal, "failed to write artifact")
		a.recordRun(wrapped)
		return nil, wrapped
	}

	a.saveSnapshot(runID, started, summary)

	slog.Info("generation complete",
		"run_id", runID,
		"target", target,
		"files", summary.Files,
		"classes", summary.Classes,
		"verbatim", summary.Verbatim,
		"emitted", summary.Emitted,
		"references", summary.References,
		"imports", summary.ImportLines,
		"duration", summary.Duration)

	return summary, nil
}

func (a *App) generate() (*generator.Summary, []byte, error) {
	paths, err := a.ScanDirectory()
	if err != nil {
		return nil, nil, err
	}

	corpus := make([]*parser.SourceFile, 0, len(paths))
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, errors.AddContext(
				errors.Wrap(err, errors.CodeParseError, "failed to read schema source"),
				errors.CtxPath, path)
		}

		parseStart := time.Now()
		file, err := a.parser.ParseFile(path, content)
		if err != nil {
			return nil, nil, errors.AddContext(err, errors.CtxPath, path)
		}
		observability.ParsingDuration.WithLabelValues(file.Language).Observe(time.Since(parseStart).Seconds())
		observability.FilesScanned.Inc()
		corpus = append(corpus, file)
	}

	summary, artifact, err := a.runGenerator(corpus)
	if err != nil {
		return nil, nil, err
	}
	return summary, artifact, nil
}

func (a *App) runGenerator(corpus []*parser.SourceFile) (*generator.Summary, []byte, error) {
	artifact, summary, err := a.generator.Run(corpus)
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.CodeInternal, "generation failed")
	}
	return summary, artifact, nil
}

// WatchLoop re-runs the full pipeline whenever the schemas directory
// changes. Each regeneration starts from scratch; a failed run is logged
// (throttled) and the loop keeps watching.
func (a *App) WatchLoop() (*watcher.Watcher, error) {
	w, err := watcher.NewWatcher(
		a.Config.Watch.Debounce,
		a.Config.Exclude.Dirs,
		a.Config.Exclude.Files,
		a.parser.SupportedExtensions(),
		func(paths []string) {
			observability.RegenerationsTotal.Inc()
			slog.Debug("schema change detected", "paths", paths)
			if _, err := a.Run(""); err != nil {
				if a.warnLimiters.Get("regenerate").Allow(1) {
					slog.Error("regeneration failed", "error", err)
				}
			}
		},
	)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to start watcher")
	}

	if err := w.Watch(a.SchemasPath); err != nil {
		_ = w.Close()
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to watch schemas directory")
	}
	return w, nil
}

func (a *App) Close() error {
	if a.history != nil {
		return a.history.Close()
	}
	return nil
}

func (a *App) saveSnapshot(runID string, started time.Time, summary *generator.Summary) {
	if a.history == nil {
		return
	}
	err := a.history.SaveSnapshot(a.Config.History.ProjectKey, history.Snapshot{
		RunID:         runID,
		Timestamp:     started.UTC(),
		FileCount:     summary.Files,
		ClassCount:    summary.Classes,
		VerbatimCount: summary.Verbatim,
		EmittedCount:  summary.Emitted,
		RefCount:      summary.References,
		ImportCount:   summary.ImportLines,
		Duration:      summary.Duration,
	})
	if err != nil {
		slog.Warn("failed to save history snapshot", "error", err)
	}
}

func (a *App) recordRun(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastRunErr = err
	a.lastRunTime = time.Now()
}

// HealthStatus is reported by the observability server.
type HealthStatus struct {
	Status    string    `json:"status"`
	LastRun   time.Time `json:"last_run"`
	LastError string    `json:"last_error,omitempty"`
}

func (a *App) Health() HealthStatus {
	a.mu.Lock()
	defer a.mu.Unlock()

	status := HealthStatus{Status: "up", LastRun: a.lastRunTime}
	if a.lastRunErr != nil {
		status.Status = "degraded"
		status.LastError = a.lastRunErr.Error()
	}
	return status
}
