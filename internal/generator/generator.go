package generator

import (
	"time"

	"schemagen/internal/parser"
	"schemagen/internal/shared/observability"
)

// Generator runs the two-pass pipeline over a parsed corpus: collect the
// extractable type names, transcribe every file into the output buffer, then
// materialize whatever imports are still required. The whole run owns its
// state; nothing survives between runs.
type Generator struct {
	Banner string
}

type Summary struct {
	Files       int
	Classes     int
	Verbatim    int
	Emitted     int
	References  int
	ImportLines int
	Duration    time.Duration
}

func New(banner string) *Generator {
	return &Generator{Banner: banner}
}

// Run produces the artifact bytes for the given corpus. File order is the
// caller's corpus iteration order; for a fixed order the output is
// byte-identical across runs.
func (g *Generator) Run(files []*parser.SourceFile) ([]byte, *Summary, error) {
	start := time.Now()

	known := CollectExportNames(files)

	buf := NewOutputBuffer()
	pending := make(PendingImports)
	transcriber := NewTranscriber(known, files)

	summary := &Summary{Files: len(files)}
	for _, file := range files {
		summary.Classes += len(file.Classes)
		summary.Verbatim += len(file.Interfaces) + len(file.TypeAliases) + len(file.Enums)
		transcriber.TranscribeFile(file, buf, pending)
	}

	importLines := MaterializeImports(pending, buf)

	summary.Emitted = buf.Len()
	summary.References = transcriber.References
	summary.ImportLines = len(importLines)
	summary.Duration = time.Since(start)
	observability.GenerationDuration.Observe(summary.Duration.Seconds())

	return buf.Render(g.Banner, importLines), summary, nil
}
