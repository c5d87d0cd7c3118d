package generator

import (
	"fmt"
	"log/slog"
	"strings"

	"schemagen/internal/parser"
	"schemagen/internal/shared/observability"
	"schemagen/internal/shared/util"
)

// PendingImports accumulates cross-file import requirements: target module
// path -> set of extractable type names required from that module.
type PendingImports map[string]map[string]bool

func (p PendingImports) Add(modulePath, name string) {
	set, ok := p[modulePath]
	if !ok {
		set = make(map[string]bool)
		p[modulePath] = set
	}
	set[name] = true
}

// Transcriber rewrites class-shaped declarations into structural type blocks
// and copies interfaces, type aliases, and enums through verbatim. Reference
// resolution for class fields happens inline: each field's type text is
// scanned for extractable names declared in other files, and those become
// pending imports.
type Transcriber struct {
	known  map[string]bool
	corpus []*parser.SourceFile

	// Counts across the whole pass.
	References int
}

func NewTranscriber(known map[string]bool, corpus []*parser.SourceFile) *Transcriber {
	return &Transcriber{known: known, corpus: corpus}
}

func (t *Transcriber) TranscribeFile(file *parser.SourceFile, buf *OutputBuffer, pending PendingImports) {
	for _, class := range file.Classes {
		t.transcribeClass(file, class, buf, pending)
	}
	for _, decl := range file.Interfaces {
		t.appendVerbatim(file, decl, "interface", buf)
	}
	for _, decl := range file.TypeAliases {
		t.appendVerbatim(file, decl, "type_alias", buf)
	}
	for _, decl := range file.Enums {
		t.appendVerbatim(file, decl, "enum", buf)
	}
}

func (t *Transcriber) transcribeClass(file *parser.SourceFile, class parser.ClassDecl, buf *OutputBuffer, pending PendingImports) {
	t.resolveReferences(file, class, pending)

	// A class with zero fields is emitted as nothing, not as an empty type.
	if len(class.Fields) == 0 {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "export type %s = {\n", class.Name)
	for _, field := range class.Fields {
		fmt.Fprintf(&sb, "  %s: %s;\n", field.Name, field.TypeText)
	}
	sb.WriteString("};")

	if !buf.Append(class.Name, sb.String()) {
		slog.Warn("duplicate declaration name, keeping first emission",
			"name", class.Name, "file", file.Path, "line", class.Location.Line)
		return
	}
	observability.DeclarationsEmitted.WithLabelValues("class").Inc()
}

// resolveReferences scans each field's type text for extractable names. A
// name becomes a pending import only when it is known, is not the class's
// own name, and its originating file differs from the current file.
func (t *Transcriber) resolveReferences(file *parser.SourceFile, class parser.ClassDecl, pending PendingImports) {
	for _, field := range class.Fields {
		for _, token := range ScanTypeTokens(field.TypeText) {
			if token == class.Name || !t.known[token] {
				continue
			}
			origin, ok := OriginOf(t.corpus, token)
			if !ok || origin.Path == file.Path {
				continue
			}
			pending.Add(util.ModuleSpecifier(file.Path, origin.Path), token)
			t.References++
			observability.ReferencesResolved.Inc()
		}
	}
}

func (t *Transcriber) appendVerbatim(file *parser.SourceFile, decl parser.VerbatimDecl, kind string, buf *OutputBuffer) {
	if !buf.Append(decl.Name, decl.Text) {
		slog.Warn("duplicate declaration name, keeping first emission",
			"name", decl.Name, "file", file.Path, "line", decl.Location.Line)
		return
	}
	observability.DeclarationsEmitted.WithLabelValues(kind).Inc()
}
