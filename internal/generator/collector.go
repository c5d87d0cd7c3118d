package generator

import (
	"schemagen/internal/parser"
)

// CollectExportNames gathers every named extractable declaration across the
// corpus — class shapes plus the verbatim kinds (interfaces, type aliases,
// enums) — into the set of extractable type names. The set is built in one
// forward pass before transcription starts and is read-only afterward.
func CollectExportNames(files []*parser.SourceFile) map[string]bool {
	names := make(map[string]bool)
	for _, file := range files {
		for _, name := range declaredNames(file) {
			if name == "" {
				continue
			}
			names[name] = true
		}
	}
	return names
}

// OriginOf returns the first source file in corpus order that declares name.
// When several files declare the same name the first one wins; callers
// surface that ambiguity instead of resolving it.
func OriginOf(files []*parser.SourceFile, name string) (*parser.SourceFile, bool) {
	for _, file := range files {
		for _, declared := range declaredNames(file) {
			if declared == name {
				return file, true
			}
		}
	}
	return nil, false
}

func declaredNames(file *parser.SourceFile) []string {
	names := make([]string, 0, len(file.Classes)+len(file.Interfaces)+len(file.TypeAliases)+len(file.Enums))
	for _, class := range file.Classes {
		names = append(names, class.Name)
	}
	for _, decl := range file.Interfaces {
		names = append(names, decl.Name)
	}
	for _, decl := range file.TypeAliases {
		names = append(names, decl.Name)
	}
	for _, decl := range file.Enums {
		names = append(names, decl.Name)
	}
	return names
}
