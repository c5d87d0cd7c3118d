package parser

import (
	"time"
)

// SourceFile holds the declarations extracted from one schema source file.
type SourceFile struct {
	Path        string
	Language    string
	Classes     []ClassDecl
	Interfaces  []VerbatimDecl
	TypeAliases []VerbatimDecl
	Enums       []VerbatimDecl
	ParsedAt    time.Time
}

// ClassDecl is a class-shaped declaration reduced to its data shape: the
// name and the ordered field list. Methods are ignored.
type ClassDecl struct {
	Name     string
	Fields   []Field
	Location Location
}

// Field is one property of a class-shaped declaration. TypeText is the
// literal annotation text when one exists, otherwise a best-effort textual
// rendering derived from the initializer.
type Field struct {
	Name     string
	TypeText string
}

// VerbatimDecl is an interface, type alias, or enum carried through with its
// declared source text unchanged.
type VerbatimDecl struct {
	Name     string
	Text     string
	Location Location
}

type Location struct {
	File   string
	Line   int
	Column int
}
