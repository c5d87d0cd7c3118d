package parser

import (
	"strings"
	"time"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// SchemaExtractor pulls type declarations out of TypeScript schema sources.
// Classes are reduced to their field lists; interfaces, type aliases, and
// enums keep their declared text so they can be copied through verbatim.
type SchemaExtractor struct {
	language string
}

func NewSchemaExtractor(language string) *SchemaExtractor {
	return &SchemaExtractor{language: language}
}

func (e *SchemaExtractor) Extract(root *sitter.Node, source []byte, filePath string) (*SourceFile, error) {
	file := &SourceFile{
		Path:     filePath,
		Language: e.language,
		ParsedAt: time.Now(),
	}

	ctx := &ExtractionContext{Source: source, File: file}
	engine := NewExtractorEngine(map[string]NodeHandler{
		"class_declaration":          e.extractClass,
		"abstract_class_declaration": e.extractClass,
		"interface_declaration":      e.extractInterface,
		"type_alias_declaration":     e.extractTypeAlias,
		"enum_declaration":           e.extractEnum,
	})
	engine.Walk(ctx, root)

	return file, nil
}

func (e *SchemaExtractor) extractClass(ctx *ExtractionContext, node *sitter.Node) {
	name := strings.TrimSpace(ctx.Text(node.ChildByFieldName("name")))
	if name == "" {
		return
	}

	decl := ClassDecl{
		Name:     name,
		Location: ctx.Location(node),
	}

	body := node.ChildByFieldName("body")
	if body != nil {
		for i := uint(0); i < body.ChildCount(); i++ {
			member := body.Child(i)
			switch member.Kind() {
			case "public_field_definition", "field_definition":
			default:
				continue
			}

			fieldName := strings.TrimSpace(ctx.Text(member.ChildByFieldName("name")))
			if fieldName == "" {
				continue
			}

			decl.Fields = append(decl.Fields, Field{
				Name:     fieldName,
				TypeText: e.fieldTypeText(ctx, member),
			})
		}
	}

	ctx.File.Classes = append(ctx.File.Classes, decl)
}

// fieldTypeText prefers the literal annotation; without one it falls back to
// a textual rendering derived from the initializer.
func (e *SchemaExtractor) fieldTypeText(ctx *ExtractionContext, member *sitter.Node) string {
	if annotation := member.ChildByFieldName("type"); annotation != nil {
		text := strings.TrimSpace(ctx.Text(annotation))
		return strings.TrimSpace(strings.TrimPrefix(text, ":"))
	}
	return renderInitializerType(ctx, member.ChildByFieldName("value"))
}

func renderInitializerType(ctx *ExtractionContext, value *sitter.Node) string {
	if value == nil {
		return "unknown"
	}
	switch value.Kind() {
	case "new_expression":
		if ctor := value.ChildByFieldName("constructor"); ctor != nil {
			if name := strings.TrimSpace(ctx.Text(ctor)); name != "" {
				return name
			}
		}
		return "unknown"
	case "string", "template_string":
		return "string"
	case "number":
		return "number"
	case "true", "false":
		return "boolean"
	case "array":
		return "unknown[]"
	case "object":
		return "Record<string, unknown>"
	default:
		return "unknown"
	}
}

func (e *SchemaExtractor) extractInterface(ctx *ExtractionContext, node *sitter.Node) {
	e.addVerbatim(ctx, node, &ctx.File.Interfaces)
}

func (e *SchemaExtractor) extractTypeAlias(ctx *ExtractionContext, node *sitter.Node) {
	e.addVerbatim(ctx, node, &ctx.File.TypeAliases)
}

func (e *SchemaExtractor) extractEnum(ctx *ExtractionContext, node *sitter.Node) {
	e.addVerbatim(ctx, node, &ctx.File.Enums)
}

func (e *SchemaExtractor) addVerbatim(ctx *ExtractionContext, node *sitter.Node, decls *[]VerbatimDecl) {
	name := strings.TrimSpace(ctx.Text(node.ChildByFieldName("name")))
	if name == "" {
		return
	}

	// The export keyword lives on a wrapping export_statement node; keep it
	// so the emitted text matches the declared source text.
	text := node
	if parent := node.Parent(); parent != nil && parent.Kind() == "export_statement" {
		text = parent
	}

	*decls = append(*decls, VerbatimDecl{
		Name:     name,
		Text:     ctx.Text(text),
		Location: ctx.Location(node),
	})
}
