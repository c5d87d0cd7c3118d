package parser

import (
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"schemagen/internal/core/errors"
)

type Parser struct {
	loader     *GrammarLoader
	extractors map[string]Extractor // language -> extractor
}

type Extractor interface {
	Extract(node *sitter.Node, source []byte, filePath string) (*SourceFile, error)
}

func NewParser(loader *GrammarLoader) *Parser {
	p := &Parser{
		loader:     loader,
		extractors: make(map[string]Extractor),
	}
	p.RegisterExtractor("typescript", NewSchemaExtractor("typescript"))
	p.RegisterExtractor("tsx", NewSchemaExtractor("tsx"))
	return p
}

func (p *Parser) RegisterExtractor(lang string, e Extractor) {
	p.extractors[lang] = e
}

func (p *Parser) ParseFile(path string, content []byte) (*SourceFile, error) {
	lang := p.GetLanguage(path)
	if lang == "" {
		return nil, errors.Newf(errors.CodeParseError, "unsupported file type: %s", path)
	}

	grammar := p.loader.languages[lang]
	if grammar == nil {
		return nil, errors.Newf(errors.CodeParseError, "grammar not loaded: %s", lang)
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(grammar)

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, errors.Newf(errors.CodeParseError, "parse failed: %s", path)
	}
	defer tree.Close()

	root := tree.RootNode()

	extractor := p.extractors[lang]
	if extractor == nil {
		return nil, errors.Newf(errors.CodeParseError, "no extractor for: %s", lang)
	}

	return extractor.Extract(root, content, path)
}

func (p *Parser) GetLanguage(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	for _, id := range sortedRegistryIDs(p.loader.registry) {
		spec := p.loader.registry[id]
		if !spec.Enabled {
			continue
		}
		for _, specExt := range spec.Extensions {
			if specExt == ext {
				return id
			}
		}
	}
	return ""
}

func (p *Parser) IsSupportedPath(path string) bool {
	return p.GetLanguage(path) != ""
}

func (p *Parser) SupportedExtensions() []string {
	return p.loader.SupportedExtensions()
}
