// Package jsparse wraps tree-sitter to parse JavaScript and
// TypeScript sources and offers the small set of node helpers the
// rule needs.
package jsparse

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Language identifies the grammar used for a file.
type Language string

// Supported grammars.
const (
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
	TSX        Language = "tsx"
)

// Extensions lists the file extensions vitestlint parses.
var Extensions = []string{".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx", ".mts", ".cts"}

// LanguageFor returns the grammar for a path based on its extension.
// Unknown extensions are parsed as JavaScript.
func LanguageFor(path string) Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".mts", ".cts":
		return TypeScript
	case ".tsx":
		return TSX
	default:
		return JavaScript
	}
}

// Supported reports whether path has one of Extensions.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func grammar(lang Language) *sitter.Language {
	switch lang {
	case TypeScript:
		return typescript.GetLanguage()
	case TSX:
		return tsx.GetLanguage()
	default:
		return javascript.GetLanguage()
	}
}

// File holds a parsed source file.
type File struct {
	// Path is the file path as given to Parse.
	Path string

	// Source is the raw file content.
	Source []byte

	// Language is the grammar the file was parsed with.
	Language Language

	// Tree is the tree-sitter syntax tree.
	Tree *sitter.Tree
}

// Root returns the program node.
func (f *File) Root() *sitter.Node {
	return f.Tree.RootNode()
}

// Close releases the syntax tree.
func (f *File) Close() {
	if f.Tree != nil {
		f.Tree.Close()
	}
}

// Parse parses src with the grammar selected by path. A parser is
// created per call, so Parse is safe for concurrent use.
func Parse(ctx context.Context, path string, src []byte) (*File, error) {
	lang := LanguageFor(path)

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(grammar(lang))

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return &File{
		Path:     path,
		Source:   src,
		Language: lang,
		Tree:     tree,
	}, nil
}
