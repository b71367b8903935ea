package typecheck

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
)

// ParseSyntaxTree parses virtual TSX text. A fresh parser per call keeps
// concurrent documents from sharing parser state.
func ParseSyntaxTree(ctx context.Context, src []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(tsx.GetLanguage())
	return parser.ParseCtx(ctx, nil, src)
}
