package goldmark

import (
	"context"
	"testing"
	"time"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
)

func TestParser_New(t *testing.T) {
	tests := []struct {
		name       string
		flavor     string
		wantFlavor string
	}{
		{"commonmark", FlavorCommonMark, FlavorCommonMark},
		{"gfm", FlavorGFM, FlavorGFM},
		{"invalid defaults to commonmark", "invalid", FlavorCommonMark},
		{"empty defaults to commonmark", "", FlavorCommonMark},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.flavor)

			if p.Flavor() != tt.wantFlavor {
				t.Errorf("Flavor() = %q, want %q", p.Flavor(), tt.wantFlavor)
			}
		})
	}
}

func TestParser_Parse_Basic(t *testing.T) {
	parser := New(FlavorCommonMark)

	content := []byte("# Hello\n\nWorld")
	doc, err := parser.Parse(context.Background(), "test.md", content)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if doc.Path != "test.md" {
		t.Errorf("Path = %q, want %q", doc.Path, "test.md")
	}

	if string(doc.Content) != string(content) {
		t.Errorf("Content mismatch")
	}

	// Verify content is a copy, not the same slice.
	if &doc.Content[0] == &content[0] {
		t.Error("Content should be a copy, not the same slice")
	}

	if doc.LineCount() != 3 {
		t.Errorf("LineCount() = %d, want 3", doc.LineCount())
	}

	if doc.Root == nil || doc.Root.Kind() != ast.KindDocument {
		t.Fatal("expected a document root")
	}

	if got := doc.Root.ChildCount(); got != 2 {
		t.Errorf("ChildCount() = %d, want 2", got)
	}
}

func TestParser_Parse_Empty(t *testing.T) {
	doc, err := New(FlavorCommonMark).Parse(context.Background(), "empty.md", []byte{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if doc.Root == nil {
		t.Fatal("expected Root to be non-nil for empty content")
	}

	if doc.Root.HasChildren() {
		t.Error("expected no children for empty content")
	}
}

func TestParser_Parse_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(FlavorCommonMark).Parse(ctx, "test.md", []byte("# Hello"))
	if err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestParser_Parse_ContextTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), -1*time.Second)
	defer cancel()

	_, err := New(FlavorCommonMark).Parse(ctx, "test.md", []byte("# Hello"))
	if err == nil {
		t.Error("expected error for timed out context")
	}
}

func TestParser_Parse_Flavors(t *testing.T) {
	content := []byte("| a | b |\n| - | - |\n| 1 | 2 |\n")

	tests := []struct {
		flavor    string
		wantTable bool
	}{
		{FlavorCommonMark, false},
		{FlavorGFM, true},
	}

	for _, tt := range tests {
		t.Run(tt.flavor, func(t *testing.T) {
			doc, err := New(tt.flavor).Parse(context.Background(), "table.md", content)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}

			_, isTable := doc.Root.FirstChild().(*east.Table)
			if isTable != tt.wantTable {
				t.Errorf("first block is table = %v, want %v", isTable, tt.wantTable)
			}
		})
	}
}
