package mdview

import "testing"

// TestRenderDocument_Outline 测试文档大纲
func TestRenderDocument_Outline(t *testing.T) {
	doc := RenderDocument("# Intro\n\ntext\n\n## Usage\n\n```py\n# main.py\nprint(1)\n```\n\n```\nplain\n```")

	if doc.IsEmpty() {
		t.Fatal("RenderDocument() returned empty HTML")
	}
	if len(doc.Headings) != 2 {
		t.Fatalf("len(Headings) = %d, want 2: %+v", len(doc.Headings), doc.Headings)
	}
	if h := doc.Headings[1]; h.Level != 2 || h.Text != "Usage" || h.ID != "usage" {
		t.Errorf("Headings[1] = %+v", h)
	}

	if len(doc.CodeBlocks) != 2 {
		t.Fatalf("len(CodeBlocks) = %d, want 2: %+v", len(doc.CodeBlocks), doc.CodeBlocks)
	}
	py := doc.CodeBlocks[0]
	if py.Language != "python" || py.FileName != "main.py" || py.Code != "# main.py\nprint(1)" {
		t.Errorf("CodeBlocks[0] = %+v", py)
	}
	if plain := doc.CodeBlocks[1]; plain.FileName != "snippet.txt" {
		t.Errorf("CodeBlocks[1].FileName = %q, want snippet.txt", plain.FileName)
	}
}

// TestRenderDocument_Empty 测试空文档
func TestRenderDocument_Empty(t *testing.T) {
	doc := RenderDocument("")
	if !doc.IsEmpty() || len(doc.Headings) != 0 || len(doc.CodeBlocks) != 0 {
		t.Errorf("RenderDocument(\"\") = %+v", doc)
	}
}

// TestRenderDocument_Mermaid 测试图表条目
func TestRenderDocument_Mermaid(t *testing.T) {
	config := *DefaultConfig()
	config.Mermaid = true
	doc := RenderDocument("```mermaid\ngraph TD\n```", WithConfig(&config))
	if len(doc.CodeBlocks) != 1 || !doc.CodeBlocks[0].Diagram {
		t.Errorf("CodeBlocks = %+v", doc.CodeBlocks)
	}
	if doc.CodeBlocks[0].FileName != "snippet.mmd" {
		t.Errorf("FileName = %q", doc.CodeBlocks[0].FileName)
	}
}

// TestRenderDocument_FrontMatter 测试 front matter 不参与渲染
func TestRenderDocument_FrontMatter(t *testing.T) {
	doc := RenderDocument("---\ntitle: Draft\n---\n\n# Draft", WithSanitize(false))
	if doc.HTML != `<h1 id="draft">Draft</h1>` {
		t.Errorf("HTML = %q", doc.HTML)
	}
	if doc.Meta["title"] != "Draft" {
		t.Errorf("Meta = %v", doc.Meta)
	}
}
