package workspace

import (
	"errors"
	"strings"
	"testing"
)

func TestTemplates(t *testing.T) {
	list := Templates()
	want := []string{"basic", "documentation", "blog-post", "readme"}
	if len(list) != len(want) {
		t.Fatalf("len(Templates()) = %d, want %d", len(list), len(want))
	}
	for i, id := range want {
		if list[i].ID != id || list[i].Name == "" || list[i].Content == "" {
			t.Errorf("Templates()[%d] = %+v", i, list[i])
		}
	}
	if !strings.HasPrefix(list[2].Content, "---\ntitle: My Awesome Blog Post\n") {
		t.Errorf("blog post front matter = %q", list[2].Content[:40])
	}
}

func TestSaveTemplate(t *testing.T) {
	w := New()
	f, err := w.SaveTemplate("readme")
	if err != nil {
		t.Fatalf("SaveTemplate() error = %v", err)
	}
	if !strings.HasPrefix(f.Content, "# Project Name") || !IsMarkdownFile(f.Name) {
		t.Errorf("file = %+v", f)
	}
	if sel := w.Selected(); sel == nil || sel.ID != f.ID {
		t.Errorf("Selected() = %+v, want %s", sel, f.ID)
	}

	if _, err := w.SaveTemplate("nope"); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("SaveTemplate(nope) error = %v", err)
	}
	if w.Len() != 1 {
		t.Errorf("Len() = %d, want 1", w.Len())
	}
}
