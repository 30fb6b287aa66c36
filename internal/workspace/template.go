package workspace

import (
	"embed"
	"errors"
)

//go:embed templates/*.md
var templateFS embed.FS

// ErrTemplateNotFound 没有该模板
var ErrTemplateNotFound = errors.New("template not found")

// Template 编辑器中可插入的起始文档
type Template struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Content     string `json:"content"`
}

var templates = []Template{
	{ID: "basic", Name: "Basic Structure", Description: "Simple markdown with headings, lists, and code"},
	{ID: "documentation", Name: "Documentation Template", Description: "Template for API documentation"},
	{ID: "blog-post", Name: "Blog Post", Description: "Template for a blog post"},
	{ID: "readme", Name: "GitHub README", Description: "Template for a GitHub README file"},
}

// Templates 按固定顺序返回所有模板
func Templates() []Template {
	out := make([]Template, 0, len(templates))
	for _, t := range templates {
		data, err := templateFS.ReadFile("templates/" + t.ID + ".md")
		if err != nil {
			continue
		}
		t.Content = string(data)
		out = append(out, t)
	}
	return out
}

// FindTemplate 按 id 查找模板
func FindTemplate(id string) (Template, error) {
	for _, t := range Templates() {
		if t.ID == id {
			return t, nil
		}
	}
	return Template{}, ErrTemplateNotFound
}

// SaveTemplate 以模板内容新建文件并选中
func (w *Workspace) SaveTemplate(id string) (*File, error) {
	t, err := FindTemplate(id)
	if err != nil {
		return nil, err
	}
	return w.SaveNew(t.Content), nil
}
