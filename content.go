package mdview

import "github.com/riverfjs/mdview-go/internal/converter"

// Heading 文档大纲中的一个标题
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	ID    string `json:"id,omitempty"`
}

// CodeBlock 文档中的一个围栏代码块
type CodeBlock struct {
	Language string `json:"language"`
	Code     string `json:"code"`
	// FileName 下载代码块时建议使用的文件名
	FileName string `json:"fileName"`
	Diagram  bool   `json:"diagram,omitempty"`
}

// Result 渲染结果及文档大纲
type Result struct {
	HTML       string      `json:"html"`
	Headings   []Heading   `json:"headings"`
	CodeBlocks []CodeBlock `json:"codeBlocks"`
	// Meta 文档开头的 YAML front matter，没有时为 nil
	Meta map[string]interface{} `json:"meta,omitempty"`
}

// IsEmpty reports whether the rendered document has no content.
func (r *Result) IsEmpty() bool {
	return r.HTML == ""
}

// SegmentKind 区分大纲条目的类型
type SegmentKind = converter.SegmentKind

const (
	SegmentHeading   = converter.SegmentHeading
	SegmentCodeBlock = converter.SegmentCodeBlock
	SegmentMermaid   = converter.SegmentMermaid
)
