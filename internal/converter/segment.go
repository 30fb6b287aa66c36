package converter

import "github.com/riverfjs/mdview-go/internal/types"

// 导出类型别名
type RenderConfig = types.RenderConfig
type CalloutKind = types.CalloutKind

// SegmentKind 区分文档大纲中的条目
type SegmentKind string

const (
	SegmentHeading   SegmentKind = "heading"
	SegmentCodeBlock SegmentKind = "code_block"
	SegmentMermaid   SegmentKind = "mermaid"
)

// Segment 记录渲染过程中遇到的标题或代码块
type Segment struct {
	Kind     SegmentKind
	Level    int    // 标题级别（仅标题）
	Text     string // 标题纯文本（仅标题）
	ID       string // 标题锚点（仅标题）
	Language string // 编程语言或 "mermaid"
	RawCode  string // 原始代码内容
}
