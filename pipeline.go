package mdview

import (
	"strings"

	"github.com/riverfjs/mdview-go/internal/converter"
	"github.com/riverfjs/mdview-go/internal/parser"
	"github.com/riverfjs/mdview-go/internal/sanitize"
	"github.com/riverfjs/mdview-go/internal/util"
)

// RenderDocument 完整渲染管道：markdown → HTML + 文档大纲
//
// 步骤：
//  1. 预处理：统一换行、NFC 规范化、去掉 MDX import/export
//  2. 解析为 AST（围栏代码块在这里成为叶子节点），取出 front matter
//  3. 生成块模型（提示块优先于普通引用）
//  4. 写出 HTML，同时收集标题与代码块
//  5. 清理输出（默认开启）
func RenderDocument(markdown string, opts ...Option) *Result {
	result := &Result{
		Headings:   make([]Heading, 0),
		CodeBlocks: make([]CodeBlock, 0),
	}
	if markdown == "" {
		return result
	}
	options := applyOptions(opts...)

	text := converter.Preprocess(markdown)
	html, segments, fm := parser.Parse(text, options.Config, options.Highlighter)
	if options.Sanitize {
		html = strings.TrimRight(sanitize.HTML(html), "\n")
	}
	result.HTML = html
	result.Meta = fm

	for _, seg := range segments {
		switch seg.Kind {
		case converter.SegmentHeading:
			result.Headings = append(result.Headings, Heading{
				Level: seg.Level,
				Text:  seg.Text,
				ID:    seg.ID,
			})
		case converter.SegmentCodeBlock, converter.SegmentMermaid:
			result.CodeBlocks = append(result.CodeBlocks, codeBlockFromSegment(seg))
		}
	}
	return result
}

// codeBlockFromSegment 生成代码块条目及建议文件名
func codeBlockFromSegment(seg converter.Segment) CodeBlock {
	lang := seg.Language
	if lang == "" {
		lang = "txt"
	}
	return CodeBlock{
		Language: seg.Language,
		Code:     seg.RawCode,
		FileName: util.GetFilename(seg.RawCode, lang),
		Diagram:  seg.Kind == converter.SegmentMermaid,
	}
}
