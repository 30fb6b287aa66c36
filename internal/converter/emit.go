package converter

import (
	"fmt"
	"strconv"
	"strings"

	east "github.com/yuin/goldmark/extension/ast"

	"github.com/riverfjs/mdview-go/internal/buffer"
	"github.com/riverfjs/mdview-go/internal/highlight"
	"github.com/riverfjs/mdview-go/internal/mermaid"
)

// Emitter 将块模型写成 HTML，并记录标题与代码块（文档大纲）
type Emitter struct {
	buf         *buffer.HTMLBuffer
	config      *RenderConfig
	highlighter highlight.Highlighter
	segments    []Segment
}

// NewEmitter 创建新的 Emitter
func NewEmitter(config *RenderConfig, highlighter highlight.Highlighter) *Emitter {
	if highlighter == nil {
		highlighter = highlight.Plain{}
	}
	return &Emitter{
		buf:         buffer.New(),
		config:      config,
		highlighter: highlighter,
		segments:    make([]Segment, 0),
	}
}

// Emit 依次写出所有块；块与块之间以换行分隔
func (e *Emitter) Emit(blocks []Block) {
	for _, b := range blocks {
		e.block(b)
	}
}

// Result 返回转换结果
func (e *Emitter) Result() (string, []Segment) {
	return strings.TrimRight(e.buf.String(), "\n"), e.segments
}

func (e *Emitter) block(b Block) {
	switch b := b.(type) {
	case Paragraph:
		e.paragraph(b)
	case Heading:
		e.heading(b)
	case List:
		e.list(b)
	case Callout:
		e.callout(b)
	case CodeBlock:
		e.codeBlock(b)
	case Quote:
		e.buf.EnsureNewline()
		e.buf.Open("blockquote")
		e.buf.Write("\n")
		e.Emit(b.Body)
		e.buf.EnsureNewline()
		e.buf.Close("blockquote")
		e.buf.Write("\n")
	case Rule:
		e.buf.EnsureNewline()
		e.buf.Write("<hr>\n")
	case Table:
		e.table(b)
	case HTML:
		e.buf.EnsureNewline()
		e.buf.Open("p", "class", "raw-html")
		e.writeLines(b.Text)
		e.buf.Close("p")
		e.buf.Write("\n")
	}
}

// --- Paragraph ---

func (e *Emitter) paragraph(p Paragraph) {
	if p.Text.Empty() {
		return
	}
	if p.Tight {
		writeInline(e.buf, p.Text, e.config)
		return
	}
	e.buf.EnsureNewline()
	e.buf.Open("p")
	writeInline(e.buf, p.Text, e.config)
	e.buf.Close("p")
	e.buf.Write("\n")
}

// --- Heading ---

func (e *Emitter) heading(h Heading) {
	level := h.Level
	if level < 1 {
		level = 1
	} else if level > 6 {
		level = 6
	}
	tag := "h" + strconv.Itoa(level)
	id := ""
	if e.config.HeadingIDs {
		id = h.ID
	}

	e.buf.EnsureNewline()
	e.buf.Open(tag, "id", id)
	writeInline(e.buf, h.Text, e.config)
	e.buf.Close(tag)
	e.buf.Write("\n")

	e.segments = append(e.segments, Segment{
		Kind:  SegmentHeading,
		Level: level,
		Text:  plainText(h.Text),
		ID:    id,
	})
}

// --- Lists ---

func (e *Emitter) list(l List) {
	tag := "ul"
	start := ""
	if l.Ordered {
		tag = "ol"
		if l.Start != 1 {
			start = strconv.Itoa(l.Start)
		}
	}

	e.buf.EnsureNewline()
	e.buf.Open(tag, "start", start)
	e.buf.Write("\n")
	for _, item := range l.Items {
		e.listItem(item)
	}
	e.buf.Close(tag)
	e.buf.Write("\n")
}

func (e *Emitter) listItem(item ListItem) {
	class := ""
	if item.Task != nil {
		class = "task-list-item"
	}
	e.buf.Open("li", "class", class)
	e.Emit(item.Blocks)
	e.buf.Close("li")
	e.buf.Write("\n")
}

// --- Callout ---

func (e *Emitter) callout(c Callout) {
	kind := strings.ToLower(string(c.Type))
	class := fmt.Sprintf("callout callout-%s callout-%s", kind, e.config.CalloutColor(c.Type))

	e.buf.EnsureNewline()
	e.buf.Open("div", "class", class, "data-callout", string(c.Type))
	e.buf.Write("\n")
	e.buf.Open("p", "class", "callout-title")
	e.buf.WriteEscaped(string(c.Type))
	e.buf.Close("p")
	e.buf.Write("\n")
	e.Emit(c.Body)
	e.buf.EnsureNewline()
	e.buf.Close("div")
	e.buf.Write("\n")
}

// --- Code block ---

func (e *Emitter) codeBlock(c CodeBlock) {
	e.buf.EnsureNewline()

	if e.config.Mermaid && strings.EqualFold(strings.TrimSpace(c.Lang), "mermaid") && e.mermaid(c) {
		e.buf.Write("\n")
		e.segments = append(e.segments, Segment{
			Kind:     SegmentMermaid,
			Language: "mermaid",
			RawCode:  c.Body,
		})
		return
	}

	code := e.highlighter.Highlight(c.Body, c.Lang)
	lang := code.Language
	if lang == "" {
		lang = e.config.DefaultLanguage
	}
	class := "language-" + lang
	preClass := strings.TrimSpace(code.Wrapper + " " + class)

	e.buf.Open("pre", "class", preClass)
	e.buf.Open("code", "class", class)
	// 换行写成 <br>，后续段落处理不会再改写代码内容
	e.buf.Write(strings.ReplaceAll(code.HTML, "\n", "<br>"))
	e.buf.Close("code")
	e.buf.Close("pre")
	e.buf.Write("\n")

	e.segments = append(e.segments, Segment{
		Kind:     SegmentCodeBlock,
		Language: code.Language,
		RawCode:  c.Body,
	})
}

// mermaid 写出图表图片；生成链接失败时返回 false，由调用方按代码块处理
func (e *Emitter) mermaid(c CodeBlock) bool {
	img, err := mermaid.InkURL(c.Body, nil)
	if err != nil {
		return false
	}
	edit, err := mermaid.LiveURL(c.Body, nil)
	if err != nil {
		return false
	}
	e.buf.Open("figure", "class", "mermaid")
	e.buf.Open("img", "src", img, "alt", "mermaid diagram")
	e.buf.Open("figcaption")
	e.buf.Open("a", "href", edit, "target", "_blank", "rel", linkRel)
	e.buf.Write("Edit diagram")
	e.buf.Close("a")
	e.buf.Close("figcaption")
	e.buf.Close("figure")
	return true
}

// --- Table ---

func (e *Emitter) table(t Table) {
	e.buf.EnsureNewline()
	e.buf.Write("<table>\n")
	if len(t.Header) > 0 {
		e.buf.Write("<thead>\n")
		e.tableRow("th", t.Header, t.Alignments)
		e.buf.Write("</thead>\n")
	}
	if len(t.Rows) > 0 {
		e.buf.Write("<tbody>\n")
		for _, row := range t.Rows {
			e.tableRow("td", row, t.Alignments)
		}
		e.buf.Write("</tbody>\n")
	}
	e.buf.Write("</table>\n")
}

func (e *Emitter) tableRow(tag string, cells []Inline, alignments []east.Alignment) {
	e.buf.Write("<tr>")
	for i, cell := range cells {
		class := ""
		if i < len(alignments) && alignments[i] != east.AlignNone {
			class = "align-" + alignments[i].String()
		}
		e.buf.Open(tag, "class", class)
		writeInline(e.buf, cell, e.config)
		e.buf.Close(tag)
	}
	e.buf.Write("</tr>\n")
}

// writeLines 转义文本并把换行写成 <br>
func (e *Emitter) writeLines(text string) {
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			e.buf.Write("<br>\n")
		}
		e.buf.WriteEscaped(line)
	}
}
