package converter

import (
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
)

// BlockKind 标识块模型中的变体
type BlockKind int

const (
	KindParagraph BlockKind = iota
	KindHeading
	KindList
	KindCallout
	KindCode
	KindQuote
	KindRule
	KindTable
	KindHTML
)

// String returns the lower-case name of the kind.
func (k BlockKind) String() string {
	switch k {
	case KindParagraph:
		return "paragraph"
	case KindHeading:
		return "heading"
	case KindList:
		return "list"
	case KindCallout:
		return "callout"
	case KindCode:
		return "code"
	case KindQuote:
		return "quote"
	case KindRule:
		return "rule"
	case KindTable:
		return "table"
	case KindHTML:
		return "html"
	default:
		return "unknown"
	}
}

// Block 是文档的块级单元；具体类型见下方各结构体
type Block interface {
	Kind() BlockKind
}

// Inline 是块内尚未格式化的行内内容：goldmark 节点的子节点加上源文本
type Inline struct {
	Node   ast.Node
	Source []byte
	// SkipBefore drops leading content that starts before this source offset.
	// Callouts use it to hide their marker line.
	SkipBefore int
	// Until drops content starting at or after this offset; zero keeps the rest.
	// A line cut this way also loses its trailing line break.
	Until int
}

// Empty reports whether the inline content renders to nothing.
func (in Inline) Empty() bool {
	return len(in.children()) == 0
}

// children 返回落在 [SkipBefore, Until) 内的子节点；没有源位置的节点跟随前一个节点
func (in Inline) children() []ast.Node {
	if in.Node == nil {
		return nil
	}
	out := make([]ast.Node, 0)
	pos := -1
	for c := in.Node.FirstChild(); c != nil; c = c.NextSibling() {
		if s := nodeStart(c); s >= 0 {
			pos = s
		}
		if pos >= 0 && (pos < in.SkipBefore || (in.Until > 0 && pos >= in.Until)) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// nodeStart 返回节点第一段文本的源偏移，找不到时返回 -1
func nodeStart(n ast.Node) int {
	switch t := n.(type) {
	case *ast.Text:
		return t.Segment.Start
	case *ast.RawHTML:
		if t.Segments.Len() > 0 {
			return t.Segments.At(0).Start
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if s := nodeStart(c); s >= 0 {
			return s
		}
	}
	return -1
}

type Paragraph struct {
	Text Inline
	// Tight paragraphs belong to tight list items and render without <p>.
	Tight bool
}

type Heading struct {
	Level int
	ID    string
	Text  Inline
}

type List struct {
	Ordered bool
	Start   int
	Items   []ListItem
}

type ListItem struct {
	// Task is nil for plain items, otherwise the checkbox state.
	Task   *bool
	Blocks []Block
}

type Callout struct {
	Type CalloutKind
	Body []Block
}

type CodeBlock struct {
	Lang string
	Body string
}

type Quote struct {
	Body []Block
}

type Rule struct{}

type Table struct {
	Alignments []east.Alignment
	Header     []Inline
	Rows       [][]Inline
}

// HTML holds raw markup from the source; it is shown escaped, never injected.
type HTML struct {
	Text string
}

func (Paragraph) Kind() BlockKind { return KindParagraph }
func (Heading) Kind() BlockKind   { return KindHeading }
func (List) Kind() BlockKind      { return KindList }
func (Callout) Kind() BlockKind   { return KindCallout }
func (CodeBlock) Kind() BlockKind { return KindCode }
func (Quote) Kind() BlockKind     { return KindQuote }
func (Rule) Kind() BlockKind      { return KindRule }
func (Table) Kind() BlockKind     { return KindTable }
func (HTML) Kind() BlockKind      { return KindHTML }
