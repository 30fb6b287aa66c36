package converter

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
)

// calloutMarkerRe 匹配提示块首行，如 [!NOTE]
var calloutMarkerRe = regexp.MustCompile(`(?i)^\[!(NOTE|TIP|IMPORTANT|WARNING|CAUTION)\]$`)

// Tokenize 将 goldmark AST 转换为块模型
//
// 代码块在这里就已经是不可再分的叶子，之后的行内处理看不到其中的标点；
// 提示块在普通引用之前识别，标记行不会变成普通引用内容。
func Tokenize(doc ast.Node, source []byte) []Block {
	t := &tokenizer{source: source}
	return t.blocks(doc)
}

type tokenizer struct {
	source []byte
}

func (t *tokenizer) blocks(parent ast.Node) []Block {
	out := make([]Block, 0)
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		out = t.appendBlock(out, n)
	}
	return out
}

func (t *tokenizer) appendBlock(out []Block, node ast.Node) []Block {
	switch n := node.(type) {
	case *ast.Heading:
		return append(out, Heading{Level: n.Level, ID: headingID(n), Text: t.inline(n)})

	case *ast.Paragraph:
		return append(out, Paragraph{Text: t.inline(n)})

	case *ast.TextBlock:
		return append(out, Paragraph{Text: t.inline(n), Tight: true})

	case *ast.List:
		l := t.list(n)
		// 换了项目符号但没有空行隔开，仍是同一个列表
		if prev, ok := n.PreviousSibling().(*ast.List); ok && len(out) > 0 &&
			prev.IsOrdered() == n.IsOrdered() && !n.HasBlankPreviousLines() {
			if last, ok := out[len(out)-1].(List); ok {
				last.Items = append(last.Items, l.Items...)
				out[len(out)-1] = last
				return out
			}
		}
		return append(out, l)

	case *ast.Blockquote:
		if c, ok := t.callout(n); ok {
			return append(out, c)
		}
		return append(out, t.quoteLines(n)...)

	case *ast.FencedCodeBlock:
		return append(out, CodeBlock{Lang: string(n.Language(t.source)), Body: t.lines(n)})

	case *ast.CodeBlock:
		return append(out, CodeBlock{Body: t.lines(n)})

	case *ast.ThematicBreak:
		return append(out, Rule{})

	case *ast.HTMLBlock:
		text := t.lines(n)
		if n.HasClosure() {
			text += "\n" + string(n.ClosureLine.Value(t.source))
		}
		text = strings.TrimRight(text, "\n")
		if strings.TrimSpace(text) == "" {
			return out
		}
		return append(out, HTML{Text: text})

	case *east.Table:
		return append(out, t.table(n))

	default:
		// 未知的容器节点（来自扩展）：展开其子块
		if node.Type() == ast.TypeBlock && node.HasChildren() {
			for c := node.FirstChild(); c != nil; c = c.NextSibling() {
				out = t.appendBlock(out, c)
			}
		}
		return out
	}
}

func (t *tokenizer) inline(n ast.Node) Inline {
	return Inline{Node: n, Source: t.source}
}

// lines 拼接叶子块的原始行，去掉末尾的单个换行
func (t *tokenizer) lines(n ast.Node) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(t.source))
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func (t *tokenizer) list(n *ast.List) List {
	l := List{Ordered: n.IsOrdered(), Start: n.Start}
	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		l.Items = append(l.Items, ListItem{
			Task:   taskState(item),
			Blocks: t.blocks(item),
		})
	}
	return l
}

// taskState 返回任务列表项的勾选状态，普通列表项返回 nil
func taskState(item ast.Node) *bool {
	first := item.FirstChild()
	if first == nil {
		return nil
	}
	if box, ok := first.FirstChild().(*east.TaskCheckBox); ok {
		checked := box.IsChecked
		return &checked
	}
	return nil
}

// callout 识别以 [!KIND] 开头的引用块；其余引用行（已去掉前缀）作为正文
func (t *tokenizer) callout(n *ast.Blockquote) (Callout, bool) {
	p, ok := n.FirstChild().(*ast.Paragraph)
	if !ok || p.Lines().Len() == 0 {
		return Callout{}, false
	}
	first := p.Lines().At(0)
	m := calloutMarkerRe.FindSubmatch(bytes.TrimSpace(first.Value(t.source)))
	if m == nil {
		return Callout{}, false
	}

	c := Callout{
		Type: CalloutKind(strings.ToUpper(string(m[1]))),
		Body: make([]Block, 0),
	}
	body := Paragraph{Text: Inline{Node: p, Source: t.source, SkipBefore: first.Stop}}
	if !body.Text.Empty() {
		c.Body = append(c.Body, body)
	}
	for s := p.NextSibling(); s != nil; s = s.NextSibling() {
		c.Body = t.appendBlock(c.Body, s)
	}
	return c, true
}

// quoteLines 把普通引用拆开：段落每行一个引用块，其余子块各占一个
func (t *tokenizer) quoteLines(n *ast.Blockquote) []Block {
	out := make([]Block, 0)
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		p, ok := c.(*ast.Paragraph)
		if !ok {
			for _, b := range t.appendBlock(nil, c) {
				out = append(out, Quote{Body: []Block{b}})
			}
			continue
		}
		lines := p.Lines()
		for i := 0; i < lines.Len(); i++ {
			text := Inline{Node: p, Source: t.source, SkipBefore: lines.At(i).Start}
			if i+1 < lines.Len() {
				text.Until = lines.At(i + 1).Start
			}
			if !text.Empty() {
				out = append(out, Quote{Body: []Block{Paragraph{Text: text}}})
			}
		}
	}
	return out
}

func (t *tokenizer) table(n *east.Table) Table {
	tb := Table{Alignments: n.Alignments}
	for row := n.FirstChild(); row != nil; row = row.NextSibling() {
		cells := make([]Inline, 0, len(n.Alignments))
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, t.inline(cell))
		}
		if _, ok := row.(*east.TableHeader); ok {
			tb.Header = cells
		} else {
			tb.Rows = append(tb.Rows, cells)
		}
	}
	return tb
}

func headingID(n *ast.Heading) string {
	id, ok := n.AttributeString("id")
	if !ok {
		return ""
	}
	switch v := id.(type) {
	case []byte:
		return string(v)
	case string:
		return v
	}
	return ""
}
