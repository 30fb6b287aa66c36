package converter

import (
	"strings"

	emojiast "github.com/yuin/goldmark-emoji/ast"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/riverfjs/mdview-go/internal/buffer"
)

// linkRel 阻止新页面访问 window.opener 并隐藏 referrer
const linkRel = "noopener noreferrer"

// writeInline 写出行内内容：代码、粗体、斜体、删除线、链接、图片
func writeInline(buf *buffer.HTMLBuffer, in Inline, config *RenderConfig) {
	if in.Node == nil {
		return
	}
	w := &inlineWriter{buf: buf, source: in.Source, config: config}
	nodes := in.children()
	for i, c := range nodes {
		if t, ok := c.(*ast.Text); ok && in.Until > 0 && i == len(nodes)-1 {
			// 截断的行不带行尾换行
			w.buf.WriteEscaped(unescapeText(t.Segment.Value(w.source)))
			continue
		}
		w.node(c)
	}
}

type inlineWriter struct {
	buf    *buffer.HTMLBuffer
	source []byte
	config *RenderConfig
}

func (w *inlineWriter) children(n ast.Node) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		w.node(c)
	}
}

func (w *inlineWriter) node(node ast.Node) {
	switch n := node.(type) {
	case *ast.Text:
		w.buf.WriteEscaped(unescapeText(n.Segment.Value(w.source)))
		if n.HardLineBreak() || n.SoftLineBreak() {
			w.buf.Write("<br>\n")
		}

	case *ast.String:
		if n.IsCode() {
			w.buf.WriteEscaped(string(n.Value))
		} else {
			w.buf.WriteEscaped(unescapeText(n.Value))
		}

	case *ast.CodeSpan:
		code := extractCodeSpanText(n, w.source)
		if strings.Contains(code, "\n") {
			// 行内代码不能跨行：按原文输出反引号
			fence := codeSpanFence(n, w.source)
			w.buf.WriteEscaped(fence)
			for i, line := range strings.Split(code, "\n") {
				if i > 0 {
					w.buf.Write("<br>\n")
				}
				w.buf.WriteEscaped(line)
			}
			w.buf.WriteEscaped(fence)
			return
		}
		w.buf.Write("<code>")
		w.buf.WriteEscaped(code)
		w.buf.Write("</code>")

	case *ast.Emphasis:
		tag := "em"
		if n.Level == 2 {
			tag = "strong"
		}
		w.buf.Open(tag)
		w.children(n)
		w.buf.Close(tag)

	case *east.Strikethrough:
		w.buf.Open("del")
		w.children(n)
		w.buf.Close("del")

	case *ast.Link:
		w.buf.Open("a",
			"href", safeURL(n.Destination),
			"title", string(n.Title),
			"target", "_blank",
			"rel", linkRel,
		)
		w.children(n)
		w.buf.Close("a")

	case *ast.AutoLink:
		url := n.URL(w.source)
		label := string(n.Label(w.source))
		if n.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(string(url)), "mailto:") {
			url = append([]byte("mailto:"), url...)
		}
		w.buf.Open("a", "href", safeURL(url), "target", "_blank", "rel", linkRel)
		w.buf.WriteEscaped(label)
		w.buf.Close("a")

	case *ast.Image:
		w.buf.Open("img",
			"src", safeURL(n.Destination),
			"alt", nodeText(n, w.source),
			"title", string(n.Title),
		)

	case *east.TaskCheckBox:
		symbol := w.config.MarkdownSymbol.TaskUncompleted
		class := "task-checkbox"
		if n.IsChecked {
			symbol = w.config.MarkdownSymbol.TaskCompleted
			class = "task-checkbox checked"
		}
		w.buf.Open("span", "class", class)
		w.buf.WriteEscaped(symbol)
		w.buf.Close("span")
		w.buf.Write(" ")

	case *emojiast.Emoji:
		if n.Value != nil && len(n.Value.Unicode) > 0 {
			w.buf.WriteEscaped(string(n.Value.Unicode))
		} else {
			w.buf.WriteEscaped(":" + string(n.ShortName) + ":")
		}

	case *ast.RawHTML:
		// 原始 HTML 不注入，按文本显示
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			w.buf.WriteEscaped(string(seg.Value(w.source)))
		}

	default:
		w.children(node)
	}
}

// safeURL 过滤 javascript: 等危险协议
func safeURL(url []byte) string {
	if html.IsDangerousURL(url) {
		return "#"
	}
	return string(util.URLEscape(url, true))
}

// unescapeText 处理反斜杠转义和实体引用，结果仍需 HTML 转义
func unescapeText(value []byte) string {
	v := util.UnescapePunctuations(value)
	v = util.ResolveNumericReferences(v)
	v = util.ResolveEntityNames(v)
	return string(v)
}

func extractCodeSpanText(n *ast.CodeSpan, source []byte) string {
	var buf strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
		case *ast.String:
			buf.Write(t.Value)
		}
	}
	return buf.String()
}

// codeSpanFence 从源文本中找回行内代码的反引号串
func codeSpanFence(n *ast.CodeSpan, source []byte) string {
	first, ok := n.FirstChild().(*ast.Text)
	if !ok {
		return "`"
	}
	i := first.Segment.Start
	if i > 1 && source[i-1] == ' ' && source[i-2] == '`' {
		i--
	}
	j := i
	for j > 0 && source[j-1] == '`' {
		j--
	}
	if j == i {
		return "`"
	}
	return string(source[j:i])
}

// nodeText 收集节点下的纯文本（用于图片 alt 和标题大纲）
func nodeText(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			sb.WriteString(unescapeText(t.Segment.Value(source)))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(t.Value)
		case *ast.CodeSpan:
			sb.WriteString(extractCodeSpanText(t, source))
			return ast.WalkSkipChildren, nil
		case *ast.AutoLink:
			sb.Write(t.Label(source))
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}

func plainText(in Inline) string {
	if in.Node == nil {
		return ""
	}
	return strings.TrimSpace(nodeText(in.Node, in.Source))
}
