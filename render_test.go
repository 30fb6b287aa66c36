package mdview

import (
	"strings"
	"testing"
)

// raw 渲染但不清理输出，便于精确比较
func raw(markdown string) string {
	return Render(markdown, WithSanitize(false), WithHighlighter(PlainHighlighter()))
}

// countTag 统计开始标签出现的次数（<ul> 或 <ul ...>）
func countTag(html, tag string) int {
	return strings.Count(html, "<"+tag+">") + strings.Count(html, "<"+tag+" ")
}

// TestRender_Empty 测试空输入
func TestRender_Empty(t *testing.T) {
	if got := Render(""); got != "" {
		t.Errorf("Render(\"\") = %q, want empty", got)
	}
	if got := raw(""); got != "" {
		t.Errorf("raw(\"\") = %q, want empty", got)
	}
}

// TestRender_EndToEnd 测试完整文档
func TestRender_EndToEnd(t *testing.T) {
	got := raw("# Hi\n\nSome **bold** and `code`.\n\n- one\n- two")
	want := "<h1 id=\"hi\">Hi</h1>\n" +
		"<p>Some <strong>bold</strong> and <code>code</code>.</p>\n" +
		"<ul>\n<li>one</li>\n<li>two</li>\n</ul>"
	if got != want {
		t.Errorf("Render()\n got: %q\nwant: %q", got, want)
	}

	// 清理后结构与顺序不变
	sanitized := Render("# Hi\n\nSome **bold** and `code`.\n\n- one\n- two")
	order := []string{"<h1", "<p>", "<strong>bold</strong>", "<code>code</code>", "<ul>", "<li>one</li>", "<li>two</li>"}
	pos := 0
	for _, s := range order {
		i := strings.Index(sanitized[pos:], s)
		if i < 0 {
			t.Fatalf("sanitized output missing %q after offset %d: %s", s, pos, sanitized)
		}
		pos += i + len(s)
	}
}

// TestCodeBlock_EscapesScript 测试代码块中的 <script> 被转义
func TestCodeBlock_EscapesScript(t *testing.T) {
	for _, sanitize := range []bool{true, false} {
		got := Render("```html\n<script>alert('x')</script>\n```", WithSanitize(sanitize))
		if strings.Contains(got, "<script") {
			t.Errorf("sanitize=%v: raw <script> in output: %s", sanitize, got)
		}
		if !strings.Contains(got, "&lt;") {
			t.Errorf("sanitize=%v: expected escaped markup: %s", sanitize, got)
		}
	}
}

// TestCodeBlock_NotFormatted 测试代码块内容不做行内处理
func TestCodeBlock_NotFormatted(t *testing.T) {
	got := raw("```\n**not bold**\n```")
	if strings.Contains(got, "<strong>") {
		t.Errorf("code block content was formatted: %s", got)
	}
	if !strings.Contains(got, "**not bold**") {
		t.Errorf("code block content lost: %s", got)
	}
}

// TestCodeBlock_Highlighted 测试默认的 chroma 高亮
func TestCodeBlock_Highlighted(t *testing.T) {
	got := Render("```go\nfunc main() {}\n```")
	if !strings.Contains(got, `class="chroma language-go"`) {
		t.Errorf("missing chroma wrapper: %s", got)
	}
	if !strings.Contains(got, `<span class="kd">func</span>`) {
		t.Errorf("missing keyword token: %s", got)
	}
}

// TestCodeBlock_UnknownLanguage 测试未知语言回退为纯文本
func TestCodeBlock_UnknownLanguage(t *testing.T) {
	got := Render("```nosuchlang-xyz\nkeep < me\n```")
	if !strings.Contains(got, "language-plaintext") {
		t.Errorf("expected plaintext fallback: %s", got)
	}
	if !strings.Contains(got, "keep &lt; me") {
		t.Errorf("fallback lost code: %s", got)
	}
}

// TestHeading_H3 测试 ### 只生成一个 h3
func TestHeading_H3(t *testing.T) {
	got := raw("### Title")
	if got != `<h3 id="title">Title</h3>` {
		t.Errorf("Render() = %q", got)
	}
	if countTag(got, "h1")+countTag(got, "h2") != 0 {
		t.Errorf("lower-level heading emitted: %s", got)
	}
}

// TestCallout_Warning 测试提示块
func TestCallout_Warning(t *testing.T) {
	for _, sanitize := range []bool{true, false} {
		got := Render("> [!WARNING]\n> be careful", WithSanitize(sanitize))
		for _, want := range []string{"callout-warning", "callout-amber", `data-callout="WARNING"`, "be careful"} {
			if !strings.Contains(got, want) {
				t.Errorf("sanitize=%v: missing %q: %s", sanitize, want, got)
			}
		}
		if strings.Contains(got, "[!WARNING]") {
			t.Errorf("sanitize=%v: marker leaked into body: %s", sanitize, got)
		}
		if strings.Contains(got, "<blockquote>") {
			t.Errorf("sanitize=%v: callout rendered as quote: %s", sanitize, got)
		}
	}
}

// TestList_Grouping 测试连续列表项只生成一个列表
func TestList_Grouping(t *testing.T) {
	got := Render("- a\n- b\n- c")
	if n := countTag(got, "ul"); n != 1 {
		t.Errorf("got %d <ul>, want 1: %s", n, got)
	}
	if n := countTag(got, "li"); n != 3 {
		t.Errorf("got %d <li>, want 3: %s", n, got)
	}
}

// TestList_MixedBullets 测试 - * + 混用时仍是一个列表
func TestList_MixedBullets(t *testing.T) {
	got := Render("- a\n* b\n+ c")
	if n := countTag(got, "ul"); n != 1 {
		t.Errorf("got %d <ul>, want 1: %s", n, got)
	}
	if n := countTag(got, "li"); n != 3 {
		t.Errorf("got %d <li>, want 3: %s", n, got)
	}
}

// TestBlockquote_PerLine 测试每个 > 行各自成为一个引用块
func TestBlockquote_PerLine(t *testing.T) {
	got := Render("> a\n> b")
	if n := countTag(got, "blockquote"); n != 2 {
		t.Errorf("got %d <blockquote>, want 2: %s", n, got)
	}
	if strings.Contains(got, "<br") {
		t.Errorf("quote lines joined: %s", got)
	}
}

// TestIndented_NotCode 测试缩进文本不会变成代码块
func TestIndented_NotCode(t *testing.T) {
	got := raw("    four spaces of prose\n    second line")
	if strings.Contains(got, "<pre") {
		t.Errorf("indented text became code: %s", got)
	}
	if !strings.Contains(got, "four spaces of prose") {
		t.Errorf("text lost: %s", got)
	}
}

// TestList_Ordered 测试有序列表
func TestList_Ordered(t *testing.T) {
	got := raw("1. a\n2. b")
	if got != "<ol>\n<li>a</li>\n<li>b</li>\n</ol>" {
		t.Errorf("Render() = %q", got)
	}
}

// TestLink_Safety 测试链接安全属性
func TestLink_Safety(t *testing.T) {
	for _, sanitize := range []bool{true, false} {
		got := Render("[x](http://evil.example)", WithSanitize(sanitize))
		for _, want := range []string{`href="http://evil.example"`, `target="_blank"`, "noopener", "noreferrer"} {
			if !strings.Contains(got, want) {
				t.Errorf("sanitize=%v: missing %q: %s", sanitize, want, got)
			}
		}
	}
}

// TestLink_JavaScript 测试危险协议被移除
func TestLink_JavaScript(t *testing.T) {
	for _, sanitize := range []bool{true, false} {
		got := Render("[x](javascript:alert(1))", WithSanitize(sanitize))
		if strings.Contains(got, "javascript:") {
			t.Errorf("sanitize=%v: dangerous scheme kept: %s", sanitize, got)
		}
	}
}

// TestRawHTML_NotInjected 测试原始 HTML 不会注入
func TestRawHTML_NotInjected(t *testing.T) {
	got := Render("<script>alert(1)</script>\n\nhi <b onclick=\"x()\">there</b>")
	if strings.Contains(got, "<script") || strings.Contains(got, "onclick=\"x()\"") {
		t.Errorf("raw html injected: %s", got)
	}
}

// TestRender_Deterministic 测试相同输入输出完全一致
func TestRender_Deterministic(t *testing.T) {
	in := "# Doc\n\n> [!TIP]\n> use `go test`\n\n```go\nx := 1\n```\n\n- [x] a\n- [ ] b\n\n| a | b |\n|---|---|\n| 1 | 2 |"
	first := Render(in)
	for i := 0; i < 5; i++ {
		if got := Render(in); got != first {
			t.Fatalf("run %d differs:\n%s\n---\n%s", i, got, first)
		}
	}
}

// TestRender_Concurrent 测试并发渲染
func TestRender_Concurrent(t *testing.T) {
	in := "## T\n\n```python\nprint('x')\n```"
	want := Render(in)
	done := make(chan string, 8)
	for i := 0; i < 8; i++ {
		go func() { done <- Render(in) }()
	}
	for i := 0; i < 8; i++ {
		if got := <-done; got != want {
			t.Errorf("concurrent render differs: %s", got)
		}
	}
}

// TestRender_CRLF 测试 Windows 换行
func TestRender_CRLF(t *testing.T) {
	if got, want := raw("# A\r\n\r\ntext"), raw("# A\n\ntext"); got != want {
		t.Errorf("CRLF output = %q, want %q", got, want)
	}
}

// TestRender_MDX 测试 MDX import/export 被去掉
func TestRender_MDX(t *testing.T) {
	got := raw("import { Chart } from './chart'\nexport const meta = { title: 'x' }\n\n# Title")
	if got != `<h1 id="title">Title</h1>` {
		t.Errorf("Render() = %q", got)
	}
}

// TestRender_MDXBracketInString 测试字符串中的括号不会吞掉后面的内容
func TestRender_MDXBracketInString(t *testing.T) {
	got := raw("export const open = '{'\n\n# Title\n\nBody text stays.")
	if got != "<h1 id=\"title\">Title</h1>\n<p>Body text stays.</p>" {
		t.Errorf("Render() = %q", got)
	}
}

// TestWithConfig 测试自定义配置
func TestWithConfig(t *testing.T) {
	config := *DefaultConfig()
	config.HeadingIDs = false
	config.DefaultLanguage = "text"
	got := Render("# A\n\n```\nx\n```", WithConfig(&config), WithSanitize(false), WithHighlighter(PlainHighlighter()))
	want := "<h1>A</h1>\n<pre class=\"language-text\"><code class=\"language-text\">x</code></pre>"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
	if !DefaultConfig().HeadingIDs {
		t.Error("DefaultConfig() was modified")
	}
}

// TestMermaid 测试 Mermaid 图表链接
func TestMermaid(t *testing.T) {
	config := *DefaultConfig()
	config.Mermaid = true
	got := Render("```mermaid\ngraph TD\n  A-->B\n```", WithConfig(&config))
	if !strings.Contains(got, "https://mermaid.ink/svg/pako:") {
		t.Errorf("missing diagram image: %s", got)
	}
	if !strings.Contains(got, "https://mermaid.live/edit#pako:") {
		t.Errorf("missing edit link: %s", got)
	}

	// 默认按代码块处理
	if got := Render("```mermaid\ngraph TD\n```"); strings.Contains(got, "mermaid.ink") {
		t.Errorf("mermaid rendered without opt-in: %s", got)
	}
}
