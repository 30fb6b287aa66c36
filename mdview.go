// Package mdview 将 Markdown / MDX 渲染为可直接嵌入预览面板的 HTML
//
// 这个包提供了实时预览所需的完整渲染管道。
//
// 核心功能：
//   - 标题、列表、引用、表格、分隔线
//   - GitHub 风格提示块（> [!NOTE]、> [!WARNING] 等）
//   - 围栏代码块语法高亮（chroma），未知语言回退为纯文本
//   - 行内代码、粗体、斜体、删除线、链接
//   - 输出经过白名单清理（bluemonday）
//   - Mermaid 图表链接（可选）
//
// 主要 API：
//   - Render(): 同步渲染，返回 HTML 字符串
//   - RenderDocument(): 同时返回文档大纲（标题、代码块）
//
// 示例：
//
//	// 简单渲染
//	html := mdview.Render(markdown)
//
//	// 带大纲
//	doc := mdview.RenderDocument(markdown, mdview.WithSanitize(false))
//	for _, h := range doc.Headings {
//	    fmt.Println(h.Level, h.Text, h.ID)
//	}
package mdview

// Render 将 Markdown 渲染为 HTML
//
// 渲染是纯函数：相同的输入和选项总是得到完全相同的输出，
// 不会返回错误，也不会因为格式错误的 Markdown 而 panic。
//
// 参数：
//   - markdown: 原始 Markdown / MDX 文本
//   - opts: 渲染选项，默认使用 DefaultConfig()、chroma 高亮并清理输出
//
// 返回：
//   - string: HTML；空输入返回空字符串
func Render(markdown string, opts ...Option) string {
	return RenderDocument(markdown, opts...).HTML
}
