package types

// CalloutKind 是 GitHub 风格提示块的类型（NOTE、TIP 等），统一为大写
type CalloutKind string

const (
	CalloutNote      CalloutKind = "NOTE"
	CalloutTip       CalloutKind = "TIP"
	CalloutImportant CalloutKind = "IMPORTANT"
	CalloutWarning   CalloutKind = "WARNING"
	CalloutCaution   CalloutKind = "CAUTION"
)

// CalloutKinds lists the recognized markers in display order.
var CalloutKinds = []CalloutKind{
	CalloutNote,
	CalloutTip,
	CalloutImportant,
	CalloutWarning,
	CalloutCaution,
}

// Symbol 定义 Markdown 元素的显示符号
type Symbol struct {
	TaskCompleted   string
	TaskUncompleted string
}

// DefaultSymbol 返回默认符号配置
func DefaultSymbol() *Symbol {
	return &Symbol{
		TaskCompleted:   "☑",
		TaskUncompleted: "☐",
	}
}

// DefaultCalloutColors 返回提示块类型到颜色 class 的默认映射
func DefaultCalloutColors() map[CalloutKind]string {
	return map[CalloutKind]string{
		CalloutNote:      "blue",
		CalloutTip:       "green",
		CalloutImportant: "red",
		CalloutWarning:   "amber",
		CalloutCaution:   "amber",
	}
}

// RenderConfig 渲染配置
type RenderConfig struct {
	MarkdownSymbol *Symbol

	// CalloutColors selects the color class of each callout kind.
	CalloutColors map[CalloutKind]string

	// DefaultLanguage is the class used for fences without a language tag.
	DefaultLanguage string

	// Mermaid renders ```mermaid fences as diagram images instead of code.
	Mermaid bool

	// HeadingIDs emits id anchors on headings.
	HeadingIDs bool

	// FrontMatter 将文档开头的 YAML 块（--- ... ---）作为元数据取出，不参与渲染
	FrontMatter bool

	// Emoji 将 :smile: 这类短代码替换为 emoji
	Emoji bool
}

// CalloutColor returns the color class for kind, "gray" when unmapped.
func (c *RenderConfig) CalloutColor(kind CalloutKind) string {
	if color, ok := c.CalloutColors[kind]; ok && color != "" {
		return color
	}
	return "gray"
}

// DefaultRenderConfig 返回默认渲染配置
func DefaultRenderConfig() *RenderConfig {
	return &RenderConfig{
		MarkdownSymbol:  DefaultSymbol(),
		CalloutColors:   DefaultCalloutColors(),
		DefaultLanguage: "markup",
		Mermaid:         false,
		HeadingIDs:      true,
		FrontMatter:     true,
		Emoji:           false,
	}
}
