package mdview

import (
	"sync"

	"github.com/riverfjs/mdview-go/internal/highlight"
	"github.com/riverfjs/mdview-go/internal/types"
)

// 导出类型别名
type Symbol = types.Symbol
type RenderConfig = types.RenderConfig
type CalloutKind = types.CalloutKind

// Highlighter 代码块高亮接口，可通过 WithHighlighter 替换
type Highlighter = highlight.Highlighter

// HighlightedCode 是 Highlighter 的返回值
type HighlightedCode = highlight.Code

var (
	defaultConfig     *RenderConfig
	defaultConfigOnce sync.Once

	defaultHighlighter     *highlight.Chroma
	defaultHighlighterOnce sync.Once
)

// DefaultConfig returns the default render configuration (singleton).
func DefaultConfig() *RenderConfig {
	defaultConfigOnce.Do(func() {
		defaultConfig = types.DefaultRenderConfig()
	})
	return defaultConfig
}

// DefaultHighlighter returns the shared chroma highlighter.
func DefaultHighlighter() Highlighter {
	defaultHighlighterOnce.Do(func() {
		defaultHighlighter = highlight.NewChroma()
	})
	return defaultHighlighter
}

// PlainHighlighter escapes code without highlighting it.
func PlainHighlighter() Highlighter {
	return highlight.Plain{}
}
