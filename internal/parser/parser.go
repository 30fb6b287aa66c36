package parser

import (
	"fmt"

	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
	"gopkg.in/yaml.v2"

	"github.com/riverfjs/mdview-go/internal/converter"
	"github.com/riverfjs/mdview-go/internal/highlight"
	"github.com/riverfjs/mdview-go/internal/types"
)

// StandardOptions goldmark 扩展配置
var StandardOptions = []goldmark.Option{
	goldmark.WithExtensions(
		extension.GFM, // GitHub Flavored Markdown (tables, strikethrough, linkify, tasklists)
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(), // 自动生成标题 ID
	),
}

// blockParsers 是去掉缩进代码块和 Setext 标题后的默认块解析器
//
// 只有围栏才产生代码块；"===" / "---" 下划线不构成标题。
func blockParsers() []util.PrioritizedValue {
	return []util.PrioritizedValue{
		util.Prioritized(parser.NewThematicBreakParser(), 200),
		util.Prioritized(parser.NewListParser(), 300),
		util.Prioritized(parser.NewListItemParser(), 400),
		util.Prioritized(parser.NewATXHeadingParser(), 600),
		util.Prioritized(parser.NewFencedCodeBlockParser(), 700),
		util.Prioritized(parser.NewBlockquoteParser(), 800),
		util.Prioritized(parser.NewHTMLBlockParser(), 900),
		util.Prioritized(indentedParagraphParser{parser.NewParagraphParser()}, 1000),
	}
}

// indentedParagraphParser 让缩进 4 格以上的行也能开启段落
type indentedParagraphParser struct {
	parser.BlockParser
}

func (indentedParagraphParser) CanAcceptIndentedLine() bool { return true }

// newParser 创建只含 blockParsers 的 goldmark 解析器
func newParser() parser.Parser {
	return parser.NewParser(
		parser.WithBlockParsers(blockParsers()...),
		parser.WithInlineParsers(parser.DefaultInlineParsers()...),
		parser.WithParagraphTransformers(parser.DefaultParagraphTransformers()...),
	)
}

// newMarkdown 按渲染配置组装 goldmark 实例
func newMarkdown(config *converter.RenderConfig) goldmark.Markdown {
	// WithParser 必须在 WithParserOptions 之前
	opts := append([]goldmark.Option{goldmark.WithParser(newParser())}, StandardOptions...)
	if config.FrontMatter {
		opts = append(opts, goldmark.WithExtensions(meta.Meta))
	}
	if config.Emoji {
		opts = append(opts, goldmark.WithExtensions(emoji.Emoji))
	}
	return goldmark.New(opts...)
}

// Parse 解析 Markdown，生成块模型并写出 (html, segments, front matter)
func Parse(markdown string, config *converter.RenderConfig, highlighter highlight.Highlighter) (string, []converter.Segment, map[string]interface{}) {
	if config == nil {
		config = types.DefaultRenderConfig()
	}

	node, source, fm := parse(markdown, config)
	blocks := converter.Tokenize(node, source)

	emitter := converter.NewEmitter(config, highlighter)
	emitter.Emit(blocks)
	html, segments := emitter.Result()
	return html, segments, fm
}

// ParseBlocks 仅解析为块模型，不写出 HTML
func ParseBlocks(markdown string) []converter.Block {
	node, source := ParseAST(markdown)
	return converter.Tokenize(node, source)
}

// ParseAST 仅解析为 AST，不遍历
func ParseAST(markdown string) (ast.Node, []byte) {
	node, source, _ := parse(markdown, types.DefaultRenderConfig())
	return node, source
}

func parse(markdown string, config *converter.RenderConfig) (ast.Node, []byte, map[string]interface{}) {
	md := newMarkdown(config)
	source := []byte(markdown)
	reader := text.NewReader(source)
	ctx := parser.NewContext()
	doc := md.Parser().Parse(reader, parser.WithContext(ctx))

	var fm map[string]interface{}
	if config.FrontMatter {
		// YAML 格式错误时忽略，不影响正文渲染
		if m, err := meta.TryGet(ctx); err == nil && len(m) > 0 {
			fm = make(map[string]interface{}, len(m))
			for k, v := range m {
				fm[k] = plainValue(v)
			}
		}
	}
	return doc, source, fm
}

// plainValue 将 YAML 解码出的嵌套映射转换为 map[string]interface{}，便于 JSON 编码
func plainValue(v interface{}) interface{} {
	switch t := v.(type) {
	case yaml.MapSlice:
		out := make(map[string]interface{}, len(t))
		for _, item := range t {
			out[fmt.Sprint(item.Key)] = plainValue(item.Value)
		}
		return out
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = plainValue(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = plainValue(val)
		}
		return out
	default:
		return v
	}
}
