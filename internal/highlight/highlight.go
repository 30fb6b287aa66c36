// Package highlight turns fenced code into class-annotated HTML.
//
// Output keeps one line of markup per source line, joined by "\n", so the
// caller decides how line breaks are rendered. Unknown grammars degrade to
// escaped plain text; highlighting never fails and never drops content.
package highlight

import (
	"html"
	"log"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/riverfjs/mdview-go/internal/util"
)

// PlainText is the language reported for code rendered without a grammar.
const PlainText = "plaintext"

// Code is the result of highlighting one code fragment.
type Code struct {
	// Language is the canonical grammar name, PlainText after a fallback,
	// or "" when the fragment carried no tag.
	Language string
	HTML     string
	// Fallback reports that the tag named no known grammar.
	Fallback bool
	// Wrapper is the class the enclosing element needs for theme CSS to
	// apply, empty for unclassified output.
	Wrapper string
}

// Highlighter highlights a code fragment for a language tag.
type Highlighter interface {
	Highlight(code, lang string) Code
}

var logger atomic.Pointer[log.Logger]

func init() {
	logger.Store(log.New(os.Stderr, "[mdview] ", log.LstdFlags))
}

// SetLogger replaces the logger used to report unknown grammars.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger.Store(l)
	}
}

var (
	grammarTable     map[string]chroma.Lexer
	grammarTableOnce sync.Once
)

// grammarNames maps canonical names that chroma knows under another name.
var grammarNames = map[string]string{
	"markup": "html",
}

// grammars returns the process-wide grammar table, built on first use and
// read-only afterwards.
func grammars() map[string]chroma.Lexer {
	grammarTableOnce.Do(func() {
		table := make(map[string]chroma.Lexer)
		for _, lexer := range lexers.GlobalLexerRegistry.Lexers {
			cfg := lexer.Config()
			if cfg == nil {
				continue
			}
			table[strings.ToLower(cfg.Name)] = lexer
			for _, alias := range cfg.Aliases {
				table[strings.ToLower(alias)] = lexer
			}
		}
		for name, target := range grammarNames {
			if lexer, ok := table[target]; ok {
				table[name] = lexer
			}
		}
		grammarTable = table
	})
	return grammarTable
}

// Lookup returns the grammar for a fence tag, or nil.
func Lookup(lang string) chroma.Lexer {
	name := util.Canonical(lang)
	if name == "" || name == PlainText {
		return nil
	}
	return grammars()[name]
}

// Chroma highlights with chroma grammars.
type Chroma struct {
	reported sync.Map
}

// NewChroma creates a chroma-backed Highlighter.
func NewChroma() *Chroma {
	return &Chroma{}
}

// Highlight implements Highlighter.
func (c *Chroma) Highlight(code, lang string) Code {
	name := util.Canonical(lang)
	switch name {
	case "":
		return Code{HTML: escapeLines(code)}
	case PlainText:
		return Code{Language: PlainText, HTML: escapeLines(code)}
	}

	lexer := grammars()[name]
	if lexer == nil {
		c.report(name, "no grammar")
		return Code{Language: PlainText, HTML: escapeLines(code), Fallback: true}
	}

	out, err := tokenize(chroma.Coalesce(lexer), code)
	if err != nil {
		c.report(name, err.Error())
		return Code{Language: PlainText, HTML: escapeLines(code), Fallback: true}
	}
	return Code{Language: name, HTML: out, Wrapper: "chroma"}
}

// report logs a grammar problem once per language.
func (c *Chroma) report(lang, reason string) {
	if _, seen := c.reported.LoadOrStore(lang, struct{}{}); seen {
		return
	}
	logger.Load().Printf("highlight %q: %s, rendering as plain text", lang, reason)
}

func tokenize(lexer chroma.Lexer, code string) (string, error) {
	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", err
	}

	want := strings.Count(code, "\n") + 1
	lines := make([]string, 0, want)
	var line strings.Builder
	for _, token := range iterator.Tokens() {
		value := token.Value
		for {
			head, tail, found := strings.Cut(value, "\n")
			writeToken(&line, token.Type, head)
			if !found {
				break
			}
			lines = append(lines, line.String())
			line.Reset()
			value = tail
		}
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	// Lexers append a final newline; pad or trim back to the source's lines.
	for len(lines) < want {
		lines = append(lines, "")
	}
	return strings.Join(lines[:want], "\n"), nil
}

func writeToken(sb *strings.Builder, tt chroma.TokenType, value string) {
	if value == "" {
		return
	}
	escaped := html.EscapeString(value)
	class := tokenClass(tt)
	if class == "" {
		sb.WriteString(escaped)
		return
	}
	sb.WriteString(`<span class="`)
	sb.WriteString(class)
	sb.WriteString(`">`)
	sb.WriteString(escaped)
	sb.WriteString(`</span>`)
}

// tokenClass returns chroma's short class name, walking up to the token's
// sub-category and category. Text and whitespace get no class.
func tokenClass(tt chroma.TokenType) string {
	if tt == chroma.Text || tt == chroma.TextWhitespace {
		return ""
	}
	for _, t := range []chroma.TokenType{tt, tt.SubCategory(), tt.Category()} {
		if class, ok := chroma.StandardTypes[t]; ok {
			return class
		}
	}
	return ""
}

// escapeLines escapes code as plain text, one output line per source line.
func escapeLines(code string) string {
	return html.EscapeString(code)
}

// Plain escapes code without grammar lookups.
type Plain struct{}

// Highlight implements Highlighter.
func (Plain) Highlight(code, lang string) Code {
	return Code{Language: util.Canonical(lang), HTML: escapeLines(code)}
}
