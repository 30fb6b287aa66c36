package highlight

import (
	"fmt"
	"io"
	"sort"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

// themeAliases maps theme names used by browser-side highlighters to the
// closest chroma style.
var themeAliases = map[string]string{
	"tomorrow":       "monokai",
	"okaidia":        "monokai",
	"twilight":       "native",
	"coy":            "friendly",
	"solarizedlight": "solarized-light",
	"prism":          "friendly",
}

// Style resolves a theme name to a chroma style. ok is false when the name
// is unknown and chroma's fallback style was returned.
func Style(theme string) (style *chroma.Style, ok bool) {
	if alias, found := themeAliases[theme]; found {
		theme = alias
	}
	if s, found := styles.Registry[theme]; found {
		return s, true
	}
	return styles.Fallback, false
}

// Themes lists the names accepted by Style, sorted.
func Themes() []string {
	names := styles.Names()
	for alias := range themeAliases {
		names = append(names, alias)
	}
	sort.Strings(names)
	return names
}

// WriteCSS writes the stylesheet for theme. Rules are scoped under the
// "chroma" class that code blocks carry.
func WriteCSS(w io.Writer, theme string) error {
	style, ok := Style(theme)
	if !ok {
		logger.Load().Printf("unknown theme %q, using %s", theme, style.Name)
	}
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(w, style); err != nil {
		return fmt.Errorf("write css for %s: %w", style.Name, err)
	}
	return nil
}
