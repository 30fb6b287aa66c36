package util

import (
	"path/filepath"
	"regexp"
	"strings"
)

// LanguageAliases maps shorthand fence tags to canonical grammar names.
var LanguageAliases = map[string]string{
	"js":         "javascript",
	"mjs":        "javascript",
	"cjs":        "javascript",
	"ts":         "typescript",
	"mts":        "typescript",
	"py":         "python",
	"py3":        "python",
	"sh":         "bash",
	"shell":      "bash",
	"zsh":        "bash",
	"console":    "bash",
	"yml":        "yaml",
	"html":       "markup",
	"xml":        "markup",
	"svg":        "markup",
	"md":         "markdown",
	"mdx":        "markdown",
	"golang":     "go",
	"rb":         "ruby",
	"rs":         "rust",
	"c++":        "cpp",
	"cc":         "cpp",
	"hpp":        "cpp",
	"cs":         "csharp",
	"c#":         "csharp",
	"kt":         "kotlin",
	"ps1":        "powershell",
	"dockerfile": "docker",
	"tf":         "terraform",
	"txt":        "plaintext",
	"text":       "plaintext",
	"plain":      "plaintext",
}

// Canonical normalizes a fence tag: it keeps the first word of the info
// string, lowercases it and resolves shorthand aliases.
func Canonical(tag string) string {
	tag = strings.TrimSpace(tag)
	if i := strings.IndexAny(tag, " \t,{"); i >= 0 {
		tag = tag[:i]
	}
	tag = strings.ToLower(tag)
	if name, ok := LanguageAliases[tag]; ok {
		return name
	}
	return tag
}

// DefaultLanguageToExt maps programming language names to file extensions.
var DefaultLanguageToExt = map[string]string{
	"python":     "py",
	"javascript": "js",
	"typescript": "ts",
	"jsx":        "jsx",
	"tsx":        "tsx",
	"java":       "java",
	"cpp":        "cpp",
	"c":          "c",
	"csharp":     "cs",
	"markup":     "html",
	"css":        "css",
	"bash":       "sh",
	"php":        "php",
	"markdown":   "md",
	"json":       "json",
	"yaml":       "yaml",
	"docker":     "dockerfile",
	"plaintext":  "txt",
	"toml":       "toml",
	"go":         "go",
	"ruby":       "rb",
	"rust":       "rs",
	"swift":      "swift",
	"kotlin":     "kt",
	"sql":        "sql",
	"graphql":    "graphql",
	"mermaid":    "mmd",
}

var filenamePattern = regexp.MustCompile(`([a-zA-Z0-9_\-\.]+\.[a-zA-Z0-9]+)`)

// ExtractValidFilename extracts a valid filename (with extension) from a line of text.
func ExtractValidFilename(line string) string {
	for _, match := range filenamePattern.FindAllString(line, -1) {
		if filepath.Ext(match) != "" && !strings.HasPrefix(match, ".") {
			return match
		}
	}
	return ""
}

// GetExt returns the file extension for a given language.
func GetExt(language string) string {
	ext, ok := DefaultLanguageToExt[Canonical(language)]
	if !ok {
		return "txt"
	}
	return ext
}

// GetFilename suggests a download name for a code block.
//
// A filename mentioned in the first line (e.g. "// main.go") wins; otherwise
// the name is "snippet.<ext>" based on the language.
func GetFilename(code string, language string) string {
	first, _, _ := strings.Cut(strings.TrimSpace(code), "\n")
	first = strings.ReplaceAll(first, "\\", "")

	ext := GetExt(language)
	if name := ExtractValidFilename(first); name != "" {
		if strings.HasSuffix(name, "."+ext) && len(name) <= 32 {
			return name
		}
		return name + "." + ext
	}
	return "snippet." + ext
}
