package converter

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	// fenceRe 匹配代码围栏的开始/结束行（``` 或 ~~~）
	fenceRe = regexp.MustCompile("^ {0,3}(`{3,}|~{3,})")

	// mdxESMRe 匹配 MDX 顶层的 import / export 语句
	mdxESMRe = regexp.MustCompile(`^(import\s*\{|import\s+['"]|import\s+[\w*{},\s]+\sfrom\s+['"]|export\s+(const|let|var|function|async|default|class)\b|export\s*\{|export\s*\*)`)
)

// Preprocess 在解析前规范化文本
//
//   - 统一换行符为 \n
//   - Unicode 规范化为 NFC
//   - 去掉代码块之外的 MDX import/export 语句
func Preprocess(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = norm.NFC.String(text)
	return StripMDXStatements(text)
}

// StripMDXStatements 删除 MDX 的 ESM 语句行，跳过围栏代码块中的内容
//
// export 语句的对象字面量可以跨行，删除到括号配平为止。
// 遇到空行或文档结尾时括号仍未配平，则原样保留这些行。
func StripMDXStatements(text string) string {
	if !strings.Contains(text, "import") && !strings.Contains(text, "export") {
		return text
	}

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	fence := ""   // 当前所在围栏的标记，空表示不在代码块中
	depth := 0    // 正在删除的 export 语句中未闭合的括号数
	blank := true // 上一行是否为空行（ESM 语句必须独立成段）

	// 尚未配平的语句行
	var pending []string

	for _, line := range lines {
		if depth > 0 {
			if strings.TrimSpace(line) == "" {
				// 语句未闭合就结束了段落，不是 ESM
				out = append(out, pending...)
				out = append(out, line)
				pending, depth, blank = nil, 0, true
				continue
			}
			pending = append(pending, line)
			depth += bracketDelta(line)
			if depth <= 0 {
				pending, depth = nil, 0
			}
			continue
		}

		if m := fenceRe.FindStringSubmatch(line); m != nil {
			marker := m[1]
			switch {
			case fence == "":
				fence = marker
			case marker[0] == fence[0] && len(marker) >= len(fence) &&
				strings.TrimSpace(line[strings.Index(line, marker)+len(marker):]) == "":
				fence = ""
			}
			out = append(out, line)
			blank = false
			continue
		}

		if fence == "" && blank && mdxESMRe.MatchString(line) {
			if d := bracketDelta(line); d > 0 {
				depth = d
				pending = append(pending[:0], line)
			}
			continue
		}

		out = append(out, line)
		blank = strings.TrimSpace(line) == ""
	}
	out = append(out, pending...)
	return strings.Join(out, "\n")
}

// bracketDelta 返回一行中 { ( [ 与 } ) ] 的数量差，忽略字符串字面量中的括号
func bracketDelta(line string) int {
	delta := 0
	var quote rune
	escaped := false
	for _, ch := range line {
		if quote != 0 {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == quote:
				quote = 0
			}
			continue
		}
		switch ch {
		case '\'', '"', '`':
			quote = ch
		case '{', '(', '[':
			delta++
		case '}', ')', ']':
			delta--
		}
	}
	return delta
}
