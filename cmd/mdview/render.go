package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/riverfjs/mdview-go"
	"github.com/riverfjs/mdview-go/internal/workspace"
)

var (
	renderNoSanitize bool
	renderOutline    bool
	renderTerm       bool
	renderWidth      int
	renderOutput     string
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render a markdown file to HTML",
	Long: `Render a .md or .mdx file (or stdin when no file is given) and print the HTML.

With --outline the output is a JSON document with the HTML, the headings and
the code blocks. With --term the document is rendered for the terminal instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := readSource(args, cmd.InOrStdin())
		if err != nil {
			return err
		}
		if renderOutput == "" {
			return writeRender(cmd.OutOrStdout(), source)
		}
		return writeOutput(renderOutput, func(w io.Writer) error {
			return writeRender(w, source)
		})
	},
}

// writeRender 按 --term / --outline 写出渲染结果
func writeRender(out io.Writer, source string) error {
	if renderTerm {
		return renderTerminal(out, source)
	}

	if renderNoSanitize {
		viper.Set("sanitize", false)
	}
	doc := mdview.RenderDocument(source, renderOptions(viper.GetViper())...)
	if renderOutline {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}
	_, err := fmt.Fprintln(out, doc.HTML)
	return err
}

// writeOutput 创建文件并交给 write 写入，关闭失败同样返回错误
func writeOutput(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()
	return write(f)
}

func init() {
	renderCmd.Flags().BoolVar(&renderNoSanitize, "no-sanitize", false, "skip the HTML sanitizer")
	renderCmd.Flags().BoolVar(&renderOutline, "outline", false, "print HTML plus headings and code blocks as JSON")
	renderCmd.Flags().BoolVar(&renderTerm, "term", false, "render for the terminal instead of HTML")
	renderCmd.Flags().IntVar(&renderWidth, "width", 100, "word wrap width for --term")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "write to file instead of stdout")
}

// readSource 读取文件或标准输入；文件必须是 .md / .mdx
func readSource(args []string, stdin io.Reader) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("stdin: %w: %v", workspace.ErrReadFile, err)
		}
		return string(data), nil
	}

	f, err := os.Open(args[0])
	if err != nil {
		return "", fmt.Errorf("%s: %w: %v", args[0], workspace.ErrReadFile, err)
	}
	defer f.Close()
	file, err := workspace.Ingest(args[0], f)
	if err != nil {
		return "", err
	}
	return file.Content, nil
}

// renderTerminal 用 glamour 渲染到终端
func renderTerminal(w io.Writer, source string) error {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(renderWidth),
	)
	if err != nil {
		return fmt.Errorf("terminal renderer: %w", err)
	}
	out, err := r.Render(source)
	if err != nil {
		return fmt.Errorf("terminal render: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}
