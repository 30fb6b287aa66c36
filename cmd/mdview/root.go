package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/riverfjs/mdview-go"
)

var version = "0.1.0"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "mdview",
	Short: "Markdown / MDX preview renderer",
	Long: `Render markdown and MDX documents to preview HTML.

Fenced code is highlighted with chroma, GitHub style callouts
(> [!NOTE], > [!WARNING], ...) become styled containers and the
output is sanitized before it is returned.

Use "mdview render --help" or "mdview serve --help" for details.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./mdview.yaml or $HOME/.config/mdview/mdview.yaml)")
	rootCmd.PersistentFlags().Bool("mermaid", false, "render mermaid fences as diagram images")
	rootCmd.PersistentFlags().Bool("emoji", false, "replace :shortcodes: with emoji")
	rootCmd.PersistentFlags().String("theme", "", "syntax highlighting theme")
	_ = viper.BindPFlag("mermaid", rootCmd.PersistentFlags().Lookup("mermaid"))
	_ = viper.BindPFlag("emoji", rootCmd.PersistentFlags().Lookup("emoji"))
	_ = viper.BindPFlag("theme", rootCmd.PersistentFlags().Lookup("theme"))

	viper.SetDefault("sanitize", true)
	viper.SetDefault("addr", "127.0.0.1:4173")
	viper.SetDefault("theme", "tomorrow")
	viper.SetDefault("default_language", "markup")

	rootCmd.AddCommand(renderCmd, serveCmd, themesCmd)
}

// initConfig 读取配置文件和 MDVIEW_ 环境变量；配置文件不存在时忽略
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("mdview")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home + "/.config/mdview")
		}
	}
	viper.SetEnvPrefix("MDVIEW")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

// renderConfig 根据 viper 配置生成渲染配置
func renderConfig(v *viper.Viper) *mdview.RenderConfig {
	config := *mdview.DefaultConfig()
	config.Mermaid = v.GetBool("mermaid")
	config.Emoji = v.GetBool("emoji")
	if lang := v.GetString("default_language"); lang != "" {
		config.DefaultLanguage = lang
	}
	if v.IsSet("heading_ids") {
		config.HeadingIDs = v.GetBool("heading_ids")
	}
	if v.IsSet("front_matter") {
		config.FrontMatter = v.GetBool("front_matter")
	}
	if colors := v.GetStringMapString("callout_colors"); len(colors) > 0 {
		merged := make(map[mdview.CalloutKind]string, len(config.CalloutColors))
		for k, c := range config.CalloutColors {
			merged[k] = c
		}
		for k, c := range colors {
			merged[mdview.CalloutKind(strings.ToUpper(k))] = c
		}
		config.CalloutColors = merged
	}
	return &config
}

// renderOptions 根据 viper 配置生成渲染选项
func renderOptions(v *viper.Viper) []mdview.Option {
	return []mdview.Option{
		mdview.WithConfig(renderConfig(v)),
		mdview.WithSanitize(v.GetBool("sanitize")),
	}
}

// Execute 运行根命令
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
