// Package mermaid builds mermaid.ink / mermaid.live links for diagrams.
//
// Diagrams are never fetched here: the preview embeds the image URL and the
// browser loads it, so rendering stays free of I/O.
package mermaid

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Config Mermaid 配置
type Config struct {
	Theme string `json:"theme"`
}

// DefaultConfig 返回默认 Mermaid 配置
func DefaultConfig() *Config {
	return &Config{
		Theme: "default",
	}
}

// compressToDeflate 使用 DEFLATE 算法压缩数据
func compressToDeflate(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	writer, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := writer.Write(data); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GeneratePako 生成 Mermaid 图表的 pako 编码
func GeneratePako(graphMarkdown string, config *Config) (string, error) {
	if config == nil {
		config = DefaultConfig()
	}

	graphData := map[string]interface{}{
		"code":    graphMarkdown,
		"mermaid": config,
	}
	jsonBytes, err := json.Marshal(graphData)
	if err != nil {
		return "", err
	}

	compressed, err := compressToDeflate(jsonBytes)
	if err != nil {
		return "", err
	}
	return "pako:" + base64.URLEncoding.EncodeToString(compressed), nil
}

// LiveURL 获取 Mermaid Live 编辑器 URL
func LiveURL(graphMarkdown string, config *Config) (string, error) {
	pako, err := GeneratePako(graphMarkdown, config)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("https://mermaid.live/edit#%s", pako), nil
}

// InkURL 获取 Mermaid Ink SVG 图片 URL
func InkURL(graphMarkdown string, config *Config) (string, error) {
	pako, err := GeneratePako(graphMarkdown, config)
	if err != nil {
		return "", err
	}
	theme := "default"
	if config != nil && config.Theme != "" {
		theme = config.Theme
	}
	return fmt.Sprintf("https://mermaid.ink/svg/%s?theme=%s", pako, theme), nil
}
