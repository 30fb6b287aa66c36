package workspace

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotMarkdown 文件后缀不是 .md / .mdx
	ErrNotMarkdown = errors.New("not a markdown file")
	// ErrReadFile 读取文件内容失败
	ErrReadFile = errors.New("could not read file")
	// ErrNotFound 工作区中没有该文件
	ErrNotFound = errors.New("file not found")
)

// File 工作区中的一个 Markdown 文件
type File struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsMarkdownFile reports whether name has a .md or .mdx suffix.
func IsMarkdownFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".mdx":
		return true
	}
	return false
}

// Ingest 读取上传的文件
//
// 后缀不符返回 ErrNotMarkdown；读取失败返回包装了 ErrReadFile 的错误。
func Ingest(name string, r io.Reader) (*File, error) {
	if !IsMarkdownFile(name) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotMarkdown)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", name, ErrReadFile, err)
	}
	return &File{
		ID:        newID(),
		Name:      filepath.Base(name),
		Content:   string(data),
		CreatedAt: time.Now(),
	}, nil
}

func newID() string {
	return uuid.NewString()
}
