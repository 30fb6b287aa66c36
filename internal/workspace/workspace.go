package workspace

import (
	"io"
	"strings"
	"sync"
	"time"
)

// Workspace 内存中的文件列表及当前选中的文件，可并发使用
type Workspace struct {
	mu       sync.RWMutex
	files    []*File
	selected string
}

// New 创建空工作区
func New() *Workspace {
	return &Workspace{files: make([]*File, 0)}
}

// Add 加入文件；第一个加入的文件自动选中
func (w *Workspace) Add(f *File) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.files = append(w.files, f)
	if len(w.files) == 1 && w.selected == "" {
		w.selected = f.ID
	}
}

// Upload 读取并加入文件。失败时工作区保持不变。
func (w *Workspace) Upload(name string, r io.Reader) (*File, error) {
	f, err := Ingest(name, r)
	if err != nil {
		return nil, err
	}
	w.Add(f)
	return copyFile(f), nil
}

// Select 选中文件
func (w *Workspace) Select(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.indexOf(id) < 0 {
		return ErrNotFound
	}
	w.selected = id
	return nil
}

// Selected 返回当前选中的文件，没有时返回 nil
func (w *Workspace) Selected() *File {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if i := w.indexOf(w.selected); i >= 0 {
		return copyFile(w.files[i])
	}
	return nil
}

// Get 按 ID 查找文件
func (w *Workspace) Get(id string) (*File, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	i := w.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	return copyFile(w.files[i]), nil
}

// Update 替换文件内容
func (w *Workspace) Update(id, content string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	i := w.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	w.files[i].Content = content
	return nil
}

// Delete 删除文件；删除的是选中文件时清空选中状态
func (w *Workspace) Delete(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	i := w.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	w.files = append(w.files[:i], w.files[i+1:]...)
	if w.selected == id {
		w.selected = ""
	}
	return nil
}

// Clear 删除所有文件
func (w *Workspace) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.files = make([]*File, 0)
	w.selected = ""
}

// SaveNew 将编辑器内容保存为新文件（untitled-xxxx.md）并选中
func (w *Workspace) SaveNew(content string) *File {
	id := newID()
	f := &File{
		ID:        id,
		Name:      "untitled-" + strings.ReplaceAll(id, "-", "")[:4] + ".md",
		Content:   content,
		CreatedAt: time.Now(),
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.files = append(w.files, f)
	w.selected = id
	return copyFile(f)
}

// Files 按加入顺序返回所有文件的副本
func (w *Workspace) Files() []File {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]File, len(w.files))
	for i, f := range w.files {
		out[i] = *f
	}
	return out
}

// Len 返回文件数量
func (w *Workspace) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.files)
}

func (w *Workspace) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, f := range w.files {
		if f.ID == id {
			return i
		}
	}
	return -1
}

func copyFile(f *File) *File {
	c := *f
	return &c
}
