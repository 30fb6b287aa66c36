// Package settings 管理预览器的用户偏好：快捷键、代码高亮主题和字体
package settings

import (
	"sort"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Shortcut 一个快捷键绑定
type Shortcut struct {
	ID          string   `json:"id" mapstructure:"id"`
	Name        string   `json:"name" mapstructure:"name"`
	Keys        []string `json:"keys" mapstructure:"keys"`
	Description string   `json:"description" mapstructure:"description"`
}

// Fonts 预览使用的字体
type Fonts struct {
	Headings string `json:"headings" mapstructure:"headings"`
	Body     string `json:"body" mapstructure:"body"`
	Code     string `json:"code" mapstructure:"code"`
}

// Preferences 用户偏好
type Preferences struct {
	Shortcuts        map[string]Shortcut `json:"shortcuts"`
	SyntaxTheme      string              `json:"syntaxTheme"`
	KeepSettingsOpen bool                `json:"keepSettingsOpen"`
	Fonts            Fonts               `json:"fonts"`
}

// 快捷键 ID
const (
	ToggleSettings = "toggleSettings"
	FocusEditor    = "focusEditor"
	ClearEditor    = "clearEditor"
	CopyContent    = "copyContent"
)

// Default 返回默认偏好
func Default() Preferences {
	return Preferences{
		Shortcuts: map[string]Shortcut{
			ToggleSettings: {
				ID:          ToggleSettings,
				Name:        "Toggle Settings",
				Keys:        []string{"Shift", "s"},
				Description: "Open or close the settings panel",
			},
			FocusEditor: {
				ID:          FocusEditor,
				Name:        "Focus Editor",
				Keys:        []string{"Alt", "e"},
				Description: "Focus the markdown editor",
			},
			ClearEditor: {
				ID:          ClearEditor,
				Name:        "Clear Editor",
				Keys:        []string{"Alt", "c"},
				Description: "Clear the entire editor content",
			},
			CopyContent: {
				ID:          CopyContent,
				Name:        "Copy Content",
				Keys:        []string{"Alt", "x"},
				Description: "Copy all editor content to clipboard",
			},
		},
		SyntaxTheme:      "tomorrow",
		KeepSettingsOpen: false,
		Fonts: Fonts{
			Headings: "system-ui",
			Body:     "system-ui",
			Code:     "monospace",
		},
	}
}

// Clone 深拷贝
func (p Preferences) Clone() Preferences {
	c := p
	c.Shortcuts = make(map[string]Shortcut, len(p.Shortcuts))
	for id, s := range p.Shortcuts {
		s.Keys = append([]string(nil), s.Keys...)
		c.Shortcuts[id] = s
	}
	return c
}

// ShortcutIDs 返回排序后的快捷键 ID
func (p Preferences) ShortcutIDs() []string {
	ids := make([]string, 0, len(p.Shortcuts))
	for id := range p.Shortcuts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Store 持有当前偏好，可并发使用
type Store struct {
	mu    sync.RWMutex
	prefs Preferences
}

// NewStore 创建使用默认偏好的 Store
func NewStore() *Store {
	return &Store{prefs: Default()}
}

// Preferences 返回当前偏好的副本
func (s *Store) Preferences() Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs.Clone()
}

// UpdateShortcut 修改快捷键绑定；未知 ID 返回 false
func (s *Store) UpdateShortcut(id string, keys []string) bool {
	if len(keys) == 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sc, ok := s.prefs.Shortcuts[id]
	if !ok {
		return false
	}
	sc.Keys = append([]string(nil), keys...)
	s.prefs.Shortcuts[id] = sc
	return true
}

// SetTheme 设置代码高亮主题
func (s *Store) SetTheme(theme string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs.SyntaxTheme = theme
}

// SetFonts 设置字体，空字段保持原值
func (s *Store) SetFonts(f Fonts) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f.Headings != "" {
		s.prefs.Fonts.Headings = f.Headings
	}
	if f.Body != "" {
		s.prefs.Fonts.Body = f.Body
	}
	if f.Code != "" {
		s.prefs.Fonts.Code = f.Code
	}
}

// Reset 恢复默认偏好
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs = Default()
}

// Load 用 viper 中的配置覆盖当前偏好
//
// 支持的键：theme、keep_settings_open、fonts.{headings,body,code}、
// shortcuts.<id>（按键列表，如 ["Ctrl", "k"]）。
func (s *Store) Load(v *viper.Viper) {
	if v == nil {
		return
	}
	if theme := v.GetString("theme"); theme != "" {
		s.SetTheme(theme)
	}
	s.SetFonts(Fonts{
		Headings: v.GetString("fonts.headings"),
		Body:     v.GetString("fonts.body"),
		Code:     v.GetString("fonts.code"),
	})
	if v.IsSet("keep_settings_open") {
		s.mu.Lock()
		s.prefs.KeepSettingsOpen = v.GetBool("keep_settings_open")
		s.mu.Unlock()
	}
	// viper 的键不区分大小写（统一为小写），按 ID 忽略大小写匹配
	ids := s.Preferences().ShortcutIDs()
	for key := range v.GetStringMap("shortcuts") {
		for _, id := range ids {
			if strings.EqualFold(id, key) {
				s.UpdateShortcut(id, v.GetStringSlice("shortcuts."+key))
			}
		}
	}
}
