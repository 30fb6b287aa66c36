package settings

import "strings"

// 修饰键，按固定顺序记录
var modifiers = []string{"Ctrl", "Alt", "Shift", "Meta"}

// KeyEvent 一次按键
type KeyEvent struct {
	Key   string
	Ctrl  bool
	Alt   bool
	Shift bool
	Meta  bool
}

func (ev KeyEvent) pressed(modifier string) bool {
	switch modifier {
	case "Ctrl":
		return ev.Ctrl
	case "Alt":
		return ev.Alt
	case "Shift":
		return ev.Shift
	case "Meta":
		return ev.Meta
	}
	return false
}

// Matches 判断按键是否触发快捷键
//
// 绑定中列出的修饰键必须按下，未列出的修饰键不能按下，
// 剩下的恰好一个普通键按不区分大小写比较。
func (s Shortcut) Matches(ev KeyEvent) bool {
	keys := append([]string(nil), s.Keys...)
	for _, m := range modifiers {
		i := indexOf(keys, m)
		if i >= 0 {
			if !ev.pressed(m) {
				return false
			}
			keys = append(keys[:i], keys[i+1:]...)
		} else if ev.pressed(m) {
			return false
		}
	}
	return len(keys) == 1 && strings.EqualFold(keys[0], ev.Key)
}

// Record 将按键转换为快捷键绑定：修饰键在前，普通键小写
//
// 只按下修饰键时结果里只有修饰键；什么都没有时返回 nil。
func Record(ev KeyEvent) []string {
	keys := make([]string, 0, 5)
	for _, m := range modifiers {
		if ev.pressed(m) {
			keys = append(keys, m)
		}
	}
	if ev.Key != "" && !isModifierKey(ev.Key) && indexOf(keys, ev.Key) < 0 {
		keys = append(keys, strings.ToLower(ev.Key))
	}
	if len(keys) == 0 {
		return nil
	}
	return keys
}

// Find 返回按键触发的快捷键 ID
func (p Preferences) Find(ev KeyEvent) (string, bool) {
	for _, id := range p.ShortcutIDs() {
		if p.Shortcuts[id].Matches(ev) {
			return id, true
		}
	}
	return "", false
}

func isModifierKey(key string) bool {
	switch key {
	case "Control", "Alt", "Shift", "Meta":
		return true
	}
	return false
}

func indexOf(keys []string, key string) int {
	for i, k := range keys {
		if k == key {
			return i
		}
	}
	return -1
}
