package mdview

import (
	"log"
	"os"

	"github.com/riverfjs/mdview-go/internal/highlight"
)

// Logger 全局日志记录器
var Logger = log.New(os.Stderr, "[mdview] ", log.LstdFlags)

func init() {
	highlight.SetLogger(Logger)
}

// SetLogger 设置自定义日志记录器（同时用于代码高亮的回退日志）
func SetLogger(logger *log.Logger) {
	Logger = logger
	highlight.SetLogger(logger)
}
