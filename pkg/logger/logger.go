package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fatih/color"
)

// Level 日志级别
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelTags = [...]string{"[DEBUG]", "[INFO]", "[WARN]", "[ERROR]", "[FATAL]"}

var levelColors = [...]*color.Color{
	color.New(color.FgHiBlue),
	color.New(color.FgHiCyan),
	color.New(color.FgHiYellow),
	color.New(color.FgHiRed),
	color.New(color.FgHiRed, color.Bold),
}

// ParseLevel 解析配置中的级别名称，未知名称按 info 处理
func ParseLevel(name string) Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "fatal":
		return LevelFatal
	default:
		return LevelInfo
	}
}

var minLevel atomic.Int32

// SetLevel 设置最低输出级别
func SetLevel(level Level) {
	minLevel.Store(int32(level))
}

// 高亮规则，顺序即优先级
var highlightRules = []struct {
	pattern string
	color   *color.Color
}{
	{`(?i)\b(error|panic|failed|fail)\b`, color.New(color.FgHiRed)},
	{`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`, color.New(color.FgHiBlue)},
	{`\b(pr|ua)-[\w-]+`, color.New(color.FgHiMagenta)},
	{`(?i)\b(GET|POST|PUT|PATCH|DELETE)\b`, color.New(color.FgBlue)},
	{`([a-zA-Z_][a-zA-Z0-9_]*=)`, color.New(color.FgHiCyan)},
	{`:\d{2,5}\b`, color.New(color.FgHiCyan)},
	{`\[(.*?)\]`, color.New(color.FgBlue)},
}

var (
	highlighter *regexp.Regexp
	anchored    []*regexp.Regexp
)

func init() {
	minLevel.Store(int32(LevelInfo))

	parts := make([]string, len(highlightRules))
	anchored = make([]*regexp.Regexp, len(highlightRules))
	for i, r := range highlightRules {
		parts[i] = "(" + r.pattern + ")"
		anchored[i] = regexp.MustCompile("^(?:" + r.pattern + ")$")
	}
	highlighter = regexp.MustCompile(strings.Join(parts, "|"))
}

// colorWriter 标准库 logger 的输出目标
type colorWriter struct {
	mu  sync.Mutex
	out io.Writer
}

func (w *colorWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, err := io.WriteString(w.out, string(p))
	return len(p), err
}

var std = log.New(&colorWriter{out: os.Stdout}, "", 0)

// SetOutput 替换输出目标（测试使用）
func SetOutput(w io.Writer) {
	std.SetOutput(&colorWriter{out: w})
}

func output(level Level, format string, v ...interface{}) {
	if int32(level) < minLevel.Load() {
		return
	}

	_, file, line, ok := runtime.Caller(2)
	if !ok {
		file = "???"
		line = 0
	}
	prefix := fmt.Sprintf("%s %s:%d", time.Now().Format("2006/01/02 15:04:05.000"), filepath.Base(file), line)
	msg := highlight(strings.TrimSpace(fmt.Sprintf(format, v...)))

	std.Printf("%s %s %s", color.New(color.FgHiBlue).Sprint(prefix), levelColors[level].Sprint(levelTags[level]), msg)
}

// highlight 对命中规则的片段着色
func highlight(msg string) string {
	if color.NoColor {
		return msg
	}

	return highlighter.ReplaceAllStringFunc(msg, func(m string) string {
		for i, re := range anchored {
			if re.MatchString(m) {
				return highlightRules[i].color.Sprint(m)
			}
		}
		return m
	})
}

func Debug(format string, v ...interface{}) {
	output(LevelDebug, format, v...)
}

func Info(format string, v ...interface{}) {
	output(LevelInfo, format, v...)
}

func Warn(format string, v ...interface{}) {
	output(LevelWarn, format, v...)
}

func Error(format string, v ...interface{}) {
	output(LevelError, format, v...)
}

func Fatal(format string, v ...interface{}) {
	output(LevelFatal, format, v...)
	os.Exit(1)
}
