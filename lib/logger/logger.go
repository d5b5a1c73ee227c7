package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Settings 存储日志相关配置
type Settings struct {
	Path       string `cfg:"path"`
	Name       string `cfg:"name"`
	Ext        string `cfg:"ext"`
	TimeFormat string `cfg:"time-format"`
}

type logLevel int

const (
	debugLevel logLevel = iota
	infoLevel
	warnLevel
	errorLevel
	fatalLevel
)

var levelPrefixes = []string{"[DEBUG]", "[INFO]", "[WARN]", "[ERROR]", "[FATAL]"}

var (
	mu      sync.Mutex
	std     = log.New(os.Stdout, "", log.LstdFlags)
	logFile *os.File
)

// Setup 让日志同时输出到标准输出和按日期命名的文件。
// 不调用 Setup 时日志只输出到标准输出。
func Setup(settings *Settings) error {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	if err := os.MkdirAll(settings.Path, 0755); err != nil {
		return fmt.Errorf("create log directory %s: %v", settings.Path, err)
	}
	filename := fmt.Sprintf("%s-%s.%s",
		settings.Name, time.Now().Format(settings.TimeFormat), settings.Ext)
	f, err := os.OpenFile(filepath.Join(settings.Path, filename),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open log file %s: %v", filename, err)
	}
	logFile = f
	std = log.New(io.MultiWriter(os.Stdout, f), "", log.LstdFlags)
	return nil
}

func output(level logLevel, v ...any) {
	mu.Lock()
	defer mu.Unlock()
	std.SetPrefix(levelPrefixes[level] + " ")
	std.Println(v...)
}

func outputf(level logLevel, format string, v ...any) {
	mu.Lock()
	defer mu.Unlock()
	std.SetPrefix(levelPrefixes[level] + " ")
	std.Printf(format+"\n", v...)
}

func Debug(v ...any) {
	output(debugLevel, v...)
}

func Debugf(format string, v ...any) {
	outputf(debugLevel, format, v...)
}

func Info(v ...any) {
	output(infoLevel, v...)
}

func Infof(format string, v ...any) {
	outputf(infoLevel, format, v...)
}

func Warn(v ...any) {
	output(warnLevel, v...)
}

func Warnf(format string, v ...any) {
	outputf(warnLevel, format, v...)
}

func Error(v ...any) {
	output(errorLevel, v...)
}

func Errorf(format string, v ...any) {
	outputf(errorLevel, format, v...)
}

// Fatal 输出日志后结束进程
func Fatal(v ...any) {
	output(fatalLevel, v...)
	os.Exit(1)
}
