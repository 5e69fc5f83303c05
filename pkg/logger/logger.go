package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var (
	Logger  *zerolog.Logger
	logFile *os.File
)

// ParseLevel 解析日志级别，未知值按 info 处理
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Init 初始化 zerolog 日志
// 控制台日志写到 stderr，stdout 留给交互菜单
// file: 日志文件路径，为空时仅输出到控制台
func Init(level string, file string) error {
	var console io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "2006-01-02 15:04:05"}
	output := console

	if file != "" {
		fileWriter, err := os.OpenFile(file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		// 文件中保留 JSON 格式，便于检索
		output = zerolog.MultiLevelWriter(console, fileWriter)
		logFile = fileWriter
	}

	logger := zerolog.New(output).With().Timestamp().Logger().Level(ParseLevel(level))
	Logger = &logger
	return nil
}

// SetOutput 直接指定输出，测试中使用
func SetOutput(w io.Writer, level string) {
	logger := zerolog.New(w).With().Timestamp().Logger().Level(ParseLevel(level))
	Logger = &logger
}

// Close 关闭日志文件
func Close() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// Get 返回全局 logger 实例
// 如果 logger 未初始化，返回一个默认的 logger（输出到 /dev/null）
func Get() *zerolog.Logger {
	if Logger == nil {
		logger := zerolog.New(io.Discard)
		Logger = &logger
	}
	return Logger
}
