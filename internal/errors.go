package internal

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound 目标目录或路径不存在
	ErrNotFound = errors.New("路径不存在")

	// ErrEmptyResult 没有可处理的文件，调用方只打印提示
	ErrEmptyResult = errors.New("未找到文件")

	// ErrInvalidChoice 菜单输入无效，重新提示
	ErrInvalidChoice = errors.New("无效的选择")
)

// ValidationError 用户输入校验失败，可重新输入
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s 输入无效 %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("%s 输入无效 %q", e.Field, e.Value)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
