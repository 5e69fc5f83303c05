package renamer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/moyu-x/desktop-automation/pkg/logger"
)

// Kind 命名规则类型
type Kind int

const (
	Prefix Kind = iota
	Suffix
	Replace
	Sequential
)

func (k Kind) String() string {
	switch k {
	case Prefix:
		return "prefix"
	case Suffix:
		return "suffix"
	case Replace:
		return "replace"
	case Sequential:
		return "sequential"
	}
	return "unknown"
}

// Rule 命名规则
// Prefix/Suffix 使用 Text；Replace 使用 Old/New；Sequential 使用 Text 作为基础名
type Rule struct {
	Kind Kind
	Text string
	Old  string
	New  string
}

func PrefixRule(text string) Rule { return Rule{Kind: Prefix, Text: text} }

func SuffixRule(text string) Rule { return Rule{Kind: Suffix, Text: text} }

func ReplaceRule(old, with string) Rule { return Rule{Kind: Replace, Old: old, New: with} }

func SequentialRule(base string) Rule { return Rule{Kind: Sequential, Text: base} }

// Pair 原文件名到新文件名的映射
type Pair struct {
	Original string
	NewName  string
}

// Plan 重命名计划，顺序与输入文件列表一致
type Plan []Pair

// Result 执行结果
type Result struct {
	Renamed int
	Skipped int // 目标已存在
	Failed  int
}

// NewPlan 根据规则计算新文件名，不触碰文件系统
func NewPlan(files []string, rule Rule) (Plan, error) {
	plan := make(Plan, 0, len(files))
	for i, name := range files {
		newName, err := rule.apply(name, i)
		if err != nil {
			return nil, err
		}
		plan = append(plan, Pair{Original: name, NewName: newName})
	}
	return plan, nil
}

func (r Rule) apply(name string, index int) (string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	switch r.Kind {
	case Prefix:
		return r.Text + name, nil
	case Suffix:
		return stem + r.Text + ext, nil
	case Replace:
		// 空串替换会在每个字符间插入，视为不改名
		if r.Old == "" {
			return name, nil
		}
		return strings.ReplaceAll(name, r.Old, r.New), nil
	case Sequential:
		return fmt.Sprintf("%s_%03d%s", r.Text, index+1, ext), nil
	}
	return "", fmt.Errorf("未知的命名规则: %d", r.Kind)
}

// Preview 返回前 n 条
func (p Plan) Preview(n int) Plan {
	if n < len(p) {
		return p[:n]
	}
	return p
}

// Apply 在 dir 下执行计划
// 目标文件已存在时跳过该条，不覆盖也不报错；单条失败记录日志后继续
func Apply(fs afero.Fs, dir string, plan Plan) Result {
	var result Result

	for _, pair := range plan {
		oldPath := filepath.Join(dir, pair.Original)
		newPath := filepath.Join(dir, pair.NewName)

		exists, err := afero.Exists(fs, newPath)
		if err != nil {
			logger.Get().Error().Err(err).Msgf("检查目标文件失败: %s", newPath)
			result.Failed++
			continue
		}
		if exists {
			logger.Get().Debug().Msgf("目标已存在，跳过: %s -> %s", pair.Original, pair.NewName)
			result.Skipped++
			continue
		}

		if err := fs.Rename(oldPath, newPath); err != nil {
			logger.Get().Error().Err(err).Msgf("重命名失败: %s -> %s", pair.Original, pair.NewName)
			result.Failed++
			continue
		}

		logger.Get().Debug().Msgf("已重命名: %s -> %s", pair.Original, pair.NewName)
		result.Renamed++
	}

	logger.Get().Info().Msgf("重命名完成: 成功 %d，跳过 %d，失败 %d", result.Renamed, result.Skipped, result.Failed)
	return result
}
