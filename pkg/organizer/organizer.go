package organizer

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/moyu-x/desktop-automation/pkg/classifier"
	"github.com/moyu-x/desktop-automation/pkg/logger"
	"github.com/moyu-x/desktop-automation/pkg/scanner"
)

// Result 整理结果
type Result struct {
	Moved   int
	Skipped int // 源文件已不在或目标已存在
	Failed  int
}

// Organizer 把文件移动到 <dir>/<类别>/ 下
type Organizer struct {
	Fs afero.Fs
}

func New(fs afero.Fs) *Organizer {
	return &Organizer{Fs: fs}
}

// Organize 移动所有非 Other 类别的文件
// 类别目录按需创建；目标已存在时跳过，不覆盖
func (o *Organizer) Organize(dir string, records []scanner.FileRecord) (Result, error) {
	var result Result

	for _, r := range records {
		if r.Category == classifier.Other {
			continue
		}

		src := filepath.Join(dir, r.Name)
		categoryDir := filepath.Join(dir, string(r.Category))
		dst := filepath.Join(categoryDir, r.Name)

		srcExists, err := afero.Exists(o.Fs, src)
		if err != nil {
			return result, fmt.Errorf("检查源文件失败: %w", err)
		}
		dstExists, err := afero.Exists(o.Fs, dst)
		if err != nil {
			return result, fmt.Errorf("检查目标文件失败: %w", err)
		}
		if !srcExists || dstExists {
			logger.Get().Debug().
				Str("file", r.Name).
				Bool("source_exists", srcExists).
				Bool("target_exists", dstExists).
				Msg("跳过文件")
			result.Skipped++
			continue
		}

		if err := o.Fs.MkdirAll(categoryDir, 0755); err != nil {
			return result, fmt.Errorf("创建类别目录失败: %w", err)
		}

		if err := o.moveFile(src, dst); err != nil {
			logger.Get().Error().Err(err).Str("file", r.Name).Msg("移动文件失败")
			result.Failed++
			continue
		}

		logger.Get().Debug().
			Str("source", src).
			Str("destination", dst).
			Str("category", string(r.Category)).
			Msg("文件已整理")
		result.Moved++
	}

	logger.Get().Info().Msgf("整理完成: 移动 %d，跳过 %d，失败 %d", result.Moved, result.Skipped, result.Failed)
	return result, nil
}

// moveFile 优先使用 rename，失败时（可能是跨卷）复制后删除
func (o *Organizer) moveFile(src, dst string) error {
	err := o.Fs.Rename(src, dst)
	if err == nil {
		return nil
	}
	logger.Get().Debug().
		Err(err).
		Str("source", src).
		Str("destination", dst).
		Msg("直接重命名失败，尝试复制后删除")

	sourceFile, err := o.Fs.Open(src)
	if err != nil {
		return fmt.Errorf("打开源文件失败: %w", err)
	}
	defer sourceFile.Close()

	destFile, err := o.Fs.Create(dst)
	if err != nil {
		return fmt.Errorf("创建目标文件失败: %w", err)
	}

	if _, err = io.Copy(destFile, sourceFile); err != nil {
		destFile.Close()
		o.Fs.Remove(dst)
		return fmt.Errorf("复制文件内容失败: %w", err)
	}
	if err := destFile.Close(); err != nil {
		return fmt.Errorf("关闭目标文件失败: %w", err)
	}

	if err := o.Fs.Remove(src); err != nil {
		return fmt.Errorf("删除原文件失败: %w", err)
	}
	return nil
}
