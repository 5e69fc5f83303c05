package scanner

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/h2non/filetype"
	"github.com/spf13/afero"

	"github.com/moyu-x/desktop-automation/internal"
	"github.com/moyu-x/desktop-automation/pkg/classifier"
	"github.com/moyu-x/desktop-automation/pkg/logger"
)

const (
	// HeaderSize 类型检测读取的文件头部大小（字节）
	HeaderSize = 261

	// UnknownMIME 无法识别内容类型时的占位值
	UnknownMIME = "unknown"
)

// FileRecord 扫描时刻单个文件的元数据快照
type FileRecord struct {
	Name       string
	SizeBytes  int64
	ModifiedAt time.Time
	Extension  string // 小写，带前导点，可能为空
	AgeDays    int
	Category   classifier.Category
	MIME       string
}

// SizeMB 以 MB 表示的大小，保留两位小数
func (r FileRecord) SizeMB() float64 {
	return RoundMB(r.SizeBytes)
}

// RoundMB 字节数换算为 MB 并保留两位小数
func RoundMB(bytes int64) float64 {
	return math.Round(float64(bytes)/internal.BytesPerMB*100) / 100
}

// Scanner 列出目录下的普通文件（不递归）
type Scanner struct {
	Fs           afero.Fs
	Now          func() time.Time
	SniffContent bool // 读取文件头部识别 MIME 类型
}

func NewScanner(fs afero.Fs) *Scanner {
	return &Scanner{
		Fs:  fs,
		Now: time.Now,
	}
}

// Scan 扫描目录并为每个普通文件生成 FileRecord
// 目录不存在或不是目录时返回 internal.ErrNotFound；空目录返回空切片
func (s *Scanner) Scan(dir string) ([]FileRecord, error) {
	infos, err := s.regularFiles(dir)
	if err != nil {
		return nil, err
	}

	now := s.now()
	records := make([]FileRecord, 0, len(infos))
	var total int64

	for _, info := range infos {
		ext := strings.ToLower(filepath.Ext(info.Name()))
		record := FileRecord{
			Name:       info.Name(),
			SizeBytes:  info.Size(),
			ModifiedAt: info.ModTime(),
			Extension:  ext,
			AgeDays:    AgeDays(now, info.ModTime()),
			Category:   classifier.Classify(ext),
		}

		if s.SniffContent {
			record.MIME = s.detectMIME(filepath.Join(dir, info.Name()))
		}

		total += info.Size()
		records = append(records, record)
	}

	logger.Get().Info().Msgf("扫描完成: %s，共 %d 个文件，%s", dir, len(records), humanize.IBytes(uint64(total)))
	return records, nil
}

// ListNames 返回目录下普通文件的文件名，顺序与目录列表一致
func (s *Scanner) ListNames(dir string) ([]string, error) {
	infos, err := s.regularFiles(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name())
	}
	return names, nil
}

func (s *Scanner) regularFiles(dir string) ([]os.FileInfo, error) {
	info, err := s.Fs.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", dir, internal.ErrNotFound)
		}
		return nil, fmt.Errorf("读取目录信息失败: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s 不是目录: %w", dir, internal.ErrNotFound)
	}

	entries, err := afero.ReadDir(s.Fs, dir)
	if err != nil {
		return nil, fmt.Errorf("读取目录失败: %w", err)
	}

	files := make([]os.FileInfo, 0, len(entries))
	for _, entry := range entries {
		// 跟随符号链接，与 stat 的行为一致
		fi, err := s.Fs.Stat(filepath.Join(dir, entry.Name()))
		if err != nil {
			logger.Get().Debug().Err(err).Msgf("跳过无法访问的条目: %s", entry.Name())
			continue
		}
		if !fi.Mode().IsRegular() {
			continue
		}
		files = append(files, fi)
	}

	logger.Get().Debug().Msgf("目录 %s 下共 %d 个条目，普通文件 %d 个", dir, len(entries), len(files))
	return files, nil
}

func (s *Scanner) detectMIME(path string) string {
	file, err := s.Fs.Open(path)
	if err != nil {
		logger.Get().Debug().Err(err).Msgf("打开文件失败: %s", path)
		return UnknownMIME
	}
	defer file.Close()

	head := make([]byte, HeaderSize)
	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		logger.Get().Debug().Err(err).Msgf("读取文件头部失败: %s", path)
		return UnknownMIME
	}

	kind, err := filetype.Match(head[:n])
	if err != nil || kind == filetype.Unknown {
		return UnknownMIME
	}
	return kind.MIME.Value
}

func (s *Scanner) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// AgeDays 计算整天数，向下取整
func AgeDays(now, modified time.Time) int {
	return int(math.Floor(now.Sub(modified).Hours() / 24))
}
