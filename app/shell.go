package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/moyu-x/desktop-automation/config"
	"github.com/moyu-x/desktop-automation/internal"
	"github.com/moyu-x/desktop-automation/pkg/logger"
	"github.com/moyu-x/desktop-automation/pkg/report"
	"github.com/moyu-x/desktop-automation/pkg/scanner"
)

const appTitle = "桌面自动化工具"

// Shell 交互式菜单，一次读取一行输入
type Shell struct {
	In     io.Reader
	Out    io.Writer
	Fs     afero.Fs
	Config *config.Config
	Now    func() time.Time

	reader  *bufio.Reader
	printer *report.Printer
}

func NewShell(in io.Reader, out io.Writer, fs afero.Fs, cfg *config.Config) *Shell {
	return &Shell{
		In:     in,
		Out:    out,
		Fs:     fs,
		Config: cfg,
		Now:    time.Now,
	}
}

// Run 显示主菜单直到选择退出或输入结束
func (s *Shell) Run() error {
	s.reader = bufio.NewReader(s.In)
	s.printer = report.NewPrinter(s.Out)

	s.println("欢迎使用桌面自动化工具！")
	logger.Get().Debug().Msg("交互菜单启动")

	for {
		s.showMenu(MainMenu)
		line, err := s.prompt("\n请输入选项 (1-6): ")
		if err != nil {
			return ignoreEOF(err)
		}

		next, action, err := Dispatch(MainMenu, line)
		switch {
		case errors.Is(err, internal.ErrInvalidChoice):
			s.println("无效的选择，请重试")
		case action == ActionExit:
			s.println("再见！")
			return nil
		case next == ExpenseMenu:
			if err := s.expenses(); err != nil {
				return ignoreEOF(err)
			}
		default:
			if err := s.runAction(action); err != nil {
				return ignoreEOF(err)
			}
		}

		if _, err := s.prompt("\n按回车键继续..."); err != nil {
			return ignoreEOF(err)
		}
	}
}

func (s *Shell) runAction(action Action) error {
	switch action {
	case ActionOrganize:
		return s.organize()
	case ActionDuplicates:
		return s.duplicates()
	case ActionAgeAnalysis:
		return s.ageAnalysis()
	case ActionRename:
		return s.rename()
	}
	return nil
}

func (s *Shell) showMenu(menu Menu) {
	if menu == MainMenu {
		s.printer.Title(appTitle)
	} else {
		s.println()
	}
	for _, item := range menus[menu] {
		s.printf("%s. %s\n", item.key, item.label)
	}
}

// prompt 打印提示并读取一行，去掉行尾换行
// 最后一行没有换行符时照常返回；没有任何输入时返回 io.EOF
func (s *Shell) prompt(text string) (string, error) {
	s.printf("%s", text)
	line, err := s.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// confirm 只有输入 yes（不区分大小写）才算确认
func (s *Shell) confirm(text string) (bool, error) {
	answer, err := s.prompt(text)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(strings.TrimSpace(answer), "yes"), nil
}

// promptDir 读取目录路径并展开 ~/
func (s *Shell) promptDir() (string, error) {
	line, err := s.prompt("请输入文件夹路径: ")
	if err != nil {
		return "", err
	}
	return config.ExpandPath(strings.Trim(strings.TrimSpace(line), `"'`))
}

func (s *Shell) newScanner() *scanner.Scanner {
	sc := scanner.NewScanner(s.Fs)
	sc.Now = s.Now
	return sc
}

// scanFailed 处理扫描错误，返回 true 表示已向用户说明并应回到菜单
func (s *Shell) scanFailed(dir string, err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, internal.ErrNotFound) {
		s.printf("错误: 目录 %s 不存在！\n", dir)
	} else {
		logger.Get().Error().Err(err).Str("dir", dir).Msg("扫描目录失败")
		s.printf("扫描目录失败: %v\n", err)
	}
	return true
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.Out, format, args...)
}

func (s *Shell) println(args ...any) {
	fmt.Fprintln(s.Out, args...)
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
