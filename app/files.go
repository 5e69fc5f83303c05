package app

import (
	"errors"
	"fmt"

	"github.com/moyu-x/desktop-automation/internal"
	"github.com/moyu-x/desktop-automation/pkg/aggregator"
	"github.com/moyu-x/desktop-automation/pkg/logger"
	"github.com/moyu-x/desktop-automation/pkg/organizer"
	"github.com/moyu-x/desktop-automation/pkg/renamer"
	"github.com/moyu-x/desktop-automation/pkg/report"
)

// organize 分析整理目录，导出报告后按需移动文件
func (s *Shell) organize() error {
	dir := s.Config.Organizer.Dir
	s.printf("正在分析 %s 中的文件...\n", dir)

	sc := s.newScanner()
	sc.SniffContent = true
	records, err := sc.Scan(dir)
	if s.scanFailed(dir, err) {
		return nil
	}
	if len(records) == 0 {
		s.println(internal.ErrEmptyResult.Error())
		return nil
	}

	analysis := aggregator.AnalyzeFiles(records)
	s.printer.FileAnalysis(analysis)

	path, err := report.ExportFileReport(s.Fs, s.Config.Report.Dir, records, analysis.Categories, s.Now())
	if err != nil {
		logger.Get().Error().Err(err).Msg("导出文件报告失败")
		s.printf("\n导出报告失败: %v\n", err)
	} else {
		s.printf("\n详细报告已保存: %s\n", path)
	}

	ok, err := s.confirm("\n是否将这些文件整理到分类文件夹？(yes/no): ")
	if err != nil || !ok {
		return err
	}

	result, err := organizer.New(s.Fs).Organize(dir, records)
	if err != nil {
		logger.Get().Error().Err(err).Msg("整理文件失败")
		s.printf("整理文件失败: %v\n", err)
	}
	s.printer.OrganizeResult(result)
	return nil
}

// duplicates 按大小查找疑似重复文件
func (s *Shell) duplicates() error {
	dir, err := s.promptDir()
	if err != nil {
		return err
	}

	records, err := s.newScanner().Scan(dir)
	if s.scanFailed(dir, err) {
		return nil
	}
	if len(records) == 0 {
		s.println(internal.ErrEmptyResult.Error())
		return nil
	}

	s.printer.Duplicates(aggregator.FindDuplicates(records))
	return nil
}

// ageAnalysis 文件年龄分布与清理建议
func (s *Shell) ageAnalysis() error {
	dir, err := s.promptDir()
	if err != nil {
		return err
	}

	records, err := s.newScanner().Scan(dir)
	if s.scanFailed(dir, err) {
		return nil
	}
	if len(records) == 0 {
		s.println(internal.ErrEmptyResult.Error())
		return nil
	}

	s.printer.Title("文件年龄分析")
	s.printer.AgeAnalysis(aggregator.AnalyzeAges(records))
	return nil
}

// rename 选择规则、预览、确认后批量重命名
func (s *Shell) rename() error {
	dir, err := s.promptDir()
	if err != nil {
		return err
	}

	files, err := s.newScanner().ListNames(dir)
	if s.scanFailed(dir, err) {
		return nil
	}
	if len(files) == 0 {
		s.println(internal.ErrEmptyResult.Error())
		return nil
	}

	s.printf("\n找到 %d 个文件\n", len(files))
	s.println("\n重命名方式:")
	for _, c := range renameChoices {
		s.printf("%s. %s\n", c.key, c.label)
	}

	line, err := s.prompt("\n请选择: ")
	if err != nil {
		return err
	}
	kind, err := ParseRenameChoice(line)
	if errors.Is(err, internal.ErrInvalidChoice) {
		s.println("无效的选择！")
		return nil
	}

	rule, err := s.promptRule(kind)
	if err != nil {
		return err
	}

	plan, err := renamer.NewPlan(files, rule)
	if err != nil {
		s.printf("生成重命名计划失败: %v\n", err)
		return nil
	}
	s.printer.RenamePreview(plan.Preview(internal.PreviewSize), len(plan))

	ok, err := s.confirm(fmt.Sprintf("\n重命名 %d 个文件？(yes/no): ", len(plan)))
	if err != nil || !ok {
		return err
	}

	s.printer.RenameResult(renamer.Apply(s.Fs, dir, plan))
	return nil
}

func (s *Shell) promptRule(kind renamer.Kind) (renamer.Rule, error) {
	switch kind {
	case renamer.Prefix:
		text, err := s.prompt("请输入前缀: ")
		return renamer.PrefixRule(text), err
	case renamer.Suffix:
		text, err := s.prompt("请输入后缀（扩展名之前）: ")
		return renamer.SuffixRule(text), err
	case renamer.Replace:
		old, err := s.prompt("要替换的文本: ")
		if err != nil {
			return renamer.Rule{}, err
		}
		with, err := s.prompt("替换为: ")
		return renamer.ReplaceRule(old, with), err
	default:
		base, err := s.prompt("请输入基础名: ")
		return renamer.SequentialRule(base), err
	}
}
