package app

import (
	"errors"
	"strings"

	"github.com/moyu-x/desktop-automation/internal"
	"github.com/moyu-x/desktop-automation/pkg/ledger"
	"github.com/moyu-x/desktop-automation/pkg/logger"
	"github.com/moyu-x/desktop-automation/pkg/report"
)

// expenses 支出记账子菜单，选择返回后回到主菜单
func (s *Shell) expenses() error {
	s.printer.Section("支出记账")

	l, err := ledger.Load(s.Fs, s.Config.Ledger.Path)
	if err != nil {
		logger.Get().Error().Err(err).Msg("加载账本失败")
		s.printf("加载账本失败: %v\n", err)
		return nil
	}
	if l.Len() > 0 {
		s.printf("已加载 %d 条支出记录\n", l.Len())
	} else {
		s.println("已创建新的支出账本")
	}

	// 选择返回时 Dispatch 切回主菜单，循环结束
	for menu := ExpenseMenu; menu == ExpenseMenu; {
		s.showMenu(menu)
		line, err := s.prompt("\n请选择: ")
		if err != nil {
			return err
		}

		var action Action
		menu, action, err = Dispatch(menu, line)
		if errors.Is(err, internal.ErrInvalidChoice) {
			s.println("无效的选择，请重试")
			continue
		}

		switch action {
		case ActionAddExpense:
			if err := s.addExpense(l); err != nil {
				return err
			}
		case ActionSummary:
			if l.Len() == 0 {
				s.println("暂无支出记录！")
				continue
			}
			s.printer.ExpenseSummary(l.Summary())
		case ActionMonthly:
			if l.Len() == 0 {
				s.println("暂无支出记录！")
				continue
			}
			s.printer.MonthlyReport(l.MonthlyReport())
		case ActionExport:
			path, err := report.ExportExpenses(s.Fs, s.Config.Report.Dir, l, s.Now())
			if err != nil {
				logger.Get().Error().Err(err).Msg("导出支出报告失败")
				s.printf("导出失败: %v\n", err)
				continue
			}
			s.printf("✓ 已导出到 %s\n", path)
		}
	}
	return nil
}

// addExpense 逐项读取一笔支出，日期和金额无效时重新输入
func (s *Shell) addExpense(l *ledger.Ledger) error {
	var rec ledger.ExpenseRecord

	for {
		line, err := s.prompt("日期 (YYYY-MM-DD)，直接回车为今天: ")
		if err != nil {
			return err
		}
		if rec.Date, err = ledger.ParseDate(line, s.Now()); err == nil {
			break
		}
		s.printf("%v\n", err)
	}

	category, err := s.prompt("类别 (Food/Transport/Bills/Shopping/Other): ")
	if err != nil {
		return err
	}
	rec.Category = strings.TrimSpace(category)

	description, err := s.prompt("描述: ")
	if err != nil {
		return err
	}
	rec.Description = strings.TrimSpace(description)

	for {
		line, err := s.prompt("金额: $")
		if err != nil {
			return err
		}
		if rec.Amount, err = ledger.ParseAmount(line); err == nil {
			break
		}
		s.printf("%v\n", err)
	}

	if err := l.Append(rec); err != nil {
		logger.Get().Error().Err(err).Msg("保存支出失败")
		s.printf("保存失败: %v\n", err)
		return nil
	}
	s.println("✓ 支出已添加！")
	return nil
}
