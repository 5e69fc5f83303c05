package app

import (
	"strings"

	"github.com/moyu-x/desktop-automation/internal"
	"github.com/moyu-x/desktop-automation/pkg/renamer"
)

// Menu 当前所在菜单
type Menu int

const (
	MainMenu Menu = iota
	ExpenseMenu
)

// Action 菜单选项对应的动作
type Action int

const (
	ActionNone Action = iota
	ActionOrganize
	ActionExpenses
	ActionDuplicates
	ActionAgeAnalysis
	ActionRename
	ActionExit
	ActionAddExpense
	ActionSummary
	ActionMonthly
	ActionExport
	ActionBack
)

type menuItem struct {
	key    string
	label  string
	action Action
	next   Menu
}

var menus = map[Menu][]menuItem{
	MainMenu: {
		{"1", "智能文件整理（生成 Excel 报告）", ActionOrganize, MainMenu},
		{"2", "支出记账", ActionExpenses, ExpenseMenu},
		{"3", "查找重复文件", ActionDuplicates, MainMenu},
		{"4", "分析文件年龄", ActionAgeAnalysis, MainMenu},
		{"5", "批量重命名", ActionRename, MainMenu},
		{"6", "退出", ActionExit, MainMenu},
	},
	ExpenseMenu: {
		{"1", "添加支出", ActionAddExpense, ExpenseMenu},
		{"2", "查看汇总", ActionSummary, ExpenseMenu},
		{"3", "查看月度报告", ActionMonthly, ExpenseMenu},
		{"4", "导出到 Excel", ActionExport, ExpenseMenu},
		{"5", "返回主菜单", ActionBack, MainMenu},
	},
}

// Dispatch 把一行输入映射为下一个菜单和要执行的动作
// 无效输入返回 internal.ErrInvalidChoice，菜单保持不变
func Dispatch(menu Menu, input string) (Menu, Action, error) {
	input = strings.TrimSpace(input)
	for _, item := range menus[menu] {
		if item.key == input {
			return item.next, item.action, nil
		}
	}
	return menu, ActionNone, internal.ErrInvalidChoice
}

var renameChoices = []struct {
	key   string
	label string
	kind  renamer.Kind
}{
	{"1", "为所有文件添加前缀", renamer.Prefix},
	{"2", "为所有文件添加后缀", renamer.Suffix},
	{"3", "替换文件名中的文本", renamer.Replace},
	{"4", "添加顺序编号", renamer.Sequential},
}

// ParseRenameChoice 重命名方式选择
func ParseRenameChoice(input string) (renamer.Kind, error) {
	input = strings.TrimSpace(input)
	for _, c := range renameChoices {
		if c.key == input {
			return c.kind, nil
		}
	}
	return 0, internal.ErrInvalidChoice
}
