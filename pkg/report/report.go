package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/moyu-x/desktop-automation/pkg/aggregator"
	"github.com/moyu-x/desktop-automation/pkg/ledger"
	"github.com/moyu-x/desktop-automation/pkg/organizer"
	"github.com/moyu-x/desktop-automation/pkg/renamer"
	"github.com/moyu-x/desktop-automation/pkg/tabular"
)

const ruleWidth = 60

// Printer 把汇总结果渲染成控制台文本
type Printer struct {
	w       io.Writer
	title   lipgloss.Style
	section lipgloss.Style
	hint    lipgloss.Style
}

func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:       w,
		title:   r.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		section: r.NewStyle().Foreground(lipgloss.Color("86")).Bold(true),
		hint:    r.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

func (p *Printer) printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

// Title 带分隔线的大标题
func (p *Printer) Title(text string) {
	rule := strings.Repeat("=", ruleWidth)
	p.printf("\n%s\n%s\n%s\n", rule, p.title.Render(text), rule)
}

// Section 小节标题
func (p *Printer) Section(text string) {
	p.printf("\n%s\n", p.section.Render("--- "+text+" ---"))
}

// Notice 提示信息
func (p *Printer) Notice(text string) {
	p.printf("%s\n", p.hint.Render(text))
}

func (p *Printer) table(header []string, rows [][]string) {
	p.printf("%s\n", tabular.Render(header, rows))
}

// FileAnalysis 文件分析报告
func (p *Printer) FileAnalysis(a aggregator.FileAnalysis) {
	p.Title("文件分析报告")
	p.printf("\n文件总数: %d\n", a.Totals.Count)
	p.printf("总大小: %.2f MB\n", a.Totals.SizeMB)

	p.Section("按类别统计")
	p.table([]string{"Category", "Count", "Size (MB)"}, groupRows(a.Categories))

	p.Section("最大的文件")
	rows := make([][]string, 0, len(a.Largest))
	for _, r := range a.Largest {
		rows = append(rows, []string{r.Name, mbString(r.SizeMB()), string(r.Category)})
	}
	p.table([]string{"Filename", "Size (MB)", "Category"}, rows)

	p.Section("最旧的文件")
	rows = make([][]string, 0, len(a.Oldest))
	for _, r := range a.Oldest {
		rows = append(rows, []string{r.Name, strconv.Itoa(r.AgeDays), string(r.Category)})
	}
	p.table([]string{"Filename", "Age (Days)", "Category"}, rows)
}

// Duplicates 疑似重复文件
func (p *Printer) Duplicates(d aggregator.Duplicates) {
	if len(d.Sets) == 0 {
		p.printf("没有发现重复文件\n")
		return
	}

	p.printf("\n发现 %d 个疑似重复文件（仅按大小判断，内容可能不同）:\n", d.FileCount())
	var rows [][]string
	for _, set := range d.Sets {
		for _, f := range set.Files {
			rows = append(rows, []string{f.Name, mbString(f.SizeMB())})
		}
	}
	p.table([]string{"Filename", "Size (MB)"}, rows)
	p.printf("\n浪费空间: %.2f MB\n", d.WastedMB())
}

// AgeAnalysis 文件年龄报告
func (p *Printer) AgeAnalysis(a aggregator.AgeAnalysis) {
	p.printf("\n文件总数: %d\n", a.Totals.Count)
	p.printf("平均年龄: %.1f 天\n", a.Ages.Mean)
	p.printf("最旧文件: %d 天\n", a.Ages.Oldest)
	p.printf("最新文件: %d 天\n", a.Ages.Newest)

	p.Section("按年龄统计")
	p.table([]string{"Age Category", "Count", "Size (MB)"}, groupRows(a.Buckets))

	if len(a.Stale) > 0 {
		p.printf("\n建议: 有 %d 个文件超过 %d 天\n", len(a.Stale), a.StaleAge)
		p.printf("   总大小: %.2f MB\n", a.StaleMB)
		p.printf("   可以归档或删除以释放空间\n")
	}
}

// ExpenseSummary 支出汇总
func (p *Printer) ExpenseSummary(s ledger.Summary) {
	p.Section("支出汇总")
	p.printf("总支出: %s\n", Money(s.Total))
	p.printf("平均支出: %s\n", Money(s.Mean))
	p.printf("交易笔数: %d\n", s.Count)

	p.Section("按类别")
	for _, c := range s.ByCategory {
		p.printf("%s: %s (%.1f%%)\n", c.Category, Money(c.Total), c.Percent)
	}
}

// MonthlyReport 月度报告与趋势
func (p *Printer) MonthlyReport(m ledger.MonthlyReport) {
	p.Section("月度报告")
	for _, month := range m.Months {
		p.printf("%s: %s\n", month.Month, Money(month.Total))
	}

	if !m.HasTrend {
		return
	}
	switch trend := round2(m.Trend); {
	case trend > 0:
		p.printf("\n支出呈上升趋势，每月增加 $%.2f\n", trend)
	case trend < 0:
		p.printf("\n支出呈下降趋势，每月减少 $%.2f\n", -trend)
	default:
		p.printf("\n支出基本持平\n")
	}
}

// RenamePreview 重命名预览
func (p *Printer) RenamePreview(preview renamer.Plan, total int) {
	p.Section(fmt.Sprintf("预览（前 %d 个）", len(preview)))
	rows := make([][]string, 0, len(preview))
	for _, pair := range preview {
		rows = append(rows, []string{pair.Original, pair.NewName})
	}
	p.table([]string{"Original", "New Name"}, rows)
	if total > len(preview) {
		p.Notice(fmt.Sprintf("... 其余 %d 个未显示", total-len(preview)))
	}
}

// RenameResult 重命名结果
func (p *Printer) RenameResult(r renamer.Result) {
	p.printf("已重命名 %d 个文件\n", r.Renamed)
	if r.Skipped > 0 {
		p.printf("目标已存在而跳过 %d 个\n", r.Skipped)
	}
	if r.Failed > 0 {
		p.printf("失败 %d 个，详见日志\n", r.Failed)
	}
}

// OrganizeResult 整理结果
func (p *Printer) OrganizeResult(r organizer.Result) {
	p.printf("\n已整理 %d 个文件\n", r.Moved)
	if r.Skipped > 0 {
		p.printf("跳过 %d 个\n", r.Skipped)
	}
	if r.Failed > 0 {
		p.printf("失败 %d 个，详见日志\n", r.Failed)
	}
}

// Money 金额格式 $12.34
func Money(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

func groupRows(groups []aggregator.Group) [][]string {
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, []string{g.Key, strconv.Itoa(g.Count), mbString(g.SizeMB)})
	}
	return rows
}

func mbString(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
