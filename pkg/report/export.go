package report

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/moyu-x/desktop-automation/internal"
	"github.com/moyu-x/desktop-automation/pkg/aggregator"
	"github.com/moyu-x/desktop-automation/pkg/ledger"
	"github.com/moyu-x/desktop-automation/pkg/logger"
	"github.com/moyu-x/desktop-automation/pkg/scanner"
	"github.com/moyu-x/desktop-automation/pkg/tabular"
)

const modifiedLayout = "2006-01-02 15:04:05"

// 导出表的表名与列顺序
var (
	FileDetailSheet     = "All Files"
	FileSummarySheet    = "Summary"
	ExpenseDetailSheet  = "All Expenses"
	ExpenseSummarySheet = "Category Summary"

	FileDetailColumns     = []string{"Filename", "Category", "Size (MB)", "Extension", "Modified Date", "Age (Days)", "MIME Type"}
	FileSummaryColumns    = []string{"Category", "Count", "Size (MB)"}
	ExpenseSummaryColumns = []string{"Category", "sum", "count", "mean"}
)

// FileReportName file_report_<YYYYMMDD_HHMMSS>.xlsx
func FileReportName(now time.Time) string {
	return fmt.Sprintf("file_report_%s.xlsx", now.Format(internal.FileReportStampLayout))
}

// ExpenseReportName expenses_report_<YYYYMMDD>.xlsx
func ExpenseReportName(now time.Time) string {
	return fmt.Sprintf("expenses_report_%s.xlsx", now.Format(internal.ExpenseReportStampLayout))
}

// FileSheets 文件报告的明细表与汇总表
func FileSheets(records []scanner.FileRecord, groups []aggregator.Group) []tabular.Sheet {
	detail := tabular.Sheet{Name: FileDetailSheet, Header: FileDetailColumns}
	for _, r := range records {
		mime := r.MIME
		if mime == "" {
			mime = scanner.UnknownMIME
		}
		detail.Rows = append(detail.Rows, []any{
			r.Name,
			string(r.Category),
			r.SizeMB(),
			r.Extension,
			r.ModifiedAt.Format(modifiedLayout),
			r.AgeDays,
			mime,
		})
	}

	summary := tabular.Sheet{Name: FileSummarySheet, Header: FileSummaryColumns}
	for _, g := range groups {
		summary.Rows = append(summary.Rows, []any{g.Key, g.Count, g.SizeMB})
	}

	return []tabular.Sheet{detail, summary}
}

// ExpenseSheets 支出明细表与类别汇总表
func ExpenseSheets(l *ledger.Ledger) []tabular.Sheet {
	detail := tabular.Sheet{Name: ExpenseDetailSheet, Header: ledger.Columns}
	for _, r := range l.Records() {
		detail.Rows = append(detail.Rows, []any{
			r.Date.Format(internal.DateLayout),
			r.Category,
			r.Description,
			r.Amount.InexactFloat64(),
		})
	}

	summary := tabular.Sheet{Name: ExpenseSummarySheet, Header: ExpenseSummaryColumns}
	for _, st := range l.CategoryStats() {
		summary.Rows = append(summary.Rows, []any{
			st.Category,
			st.Sum.InexactFloat64(),
			st.Count,
			st.Mean.Round(2).InexactFloat64(),
		})
	}

	return []tabular.Sheet{detail, summary}
}

// ExportFileReport 在 dir 下写入文件报告，返回报告路径
func ExportFileReport(fs afero.Fs, dir string, records []scanner.FileRecord, groups []aggregator.Group, now time.Time) (string, error) {
	path := filepath.Join(dir, FileReportName(now))
	if err := writeWorkbook(fs, path, FileSheets(records, groups)); err != nil {
		return "", err
	}
	logger.Get().Info().Msgf("文件报告已保存: %s", path)
	return path, nil
}

// ExportExpenses 在 dir 下写入支出报告，返回报告路径
func ExportExpenses(fs afero.Fs, dir string, l *ledger.Ledger, now time.Time) (string, error) {
	path := filepath.Join(dir, ExpenseReportName(now))
	if err := writeWorkbook(fs, path, ExpenseSheets(l)); err != nil {
		return "", err
	}
	logger.Get().Info().Msgf("支出报告已保存: %s", path)
	return path, nil
}

func writeWorkbook(fs afero.Fs, path string, sheets []tabular.Sheet) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("创建报告目录失败: %w", err)
	}

	file, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("创建报告文件失败: %w", err)
	}

	if err := tabular.WriteWorkbook(file, sheets...); err != nil {
		file.Close()
		fs.Remove(path)
		return err
	}
	if err := file.Close(); err != nil {
		fs.Remove(path)
		return fmt.Errorf("关闭报告文件失败: %w", err)
	}
	return nil
}
