package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/afero"

	"github.com/moyu-x/desktop-automation/internal"
	"github.com/moyu-x/desktop-automation/pkg/aggregator"
	"github.com/moyu-x/desktop-automation/pkg/logger"
)

// Columns 账本文件的列顺序
var Columns = []string{"Date", "Category", "Description", "Amount"}

// ExpenseRecord 一笔支出
type ExpenseRecord struct {
	Date        time.Time
	Category    string
	Description string
	Amount      decimal.Decimal
}

// Ledger 只追加的支出账本，每次追加后整体写回文件
type Ledger struct {
	fs      afero.Fs
	path    string
	records []ExpenseRecord
}

// CategoryTotal 单个类别的合计与占比
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
	Percent  float64
}

// Summary 账本汇总
type Summary struct {
	Total      decimal.Decimal
	Mean       decimal.Decimal
	Count      int
	ByCategory []CategoryTotal
}

// MonthTotal 单月合计
type MonthTotal struct {
	Month string // YYYY-MM
	Total decimal.Decimal
}

// MonthlyReport 按月合计与趋势
type MonthlyReport struct {
	Months   []MonthTotal
	Trend    float64 // 每月变化金额
	HasTrend bool
}

// CategoryStat 导出用的类别统计：合计、笔数、均值
type CategoryStat struct {
	Category string
	Sum      decimal.Decimal
	Count    int
	Mean     decimal.Decimal
}

// Load 读取账本文件；文件不存在时返回空账本
func Load(fs afero.Fs, path string) (*Ledger, error) {
	l := &Ledger{fs: fs, path: path}

	file, err := fs.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Get().Info().Msgf("账本不存在，创建新账本: %s", path)
			return l, nil
		}
		return nil, fmt.Errorf("打开账本失败: %w", err)
	}
	defer file.Close()

	records, err := readRecords(file)
	if err != nil {
		return nil, fmt.Errorf("读取账本 %s 失败: %w", path, err)
	}
	l.records = records

	logger.Get().Info().Msgf("已加载 %d 条支出记录: %s", len(records), path)
	return l, nil
}

func readRecords(r io.Reader) ([]ExpenseRecord, error) {
	reader := csv.NewReader(r)
	// 每行列数须与表头一致，多出的列忽略
	reader.FieldsPerRecord = 0

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var records []ExpenseRecord
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		date, err := time.Parse(internal.DateLayout, row[index["Date"]])
		if err != nil {
			return nil, fmt.Errorf("第 %d 行日期无效: %w", line, err)
		}
		amount, err := decimal.NewFromString(row[index["Amount"]])
		if err != nil {
			return nil, fmt.Errorf("第 %d 行金额无效: %w", line, err)
		}

		records = append(records, ExpenseRecord{
			Date:        date,
			Category:    row[index["Category"]],
			Description: row[index["Description"]],
			Amount:      amount,
		})
	}
	return records, nil
}

func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, name := range Columns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("缺少列 %s", name)
		}
	}
	return index, nil
}

// Path 账本文件路径
func (l *Ledger) Path() string {
	return l.path
}

// Len 记录数
func (l *Ledger) Len() int {
	return len(l.records)
}

// Records 按追加顺序返回全部记录的副本
func (l *Ledger) Records() []ExpenseRecord {
	out := make([]ExpenseRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Append 追加一条记录并写回文件
func (l *Ledger) Append(rec ExpenseRecord) error {
	l.records = append(l.records, rec)
	if err := l.save(); err != nil {
		l.records = l.records[:len(l.records)-1]
		return err
	}

	logger.Get().Debug().Msgf("新增支出: %s %s %s", rec.Date.Format(internal.DateLayout), rec.Category, rec.Amount.StringFixed(2))
	return nil
}

// save 先写临时文件再改名
func (l *Ledger) save() error {
	dir := filepath.Dir(l.path)
	if err := l.fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("创建账本目录失败: %w", err)
	}

	tmp := filepath.Join(dir, "."+filepath.Base(l.path)+"."+uuid.NewString()+".tmp")
	file, err := l.fs.Create(tmp)
	if err != nil {
		return fmt.Errorf("创建临时文件失败: %w", err)
	}

	if err := l.writeCSV(file); err != nil {
		file.Close()
		l.fs.Remove(tmp)
		return fmt.Errorf("写入账本失败: %w", err)
	}
	if err := file.Close(); err != nil {
		l.fs.Remove(tmp)
		return fmt.Errorf("关闭临时文件失败: %w", err)
	}

	if err := l.fs.Rename(tmp, l.path); err != nil {
		l.fs.Remove(tmp)
		return fmt.Errorf("替换账本文件失败: %w", err)
	}
	return nil
}

func (l *Ledger) writeCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Columns); err != nil {
		return err
	}
	for _, r := range l.records {
		row := []string{r.Date.Format(internal.DateLayout), r.Category, r.Description, r.Amount.String()}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// Summary 总额、均值、笔数以及按类别合计（降序）
func (l *Ledger) Summary() Summary {
	s := Summary{Count: len(l.records)}
	if s.Count == 0 {
		return s
	}

	totals := make(map[string]decimal.Decimal)
	for _, r := range l.records {
		s.Total = s.Total.Add(r.Amount)
		totals[r.Category] = totals[r.Category].Add(r.Amount)
	}
	s.Mean = s.Total.Div(decimal.NewFromInt(int64(s.Count)))

	for category, total := range totals {
		ct := CategoryTotal{Category: category, Total: total}
		if !s.Total.IsZero() {
			ct.Percent = total.Div(s.Total).Mul(decimal.NewFromInt(100)).InexactFloat64()
		}
		s.ByCategory = append(s.ByCategory, ct)
	}
	sort.Slice(s.ByCategory, func(i, j int) bool {
		a, b := s.ByCategory[i], s.ByCategory[j]
		if c := a.Total.Cmp(b.Total); c != 0 {
			return c > 0
		}
		return a.Category < b.Category
	})
	return s
}

// MonthlyReport 按自然月合计并计算趋势
func (l *Ledger) MonthlyReport() MonthlyReport {
	totals := make(map[string]decimal.Decimal)
	for _, r := range l.records {
		month := r.Date.Format(internal.MonthLayout)
		totals[month] = totals[month].Add(r.Amount)
	}

	months := make([]string, 0, len(totals))
	for m := range totals {
		months = append(months, m)
	}
	// YYYY-MM 的字典序即时间顺序
	sort.Strings(months)

	var report MonthlyReport
	values := make([]float64, 0, len(months))
	for _, m := range months {
		report.Months = append(report.Months, MonthTotal{Month: m, Total: totals[m]})
		values = append(values, totals[m].InexactFloat64())
	}

	report.Trend, report.HasTrend = aggregator.Trend(values)
	return report
}

// CategoryStats 每个类别的合计、笔数和均值，按类别名排序
func (l *Ledger) CategoryStats() []CategoryStat {
	index := make(map[string]*CategoryStat)
	var names []string
	for _, r := range l.records {
		st, ok := index[r.Category]
		if !ok {
			st = &CategoryStat{Category: r.Category}
			index[r.Category] = st
			names = append(names, r.Category)
		}
		st.Sum = st.Sum.Add(r.Amount)
		st.Count++
	}
	sort.Strings(names)

	stats := make([]CategoryStat, 0, len(names))
	for _, name := range names {
		st := *index[name]
		st.Mean = st.Sum.Div(decimal.NewFromInt(int64(st.Count)))
		stats = append(stats, st)
	}
	return stats
}
