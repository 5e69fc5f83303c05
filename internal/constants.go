package internal

const (
	// 默认账本文件
	DefaultLedgerPath = "expenses.csv"

	// 文件整理默认目录
	DefaultOrganizeDir = "~/Downloads"

	// 报表输出目录
	DefaultReportDir = "."

	// 排行榜长度（最大/最旧文件）
	TopN = 5

	// 重命名预览条数
	PreviewSize = 10

	// 超过该天数的文件给出清理建议
	StaleAgeDays = 90

	// 1 MB 对应的字节数
	BytesPerMB = 1024 * 1024

	// 日期格式
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"

	// 报表文件名中的时间戳格式
	FileReportStampLayout    = "20060102_150405"
	ExpenseReportStampLayout = "20060102"
)
