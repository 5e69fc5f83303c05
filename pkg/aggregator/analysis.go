package aggregator

import (
	"github.com/moyu-x/desktop-automation/internal"
	"github.com/moyu-x/desktop-automation/pkg/scanner"
)

// FileAnalysis 文件整理报告所需的全部统计
type FileAnalysis struct {
	Totals     Totals
	Categories []Group
	Largest    []scanner.FileRecord
	Oldest     []scanner.FileRecord
}

// AgeAnalysis 文件年龄报告所需的全部统计
type AgeAnalysis struct {
	Totals   Totals
	Ages     AgeStats
	Buckets  []Group
	Stale    []scanner.FileRecord
	StaleMB  float64
	StaleAge int
}

// AnalyzeFiles 汇总类别分布与最大、最旧文件
func AnalyzeFiles(records []scanner.FileRecord) FileAnalysis {
	return FileAnalysis{
		Totals:     Sum(records),
		Categories: ByCategory(records),
		Largest:    TopBySize(records, internal.TopN),
		Oldest:     TopByAge(records, internal.TopN),
	}
}

// AnalyzeAges 汇总年龄分布，并找出超过清理阈值的文件
func AnalyzeAges(records []scanner.FileRecord) AgeAnalysis {
	stale := Stale(records, internal.StaleAgeDays)
	return AgeAnalysis{
		Totals:   Sum(records),
		Ages:     Ages(records),
		Buckets:  ByAgeBucket(records),
		Stale:    stale,
		StaleMB:  Sum(stale).SizeMB,
		StaleAge: internal.StaleAgeDays,
	}
}
