// Package aggregator 汇总扫描结果，计算报告所需的分组统计与趋势
package aggregator

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/moyu-x/desktop-automation/pkg/classifier"
	"github.com/moyu-x/desktop-automation/pkg/scanner"
)

// Group 一个分组的汇总：文件数与总大小
type Group struct {
	Key    string
	Count  int
	SizeMB float64
}

// Totals 全部文件的汇总
type Totals struct {
	Count  int
	SizeMB float64
}

// AgeStats 文件年龄统计（天）
type AgeStats struct {
	Mean   float64
	Oldest int
	Newest int
}

// ByCategory 按类别分组，顺序与分类表一致，空类别不出现
func ByCategory(records []scanner.FileRecord) []Group {
	counts := make(map[classifier.Category]*Group)
	for _, r := range records {
		g, ok := counts[r.Category]
		if !ok {
			g = &Group{Key: string(r.Category)}
			counts[r.Category] = g
		}
		g.Count++
		g.SizeMB += r.SizeMB()
	}

	keys := make([]classifier.Category, 0, len(counts))
	for c := range counts {
		keys = append(keys, c)
	}
	sort.Slice(keys, func(i, j int) bool {
		oi, oj := classifier.Order(keys[i]), classifier.Order(keys[j])
		if oi != oj {
			return oi < oj
		}
		return keys[i] < keys[j]
	})

	groups := make([]Group, 0, len(keys))
	for _, c := range keys {
		g := *counts[c]
		g.SizeMB = round2(g.SizeMB)
		groups = append(groups, g)
	}
	return groups
}

// ByAgeBucket 按年龄段分组，顺序与年龄段定义一致，空分段不出现
func ByAgeBucket(records []scanner.FileRecord) []Group {
	var counts [bucketCount]Group
	for _, r := range records {
		b := BucketFor(r.AgeDays)
		counts[b].Count++
		counts[b].SizeMB += r.SizeMB()
	}

	groups := make([]Group, 0, bucketCount)
	for i, g := range counts {
		if g.Count == 0 {
			continue
		}
		g.Key = AgeBucket(i).String()
		g.SizeMB = round2(g.SizeMB)
		groups = append(groups, g)
	}
	return groups
}

// Sum 统计文件数与总大小
func Sum(records []scanner.FileRecord) Totals {
	var t Totals
	for _, r := range records {
		t.Count++
		t.SizeMB += r.SizeMB()
	}
	t.SizeMB = round2(t.SizeMB)
	return t
}

// TopBySize 按大小降序取前 n 个，大小相同保持扫描顺序
func TopBySize(records []scanner.FileRecord, n int) []scanner.FileRecord {
	return topBy(records, n, func(a, b scanner.FileRecord) bool {
		return a.SizeBytes > b.SizeBytes
	})
}

// TopByAge 按年龄降序取前 n 个，年龄相同保持扫描顺序
func TopByAge(records []scanner.FileRecord, n int) []scanner.FileRecord {
	return topBy(records, n, func(a, b scanner.FileRecord) bool {
		return a.AgeDays > b.AgeDays
	})
}

func topBy(records []scanner.FileRecord, n int, greater func(a, b scanner.FileRecord) bool) []scanner.FileRecord {
	sorted := make([]scanner.FileRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return greater(sorted[i], sorted[j])
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// Ages 年龄均值、最大值、最小值；空输入返回零值
func Ages(records []scanner.FileRecord) AgeStats {
	if len(records) == 0 {
		return AgeStats{}
	}

	ages := make([]float64, len(records))
	for i, r := range records {
		ages[i] = float64(r.AgeDays)
	}

	return AgeStats{
		Mean:   stat.Mean(ages, nil),
		Oldest: int(floats.Max(ages)),
		Newest: int(floats.Min(ages)),
	}
}

// Stale 年龄严格大于 days 的文件，保持扫描顺序
func Stale(records []scanner.FileRecord, days int) []scanner.FileRecord {
	var out []scanner.FileRecord
	for _, r := range records {
		if r.AgeDays > days {
			out = append(out, r)
		}
	}
	return out
}

// Trend 对 0..n-1 的序号做一次最小二乘拟合，返回斜率
// 少于两个点时 ok 为 false
func Trend(values []float64) (slope float64, ok bool) {
	if len(values) < 2 {
		return 0, false
	}

	xs := make([]float64, len(values))
	for i := range xs {
		xs[i] = float64(i)
	}

	_, slope = stat.LinearRegression(xs, values, nil, false)
	return slope, true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
