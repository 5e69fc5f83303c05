package aggregator

import "github.com/moyu-x/desktop-automation/pkg/scanner"

// DuplicateSet 大小相同的一组文件
//
// 只按字节数判断，内容不同但大小相同的文件也会被列入，
// 结果只能作为"疑似重复"提示给用户。
type DuplicateSet struct {
	SizeBytes int64
	Files     []scanner.FileRecord
}

// Duplicates 重复检测结果
type Duplicates struct {
	Sets        []DuplicateSet
	WastedBytes int64 // 每组保留一份，其余副本占用的空间
}

// FileCount 所有疑似重复组中的文件总数
func (d Duplicates) FileCount() int {
	n := 0
	for _, s := range d.Sets {
		n += len(s.Files)
	}
	return n
}

// WastedMB 浪费空间（MB，两位小数）
func (d Duplicates) WastedMB() float64 {
	return scanner.RoundMB(d.WastedBytes)
}

// FindDuplicates 按大小分组，成员多于一个的组即为疑似重复
// 分组顺序按该大小第一次出现的扫描位置
func FindDuplicates(records []scanner.FileRecord) Duplicates {
	index := make(map[int64]int)
	var groups []DuplicateSet

	for _, r := range records {
		i, ok := index[r.SizeBytes]
		if !ok {
			i = len(groups)
			index[r.SizeBytes] = i
			groups = append(groups, DuplicateSet{SizeBytes: r.SizeBytes})
		}
		groups[i].Files = append(groups[i].Files, r)
	}

	var result Duplicates
	for _, g := range groups {
		if len(g.Files) < 2 {
			continue
		}
		result.Sets = append(result.Sets, g)
		result.WastedBytes += g.SizeBytes * int64(len(g.Files)-1)
	}
	return result
}
