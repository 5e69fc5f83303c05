package aggregator

// AgeBucket 文件年龄段
type AgeBucket int

const (
	UnderWeek AgeBucket = iota
	OneToFourWeeks
	OneToThreeMonths
	ThreeToTwelveMonths
	OverYear

	bucketCount = 5
)

// 各年龄段的下界（天），区间左闭右开
var bucketEdges = [bucketCount]int{0, 7, 30, 90, 365}

var bucketLabels = [bucketCount]string{"<1week", "1-4weeks", "1-3months", "3-12months", ">1year"}

func (b AgeBucket) String() string {
	if b < 0 || int(b) >= bucketCount {
		return "unknown"
	}
	return bucketLabels[b]
}

// Buckets 按顺序返回全部年龄段
func Buckets() []AgeBucket {
	return []AgeBucket{UnderWeek, OneToFourWeeks, OneToThreeMonths, ThreeToTwelveMonths, OverYear}
}

// BucketFor 返回 ageDays 所在的年龄段
// 恰好落在边界上的天数属于以该边界为下界的区间；负数（修改时间在未来）归入 <1week
func BucketFor(ageDays int) AgeBucket {
	for i := bucketCount - 1; i > 0; i-- {
		if ageDays >= bucketEdges[i] {
			return AgeBucket(i)
		}
	}
	return UnderWeek
}
