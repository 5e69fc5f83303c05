package classifier

import "strings"

// Category 按扩展名划分的文件类别
type Category string

const (
	Images    Category = "Images"
	Documents Category = "Documents"
	Videos    Category = "Videos"
	Music     Category = "Music"
	Archives  Category = "Archives"
	Other     Category = "Other"
)

var categories = []Category{Images, Documents, Videos, Music, Archives, Other}

// All 按固定顺序返回全部类别，Other 在最后
func All() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Classify 根据扩展名返回类别
// ext 带前导点，大小写不敏感；未收录的扩展名归为 Other
func Classify(ext string) Category {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg", ".png", ".gif", ".bmp":
		return Images
	case ".pdf", ".doc", ".docx", ".txt", ".xlsx":
		return Documents
	case ".mp4", ".avi", ".mkv", ".mov":
		return Videos
	case ".mp3", ".wav", ".flac":
		return Music
	case ".zip", ".rar", ".7z":
		return Archives
	}
	return Other
}

// Extensions 返回某个类别收录的扩展名，Other 返回 nil
func Extensions(c Category) []string {
	switch c {
	case Images:
		return []string{".jpg", ".jpeg", ".png", ".gif", ".bmp"}
	case Documents:
		return []string{".pdf", ".doc", ".docx", ".txt", ".xlsx"}
	case Videos:
		return []string{".mp4", ".avi", ".mkv", ".mov"}
	case Music:
		return []string{".mp3", ".wav", ".flac"}
	case Archives:
		return []string{".zip", ".rar", ".7z"}
	}
	return nil
}

// Order 返回类别在表中的位置，用于稳定排序
func Order(c Category) int {
	for i, item := range categories {
		if item == c {
			return i
		}
	}
	return len(categories)
}
