package fetcher

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"lp-research-go/internal/model"
)

// Extract 从LP的HTML中提取标题、meta description和正文
// 解析失败时返回空字段，不报错
func Extract(html string) model.PageContent {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return model.PageContent{}
	}

	content := model.PageContent{
		Title:    doc.Find("title").Text(),
		BodyText: Truncate(CollapseWhitespace(doc.Find("body").Text()), model.MaxBodyChars),
	}
	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		content.Description = desc
	}

	return content
}

// CollapseWhitespace 连续空白合并为一个空格并去掉首尾空白
// 包括全角空格等Unicode空白
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate 按字符（rune）硬截断，不考虑词边界
func Truncate(s string, maxChars int) string {
	if maxChars <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == maxChars {
			return s[:i]
		}
		count++
	}
	return s
}
