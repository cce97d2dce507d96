package service

import (
	"fmt"

	"lp-research-go/internal/fetcher"
	"lp-research-go/internal/model"
)

const promptTemplate = `
以下のLPの内容を分析してください。

タイトル: %s
説明: %s
本文: %s（最初の10000文字）

以下の項目を抽出してください：

1. **いいね**: 数値（見つからない場合はnull）
2. **コメント数**: 数値（見つからない場合はnull）
3. **刺さる言葉**: 読者の心に響く言葉やフレーズを配列で（最大10個）
4. **逆説**: 一般的な常識と逆の主張や表現を配列で（最大5個）
5. **読者の代弁**: 読者の気持ちや悩みを代弁している表現を配列で（最大5個）
6. **望み**: 読者が持っている願望や理想を表現している部分を配列で（最大5個）

JSON形式で返してください。以下の形式で：
{
  "likes": 数値またはnull,
  "comments": 数値またはnull,
  "impactfulWords": ["言葉1", "言葉2", ...],
  "paradoxes": ["逆説1", "逆説2", ...],
  "readerVoices": ["代弁1", "代弁2", ...],
  "desires": ["望み1", "望み2", ...]
}
`

// BuildPrompt 把标题、描述和正文套进固定模板
func BuildPrompt(page model.PageContent) string {
	body := fetcher.Truncate(page.BodyText, model.MaxBodyChars)
	return fmt.Sprintf(promptTemplate, page.Title, page.Description, body)
}
