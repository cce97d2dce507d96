package fetcher

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"lp-research-go/internal/model"
)

var (
	jsonFenceRe    = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")
	genericFenceRe = regexp.MustCompile("(?s)```\\s*(.*?)\\s*```")
)

// rawPreviewChars 错误信息里附带的原始响应长度
const rawPreviewChars = 200

// ParseError LLM响应无法解析为分析结果
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse JSON from Gemini response: %v\nresponse: %s...", e.Err, Truncate(e.Raw, rawPreviewChars))
}

func (e *ParseError) Unwrap() error { return e.Err }

// ExtractJSON 从LLM响应中取出JSON文本
// 优先 ```json 代码块，其次普通 ``` 代码块，都没有则用原文
func ExtractJSON(response string) string {
	if m := jsonFenceRe.FindStringSubmatch(response); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := genericFenceRe.FindStringSubmatch(response); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(response)
}

// ParseAnalysis 解析LLM响应为分析结果，失败不返回部分结果
func ParseAnalysis(response string) (*model.AnalysisResult, error) {
	jsonText := ExtractJSON(response)

	// 必须是JSON对象，null 和数组都算失败
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(jsonText), &fields); err != nil {
		return nil, &ParseError{Raw: response, Err: err}
	}
	if fields == nil {
		return nil, &ParseError{Raw: response, Err: fmt.Errorf("expected a JSON object, got null")}
	}

	// 字段类型不对时尽量转换，不算解析失败
	result := model.AnalysisResult{
		Likes:          model.ParseCount(fields["likes"]),
		Comments:       model.ParseCount(fields["comments"]),
		ImpactfulWords: stringList(fields["impactfulWords"]),
		Paradoxes:      stringList(fields["paradoxes"]),
		ReaderVoices:   stringList(fields["readerVoices"]),
		Desires:        stringList(fields["desires"]),
	}
	result.Normalize()

	return &result, nil
}

// stringList 数字和布尔值转成字符串，null、对象和嵌套数组跳过
// 单个字符串当作只有一项的列表
func stringList(data json.RawMessage) []string {
	if len(data) == 0 {
		return nil
	}

	var items []interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&items); err != nil {
		var single string
		if json.Unmarshal(data, &single) == nil && strings.TrimSpace(single) != "" {
			return []string{single}
		}
		return nil
	}

	list := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			list = append(list, v)
		case json.Number:
			list = append(list, v.String())
		case bool:
			list = append(list, strconv.FormatBool(v))
		}
	}
	return list
}
