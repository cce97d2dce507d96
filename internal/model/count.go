package model

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// countTextRe 页面上常见的计数写法，例如 "1.2万"、"3,400件"、"10k+"
var countTextRe = regexp.MustCompile(`^\d[\d,.]*\s*[万億千kKmM]?\s*[件人]?\+?$`)

// Count 点赞数或评论数
// 模型可能写成 1200、1200.0 或 "1.2万"，无法识别的值按 null 处理
type Count struct {
	raw json.RawMessage // nil 表示 null
}

// NewCount 整数计数
func NewCount(n int) Count {
	return Count{raw: json.RawMessage(strconv.Itoa(n))}
}

// ParseCount 解析模型返回的计数字段，缺失或无法识别时为 null
func ParseCount(data json.RawMessage) Count {
	return Count{raw: normalizeCount(data)}
}

// Valid 是否有值
func (c Count) Valid() bool { return c.raw != nil }

// Int 整数值，null、小数和 "1.2万" 这类文字返回 false
func (c Count) Int() (int, bool) {
	n, err := strconv.Atoi(string(c.raw))
	return n, err == nil
}

// String 页面显示用，null 为空字符串
func (c Count) String() string {
	if c.raw == nil {
		return ""
	}
	var s string
	if json.Unmarshal(c.raw, &s) == nil {
		return s
	}
	return string(c.raw)
}

func (c Count) MarshalJSON() ([]byte, error) {
	if c.raw == nil {
		return []byte("null"), nil
	}
	return c.raw, nil
}

func (c *Count) UnmarshalJSON(data []byte) error {
	c.raw = normalizeCount(data)
	return nil
}

func normalizeCount(data []byte) json.RawMessage {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil
	}

	switch x := v.(type) {
	case json.Number:
		return normalizeNumber(x)
	case string:
		s := strings.TrimSpace(x)
		if digits := strings.ReplaceAll(s, ",", ""); digits != "" && strings.Trim(digits, "0123456789") == "" {
			if n, err := strconv.ParseInt(digits, 10, 64); err == nil {
				return json.RawMessage(strconv.FormatInt(n, 10))
			}
		}
		if countTextRe.MatchString(s) {
			b, _ := json.Marshal(s)
			return b
		}
	}
	return nil
}

// normalizeNumber 1200.0 这样的整数小数写法转成整数，其他数字原样保留
func normalizeNumber(n json.Number) json.RawMessage {
	if i, err := n.Int64(); err == nil {
		return json.RawMessage(strconv.FormatInt(i, 10))
	}
	if f, err := n.Float64(); err == nil && f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return json.RawMessage(strconv.FormatInt(int64(f), 10))
	}
	return json.RawMessage(n.String())
}
