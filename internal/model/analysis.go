package model

// AnalysisRequest 分析请求
type AnalysisRequest struct {
	URL string `json:"url"`
}

// PageContent 从LP的HTML中提取出的文本
type PageContent struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	BodyText    string `json:"bodyText"` // 最多 MaxBodyChars 个字符
}

// MaxBodyChars 送入prompt的正文最大字符数
const MaxBodyChars = 10000

// AnalysisResult LP分析结果
// 列表长度上限只作为prompt提示，不在服务端校验
type AnalysisResult struct {
	Likes          Count    `json:"likes"`          // 没找到时为null
	Comments       Count    `json:"comments"`       // 没找到时为null
	ImpactfulWords []string `json:"impactfulWords"` // 刺さる言葉，最多10个
	Paradoxes      []string `json:"paradoxes"`      // 逆説，最多5个
	ReaderVoices   []string `json:"readerVoices"`   // 読者の代弁，最多5个
	Desires        []string `json:"desires"`        // 望み，最多5个
}

// Normalize 把缺失的列表补成空列表，保证JSON输出是 [] 而不是 null
func (r *AnalysisResult) Normalize() {
	if r.ImpactfulWords == nil {
		r.ImpactfulWords = []string{}
	}
	if r.Paradoxes == nil {
		r.Paradoxes = []string{}
	}
	if r.ReaderVoices == nil {
		r.ReaderVoices = []string{}
	}
	if r.Desires == nil {
		r.Desires = []string{}
	}
}

// ErrorResponse 错误响应
type ErrorResponse struct {
	Error string `json:"error"`
}
