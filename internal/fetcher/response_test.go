package fetcher

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	testCases := []struct {
		name     string
		response string
		want     string
	}{
		{
			name:     "json fence",
			response: "```json\n{\"likes\": 1}\n```",
			want:     `{"likes": 1}`,
		},
		{
			name:     "json fence with surrounding text",
			response: "Here you go:\n```json\n{\"a\": 1}\n```\nand also ```{\"b\": 2}```",
			want:     `{"a": 1}`,
		},
		{
			name:     "generic fence",
			response: "result:\n```\n{\"likes\": 2}\n```",
			want:     `{"likes": 2}`,
		},
		{
			name:     "no fence",
			response: "  {\"likes\": 3}  ",
			want:     `{"likes": 3}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractJSON(tc.response); got != tc.want {
				t.Errorf("ExtractJSON() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParseAnalysisFencedResponse(t *testing.T) {
	response := "```json\n{\"likes\":5,\"comments\":null,\"impactfulWords\":[\"a\"],\"paradoxes\":[],\"readerVoices\":[],\"desires\":[]}\n```"

	result, err := ParseAnalysis(response)
	if err != nil {
		t.Fatalf("ParseAnalysis() error = %v", err)
	}
	if n, ok := result.Likes.Int(); !ok || n != 5 {
		t.Errorf("Likes = %v, want 5", result.Likes)
	}
	if result.Comments.Valid() {
		t.Errorf("Comments = %v, want null", result.Comments)
	}
	if !reflect.DeepEqual(result.ImpactfulWords, []string{"a"}) {
		t.Errorf("ImpactfulWords = %v", result.ImpactfulWords)
	}
	for name, list := range map[string][]string{
		"paradoxes":    result.Paradoxes,
		"readerVoices": result.ReaderVoices,
		"desires":      result.Desires,
	} {
		if list == nil || len(list) != 0 {
			t.Errorf("%s = %#v, want empty non-nil list", name, list)
		}
	}
}

func TestParseAnalysisMissingListsAreEmpty(t *testing.T) {
	result, err := ParseAnalysis(`{"likes": null}`)
	if err != nil {
		t.Fatalf("ParseAnalysis() error = %v", err)
	}
	if result.ImpactfulWords == nil || result.Desires == nil {
		t.Error("missing lists should be normalized to empty lists")
	}
}

func TestParseAnalysisDoesNotClamp(t *testing.T) {
	words := make([]string, 15)
	for i := range words {
		words[i] = "w"
	}
	response := `{"impactfulWords":["w","w","w","w","w","w","w","w","w","w","w","w","w","w","w"]}`

	result, err := ParseAnalysis(response)
	if err != nil {
		t.Fatalf("ParseAnalysis() error = %v", err)
	}
	if !reflect.DeepEqual(result.ImpactfulWords, words) {
		t.Errorf("ImpactfulWords has %d items, want 15", len(result.ImpactfulWords))
	}
}

func TestParseAnalysisLooseFieldTypes(t *testing.T) {
	testCases := []struct {
		name         string
		response     string
		wantLikes    string
		wantComments string
		wantWords    []string
	}{
		{
			name:         "integral float",
			response:     `{"likes": 1200.0, "comments": 3}`,
			wantLikes:    "1200",
			wantComments: "3",
			wantWords:    []string{},
		},
		{
			name:         "japanese count text",
			response:     `{"likes": "1.2万", "comments": "1,500"}`,
			wantLikes:    `"1.2万"`,
			wantComments: "1500",
			wantWords:    []string{},
		},
		{
			name:         "fractional number kept",
			response:     `{"likes": 4.5}`,
			wantLikes:    "4.5",
			wantComments: "null",
			wantWords:    []string{},
		},
		{
			name:         "unrecognized values become null",
			response:     `{"likes": "many", "comments": {"count": 2}}`,
			wantLikes:    "null",
			wantComments: "null",
			wantWords:    []string{},
		},
		{
			name:         "scalar list items converted",
			response:     `{"impactfulWords": ["a", 7, true, null, {"x": 1}]}`,
			wantLikes:    "null",
			wantComments: "null",
			wantWords:    []string{"a", "7", "true"},
		},
		{
			name:         "single string as list",
			response:     `{"impactfulWords": "only"}`,
			wantLikes:    "null",
			wantComments: "null",
			wantWords:    []string{"only"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ParseAnalysis(tc.response)
			if err != nil {
				t.Fatalf("ParseAnalysis() error = %v", err)
			}
			likes, _ := json.Marshal(result.Likes)
			comments, _ := json.Marshal(result.Comments)
			if string(likes) != tc.wantLikes || string(comments) != tc.wantComments {
				t.Errorf("likes/comments = %s/%s, want %s/%s", likes, comments, tc.wantLikes, tc.wantComments)
			}
			if !reflect.DeepEqual(result.ImpactfulWords, tc.wantWords) {
				t.Errorf("ImpactfulWords = %#v, want %#v", result.ImpactfulWords, tc.wantWords)
			}
		})
	}
}

func TestParseAnalysisErrors(t *testing.T) {
	long := "Sorry, I cannot help with that. " + strings.Repeat("x", 400)
	testCases := []struct {
		name     string
		response string
	}{
		{"plain text", long},
		{"empty", ""},
		{"null", "null"},
		{"array", `["a", "b"]`},
		{"truncated json", "```json\n{\"likes\": 1,\n```"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ParseAnalysis(tc.response)
			if err == nil {
				t.Fatalf("ParseAnalysis() = %+v, want error", result)
			}
			if result != nil {
				t.Error("partial result returned on error")
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("error %T is not *ParseError", err)
			}
			if parseErr.Raw != tc.response {
				t.Error("ParseError.Raw should keep the full response")
			}
		})
	}
}

func TestParseErrorMessagePreview(t *testing.T) {
	raw := strings.Repeat("a", 150) + strings.Repeat("b", 150)
	err := &ParseError{Raw: raw, Err: errors.New("boom")}

	msg := err.Error()
	if !strings.Contains(msg, strings.Repeat("a", 150)+strings.Repeat("b", 50)+"...") {
		t.Errorf("message should include the first 200 chars: %q", msg)
	}
	if strings.Contains(msg, strings.Repeat("b", 51)) {
		t.Errorf("message includes more than 200 chars: %q", msg)
	}
}
