package service

import (
	"strings"
	"testing"

	"lp-research-go/internal/model"
)

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(model.PageContent{Title: "今だけ50%OFF", Description: "説明文", BodyText: "本文テキスト"})

	for _, want := range []string{
		"タイトル: 今だけ50%OFF",
		"説明: 説明文",
		"本文: 本文テキスト（最初の10000文字）",
		`"impactfulWords"`,
		`"paradoxes"`,
		`"readerVoices"`,
		`"desires"`,
		"最大10個",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPromptTruncatesBody(t *testing.T) {
	body := strings.Repeat("字", model.MaxBodyChars+500)
	prompt := BuildPrompt(model.PageContent{BodyText: body})

	if strings.Contains(prompt, strings.Repeat("字", model.MaxBodyChars+1)) {
		t.Error("prompt contains more than the first 10000 characters of the body")
	}
	if !strings.Contains(prompt, strings.Repeat("字", model.MaxBodyChars)+"（") {
		t.Error("prompt should contain exactly the first 10000 characters")
	}
}
