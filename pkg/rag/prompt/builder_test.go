package prompt

import (
	"strings"
	"testing"
)

func TestBuildIncludesAllSections(t *testing.T) {
	got := NewBuilder().
		WithHistory("[2025-03-01 09:00:00] User: chào").
		WithContext("Môn Python có 3 tín chỉ.").
		WithQuestion("số tín chỉ của môn Python").
		Build()

	for _, want := range []string{
		"Syllasbus-Bot",
		"Lịch sử hội thoại:",
		"[2025-03-01 09:00:00] User: chào",
		"Ngữ cảnh:",
		"Môn Python có 3 tín chỉ.",
		"Câu hỏi:",
		"số tín chỉ của môn Python",
		"Trả lời:",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildSectionOrder(t *testing.T) {
	got := NewBuilder().
		WithHistory("lịch sử").
		WithContext("ngữ cảnh").
		WithQuestion("câu hỏi").
		Build()

	hIdx := strings.Index(got, "Lịch sử hội thoại:")
	cIdx := strings.Index(got, "Ngữ cảnh:")
	qIdx := strings.Index(got, "Câu hỏi:")
	if !(hIdx < cIdx && cIdx < qIdx) {
		t.Errorf("sections out of order: history=%d context=%d question=%d", hIdx, cIdx, qIdx)
	}
	if !strings.HasSuffix(got, "Trả lời:") {
		t.Error("prompt must end with the answer cue")
	}
}

func TestBuildSkipsEmptySections(t *testing.T) {
	got := NewBuilder().
		WithHistory("  ").
		WithQuestion("câu hỏi").
		Build()

	if strings.Contains(got, "Lịch sử hội thoại:") {
		t.Error("blank history section should be omitted")
	}
}

func TestFormatContext(t *testing.T) {
	got := FormatContext([]string{"chunk một", "  ", "chunk hai"})
	want := "chunk một\n---\nchunk hai"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
