package splitter

import (
	"strings"
	"testing"
)

func TestSplitRespectsChunkSize(t *testing.T) {
	s := New(100, 20)

	var sb strings.Builder
	for i := 0; i < 50; i++ {
		sb.WriteString("Đây là một câu văn tiếng Việt dùng để kiểm tra. ")
	}

	chunks := s.Split(sb.String())
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if got := len([]rune(c)); got > 100 {
			t.Errorf("chunk %d has %d runes, want <= 100", i, got)
		}
	}
}

func TestSplitKeepsUnsplittableTokenIntact(t *testing.T) {
	s := New(50, 10)

	token := strings.Repeat("x", 120) // no separator inside
	chunks := s.Split(token)

	found := false
	for _, c := range chunks {
		if strings.Contains(c, token) {
			found = true
		}
	}
	if !found {
		t.Errorf("oversized token was cut, expected it kept intact; chunks: %d", len(chunks))
	}
}

func TestSplitPrefersParagraphBoundaries(t *testing.T) {
	s := New(60, 0)

	text := "Đoạn một ngắn gọn.\n\nĐoạn hai cũng ngắn gọn.\n\nĐoạn ba kết thúc."
	chunks := s.Split(text)

	for i, c := range chunks {
		trimmed := strings.TrimSpace(c)
		if strings.Contains(trimmed, "\n\n") && len([]rune(trimmed)) > 60 {
			t.Errorf("chunk %d crosses a paragraph boundary while oversized: %q", i, c)
		}
	}
}

func TestSplitOverlapCarriesContext(t *testing.T) {
	s := New(40, 15)

	text := "một hai ba bốn năm sáu bảy tám chín mười. " +
		"mười một mười hai mười ba mười bốn. " +
		"mười lăm mười sáu mười bảy mười tám."
	chunks := s.Split(text)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	// Consecutive chunks should share some trailing/leading material.
	overlapSeen := false
	for i := 1; i < len(chunks); i++ {
		prevWords := strings.Fields(chunks[i-1])
		if len(prevWords) == 0 {
			continue
		}
		last := prevWords[len(prevWords)-1]
		if strings.Contains(chunks[i], last) {
			overlapSeen = true
			break
		}
	}
	if !overlapSeen {
		t.Error("no overlap observed between any consecutive chunks")
	}
}

func TestSplitDropsEmptyInput(t *testing.T) {
	s := New(100, 20)

	for _, input := range []string{"", "   ", "\n\n\t"} {
		if chunks := s.Split(input); len(chunks) != 0 {
			t.Errorf("Split(%q) = %d chunks, want 0", input, len(chunks))
		}
	}
}

func TestSplitLargeInputStaysBounded(t *testing.T) {
	s := New(510, 110)

	paragraph := strings.Repeat("Nội dung học phần gồm nhiều chương khác nhau. ", 30) + "\n\n"
	text := strings.Repeat(paragraph, 100) // well over the coarse window threshold

	chunks := s.Split(text)
	if len(chunks) == 0 {
		t.Fatal("expected chunks from large input")
	}
	for i, c := range chunks {
		if got := len([]rune(c)); got > 510 {
			t.Errorf("chunk %d has %d runes, want <= 510", i, got)
		}
	}
}

func TestFixedWindows(t *testing.T) {
	text := strings.Repeat("a", 2500)
	windows := fixedWindows(text, 1000)

	if len(windows) != 3 {
		t.Fatalf("got %d windows, want 3", len(windows))
	}
	if len(windows[0]) != 1000 || len(windows[2]) != 500 {
		t.Errorf("unexpected window sizes: %d, %d, %d", len(windows[0]), len(windows[1]), len(windows[2]))
	}
}
