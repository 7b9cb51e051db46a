package splitter

import (
	"fmt"
	"strings"
	"testing"

	"syllabus-bot-be/pkg/loader"
)

func TestDetectSubject(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"syllabus_python_2024.pdf", "Lập trình Python"},
		{"Java_Course.pdf", "Lập trình Java"},
		{"ctdt-database.pdf", "Cơ sở dữ liệu"},
		{"web_dev.txt", "Lập trình Web"},
		{"OOP_syllabus.pdf", "Lập trình hướng đối tượng"},
		{"something_else.pdf", "Môn học khác"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectSubject(tt.name); got != tt.want {
				t.Errorf("DetectSubject(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestDetectSubjectRuleOrder(t *testing.T) {
	// "python" outranks "data" when both keywords appear.
	if got := DetectSubject("data_python.pdf"); got != "Lập trình Python" {
		t.Errorf("got %q, want rule order to prefer python", got)
	}
}

func TestIsSyllabusDocument(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Syllabus_AI.pdf", true},
		{"CTDT_2024.pdf", true},
		{"lecture_notes.pdf", false},
	}

	for _, tt := range tests {
		if got := IsSyllabusDocument(tt.name); got != tt.want {
			t.Errorf("IsSyllabusDocument(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSplitDocumentsAssignsGlobalChunkIds(t *testing.T) {
	s := New(50, 10)

	docs := []*loader.Document{
		{Content: strings.Repeat("nội dung môn học python. ", 10), Source: "a/python_syllabus.pdf", Type: "pdf", Name: "python_syllabus.pdf"},
		{Content: strings.Repeat("nội dung môn học java. ", 10), Source: "b/java.txt", Type: "text", Name: "java.txt"},
	}

	chunks := s.SplitDocuments(docs)
	if len(chunks) < 2 {
		t.Fatalf("expected chunks from both documents, got %d", len(chunks))
	}

	for i, chunk := range chunks {
		wantId := fmt.Sprintf("chunk_%06d", i)
		if chunk.Metadata.ChunkID != wantId {
			t.Errorf("chunk %d: ChunkID = %q, want %q", i, chunk.Metadata.ChunkID, wantId)
		}
		if chunk.Metadata.ChunkIndex != i {
			t.Errorf("chunk %d: ChunkIndex = %d", i, chunk.Metadata.ChunkIndex)
		}
		if chunk.Metadata.TotalChunks != len(chunks) {
			t.Errorf("chunk %d: TotalChunks = %d, want %d", i, chunk.Metadata.TotalChunks, len(chunks))
		}
		if chunk.Id.String() == "00000000-0000-0000-0000-000000000000" {
			t.Errorf("chunk %d has a zero uuid", i)
		}
	}

	first := chunks[0].Metadata
	if first.Subject != "Lập trình Python" || !first.IsSyllabus {
		t.Errorf("first chunk metadata = %+v, want python syllabus", first)
	}
	last := chunks[len(chunks)-1].Metadata
	if last.Subject != "Lập trình Java" || last.IsSyllabus {
		t.Errorf("last chunk metadata = %+v, want java non-syllabus", last)
	}
}

func TestSplitDocumentsDropsWhitespaceOnly(t *testing.T) {
	s := New(50, 10)

	docs := []*loader.Document{
		{Content: "   \n\n\t  ", Source: "empty.txt", Type: "text", Name: "empty.txt"},
	}

	if chunks := s.SplitDocuments(docs); len(chunks) != 0 {
		t.Errorf("got %d chunks from whitespace-only document, want 0", len(chunks))
	}
}
