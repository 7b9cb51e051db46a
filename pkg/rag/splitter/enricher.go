package splitter

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"syllabus-bot-be/internal/entity"
	"syllabus-bot-be/pkg/loader"
)

// subjectRule maps a filename keyword to a display subject. Rules are checked
// in order, first match wins.
type subjectRule struct {
	keyword string
	subject string
}

var subjectRules = []subjectRule{
	{"python", "Lập trình Python"},
	{"java", "Lập trình Java"},
	{"web", "Lập trình Web"},
	{"mobile", "Lập trình Mobile"},
	{"database", "Cơ sở dữ liệu"},
	{"network", "Mạng máy tính"},
	{"ai", "Trí tuệ nhân tạo"},
	{"ml", "Học máy"},
	{"data", "Khoa học dữ liệu"},
	{"software", "Công nghệ phần mềm"},
	{"testing", "Kiểm thử phần mềm"},
	{"ui", "Thiết kế giao diện"},
	{"ux", "Trải nghiệm người dùng"},
	{"oop", "Lập trình hướng đối tượng"},
	{"algorithm", "Thuật toán"},
	{"structure", "Cấu trúc dữ liệu"},
}

const defaultSubject = "Môn học khác"

// DetectSubject infers the course subject from a document name.
func DetectSubject(name string) string {
	lower := strings.ToLower(name)
	for _, rule := range subjectRules {
		if strings.Contains(lower, rule.keyword) {
			return rule.subject
		}
	}
	return defaultSubject
}

// IsSyllabusDocument reports whether a document name marks it as a syllabus or
// curriculum file.
func IsSyllabusDocument(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "syllabus") || strings.Contains(lower, "ctdt")
}

// SplitDocuments chunks every document and enriches each chunk with metadata.
// Chunk ids and indexes are global across the whole batch so a chunk can be
// traced back to its position within the ingestion run.
func (s *Splitter) SplitDocuments(docs []*loader.Document) []*entity.DocumentChunk {
	type rawChunk struct {
		content string
		doc     *loader.Document
	}

	var raw []rawChunk
	for _, doc := range docs {
		for _, piece := range s.splitSafe(doc.Content) {
			if strings.TrimSpace(piece) == "" {
				continue
			}
			raw = append(raw, rawChunk{content: piece, doc: doc})
		}
	}

	total := len(raw)
	chunks := make([]*entity.DocumentChunk, 0, total)
	for i, rc := range raw {
		chunks = append(chunks, &entity.DocumentChunk{
			Id:      uuid.New(),
			Content: rc.content,
			Metadata: entity.ChunkMetadata{
				Source:      rc.doc.Source,
				Type:        rc.doc.Type,
				Name:        rc.doc.Name,
				Subject:     DetectSubject(rc.doc.Name),
				IsSyllabus:  IsSyllabusDocument(rc.doc.Name),
				ChunkID:     fmt.Sprintf("chunk_%06d", i),
				ChunkIndex:  i,
				TotalChunks: total,
			},
		})
	}
	return chunks
}

// splitSafe shields ingestion from splitter failures. If the recursive split
// panics the text is re-cut into fixed windows; if that still yields nothing
// the whole document becomes a single chunk.
func (s *Splitter) splitSafe(text string) (pieces []string) {
	defer func() {
		if r := recover(); r != nil {
			pieces = fixedWindows(text, 1000)
		}
	}()

	pieces = s.Split(text)
	if len(pieces) == 0 && strings.TrimSpace(text) != "" {
		pieces = []string{text}
	}
	return pieces
}

func fixedWindows(text string, size int) []string {
	runes := []rune(text)
	var out []string
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		window := string(runes[start:end])
		if strings.TrimSpace(window) != "" {
			out = append(out, window)
		}
	}
	return out
}
