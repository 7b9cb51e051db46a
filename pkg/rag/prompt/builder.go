package prompt

import (
	"strings"
)

// systemPreamble defines the assistant persona and answering rules. The bot
// answers in Vietnamese and only from the supplied syllabus context.
const systemPreamble = `Bạn là Syllasbus-Bot, trợ lý ảo hỗ trợ sinh viên tra cứu thông tin đề cương môn học.

Quy tắc trả lời:
1. Chỉ trả lời dựa trên thông tin trong phần "Ngữ cảnh" bên dưới.
2. Trả lời bằng tiếng Việt, ngắn gọn và chính xác.
3. Nếu ngữ cảnh không chứa thông tin cần thiết, hãy nói rõ là bạn không tìm thấy thông tin trong đề cương, đừng bịa ra câu trả lời.
4. Khi liệt kê nội dung (mục tiêu, chuẩn đầu ra, tài liệu tham khảo), hãy trình bày theo danh sách gạch đầu dòng.
5. Không nhắc đến việc bạn được cung cấp ngữ cảnh hay tài liệu nội bộ.`

// Builder assembles the final LLM prompt from labeled sections.
type Builder struct {
	sections []section
}

type section struct {
	label   string
	content string
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) WithHistory(history string) *Builder {
	b.sections = append(b.sections, section{label: "Lịch sử hội thoại", content: history})
	return b
}

func (b *Builder) WithContext(contextBlock string) *Builder {
	b.sections = append(b.sections, section{label: "Ngữ cảnh", content: contextBlock})
	return b
}

func (b *Builder) WithQuestion(question string) *Builder {
	b.sections = append(b.sections, section{label: "Câu hỏi", content: question})
	return b
}

// Build renders the preamble followed by each section in insertion order.
func (b *Builder) Build() string {
	var sb strings.Builder
	sb.WriteString(systemPreamble)

	for _, s := range b.sections {
		if strings.TrimSpace(s.content) == "" {
			continue
		}
		sb.WriteString("\n\n")
		sb.WriteString(s.label)
		sb.WriteString(":\n")
		sb.WriteString(s.content)
	}

	sb.WriteString("\n\nTrả lời:")
	return sb.String()
}

// FormatContext joins retrieved chunk contents into the context block, each
// chunk separated by a divider so the model sees document boundaries.
func FormatContext(contents []string) string {
	var kept []string
	for _, c := range contents {
		if strings.TrimSpace(c) != "" {
			kept = append(kept, strings.TrimSpace(c))
		}
	}
	return strings.Join(kept, "\n---\n")
}
