package resolver

import (
	"strings"
	"unicode"

	"syllabus-bot-be/internal/constant"
	"syllabus-bot-be/internal/entity"
)

// Topic keywords that signal a syllabus question without naming a subject.
var topicKeywords = []string{
	"mục tiêu", "nội dung", "tài liệu tham khảo", "phương thức đánh giá",
	"số tín chỉ", "giáo trình", "chuẩn đầu ra", "nhiệm vụ sinh viên",
	"rubric", "đánh giá", "cho điểm", "thông tin về học phần", "mô tả",
	"phương pháp giảng dạy", "nội dung chi tiết", "yêu cầu", "biên soạn",
	"phụ lục", "rubric đánh giá",
}

func containsTopicKeyword(lower string) bool {
	for _, kw := range topicKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Outcome is the result of resolving a question against conversation history.
type Outcome struct {
	Question           string
	NeedsClarification bool
}

// Resolver rewrites follow-up questions that reference a topic ("mục tiêu",
// "số tín chỉ", ...) without naming the course, by recovering the subject from
// recent conversation turns. Resolution is deterministic: same question and
// history always produce the same outcome.
type Resolver struct {
	matchers []SubjectMatcher
}

func New() *Resolver {
	return &Resolver{
		matchers: []SubjectMatcher{
			CourseCodeMatcher{},
			SubjectClauseMatcher{},
			NamedSubjectMatcher{},
		},
	}
}

// Resolve decides whether the question is answerable as-is, can be rewritten
// with a subject recovered from history, or needs clarification from the user.
func (r *Resolver) Resolve(question string, turns []entity.ConversationTurn) Outcome {
	lower := strings.ToLower(question)

	// Already self-contained: a course code or an explicit "môn ..." clause.
	if courseCodeRe.MatchString(question) || strings.Contains(lower, "môn") {
		return Outcome{Question: question}
	}

	// Not a topic question, let retrieval handle it directly.
	if !containsTopicKeyword(lower) {
		return Outcome{Question: question}
	}

	if subject := r.subjectFromHistory(turns); subject != "" {
		return Outcome{Question: question + " của môn " + subject}
	}

	return Outcome{Question: question, NeedsClarification: true}
}

// subjectFromHistory scans turns newest first (the order the repository
// returns them), and user messages within each turn newest first, for a
// recoverable subject. Messages that are nothing but topic keywords carry no
// subject and are skipped.
func (r *Resolver) subjectFromHistory(turns []entity.ConversationTurn) string {
	for _, turn := range turns {
		messages := turn.Messages
		for m := len(messages) - 1; m >= 0; m-- {
			msg := messages[m]
			if msg.Role != constant.ChatMessageRoleUser {
				continue
			}
			if isBareKeywordMessage(msg.Content) {
				continue
			}
			for _, matcher := range r.matchers {
				if subject := matcher.Match(msg.Content); subject != "" {
					return subject
				}
			}
		}
	}
	return ""
}

// isBareKeywordMessage reports whether the message consists only of topic
// keywords and filler, with no subject material left over.
func isBareKeywordMessage(content string) bool {
	lower := strings.ToLower(content)
	if !containsTopicKeyword(lower) {
		return false
	}
	for _, kw := range topicKeywords {
		lower = strings.ReplaceAll(lower, kw, " ")
	}
	letters := 0
	for _, r := range lower {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			letters++
		}
	}
	return letters < 3
}
