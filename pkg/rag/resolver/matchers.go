package resolver

import (
	"regexp"
	"strings"
)

// SubjectMatcher extracts a course subject from one message, returning "" when
// nothing matches. Matchers are tried in priority order.
type SubjectMatcher interface {
	Match(message string) string
}

// courseCodeRe matches university course codes such as 21IT4409 or 22SE001A123.
var courseCodeRe = regexp.MustCompile(`(?i)\b\d{2}[A-Z]{2,}[A-Z0-9]*\d{3,}\b`)

// CourseCodeMatcher picks up an explicit course code.
type CourseCodeMatcher struct{}

func (CourseCodeMatcher) Match(message string) string {
	return strings.ToUpper(courseCodeRe.FindString(message))
}

// subjectClauseRe captures the subject name following the word "môn".
var subjectClauseRe = regexp.MustCompile(`(?i)môn\s+([\p{L}\p{N}][\p{L}\p{N} \-]*)`)

// Trailing question-tail words that are not part of a subject name.
var subjectTailWords = map[string]bool{
	"là": true, "gì": true, "như": true, "thế": true, "nào": true,
	"không": true, "nhé": true, "ạ": true, "vậy": true, "có": true,
	"này": true, "đó": true, "học": true, "cả": true,
}

// SubjectClauseMatcher extracts the subject from a "môn <name>" clause. The
// capture stops at punctuation; trailing question words and topic keywords are
// stripped so "đề cương môn Cơ sở dữ liệu là gì" yields "Cơ sở dữ liệu".
type SubjectClauseMatcher struct{}

func (SubjectClauseMatcher) Match(message string) string {
	groups := subjectClauseRe.FindStringSubmatch(message)
	if len(groups) < 2 {
		return ""
	}

	words := strings.Fields(groups[1])
	for len(words) > 0 && subjectTailWords[strings.ToLower(words[len(words)-1])] {
		words = words[:len(words)-1]
	}
	subject := strings.Join(words, " ")
	if subject == "" {
		return ""
	}
	if containsTopicKeyword(strings.ToLower(subject)) {
		return ""
	}
	return subject
}

// Physical education subjects that appear without the "môn" prefix.
var namedSubjects = []string{
	"cờ vua", "bóng rổ", "bóng bàn", "bóng chuyền", "bơi lội",
	"cầu lông", "võ thuật", "golf", "tennis", "futsal",
	"leo núi", "khiêu vũ", "fitness", "hatha yoga",
}

// NamedSubjectMatcher recognizes well-known subject names mentioned bare.
type NamedSubjectMatcher struct{}

func (NamedSubjectMatcher) Match(message string) string {
	lower := strings.ToLower(message)
	for _, name := range namedSubjects {
		if strings.Contains(lower, name) {
			return capitalizeWords(name)
		}
	}
	return ""
}

func capitalizeWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(w)
		words[i] = strings.ToUpper(string(runes[0])) + string(runes[1:])
	}
	return strings.Join(words, " ")
}
