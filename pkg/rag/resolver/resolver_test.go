package resolver

import (
	"testing"
	"time"

	"syllabus-bot-be/internal/constant"
	"syllabus-bot-be/internal/entity"
)

func userTurn(contents ...string) entity.ConversationTurn {
	turn := entity.ConversationTurn{}
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, c := range contents {
		turn.Messages = append(turn.Messages, entity.TurnMessage{
			Role:      constant.ChatMessageRoleUser,
			Content:   c,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		})
	}
	return turn
}

func TestResolvePassThrough(t *testing.T) {
	r := New()

	tests := []struct {
		name     string
		question string
	}{
		{"explicit subject clause", "mục tiêu của môn Cơ sở dữ liệu là gì"},
		{"course code", "21IT4409 có bao nhiêu tín chỉ"},
		{"non-topic question", "trường có bao nhiêu cơ sở"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := r.Resolve(tt.question, nil)
			if outcome.NeedsClarification {
				t.Error("unexpected clarification")
			}
			if outcome.Question != tt.question {
				t.Errorf("question rewritten to %q, want unchanged", outcome.Question)
			}
		})
	}
}

func TestResolveNeedsClarification(t *testing.T) {
	r := New()

	outcome := r.Resolve("mục tiêu là gì", nil)
	if !outcome.NeedsClarification {
		t.Fatal("expected clarification with no history")
	}
	if outcome.Question != "mục tiêu là gì" {
		t.Errorf("question changed to %q", outcome.Question)
	}
}

func TestResolveFromHistorySubjectClause(t *testing.T) {
	r := New()

	turns := []entity.ConversationTurn{
		userTurn("cho mình xem đề cương môn Cơ sở dữ liệu"),
	}

	outcome := r.Resolve("số tín chỉ là bao nhiêu", turns)
	if outcome.NeedsClarification {
		t.Fatal("expected resolution from history")
	}
	want := "số tín chỉ là bao nhiêu của môn Cơ sở dữ liệu"
	if outcome.Question != want {
		t.Errorf("got %q, want %q", outcome.Question, want)
	}
}

func TestResolveFromHistoryCourseCode(t *testing.T) {
	r := New()

	turns := []entity.ConversationTurn{
		userTurn("21IT4409 học những gì vậy"),
	}

	outcome := r.Resolve("chuẩn đầu ra gồm những gì", turns)
	if outcome.NeedsClarification {
		t.Fatal("expected resolution from history")
	}
	if outcome.Question != "chuẩn đầu ra gồm những gì của môn 21IT4409" {
		t.Errorf("got %q", outcome.Question)
	}
}

func TestResolveFromHistoryNamedSubject(t *testing.T) {
	r := New()

	turns := []entity.ConversationTurn{
		userTurn("mình đang học bóng chuyền kỳ này"),
	}

	outcome := r.Resolve("phương thức đánh giá như thế nào", turns)
	if outcome.NeedsClarification {
		t.Fatal("expected resolution from history")
	}
	if outcome.Question != "phương thức đánh giá như thế nào của môn Bóng Chuyền" {
		t.Errorf("got %q", outcome.Question)
	}
}

func TestResolvePrefersNewestTurn(t *testing.T) {
	r := New()

	// Turns arrive newest first.
	turns := []entity.ConversationTurn{
		userTurn("đề cương môn Lập trình Web"),
		userTurn("đề cương môn Cơ sở dữ liệu"),
	}

	outcome := r.Resolve("nội dung gồm những chương nào", turns)
	if outcome.Question != "nội dung gồm những chương nào của môn Lập trình Web" {
		t.Errorf("got %q, want newest turn's subject", outcome.Question)
	}
}

func TestResolveSkipsBareKeywordMessages(t *testing.T) {
	r := New()

	turns := []entity.ConversationTurn{
		userTurn("đề cương môn Hatha Yoga", "mục tiêu?"),
	}

	outcome := r.Resolve("giáo trình sử dụng sách nào", turns)
	if outcome.NeedsClarification {
		t.Fatal("expected resolution, bare keyword message should be skipped")
	}
	if outcome.Question != "giáo trình sử dụng sách nào của môn Hatha Yoga" {
		t.Errorf("got %q", outcome.Question)
	}
}

func TestResolveIgnoresAssistantMessages(t *testing.T) {
	r := New()

	turns := []entity.ConversationTurn{
		{
			Messages: []entity.TurnMessage{
				{Role: constant.ChatMessageRoleModel, Content: "Môn Cờ vua có 2 tín chỉ."},
			},
		},
	}

	outcome := r.Resolve("mục tiêu của học phần", turns)
	if !outcome.NeedsClarification {
		t.Errorf("assistant messages must not supply subjects, got %q", outcome.Question)
	}
}

func TestResolveDeterministic(t *testing.T) {
	r := New()

	turns := []entity.ConversationTurn{
		userTurn("đề cương môn Cơ sở dữ liệu"),
	}

	first := r.Resolve("nội dung chi tiết ra sao", turns)
	for i := 0; i < 10; i++ {
		again := r.Resolve("nội dung chi tiết ra sao", turns)
		if again != first {
			t.Fatalf("resolution not deterministic: %+v vs %+v", again, first)
		}
	}
}

func TestSubjectClauseMatcherTrimsTail(t *testing.T) {
	m := SubjectClauseMatcher{}

	tests := []struct {
		message string
		want    string
	}{
		{"đề cương môn Cơ sở dữ liệu", "Cơ sở dữ liệu"},
		{"môn Lập trình Web là gì", "Lập trình Web"},
		{"môn này là gì", ""},
		{"không nói về môn nào cả", ""},
		{"học môn Giải tích nào vậy", "Giải tích"},
	}

	for _, tt := range tests {
		if got := m.Match(tt.message); got != tt.want {
			t.Errorf("Match(%q) = %q, want %q", tt.message, got, tt.want)
		}
	}
}

func TestCourseCodeMatcher(t *testing.T) {
	m := CourseCodeMatcher{}

	tests := []struct {
		message string
		want    string
	}{
		{"mã môn 21IT4409 nhé", "21IT4409"},
		{"22se001a123 thì sao", "22SE001A123"},
		{"không có mã nào", ""},
		{"số 123456 không phải mã môn", ""},
	}

	for _, tt := range tests {
		if got := m.Match(tt.message); got != tt.want {
			t.Errorf("Match(%q) = %q, want %q", tt.message, got, tt.want)
		}
	}
}
