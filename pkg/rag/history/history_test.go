package history

import (
	"strings"
	"testing"
	"time"

	"syllabus-bot-be/internal/constant"
	"syllabus-bot-be/internal/entity"
)

func TestFormatEmptyHistory(t *testing.T) {
	got := Format(nil)
	if got != "Chưa có lịch sử hội thoại trước đó." {
		t.Errorf("got %q, want placeholder", got)
	}

	got = Format([]entity.ConversationTurn{{}})
	if got != "Chưa có lịch sử hội thoại trước đó." {
		t.Errorf("empty turn: got %q, want placeholder", got)
	}
}

func TestFormatLineLayout(t *testing.T) {
	ts := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	turns := []entity.ConversationTurn{
		{
			Messages: []entity.TurnMessage{
				{Role: constant.ChatMessageRoleUser, Content: "đề cương môn Python", Timestamp: ts},
				{Role: constant.ChatMessageRoleModel, Content: "Môn Python có 3 tín chỉ.", Timestamp: ts.Add(time.Second)},
			},
		},
	}

	got := Format(turns)
	want := "[2025-03-01 09:30:00] User: đề cương môn Python\n" +
		"[2025-03-01 09:30:01] Assistant: Môn Python có 3 tín chỉ."
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatSortsChronologicallyAcrossTurns(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	// Turns come newest first from the repository.
	turns := []entity.ConversationTurn{
		{
			Messages: []entity.TurnMessage{
				{Role: constant.ChatMessageRoleUser, Content: "câu hỏi thứ hai", Timestamp: base.Add(time.Hour)},
			},
		},
		{
			Messages: []entity.TurnMessage{
				{Role: constant.ChatMessageRoleUser, Content: "câu hỏi đầu tiên", Timestamp: base},
			},
		},
	}

	got := Format(turns)
	firstIdx := strings.Index(got, "câu hỏi đầu tiên")
	secondIdx := strings.Index(got, "câu hỏi thứ hai")
	if firstIdx < 0 || secondIdx < 0 || firstIdx > secondIdx {
		t.Errorf("messages not chronological:\n%s", got)
	}
}

func TestFormatAddsHeaderForLongerHistory(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	turns := []entity.ConversationTurn{
		{
			Messages: []entity.TurnMessage{
				{Role: constant.ChatMessageRoleUser, Content: "một", Timestamp: base},
				{Role: constant.ChatMessageRoleModel, Content: "hai", Timestamp: base.Add(time.Second)},
				{Role: constant.ChatMessageRoleUser, Content: "ba", Timestamp: base.Add(2 * time.Second)},
			},
		},
	}

	got := Format(turns)
	if !strings.HasPrefix(got, "Ngữ cảnh cuộc hội thoại trước đó:\n") {
		t.Errorf("missing context header:\n%s", got)
	}
}

func TestFormatSkipsUnknownRolesAndEmptyContent(t *testing.T) {
	ts := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	turns := []entity.ConversationTurn{
		{
			Messages: []entity.TurnMessage{
				{Role: "system", Content: "nội bộ", Timestamp: ts},
				{Role: constant.ChatMessageRoleUser, Content: "", Timestamp: ts},
				{Role: constant.ChatMessageRoleUser, Content: "câu hỏi thật", Timestamp: ts},
			},
		},
	}

	got := Format(turns)
	if strings.Contains(got, "nội bộ") {
		t.Error("system message leaked into history block")
	}
	if !strings.Contains(got, "câu hỏi thật") {
		t.Error("user message missing from history block")
	}
}
