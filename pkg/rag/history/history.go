package history

import (
	"fmt"
	"sort"
	"strings"

	"syllabus-bot-be/internal/constant"
	"syllabus-bot-be/internal/entity"
)

const (
	emptyHistoryPlaceholder = "Chưa có lịch sử hội thoại trước đó."
	historyContextHeader    = "Ngữ cảnh cuộc hội thoại trước đó:\n"
)

// Format flattens conversation turns into the text block embedded in the LLM
// prompt. Messages are ordered chronologically regardless of turn order, one
// line per message. With no usable messages a Vietnamese placeholder is
// returned so the prompt never carries an empty section.
func Format(turns []entity.ConversationTurn) string {
	var messages []entity.TurnMessage
	for _, turn := range turns {
		for _, msg := range turn.Messages {
			if msg.Content == "" {
				continue
			}
			if msg.Role != constant.ChatMessageRoleUser && msg.Role != constant.ChatMessageRoleModel {
				continue
			}
			messages = append(messages, msg)
		}
	}

	if len(messages) == 0 {
		return emptyHistoryPlaceholder
	}

	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Timestamp.Before(messages[j].Timestamp)
	})

	lines := make([]string, 0, len(messages))
	for _, msg := range messages {
		timestamp := msg.Timestamp.Format("2006-01-02 15:04:05")
		lines = append(lines, fmt.Sprintf("[%s] %s: %s", timestamp, capitalizeRole(msg.Role), msg.Content))
	}

	block := strings.Join(lines, "\n")
	if len(messages) > 2 {
		return historyContextHeader + block
	}
	return block
}

func capitalizeRole(role string) string {
	if role == "" {
		return role
	}
	return strings.ToUpper(role[:1]) + role[1:]
}
