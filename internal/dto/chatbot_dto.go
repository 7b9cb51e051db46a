package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AskStreamRequest carries the question for the streaming ask endpoint.
// Bound from query parameters so the endpoint works with EventSource.
type AskStreamRequest struct {
	Question string `query:"q" validate:"required,min=1,max=2000"`
}

// SaveExchangeMessage is the payload published to the persistence consumer
// after a stream finishes.
type SaveExchangeMessage struct {
	UserId   string          `json:"user_id"`
	Question string          `json:"question"`
	Answer   string          `json:"answer"`
	Sources  json.RawMessage `json:"sources,omitempty"`
}

// GetHistoryResponse is one past conversation turn.
type GetHistoryResponse struct {
	ChatId   uuid.UUID            `json:"chat_id"`
	Messages []HistoryMessageItem `json:"messages"`
}

type HistoryMessageItem struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// MetadataStatsResponse summarizes the indexed corpus.
type MetadataStatsResponse struct {
	TotalChunks     int64          `json:"total_chunks"`
	SubjectCounts   map[string]int `json:"subject_counts"`
	TypeCounts      map[string]int `json:"type_counts"`
	SyllabusChunks  int            `json:"syllabus_chunks"`
	SyllabusPercent float64        `json:"syllabus_percent"`
}

// SearchByMetadataRequest filters indexed chunks by their metadata fields.
// Empty fields match everything.
type SearchByMetadataRequest struct {
	Subject    string `query:"subject"`
	Type       string `query:"type" validate:"omitempty,oneof=pdf url text"`
	IsSyllabus *bool  `query:"is_syllabus"`
	Limit      int    `query:"limit" validate:"omitempty,min=1,max=500"`
}

// SearchByMetadataResponse is one matching chunk with truncated content.
type SearchByMetadataResponse struct {
	ChunkId    string `json:"chunk_id"`
	Content    string `json:"content"`
	Source     string `json:"source"`
	Type       string `json:"type"`
	Subject    string `json:"subject"`
	IsSyllabus bool   `json:"is_syllabus"`
}
