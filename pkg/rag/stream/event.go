package stream

import (
	"syllabus-bot-be/internal/entity"
)

// Event types emitted over the answer stream.
const (
	EventChunk    = "chunk"
	EventSources  = "sources"
	EventComplete = "complete"
	EventError    = "error"
)

// Event is one frame of the answer stream. Only the fields relevant to the
// event type are set.
type Event struct {
	Type    string           `json:"type"`
	Text    string           `json:"text,omitempty"`
	Message string           `json:"message,omitempty"`
	Sources []SourceDocument `json:"sources,omitempty"`
}

// SourceDocument is the citation payload for one retrieved chunk.
type SourceDocument struct {
	Content string  `json:"content"`
	Source  string  `json:"source"`
	Type    string  `json:"type"`
	Subject string  `json:"subject"`
	ChunkID string  `json:"chunk_id"`
	Score   float64 `json:"score"`
}

func chunkEvent(text string) Event {
	return Event{Type: EventChunk, Text: text}
}

func completeEvent() Event {
	return Event{Type: EventComplete}
}

func errorEvent(message string) Event {
	return Event{Type: EventError, Message: message}
}

func sourcesEvent(chunks []*entity.ScoredChunk) Event {
	sources := make([]SourceDocument, 0, len(chunks))
	for _, sc := range chunks {
		sources = append(sources, SourceDocument{
			Content: sc.Chunk.Content,
			Source:  sc.Chunk.Metadata.Source,
			Type:    sc.Chunk.Metadata.Type,
			Subject: sc.Chunk.Metadata.Subject,
			ChunkID: sc.Chunk.Metadata.ChunkID,
			Score:   sc.Similarity,
		})
	}
	return Event{Type: EventSources, Sources: sources}
}
