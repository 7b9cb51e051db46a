package entity

import (
	"time"

	"github.com/google/uuid"
)

// Document type values stored in chunk metadata.
const (
	DocTypePDF  = "pdf"
	DocTypeURL  = "url"
	DocTypeText = "text"
)

// ChunkMetadata describes where a chunk came from and how it was produced.
type ChunkMetadata struct {
	Source      string
	Type        string
	Name        string
	Subject     string
	IsSyllabus  bool
	ChunkID     string
	ChunkIndex  int
	TotalChunks int
}

// DocumentChunk is one indexed unit of text. Chunks are immutable after
// ingestion and are only removed by source-scoped deletion.
type DocumentChunk struct {
	Id        uuid.UUID
	Content   string
	Embedding []float32
	Metadata  ChunkMetadata
	CreatedAt time.Time
}

// ScoredChunk pairs a chunk with its cosine similarity against a query.
type ScoredChunk struct {
	Chunk      *DocumentChunk
	Similarity float64
}

// MetadataFilter narrows GetAll style listings. Nil fields match everything.
type MetadataFilter struct {
	Subject    *string
	Type       *string
	IsSyllabus *bool
}
