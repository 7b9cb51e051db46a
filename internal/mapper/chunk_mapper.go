package mapper

import (
	"syllabus-bot-be/internal/entity"
	"syllabus-bot-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type ChunkMapper struct{}

func NewChunkMapper() *ChunkMapper {
	return &ChunkMapper{}
}

func (m *ChunkMapper) ToEntity(c *model.DocumentChunk) *entity.DocumentChunk {
	if c == nil {
		return nil
	}

	return &entity.DocumentChunk{
		Id:        c.Id,
		Content:   c.Content,
		Embedding: c.Embedding.Slice(),
		Metadata:  metadataFromMap(c.Metadata),
		CreatedAt: c.CreatedAt,
	}
}

func (m *ChunkMapper) ToModel(c *entity.DocumentChunk) *model.DocumentChunk {
	if c == nil {
		return nil
	}

	return &model.DocumentChunk{
		Id:        c.Id,
		Content:   c.Content,
		Embedding: pgvector.NewVector(c.Embedding),
		Source:    c.Metadata.Source,
		Metadata:  metadataToMap(c.Metadata),
		CreatedAt: c.CreatedAt,
	}
}

func (m *ChunkMapper) ToEntities(chunks []*model.DocumentChunk) []*entity.DocumentChunk {
	entities := make([]*entity.DocumentChunk, len(chunks))
	for i, c := range chunks {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func (m *ChunkMapper) ToModels(chunks []*entity.DocumentChunk) []*model.DocumentChunk {
	models := make([]*model.DocumentChunk, len(chunks))
	for i, c := range chunks {
		models[i] = m.ToModel(c)
	}
	return models
}

func metadataToMap(md entity.ChunkMetadata) datatypes.JSONMap {
	return datatypes.JSONMap{
		"source":       md.Source,
		"type":         md.Type,
		"name":         md.Name,
		"subject":      md.Subject,
		"is_syllabus":  md.IsSyllabus,
		"chunk_id":     md.ChunkID,
		"chunk_index":  md.ChunkIndex,
		"total_chunks": md.TotalChunks,
	}
}

func metadataFromMap(raw datatypes.JSONMap) entity.ChunkMetadata {
	md := entity.ChunkMetadata{}
	if raw == nil {
		return md
	}
	if v, ok := raw["source"].(string); ok {
		md.Source = v
	}
	if v, ok := raw["type"].(string); ok {
		md.Type = v
	}
	if v, ok := raw["name"].(string); ok {
		md.Name = v
	}
	if v, ok := raw["subject"].(string); ok {
		md.Subject = v
	}
	if v, ok := raw["is_syllabus"].(bool); ok {
		md.IsSyllabus = v
	}
	if v, ok := raw["chunk_id"].(string); ok {
		md.ChunkID = v
	}
	// JSON numbers decode as float64
	if v, ok := raw["chunk_index"].(float64); ok {
		md.ChunkIndex = int(v)
	}
	if v, ok := raw["total_chunks"].(float64); ok {
		md.TotalChunks = int(v)
	}
	return md
}
