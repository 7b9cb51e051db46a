package service

import (
	"context"

	"syllabus-bot-be/internal/dto"
	"syllabus-bot-be/internal/entity"
	"syllabus-bot-be/internal/pkg/logger"
	"syllabus-bot-be/internal/repository/contract"
	"syllabus-bot-be/pkg/rag/index"
	"syllabus-bot-be/pkg/rag/stream"
)

// Chunk content is truncated in listings to keep responses small.
const searchContentPreviewLen = 200

// IChatbotService defines the chatbot service interface.
type IChatbotService interface {
	AskStream(ctx context.Context, userId, question string) <-chan stream.Event
	GetHistory(ctx context.Context, userId string) ([]*dto.GetHistoryResponse, error)
	MetadataStats(ctx context.Context) (*dto.MetadataStatsResponse, error)
	SearchByMetadata(ctx context.Context, request *dto.SearchByMetadataRequest) ([]*dto.SearchByMetadataResponse, error)
}

type chatbotService struct {
	streamer     *stream.Streamer
	chatRepo     contract.ChatRepository
	vectorIndex  *index.Index
	historyLimit int
	log          logger.ILogger
}

func NewChatbotService(
	streamer *stream.Streamer,
	chatRepo contract.ChatRepository,
	vectorIndex *index.Index,
	historyLimit int,
	log logger.ILogger,
) IChatbotService {
	if historyLimit <= 0 {
		historyLimit = 5
	}
	return &chatbotService{
		streamer:     streamer,
		chatRepo:     chatRepo,
		vectorIndex:  vectorIndex,
		historyLimit: historyLimit,
		log:          log,
	}
}

// AskStream answers a question as an event stream. Anonymous callers get no
// history and no persistence; a history load failure degrades to an empty
// history rather than failing the question.
func (cs *chatbotService) AskStream(ctx context.Context, userId, question string) <-chan stream.Event {
	var turns []entity.ConversationTurn
	if userId != "" {
		loaded, err := cs.chatRepo.GetRecentTurns(ctx, userId, cs.historyLimit)
		if err != nil {
			cs.log.Warn("chatbot", "failed to load history, continuing without it", map[string]interface{}{
				"user_id": userId,
				"error":   err.Error(),
			})
		} else {
			turns = loaded
		}
	}

	return cs.streamer.Stream(ctx, stream.Request{
		Question: question,
		UserId:   userId,
		Turns:    turns,
	})
}

// GetHistory returns the caller's recent conversation turns, newest first.
func (cs *chatbotService) GetHistory(ctx context.Context, userId string) ([]*dto.GetHistoryResponse, error) {
	turns, err := cs.chatRepo.GetRecentTurns(ctx, userId, cs.historyLimit)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.GetHistoryResponse, 0, len(turns))
	for _, turn := range turns {
		item := &dto.GetHistoryResponse{ChatId: turn.ChatId}
		for _, msg := range turn.Messages {
			item.Messages = append(item.Messages, dto.HistoryMessageItem{
				Role:      msg.Role,
				Content:   msg.Content,
				Timestamp: msg.Timestamp,
			})
		}
		response = append(response, item)
	}
	return response, nil
}

// MetadataStats aggregates subject, type and syllabus counts over the index.
func (cs *chatbotService) MetadataStats(ctx context.Context) (*dto.MetadataStatsResponse, error) {
	total, err := cs.vectorIndex.Count(ctx)
	if err != nil {
		return nil, err
	}

	chunks, err := cs.vectorIndex.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}

	stats := &dto.MetadataStatsResponse{
		TotalChunks:   total,
		SubjectCounts: make(map[string]int),
		TypeCounts:    make(map[string]int),
	}
	for _, chunk := range chunks {
		stats.SubjectCounts[chunk.Metadata.Subject]++
		stats.TypeCounts[chunk.Metadata.Type]++
		if chunk.Metadata.IsSyllabus {
			stats.SyllabusChunks++
		}
	}
	if len(chunks) > 0 {
		stats.SyllabusPercent = float64(stats.SyllabusChunks) / float64(len(chunks)) * 100
	}
	return stats, nil
}

// SearchByMetadata lists chunks matching the metadata filter with content
// truncated for display.
func (cs *chatbotService) SearchByMetadata(ctx context.Context, request *dto.SearchByMetadataRequest) ([]*dto.SearchByMetadataResponse, error) {
	filter := &entity.MetadataFilter{}
	if request.Subject != "" {
		filter.Subject = &request.Subject
	}
	if request.Type != "" {
		filter.Type = &request.Type
	}
	if request.IsSyllabus != nil {
		filter.IsSyllabus = request.IsSyllabus
	}

	chunks, err := cs.vectorIndex.GetAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	if request.Limit > 0 && len(chunks) > request.Limit {
		chunks = chunks[:request.Limit]
	}

	response := make([]*dto.SearchByMetadataResponse, 0, len(chunks))
	for _, chunk := range chunks {
		response = append(response, &dto.SearchByMetadataResponse{
			ChunkId:    chunk.Metadata.ChunkID,
			Content:    truncateRunes(chunk.Content, searchContentPreviewLen),
			Source:     chunk.Metadata.Source,
			Type:       chunk.Metadata.Type,
			Subject:    chunk.Metadata.Subject,
			IsSyllabus: chunk.Metadata.IsSyllabus,
		})
	}
	return response, nil
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
