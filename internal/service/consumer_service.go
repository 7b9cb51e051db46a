package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"syllabus-bot-be/internal/constant"
	"syllabus-bot-be/internal/dto"
	"syllabus-bot-be/internal/pkg/logger"
	"syllabus-bot-be/internal/repository/contract"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the save topic and persists finished exchanges.
type consumerService struct {
	pubSub   *gochannel.GoChannel
	chatRepo contract.ChatRepository
	log      logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	chatRepo contract.ChatRepository,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:   pubSub,
		chatRepo: chatRepo,
		log:      log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, constant.SaveExchangeTopicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.SaveExchangeMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("consumer", "failed to unmarshal exchange message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		// Ack malformed messages to prevent infinite redelivery.
		msg.Ack()
		return
	}

	if payload.UserId == "" || payload.Question == "" {
		cs.log.Warn("consumer", "dropping incomplete exchange message", map[string]interface{}{
			"message_id": msg.UUID,
		})
		msg.Ack()
		return
	}

	err := cs.chatRepo.SaveExchange(ctx, payload.UserId, payload.Question, payload.Answer, payload.Sources)
	if err != nil {
		cs.log.Error("consumer", "failed to persist exchange", map[string]interface{}{
			"user_id": payload.UserId,
			"error":   err.Error(),
		})
		msg.Nack()
		return
	}

	cs.log.Info("consumer", "exchange persisted", map[string]interface{}{
		"user_id": payload.UserId,
	})
	msg.Ack()
}
