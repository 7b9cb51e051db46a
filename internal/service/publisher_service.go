package service

import (
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"syllabus-bot-be/internal/constant"
	"syllabus-bot-be/internal/dto"
	"syllabus-bot-be/pkg/rag/stream"
)

// ExchangePublisher hands finished exchanges to the background persistence
// consumer. Publishing is in-process and non-blocking, so the answer stream
// never waits on the database.
type ExchangePublisher struct {
	pubSub *gochannel.GoChannel
}

func NewExchangePublisher(pubSub *gochannel.GoChannel) *ExchangePublisher {
	return &ExchangePublisher{pubSub: pubSub}
}

// Save implements stream.Saver by publishing the exchange to the save topic.
func (p *ExchangePublisher) Save(userId, question, answer string, sources []stream.SourceDocument) error {
	var rawSources json.RawMessage
	if len(sources) > 0 {
		encoded, err := json.Marshal(sources)
		if err != nil {
			return err
		}
		rawSources = encoded
	}

	payload, err := json.Marshal(dto.SaveExchangeMessage{
		UserId:   userId,
		Question: question,
		Answer:   answer,
		Sources:  rawSources,
	})
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	return p.pubSub.Publish(constant.SaveExchangeTopicName, msg)
}
