package stream

import (
	"context"
	"strings"
	"time"

	"syllabus-bot-be/internal/constant"
	"syllabus-bot-be/internal/entity"
	"syllabus-bot-be/internal/pkg/logger"
	"syllabus-bot-be/pkg/llm"
	"syllabus-bot-be/pkg/rag/history"
	"syllabus-bot-be/pkg/rag/prompt"
	"syllabus-bot-be/pkg/rag/resolver"
)

const noContextMessage = "Xin lỗi, mình không tìm thấy thông tin phù hợp trong đề cương. Bạn có thể hỏi cụ thể hơn về môn học được không?"

// Retriever is the retrieval slice the streamer depends on.
type Retriever interface {
	Retrieve(ctx context.Context, question string) ([]*entity.ScoredChunk, error)
	Ready(ctx context.Context) bool
}

// SubjectResolver rewrites follow-up questions using conversation history.
type SubjectResolver interface {
	Resolve(question string, turns []entity.ConversationTurn) resolver.Outcome
}

// Greeter detects greetings and supplies canned replies.
type Greeter interface {
	IsGreeting(message string) bool
	Pick() string
}

// Saver persists a finished exchange. Implementations are expected to be
// asynchronous so saving never blocks the stream.
type Saver interface {
	Save(userId, question, answer string, sources []SourceDocument) error
}

// Request is one question entering the pipeline. Turns carry the caller's
// recent conversation history, newest first.
type Request struct {
	Question string
	UserId   string
	Turns    []entity.ConversationTurn
}

type Streamer struct {
	retriever   Retriever
	llm         llm.LLMProvider
	resolver    SubjectResolver
	greeter     Greeter
	saver       Saver
	log         logger.ILogger
	llmTimeout  time.Duration
	typingDelay time.Duration
}

func NewStreamer(
	retriever Retriever,
	llmProvider llm.LLMProvider,
	subjectResolver SubjectResolver,
	greeter Greeter,
	saver Saver,
	log logger.ILogger,
	llmTimeout time.Duration,
) *Streamer {
	if llmTimeout <= 0 {
		llmTimeout = 30 * time.Second
	}
	return &Streamer{
		retriever:   retriever,
		llm:         llmProvider,
		resolver:    subjectResolver,
		greeter:     greeter,
		saver:       saver,
		log:         log,
		llmTimeout:  llmTimeout,
		typingDelay: 15 * time.Millisecond,
	}
}

// Stream answers the request as a sequence of events: answer chunks, then a
// completion marker, then the source citations. Failures surface as an error
// event followed by a completion marker so consumers always see a terminal
// frame. The channel is closed when the stream is done.
func (s *Streamer) Stream(ctx context.Context, req Request) <-chan Event {
	out := make(chan Event, 16)

	go func() {
		defer close(out)
		s.run(ctx, req, out)
	}()

	return out
}

func (s *Streamer) run(ctx context.Context, req Request, out chan<- Event) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		s.emit(ctx, out, errorEvent("câu hỏi trống"))
		s.emit(ctx, out, completeEvent())
		return
	}

	if s.greeter.IsGreeting(question) {
		reply := s.greeter.Pick()
		s.streamCanned(ctx, out, reply)
		s.save(req, reply, nil)
		return
	}

	if !s.retriever.Ready(ctx) {
		s.emit(ctx, out, errorEvent(constant.IndexNotReadyMessage))
		s.emit(ctx, out, completeEvent())
		return
	}

	outcome := s.resolver.Resolve(question, req.Turns)
	if outcome.NeedsClarification {
		s.streamCanned(ctx, out, constant.ClarificationMessage)
		s.save(req, constant.ClarificationMessage, nil)
		return
	}

	// Retrieval and history formatting are independent; run them concurrently.
	type retrievalResult struct {
		chunks []*entity.ScoredChunk
		err    error
	}
	retrievalCh := make(chan retrievalResult, 1)
	go func() {
		chunks, err := s.retriever.Retrieve(ctx, outcome.Question)
		retrievalCh <- retrievalResult{chunks: chunks, err: err}
	}()

	historyBlock := history.Format(req.Turns)
	retrieval := <-retrievalCh

	if retrieval.err != nil {
		s.log.Error("stream", "retrieval failed", map[string]interface{}{
			"question": outcome.Question,
			"error":    retrieval.err.Error(),
		})
		s.emit(ctx, out, errorEvent("không thể truy vấn dữ liệu đề cương"))
		s.emit(ctx, out, completeEvent())
		return
	}

	if len(retrieval.chunks) == 0 {
		s.streamCanned(ctx, out, noContextMessage)
		s.save(req, noContextMessage, nil)
		return
	}

	contents := make([]string, 0, len(retrieval.chunks))
	for _, sc := range retrieval.chunks {
		contents = append(contents, sc.Chunk.Content)
	}

	fullPrompt := prompt.NewBuilder().
		WithHistory(historyBlock).
		WithContext(prompt.FormatContext(contents)).
		WithQuestion(outcome.Question).
		Build()

	llmCtx, cancel := context.WithTimeout(ctx, s.llmTimeout)
	defer cancel()

	var answer strings.Builder
	streamErr := s.llm.GenerateStream(llmCtx, fullPrompt, func(fragment string) error {
		answer.WriteString(fragment)
		if !s.emit(ctx, out, chunkEvent(fragment)) {
			return ctx.Err()
		}
		return nil
	}, llm.WithTemperature(0.01))

	if streamErr != nil {
		s.log.Error("stream", "generation failed", map[string]interface{}{
			"question": outcome.Question,
			"error":    streamErr.Error(),
		})
		s.emit(ctx, out, errorEvent("không thể sinh câu trả lời"))
		s.emit(ctx, out, completeEvent())
		return
	}

	sources := sourcesEvent(retrieval.chunks)
	s.emit(ctx, out, completeEvent())
	s.emit(ctx, out, sources)

	s.save(req, answer.String(), sources.Sources)
}

// streamCanned types out a fixed reply character by character, then completes.
func (s *Streamer) streamCanned(ctx context.Context, out chan<- Event, reply string) {
	for _, r := range reply {
		if !s.emit(ctx, out, chunkEvent(string(r))) {
			return
		}
		if s.typingDelay > 0 {
			select {
			case <-time.After(s.typingDelay):
			case <-ctx.Done():
				return
			}
		}
	}
	s.emit(ctx, out, completeEvent())
}

func (s *Streamer) save(req Request, answer string, sources []SourceDocument) {
	if req.UserId == "" || s.saver == nil || answer == "" {
		return
	}
	if err := s.saver.Save(req.UserId, req.Question, answer, sources); err != nil {
		s.log.Warn("stream", "failed to queue exchange for persistence", map[string]interface{}{
			"user_id": req.UserId,
			"error":   err.Error(),
		})
	}
}

func (s *Streamer) emit(ctx context.Context, out chan<- Event, ev Event) bool {
	select {
	case out <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
