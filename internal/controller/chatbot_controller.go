package controller

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"syllabus-bot-be/internal/dto"
	"syllabus-bot-be/internal/pkg/logger"
	"syllabus-bot-be/internal/pkg/serverutils"
	"syllabus-bot-be/internal/service"
)

type ChatbotController struct {
	chatbotService service.IChatbotService
	log            logger.ILogger
}

func NewChatbotController(chatbotService service.IChatbotService, log logger.ILogger) *ChatbotController {
	return &ChatbotController{chatbotService: chatbotService, log: log}
}

func (cc *ChatbotController) RegisterRoutes(router fiber.Router) {
	chatbot := router.Group("/chatbot/v1")
	chatbot.Get("/ask-stream", serverutils.OptionalJwtMiddleware, cc.AskStream)
	chatbot.Get("/history", serverutils.JwtMiddleware, cc.GetHistory)
	chatbot.Get("/metadata-stats", cc.MetadataStats)
	chatbot.Get("/search-by-metadata", cc.SearchByMetadata)
}

// AskStream answers a question over Server-Sent Events. Each frame is one
// "data: {json}\n\n" block; the stream ends with a complete event followed by
// the source citations.
func (cc *ChatbotController) AskStream(ctx *fiber.Ctx) error {
	var request dto.AskStreamRequest
	if err := ctx.QueryParser(&request); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query parameters")
	}
	if err := serverutils.ValidateRequest(&request); err != nil {
		return err
	}

	userId := serverutils.UserIdFromLocals(ctx)

	ctx.Set(fiber.HeaderContentType, "text/event-stream")
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Set(fiber.HeaderConnection, "keep-alive")
	ctx.Set("X-Accel-Buffering", "no")

	// The fiber context is recycled once the handler returns, so the stream
	// writer runs on its own context and cancels when the client goes away.
	streamCtx, cancel := context.WithCancel(context.Background())
	events := cc.chatbotService.AskStream(streamCtx, userId, request.Question)

	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()

		for event := range events {
			payload, err := json.Marshal(event)
			if err != nil {
				cc.log.Error("chatbot_controller", "failed to marshal event", map[string]interface{}{
					"error": err.Error(),
				})
				continue
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
				return
			}
			if err := w.Flush(); err != nil {
				// Client disconnected. Cancel so the pipeline stops.
				return
			}
		}
	}))

	return nil
}

// GetHistory returns the caller's recent conversation turns.
func (cc *ChatbotController) GetHistory(ctx *fiber.Ctx) error {
	userId := serverutils.UserIdFromLocals(ctx)
	if userId == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Missing user identity")
	}

	history, err := cc.chatbotService.GetHistory(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("History retrieved", history))
}

// MetadataStats summarizes the indexed corpus.
func (cc *ChatbotController) MetadataStats(ctx *fiber.Ctx) error {
	stats, err := cc.chatbotService.MetadataStats(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Stats retrieved", stats))
}

// SearchByMetadata lists indexed chunks filtered by subject, type or the
// syllabus flag.
func (cc *ChatbotController) SearchByMetadata(ctx *fiber.Ctx) error {
	var request dto.SearchByMetadataRequest
	if err := ctx.QueryParser(&request); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query parameters")
	}
	if err := serverutils.ValidateRequest(&request); err != nil {
		return err
	}

	results, err := cc.chatbotService.SearchByMetadata(ctx.Context(), &request)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Search complete", results))
}
