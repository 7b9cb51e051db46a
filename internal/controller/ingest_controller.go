package controller

import (
	"github.com/gofiber/fiber/v2"

	"syllabus-bot-be/internal/dto"
	"syllabus-bot-be/internal/pkg/serverutils"
	"syllabus-bot-be/internal/service"
)

type IngestController struct {
	ingestService service.IIngestService
}

func NewIngestController(ingestService service.IIngestService) *IngestController {
	return &IngestController{ingestService: ingestService}
}

func (ic *IngestController) RegisterRoutes(router fiber.Router) {
	chatbot := router.Group("/chatbot/v1", serverutils.JwtMiddleware)
	chatbot.Post("/ingest", ic.Ingest)
	chatbot.Delete("/documents", ic.DeleteDocuments)
}

// Ingest runs a synchronous ingestion over the requested files and URLs and
// reports how many chunks were indexed.
func (ic *IngestController) Ingest(ctx *fiber.Ctx) error {
	var request dto.IngestRequest
	if err := ctx.BodyParser(&request); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(&request); err != nil {
		return err
	}
	if len(request.Documents) == 0 && len(request.URLs) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "No documents or urls given")
	}

	result, err := ic.ingestService.IngestBatch(ctx.Context(), &request)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Ingestion complete", result))
}

// DeleteDocuments removes every chunk ingested from one source.
func (ic *IngestController) DeleteDocuments(ctx *fiber.Ctx) error {
	var request dto.DeleteDocumentsRequest
	if err := ctx.BodyParser(&request); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(&request); err != nil {
		return err
	}

	deleted, err := ic.ingestService.DeleteSource(ctx.Context(), request.Source)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Documents deleted", dto.DeleteDocumentsResponse{Deleted: deleted}))
}
