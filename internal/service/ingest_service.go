package service

import (
	"context"

	"syllabus-bot-be/internal/dto"
	"syllabus-bot-be/internal/pkg/logger"
	"syllabus-bot-be/pkg/loader"
	"syllabus-bot-be/pkg/rag/index"
	"syllabus-bot-be/pkg/rag/splitter"
)

// IIngestService defines the ingestion service interface.
type IIngestService interface {
	IngestBatch(ctx context.Context, request *dto.IngestRequest) (*dto.IngestResponse, error)
	IngestDirectory(ctx context.Context, dir string) (*dto.IngestResponse, error)
	DeleteSource(ctx context.Context, source string) (int64, error)
}

type ingestService struct {
	vectorIndex *index.Index
	splitter    *splitter.Splitter
	log         logger.ILogger
}

func NewIngestService(vectorIndex *index.Index, split *splitter.Splitter, log logger.ILogger) IIngestService {
	return &ingestService{
		vectorIndex: vectorIndex,
		splitter:    split,
		log:         log,
	}
}

// IngestBatch loads, chunks and indexes the requested sources synchronously.
// A source that fails to load is recorded as a failure and skipped; the rest
// of the batch still goes through. A batch where nothing loads returns an
// empty result, not an error.
func (is *ingestService) IngestBatch(ctx context.Context, request *dto.IngestRequest) (*dto.IngestResponse, error) {
	var docs []*loader.Document
	var failures []string

	for _, path := range request.Documents {
		doc, err := loader.LoadFile(path)
		if err != nil {
			failures = append(failures, err.Error())
			continue
		}
		docs = append(docs, doc)
	}

	for _, item := range request.URLs {
		doc, err := loader.FetchURL(item.URL, item.Name)
		if err != nil {
			failures = append(failures, err.Error())
			continue
		}
		docs = append(docs, doc)
	}

	return is.indexDocuments(ctx, docs, failures)
}

// IngestDirectory indexes every supported file under dir.
func (is *ingestService) IngestDirectory(ctx context.Context, dir string) (*dto.IngestResponse, error) {
	docs, loadErrs := loader.LoadDirectory(dir)

	var failures []string
	for _, err := range loadErrs {
		failures = append(failures, err.Error())
	}

	return is.indexDocuments(ctx, docs, failures)
}

func (is *ingestService) indexDocuments(ctx context.Context, docs []*loader.Document, failures []string) (*dto.IngestResponse, error) {
	response := &dto.IngestResponse{
		DocumentsLoaded: len(docs),
		Failures:        failures,
	}

	if len(docs) == 0 {
		is.log.Warn("ingest", "nothing loaded, skipping indexing", map[string]interface{}{
			"failures": len(failures),
		})
		return response, nil
	}

	chunks := is.splitter.SplitDocuments(docs)

	result, err := is.vectorIndex.Insert(ctx, chunks)
	if err != nil {
		return nil, err
	}

	response.ChunksIndexed = result.Indexed
	response.ChunksSkipped = result.Skipped

	is.log.Info("ingest", "batch indexed", map[string]interface{}{
		"documents": len(docs),
		"indexed":   result.Indexed,
		"skipped":   result.Skipped,
		"failures":  len(failures),
	})
	return response, nil
}

// DeleteSource removes every chunk ingested from source. Unknown sources
// report zero deletions.
func (is *ingestService) DeleteSource(ctx context.Context, source string) (int64, error) {
	deleted, err := is.vectorIndex.DeleteBySource(ctx, source)
	if err != nil {
		return 0, err
	}

	is.log.Info("ingest", "source deleted", map[string]interface{}{
		"source":  source,
		"deleted": deleted,
	})
	return deleted, nil
}
