package main

import (
	"context"
	"flag"
	"log"
	"strings"

	"github.com/fatih/color"

	"syllabus-bot-be/internal/bootstrap"
	"syllabus-bot-be/internal/config"
	"syllabus-bot-be/internal/dto"
	"syllabus-bot-be/internal/model"
	"syllabus-bot-be/pkg/database"
)

func main() {
	dir := flag.String("dir", "", "directory of .pdf/.txt files to ingest (defaults to DOCUMENTS_DIR)")
	urls := flag.String("urls", "", "comma-separated list of URLs to ingest")
	flag.Parse()

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}
	if err := gormDB.AutoMigrate(&model.DocumentChunk{}); err != nil {
		log.Fatalf("Unable to migrate schema: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)
	ctx := context.Background()

	targetDir := *dir
	if targetDir == "" && *urls == "" {
		targetDir = cfg.Ingest.DocumentsDir
	}

	var total dto.IngestResponse

	if targetDir != "" {
		color.Cyan("Ingesting directory: %s", targetDir)
		result, err := container.IngestService.IngestDirectory(ctx, targetDir)
		if err != nil {
			log.Fatalf("Directory ingestion failed: %v", err)
		}
		accumulate(&total, result)
	}

	if *urls != "" {
		request := &dto.IngestRequest{}
		for _, raw := range strings.Split(*urls, ",") {
			u := strings.TrimSpace(raw)
			if u != "" {
				request.URLs = append(request.URLs, dto.IngestURLItem{URL: u})
			}
		}
		color.Cyan("Ingesting %d URL(s)", len(request.URLs))
		result, err := container.IngestService.IngestBatch(ctx, request)
		if err != nil {
			log.Fatalf("URL ingestion failed: %v", err)
		}
		accumulate(&total, result)
	}

	color.Green("Done: %d document(s) loaded, %d chunk(s) indexed, %d skipped",
		total.DocumentsLoaded, total.ChunksIndexed, total.ChunksSkipped)
	if len(total.Failures) > 0 {
		color.Yellow("%d source(s) failed:", len(total.Failures))
		for _, failure := range total.Failures {
			color.Yellow("  - %s", failure)
		}
	}
}

func accumulate(total *dto.IngestResponse, result *dto.IngestResponse) {
	total.DocumentsLoaded += result.DocumentsLoaded
	total.ChunksIndexed += result.ChunksIndexed
	total.ChunksSkipped += result.ChunksSkipped
	total.Failures = append(total.Failures, result.Failures...)
}
