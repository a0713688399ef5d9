package app

import (
	"context"
	"log"
	"time"

	"github.com/lexhub-io/lexhub/internal/config"
	"github.com/lexhub-io/lexhub/internal/core"
	db "github.com/lexhub-io/lexhub/internal/core/database"
	"github.com/lexhub-io/lexhub/internal/core/extraction"
	objectclient "github.com/lexhub-io/lexhub/internal/core/object-client"
	"github.com/lexhub-io/lexhub/internal/core/ocr"
	"github.com/lexhub-io/lexhub/internal/core/pipeline"
	"github.com/lexhub-io/lexhub/internal/services"
)

type App struct {
	DBClient     core.DbClient
	ObjectClient core.ObjectClient
	Queue        *pipeline.Queue
	Documents    *services.DocumentService
	Server       *Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	appCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	dbClient, err := db.NewDatabaseClient(appCtx, cfg)
	if err != nil {
		return nil, err
	}
	log.Println("Database initialized and ready.")

	objClient, err := objectclient.NewS3Client(appCtx, cfg)
	if err != nil {
		return nil, err
	}
	log.Println("Object client initialized and ready.")

	ocrClient := ocr.NewClient(cfg.OCRAPIURL, cfg.OCRLanguage, cfg.OCRTimeout)
	dispatcher := extraction.NewDispatcher(extraction.NewPDFExtractor(ocrClient))

	// The queue and the document service reference each other: uploads
	// enqueue IDs, workers call back into ProcessDocumentText.
	var docService *services.DocumentService
	queue := pipeline.NewQueue(pipeline.ProcessorFunc(func(ctx context.Context, id string) error {
		_, err := docService.ProcessDocumentText(ctx, id)
		return err
	}), cfg.QueueSize)
	docService = services.NewDocumentService(dbClient, objClient, dispatcher, queue, cfg.BucketName)

	queue.Start(ctx, cfg.IngestWorkers)

	server := NewServer(cfg, dbClient, docService)

	return &App{
		DBClient:     dbClient,
		ObjectClient: objClient,
		Queue:        queue,
		Documents:    docService,
		Server:       server,
	}, nil
}

func (a *App) Close() {
	if a.DBClient != nil {
		_ = a.DBClient.Close()
	}
}
