package cmd

import (
	"fmt"
	"log/slog"

	"lading/internal/adapters/in/http"
	"lading/internal/adapters/out/audit"
	"lading/internal/adapters/out/cache"
	"lading/internal/adapters/out/ledger"
	"lading/internal/adapters/out/notify"
	"lading/internal/adapters/out/postgres/documentrepo"
	"lading/internal/core/application/usecases/commands"
	"lading/internal/core/application/usecases/queries"
	"lading/internal/core/domain/services"
	"lading/internal/core/ports"
	"lading/internal/jobs"
	"lading/internal/pipeline"

	"gorm.io/gorm"
)

// CompositionRoot wires every adapter, domain service and use case of the
// application. Stateful components (queue, cache, committer) are built once
// and shared; handlers are cheap value types created on demand.
type CompositionRoot struct {
	config Config
	logger *slog.Logger

	documents ports.DocumentRepository
	cache     ports.Cache
	rules     *services.RuleTable
	validator services.WorkflowValidator
	queue     *pipeline.Queue
	committer *pipeline.BatchCommitter
	audit     ports.AuditEmitter
	notifier  ports.NotificationEmitter
}

// NewCompositionRoot builds the object graph on top of an open database
// connection. Fails when the workflow rule table or the pipeline
// configuration is invalid.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	rules, err := services.NewRuleTable()
	if err != nil {
		return nil, fmt.Errorf("failed to load workflow rule table: %w", err)
	}

	queue, err := pipeline.NewQueue(pipeline.QueueConfig{
		MaxDepth:            config.QueueMaxDepth,
		BatchThreshold:      config.QueueBatchThreshold,
		TerminalGracePeriod: config.QueueTerminalGracePeriod,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create commitment queue: %w", err)
	}

	ledgerClient := ledger.NewHTTPClient(config.LedgerBaseURL, config.LedgerTimeout)

	committer, err := pipeline.NewBatchCommitter(queue, ledgerClient, pipeline.CommitterConfig{
		MaxBatchSize:   config.CommitterMaxBatchSize,
		MaxInFlight:    config.CommitterMaxInFlight,
		MaxRetries:     config.CommitterMaxRetries,
		BaseRetryDelay: config.CommitterBaseRetryDelay,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create batch committer: %w", err)
	}

	documentCache := cache.NewGoCache(config.CacheTTL, config.CacheCleanupInterval)
	documents := cache.NewCachedDocumentRepository(
		documentrepo.NewGormDocumentRepository(gormDB),
		documentCache,
		config.CacheTTL,
	)

	return &CompositionRoot{
		config:    config,
		logger:    logger,
		documents: documents,
		cache:     documentCache,
		rules:     rules,
		validator: services.NewWorkflowValidator(rules),
		queue:     queue,
		committer: committer,
		audit:     audit.NewSlogEmitter(logger),
		notifier:  notify.NewSlogNotifier(logger),
	}, nil
}

func (c *CompositionRoot) CreateCreateDocumentCommandHandler() commands.CreateDocumentCommandHandler {
	return commands.NewCreateDocumentCommandHandler(c.documents, c.audit)
}

func (c *CompositionRoot) CreateRequestTransitionCommandHandler() commands.RequestTransitionCommandHandler {
	return commands.NewRequestTransitionCommandHandler(
		c.documents, c.rules, c.queue, c.audit, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateRequeueDeadLetterCommandHandler() commands.RequeueDeadLetterCommandHandler {
	return commands.NewRequeueDeadLetterCommandHandler(c.queue, c.logger)
}

func (c *CompositionRoot) CreateCancelCommitmentCommandHandler() commands.CancelCommitmentCommandHandler {
	return commands.NewCancelCommitmentCommandHandler(c.queue)
}

func (c *CompositionRoot) CreateGetDocumentStatusQueryHandler() queries.GetDocumentStatusQueryHandler {
	return queries.NewGetDocumentStatusQueryHandler(c.documents)
}

func (c *CompositionRoot) CreateGetAvailableTransitionsQueryHandler() queries.GetAvailableTransitionsQueryHandler {
	return queries.NewGetAvailableTransitionsQueryHandler(
		c.documents, c.validator, c.cache, c.config.CacheTTL)
}

func (c *CompositionRoot) CreateGetJobStatusQueryHandler() queries.GetJobStatusQueryHandler {
	return queries.NewGetJobStatusQueryHandler(c.queue)
}

func (c *CompositionRoot) CreateGetDeadLettersQueryHandler() queries.GetDeadLettersQueryHandler {
	return queries.NewGetDeadLettersQueryHandler(c.queue)
}

// CreateHTTPServer assembles the HTTP adapter with every handler wired.
func (c *CompositionRoot) CreateHTTPServer() *http.Server {
	return http.NewServer(
		c.CreateCreateDocumentCommandHandler(),
		c.CreateRequestTransitionCommandHandler(),
		c.CreateRequeueDeadLetterCommandHandler(),
		c.CreateCancelCommitmentCommandHandler(),
		c.CreateGetDocumentStatusQueryHandler(),
		c.CreateGetAvailableTransitionsQueryHandler(),
		c.CreateGetJobStatusQueryHandler(),
		c.CreateGetDeadLettersQueryHandler(),
	)
}

// CreateJobManager assembles the background jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.committer,
		c.queue,
		c.CreateGetDeadLettersQueryHandler(),
		c.config.CommitSchedule,
		c.config.SweepSchedule,
		c.logger,
	)
}
