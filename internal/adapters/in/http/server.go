package http

import (
	"errors"
	"net/http"

	"lading/internal/core/application/usecases/commands"
	"lading/internal/core/application/usecases/queries"
	"lading/internal/core/domain/model/document"
	"lading/internal/core/domain/model/kernel"
	"lading/internal/core/domain/services"
	"lading/internal/core/ports"
	"lading/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server handles the HTTP surface of the transition engine.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createDocumentHandler    commands.CreateDocumentCommandHandler
	requestTransitionHandler commands.RequestTransitionCommandHandler
	requeueDeadLetterHandler commands.RequeueDeadLetterCommandHandler
	cancelCommitmentHandler  commands.CancelCommitmentCommandHandler

	// Query handlers
	getDocumentStatusHandler       queries.GetDocumentStatusQueryHandler
	getAvailableTransitionsHandler queries.GetAvailableTransitionsQueryHandler
	getJobStatusHandler            queries.GetJobStatusQueryHandler
	getDeadLettersHandler          queries.GetDeadLettersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createDocumentHandler commands.CreateDocumentCommandHandler,
	requestTransitionHandler commands.RequestTransitionCommandHandler,
	requeueDeadLetterHandler commands.RequeueDeadLetterCommandHandler,
	cancelCommitmentHandler commands.CancelCommitmentCommandHandler,
	getDocumentStatusHandler queries.GetDocumentStatusQueryHandler,
	getAvailableTransitionsHandler queries.GetAvailableTransitionsQueryHandler,
	getJobStatusHandler queries.GetJobStatusQueryHandler,
	getDeadLettersHandler queries.GetDeadLettersQueryHandler,
) *Server {
	return &Server{
		createDocumentHandler:          createDocumentHandler,
		requestTransitionHandler:       requestTransitionHandler,
		requeueDeadLetterHandler:       requeueDeadLetterHandler,
		cancelCommitmentHandler:        cancelCommitmentHandler,
		getDocumentStatusHandler:       getDocumentStatusHandler,
		getAvailableTransitionsHandler: getAvailableTransitionsHandler,
		getJobStatusHandler:            getJobStatusHandler,
		getDeadLettersHandler:          getDeadLettersHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/documents", s.CreateDocument)
	api.GET("/documents/:id", s.GetDocumentStatus)
	api.POST("/documents/:id/transitions", s.RequestTransition)
	api.GET("/documents/:id/transitions", s.GetAvailableTransitions)

	api.GET("/jobs/dead-letters", s.GetDeadLetters)
	api.GET("/jobs/:id", s.GetJobStatus)
	api.DELETE("/jobs/:id", s.CancelCommitment)
	api.POST("/jobs/:id/requeue", s.RequeueDeadLetter)

	e.GET("/health", s.Health)
}

// CreateDocument handles POST /api/v1/documents - registers a new bill of lading.
func (s *Server) CreateDocument(ctx echo.Context) error {
	var body NewDocument
	if err := ctx.Bind(&body); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	documentID := kernel.NewUUID()
	if body.ID != "" {
		parsed, err := kernel.UUIDFromString(body.ID)
		if err != nil {
			return errorResponse(ctx, http.StatusBadRequest, "Invalid document id: "+err.Error())
		}
		documentID = parsed
	}

	cmd, err := commands.NewCreateDocumentCommand(documentID, body.IssuedBy)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid document data: "+err.Error())
	}

	doc, err := s.createDocumentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, Document{
		ID:            doc.ID().String(),
		State:         doc.State().String(),
		Version:       doc.Version(),
		LastUpdatedBy: doc.LastUpdatedBy(),
		LastUpdatedAt: doc.LastUpdatedAt(),
	})
}

// GetDocumentStatus handles GET /api/v1/documents/:id - reads the status record.
func (s *Server) GetDocumentStatus(ctx echo.Context) error {
	documentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid document id")
	}

	query, err := queries.NewGetDocumentStatusQuery(documentID)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	status, err := s.getDocumentStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Document{
		ID:            status.ID.String(),
		State:         status.State.String(),
		Version:       status.Version,
		LastUpdatedBy: status.LastUpdatedBy,
		LastUpdatedAt: status.LastUpdatedAt,
	})
}

// RequestTransition handles POST /api/v1/documents/:id/transitions - requests
// a status transition.
func (s *Server) RequestTransition(ctx echo.Context) error {
	documentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid document id")
	}

	var body TransitionRequest
	if err := ctx.Bind(&body); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	targetState, err := document.StateFromString(body.TargetState)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid target state: "+body.TargetState)
	}

	actorRoles, err := parseRoles(body.ActorRoles)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	cmd, err := commands.NewRequestTransitionCommand(documentID, targetState, body.Actor, actorRoles, body.Payload)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid transition request: "+err.Error())
	}

	result, err := s.requestTransitionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, TransitionResult{
		DocumentID:  documentID.String(),
		NewVersion:  result.NewVersion,
		CommittedAt: result.CommittedAt,
		JobID:       result.JobID.String(),
	})
}

// GetAvailableTransitions handles GET /api/v1/documents/:id/transitions - lists
// the target states the caller's roles permit. Roles come from the repeated
// "role" query parameter.
func (s *Server) GetAvailableTransitions(ctx echo.Context) error {
	documentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid document id")
	}

	actorRoles, err := parseRoles(ctx.QueryParams()["role"])
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	}
	if len(actorRoles) == 0 {
		return errorResponse(ctx, http.StatusBadRequest, "At least one role query parameter is required")
	}

	query, err := queries.NewGetAvailableTransitionsQuery(documentID, actorRoles)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	transitions, err := s.getAvailableTransitionsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	states := make([]string, len(transitions.Transitions))
	for i, state := range transitions.Transitions {
		states[i] = state.String()
	}

	return ctx.JSON(http.StatusOK, AvailableTransitions{
		DocumentID:   transitions.DocumentID.String(),
		CurrentState: transitions.CurrentState.String(),
		Transitions:  states,
	})
}

// GetJobStatus handles GET /api/v1/jobs/:id - reads a commitment job.
func (s *Server) GetJobStatus(ctx echo.Context) error {
	jobID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid job id")
	}

	query, err := queries.NewGetJobStatusQuery(jobID)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	job, err := s.getJobStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, jobFromResponse(job))
}

// GetDeadLetters handles GET /api/v1/jobs/dead-letters - lists permanently
// failed commitment jobs.
func (s *Server) GetDeadLetters(ctx echo.Context) error {
	deadLetters, err := s.getDeadLettersHandler.Handle(ctx.Request().Context(), queries.NewGetDeadLettersQuery())
	if err != nil {
		return mapDomainError(ctx, err)
	}

	response := make([]Job, len(deadLetters))
	for i, job := range deadLetters {
		response[i] = jobFromResponse(job)
	}
	return ctx.JSON(http.StatusOK, response)
}

// CancelCommitment handles DELETE /api/v1/jobs/:id - best-effort cancellation
// of a queued commitment job.
func (s *Server) CancelCommitment(ctx echo.Context) error {
	jobID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid job id")
	}

	cmd, err := commands.NewCancelCommitmentCommand(jobID)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	if err := s.cancelCommitmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RequeueDeadLetter handles POST /api/v1/jobs/:id/requeue - returns a dead
// letter to the commitment queue.
func (s *Server) RequeueDeadLetter(ctx echo.Context) error {
	jobID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid job id")
	}

	cmd, err := commands.NewRequeueDeadLetterCommand(jobID)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	if err := s.requeueDeadLetterHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.NoContent(http.StatusAccepted)
}

// Health handles GET /health - liveness probe.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func parseRoles(raw []string) ([]document.Role, error) {
	roles := make([]document.Role, 0, len(raw))
	for _, value := range raw {
		role, err := document.RoleFromString(value)
		if err != nil {
			return nil, errors.New("invalid role: " + value)
		}
		roles = append(roles, role)
	}
	return roles, nil
}

func jobFromResponse(job queries.JobStatusResponse) Job {
	return Job{
		ID:              job.ID.String(),
		DocumentID:      job.DocumentID.String(),
		DocumentVersion: job.DocumentVersion,
		JobType:         job.JobType.String(),
		Priority:        job.Priority.String(),
		Status:          job.Status.String(),
		RetryCount:      job.RetryCount,
		LedgerRef:       job.LedgerRef,
		LastError:       job.LastError,
		EnqueuedAt:      job.EnqueuedAt,
		CompletedAt:     job.CompletedAt,
	}
}

// mapDomainError translates domain and port errors to HTTP status codes.
// Permission failures are 403, workflow rule failures are 422, concurrent
// modification is 409 so callers know to re-read and retry.
func mapDomainError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return errorResponse(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInsufficientPermission):
		return errorResponse(ctx, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrIllegalTransition),
		errors.Is(err, services.ErrMissingFields),
		errors.Is(err, services.ErrMissingSignature):
		return errorResponse(ctx, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ports.ErrVersionConflict):
		return errorResponse(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, ports.ErrJobNotCancellable):
		return errorResponse(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, ports.ErrQueueFull):
		return errorResponse(ctx, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	default:
		return errorResponse(ctx, http.StatusInternalServerError, "Internal server error")
	}
}

func errorResponse(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, Error{Code: code, Message: message})
}
