package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authzDomain "github.com/allisson/gatekeeper/internal/authz/domain"
	"github.com/allisson/gatekeeper/internal/authz/http/dto"
	authzUseCase "github.com/allisson/gatekeeper/internal/authz/usecase"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
	"github.com/allisson/gatekeeper/internal/httputil"
	identityHTTP "github.com/allisson/gatekeeper/internal/identity/http"
	customValidation "github.com/allisson/gatekeeper/internal/validation"
)

// CheckHandler answers explicit authorization checks for the calling principal.
type CheckHandler struct {
	decisionUseCase authzUseCase.DecisionUseCase
	recorder        DecisionRecorder
	logger          *slog.Logger
}

// NewCheckHandler creates a new check handler with required dependencies.
func NewCheckHandler(
	decisionUseCase authzUseCase.DecisionUseCase,
	recorder DecisionRecorder,
	logger *slog.Logger,
) *CheckHandler {
	return &CheckHandler{
		decisionUseCase: decisionUseCase,
		recorder:        recorder,
		logger:          logger,
	}
}

// CheckHandler evaluates whether the authenticated caller may perform an
// action on a resource, without enforcing anything.
// POST /v1/workspaces/:workspace_id/check
// Returns 200 OK with the decision; a deny is a successful response. Returns
// 503 when the policy store cannot be consulted.
func (h *CheckHandler) CheckHandler(c *gin.Context) {
	user, ok := identityHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	workspaceID, err := uuid.Parse(c.Param("workspace_id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid workspace ID format: must be a valid UUID"),
			h.logger)
		return
	}

	var req dto.CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	resource, err := authzDomain.NewResource(authzDomain.ResourceKind(req.Kind), workspaceID, req.Path)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	principal := authzDomain.Principal{UserID: user.ID, IsSuperuser: user.IsSuperuser}
	action := authzDomain.Action(req.Action)

	decision, err := h.decisionUseCase.Check(c.Request.Context(), principal, resource, action)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrInvalidInput) {
			httputil.HandleErrorGin(c, err, h.logger)
			return
		}
		recordDecision(c, h.recorder, principal, resource, action, authzDomain.DenyStoreError(), h.logger)
		httputil.HandleErrorGin(c,
			apperrors.Wrap(apperrors.ErrUnavailable, "policy store unavailable"),
			h.logger)
		return
	}

	recordDecision(c, h.recorder, principal, resource, action, decision, h.logger)

	c.JSON(http.StatusOK, dto.CheckResponse{Allowed: decision.Allowed})
}

// recordDecision appends the decision to the audit trail. Failures are logged
// and swallowed so auditing can never change an outcome.
func recordDecision(
	c *gin.Context,
	recorder DecisionRecorder,
	principal authzDomain.Principal,
	resource authzDomain.Resource,
	action authzDomain.Action,
	decision authzDomain.Decision,
	logger *slog.Logger,
) {
	if recorder == nil {
		return
	}
	if err := recorder.RecordDecision(
		c.Request.Context(),
		requestid.Get(c),
		principal,
		resource,
		action,
		decision,
	); err != nil {
		logger.Error("failed to record authorization decision",
			"error", err,
			"resource", resource.String(),
			"action", string(action),
		)
	}
}
