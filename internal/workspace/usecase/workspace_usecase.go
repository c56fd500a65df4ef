package usecase

import (
	"context"
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/gatekeeper/internal/errors"
	appValidation "github.com/allisson/gatekeeper/internal/validation"
	workspaceDomain "github.com/allisson/gatekeeper/internal/workspace/domain"

	"github.com/google/uuid"
)

type workspaceUseCase struct {
	workspaceRepo     WorkspaceRepository
	ruleRemover       FactRemover
	membershipRemover FactRemover
	menuRemover       FactRemover
	txManager         TxManager
}

func validateCreateWorkspaceInput(input *workspaceDomain.CreateWorkspaceInput) error {
	err := validation.ValidateStruct(input,
		validation.Field(&input.Name,
			validation.Required,
			appValidation.NotBlank,
			validation.Length(1, 255),
		),
	)
	return appValidation.WrapValidationError(err)
}

// Create provisions a new workspace.
func (w *workspaceUseCase) Create(
	ctx context.Context,
	input *workspaceDomain.CreateWorkspaceInput,
) (*workspaceDomain.Workspace, error) {
	if err := validateCreateWorkspaceInput(input); err != nil {
		return nil, err
	}

	workspace := &workspaceDomain.Workspace{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      strings.TrimSpace(input.Name),
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}

	if err := w.workspaceRepo.Create(ctx, workspace); err != nil {
		return nil, err
	}

	return workspace, nil
}

// Get retrieves a workspace by ID.
func (w *workspaceUseCase) Get(ctx context.Context, workspaceID uuid.UUID) (*workspaceDomain.Workspace, error) {
	return w.workspaceRepo.Get(ctx, workspaceID)
}

// List retrieves workspaces with pagination support.
func (w *workspaceUseCase) List(ctx context.Context, offset, limit int) ([]*workspaceDomain.Workspace, error) {
	return w.workspaceRepo.List(ctx, offset, limit)
}

// Delete removes a workspace and every policy fact scoped to it. Rules,
// memberships, and menu entries go in the same transaction so no orphaned
// fact can ever match a future decision.
func (w *workspaceUseCase) Delete(ctx context.Context, workspaceID uuid.UUID) error {
	if _, err := w.workspaceRepo.Get(ctx, workspaceID); err != nil {
		return err
	}

	return w.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := w.ruleRemover.DeleteByWorkspace(ctx, workspaceID); err != nil {
			return err
		}
		if err := w.membershipRemover.DeleteByWorkspace(ctx, workspaceID); err != nil {
			return err
		}
		if err := w.menuRemover.DeleteByWorkspace(ctx, workspaceID); err != nil {
			return err
		}
		return w.workspaceRepo.Delete(ctx, workspaceID)
	})
}

// Exists reports whether the workspace exists and is active.
func (w *workspaceUseCase) Exists(ctx context.Context, workspaceID uuid.UUID) error {
	workspace, err := w.workspaceRepo.Get(ctx, workspaceID)
	if err != nil {
		return err
	}
	if !workspace.IsActive {
		return apperrors.Wrap(workspaceDomain.ErrWorkspaceNotFound, "workspace is inactive")
	}
	return nil
}

// NewWorkspaceUseCase creates a new workspace use case.
func NewWorkspaceUseCase(
	workspaceRepo WorkspaceRepository,
	ruleRemover FactRemover,
	membershipRemover FactRemover,
	menuRemover FactRemover,
	txManager TxManager,
) WorkspaceUseCase {
	return &workspaceUseCase{
		workspaceRepo:     workspaceRepo,
		ruleRemover:       ruleRemover,
		membershipRemover: membershipRemover,
		menuRemover:       menuRemover,
		txManager:         txManager,
	}
}
