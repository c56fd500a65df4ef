package app

import (
	"fmt"

	workspaceHTTP "github.com/allisson/gatekeeper/internal/workspace/http"
	workspaceRepository "github.com/allisson/gatekeeper/internal/workspace/repository"
	workspaceUseCase "github.com/allisson/gatekeeper/internal/workspace/usecase"
)

// WorkspaceRepository returns the workspace repository based on database driver.
func (c *Container) WorkspaceRepository() (workspaceUseCase.WorkspaceRepository, error) {
	var err error
	c.workspaceRepoInit.Do(func() {
		c.workspaceRepo, err = c.initWorkspaceRepository()
		if err != nil {
			c.initErrors["workspaceRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["workspaceRepo"]; exists {
		return nil, storedErr
	}
	return c.workspaceRepo, nil
}

// WorkspaceUseCase returns the workspace use case.
func (c *Container) WorkspaceUseCase() (workspaceUseCase.WorkspaceUseCase, error) {
	var err error
	c.workspaceUseCaseInit.Do(func() {
		c.workspaceUseCase, err = c.initWorkspaceUseCase()
		if err != nil {
			c.initErrors["workspaceUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["workspaceUseCase"]; exists {
		return nil, storedErr
	}
	return c.workspaceUseCase, nil
}

// WorkspaceHandler returns the HTTP handler for workspace management.
func (c *Container) WorkspaceHandler() (*workspaceHTTP.WorkspaceHandler, error) {
	var err error
	c.workspaceHandlerInit.Do(func() {
		c.workspaceHandler, err = c.initWorkspaceHandler()
		if err != nil {
			c.initErrors["workspaceHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["workspaceHandler"]; exists {
		return nil, storedErr
	}
	return c.workspaceHandler, nil
}

// initWorkspaceRepository creates the workspace repository based on the database driver.
func (c *Container) initWorkspaceRepository() (workspaceUseCase.WorkspaceRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for workspace repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return workspaceRepository.NewPostgreSQLWorkspaceRepository(db), nil
	case "mysql":
		return workspaceRepository.NewMySQLWorkspaceRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initWorkspaceUseCase creates the workspace use case with all its dependencies.
// Workspace deletion removes the workspace's rules, memberships, and menus in
// one transaction, so the fact repositories are wired in as fact removers.
func (c *Container) initWorkspaceUseCase() (workspaceUseCase.WorkspaceUseCase, error) {
	workspaceRepo, err := c.WorkspaceRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace repository for workspace use case: %w", err)
	}

	ruleRepo, err := c.RuleRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get rule repository for workspace use case: %w", err)
	}

	membershipRepo, err := c.MembershipRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get membership repository for workspace use case: %w", err)
	}

	menuRepo, err := c.MenuRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get menu repository for workspace use case: %w", err)
	}

	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for workspace use case: %w", err)
	}

	return workspaceUseCase.NewWorkspaceUseCase(
		workspaceRepo,
		ruleRepo,
		membershipRepo,
		menuRepo,
		txManager,
	), nil
}

// initWorkspaceHandler creates the workspace HTTP handler with all its dependencies.
func (c *Container) initWorkspaceHandler() (*workspaceHTTP.WorkspaceHandler, error) {
	useCase, err := c.WorkspaceUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace use case for workspace handler: %w", err)
	}

	return workspaceHTTP.NewWorkspaceHandler(useCase, c.Logger()), nil
}
