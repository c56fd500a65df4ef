package app

import (
	"fmt"

	menuHTTP "github.com/allisson/gatekeeper/internal/menu/http"
	menuRepository "github.com/allisson/gatekeeper/internal/menu/repository"
	menuUseCase "github.com/allisson/gatekeeper/internal/menu/usecase"
)

// MenuRepository returns the menu repository based on database driver.
func (c *Container) MenuRepository() (menuUseCase.MenuRepository, error) {
	var err error
	c.menuRepoInit.Do(func() {
		c.menuRepo, err = c.initMenuRepository()
		if err != nil {
			c.initErrors["menuRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["menuRepo"]; exists {
		return nil, storedErr
	}
	return c.menuRepo, nil
}

// MenuUseCase returns the menu use case.
func (c *Container) MenuUseCase() (menuUseCase.MenuUseCase, error) {
	var err error
	c.menuUseCaseInit.Do(func() {
		c.menuUseCase, err = c.initMenuUseCase()
		if err != nil {
			c.initErrors["menuUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["menuUseCase"]; exists {
		return nil, storedErr
	}
	return c.menuUseCase, nil
}

// MenuHandler returns the HTTP handler for menu management and visibility.
func (c *Container) MenuHandler() (*menuHTTP.MenuHandler, error) {
	var err error
	c.menuHandlerInit.Do(func() {
		c.menuHandler, err = c.initMenuHandler()
		if err != nil {
			c.initErrors["menuHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["menuHandler"]; exists {
		return nil, storedErr
	}
	return c.menuHandler, nil
}

// initMenuRepository creates the menu repository based on the database driver.
func (c *Container) initMenuRepository() (menuUseCase.MenuRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for menu repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return menuRepository.NewPostgreSQLMenuRepository(db), nil
	case "mysql":
		return menuRepository.NewMySQLMenuRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initMenuUseCase creates the menu use case with all its dependencies.
// Menu visibility is filtered through the decision engine, so the decision
// use case is a direct dependency.
func (c *Container) initMenuUseCase() (menuUseCase.MenuUseCase, error) {
	menuRepo, err := c.MenuRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get menu repository for menu use case: %w", err)
	}

	decisionUseCase, err := c.DecisionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get decision use case for menu use case: %w", err)
	}

	workspaceUseCase, err := c.WorkspaceUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace use case for menu use case: %w", err)
	}

	return menuUseCase.NewMenuUseCase(menuRepo, decisionUseCase, workspaceUseCase), nil
}

// initMenuHandler creates the menu HTTP handler with all its dependencies.
func (c *Container) initMenuHandler() (*menuHTTP.MenuHandler, error) {
	useCase, err := c.MenuUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get menu use case for menu handler: %w", err)
	}

	return menuHTTP.NewMenuHandler(useCase, c.Logger()), nil
}
