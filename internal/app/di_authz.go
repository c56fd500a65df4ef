package app

import (
	"fmt"

	authzHTTP "github.com/allisson/gatekeeper/internal/authz/http"
	authzRepository "github.com/allisson/gatekeeper/internal/authz/repository"
	authzService "github.com/allisson/gatekeeper/internal/authz/service"
	authzUseCase "github.com/allisson/gatekeeper/internal/authz/usecase"
)

// RuleRepository returns the policy rule repository based on database driver.
func (c *Container) RuleRepository() (authzUseCase.RuleRepository, error) {
	var err error
	c.ruleRepoInit.Do(func() {
		c.ruleRepo, err = c.initRuleRepository()
		if err != nil {
			c.initErrors["ruleRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["ruleRepo"]; exists {
		return nil, storedErr
	}
	return c.ruleRepo, nil
}

// MembershipRepository returns the role membership repository based on database driver.
func (c *Container) MembershipRepository() (authzUseCase.MembershipRepository, error) {
	var err error
	c.membershipRepoInit.Do(func() {
		c.membershipRepo, err = c.initMembershipRepository()
		if err != nil {
			c.initErrors["membershipRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["membershipRepo"]; exists {
		return nil, storedErr
	}
	return c.membershipRepo, nil
}

// SubjectResolver returns the subject resolver used by the decision engine.
func (c *Container) SubjectResolver() (authzService.SubjectResolver, error) {
	var err error
	c.subjectResolverInit.Do(func() {
		c.subjectResolver, err = c.initSubjectResolver()
		if err != nil {
			c.initErrors["subjectResolver"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["subjectResolver"]; exists {
		return nil, storedErr
	}
	return c.subjectResolver, nil
}

// DecisionUseCase returns the decision use case.
func (c *Container) DecisionUseCase() (authzUseCase.DecisionUseCase, error) {
	var err error
	c.decisionUseCaseInit.Do(func() {
		c.decisionUseCase, err = c.initDecisionUseCase()
		if err != nil {
			c.initErrors["decisionUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["decisionUseCase"]; exists {
		return nil, storedErr
	}
	return c.decisionUseCase, nil
}

// PolicyUseCase returns the policy administration use case.
func (c *Container) PolicyUseCase() (authzUseCase.PolicyUseCase, error) {
	var err error
	c.policyUseCaseInit.Do(func() {
		c.policyUseCase, err = c.initPolicyUseCase()
		if err != nil {
			c.initErrors["policyUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["policyUseCase"]; exists {
		return nil, storedErr
	}
	return c.policyUseCase, nil
}

// CheckHandler returns the HTTP handler for authorization checks.
func (c *Container) CheckHandler() (*authzHTTP.CheckHandler, error) {
	var err error
	c.checkHandlerInit.Do(func() {
		c.checkHandler, err = c.initCheckHandler()
		if err != nil {
			c.initErrors["checkHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["checkHandler"]; exists {
		return nil, storedErr
	}
	return c.checkHandler, nil
}

// PolicyHandler returns the HTTP handler for policy administration.
func (c *Container) PolicyHandler() (*authzHTTP.PolicyHandler, error) {
	var err error
	c.policyHandlerInit.Do(func() {
		c.policyHandler, err = c.initPolicyHandler()
		if err != nil {
			c.initErrors["policyHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["policyHandler"]; exists {
		return nil, storedErr
	}
	return c.policyHandler, nil
}

// initRuleRepository creates the rule repository based on the database driver.
func (c *Container) initRuleRepository() (authzUseCase.RuleRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for rule repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return authzRepository.NewPostgreSQLRuleRepository(db), nil
	case "mysql":
		return authzRepository.NewMySQLRuleRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initMembershipRepository creates the membership repository based on the database driver.
func (c *Container) initMembershipRepository() (authzUseCase.MembershipRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for membership repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return authzRepository.NewPostgreSQLMembershipRepository(db), nil
	case "mysql":
		return authzRepository.NewMySQLMembershipRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initSubjectResolver creates the membership-backed subject resolver.
func (c *Container) initSubjectResolver() (authzService.SubjectResolver, error) {
	membershipRepo, err := c.MembershipRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get membership repository for subject resolver: %w", err)
	}

	return authzService.NewMembershipSubjectResolver(membershipRepo), nil
}

// initDecisionUseCase creates the decision use case with all its dependencies.
func (c *Container) initDecisionUseCase() (authzUseCase.DecisionUseCase, error) {
	ruleRepo, err := c.RuleRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get rule repository for decision use case: %w", err)
	}

	subjectResolver, err := c.SubjectResolver()
	if err != nil {
		return nil, fmt.Errorf("failed to get subject resolver for decision use case: %w", err)
	}

	baseUseCase := authzUseCase.NewDecisionUseCase(ruleRepo, subjectResolver)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for decision use case: %w", err)
		}
		return authzUseCase.NewDecisionUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initPolicyUseCase creates the policy use case with all its dependencies.
func (c *Container) initPolicyUseCase() (authzUseCase.PolicyUseCase, error) {
	ruleRepo, err := c.RuleRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get rule repository for policy use case: %w", err)
	}

	membershipRepo, err := c.MembershipRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get membership repository for policy use case: %w", err)
	}

	workspaceUseCase, err := c.WorkspaceUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace use case for policy use case: %w", err)
	}

	userUseCase, err := c.UserUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get user use case for policy use case: %w", err)
	}

	baseUseCase := authzUseCase.NewPolicyUseCase(ruleRepo, membershipRepo, workspaceUseCase, userUseCase)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for policy use case: %w", err)
		}
		return authzUseCase.NewPolicyUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initCheckHandler creates the check HTTP handler with all its dependencies.
func (c *Container) initCheckHandler() (*authzHTTP.CheckHandler, error) {
	decisionUseCase, err := c.DecisionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get decision use case for check handler: %w", err)
	}

	auditLogUseCase, err := c.AuditLogUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log use case for check handler: %w", err)
	}

	return authzHTTP.NewCheckHandler(decisionUseCase, auditLogUseCase, c.Logger()), nil
}

// initPolicyHandler creates the policy HTTP handler with all its dependencies.
func (c *Container) initPolicyHandler() (*authzHTTP.PolicyHandler, error) {
	policyUseCase, err := c.PolicyUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get policy use case for policy handler: %w", err)
	}

	return authzHTTP.NewPolicyHandler(policyUseCase, c.Logger()), nil
}
