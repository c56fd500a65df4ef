package app

import (
	"context"
	"encoding/base64"
	"fmt"

	auditlogHTTP "github.com/allisson/gatekeeper/internal/auditlog/http"
	auditlogRepository "github.com/allisson/gatekeeper/internal/auditlog/repository"
	auditlogService "github.com/allisson/gatekeeper/internal/auditlog/service"
	auditlogUseCase "github.com/allisson/gatekeeper/internal/auditlog/usecase"
)

// AuditLogRepository returns the audit log repository based on database driver.
func (c *Container) AuditLogRepository() (auditlogUseCase.AuditLogRepository, error) {
	var err error
	c.auditLogRepoInit.Do(func() {
		c.auditLogRepo, err = c.initAuditLogRepository()
		if err != nil {
			c.initErrors["auditLogRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["auditLogRepo"]; exists {
		return nil, storedErr
	}
	return c.auditLogRepo, nil
}

// AuditSigner returns the HMAC signer for decision records. The signing key
// is unwrapped once at startup through the configured KMS provider.
func (c *Container) AuditSigner() (auditlogService.Signer, error) {
	var err error
	c.auditSignerInit.Do(func() {
		c.auditSigner, err = c.initAuditSigner()
		if err != nil {
			c.initErrors["auditSigner"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["auditSigner"]; exists {
		return nil, storedErr
	}
	return c.auditSigner, nil
}

// AuditLogUseCase returns the audit log use case.
func (c *Container) AuditLogUseCase() (auditlogUseCase.AuditLogUseCase, error) {
	var err error
	c.auditLogUseCaseInit.Do(func() {
		c.auditLogUseCase, err = c.initAuditLogUseCase()
		if err != nil {
			c.initErrors["auditLogUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["auditLogUseCase"]; exists {
		return nil, storedErr
	}
	return c.auditLogUseCase, nil
}

// AuditLogHandler returns the HTTP handler for audit log queries.
func (c *Container) AuditLogHandler() (*auditlogHTTP.AuditLogHandler, error) {
	var err error
	c.auditLogHandlerInit.Do(func() {
		c.auditLogHandler, err = c.initAuditLogHandler()
		if err != nil {
			c.initErrors["auditLogHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["auditLogHandler"]; exists {
		return nil, storedErr
	}
	return c.auditLogHandler, nil
}

// initAuditLogRepository creates the audit log repository based on the database driver.
func (c *Container) initAuditLogRepository() (auditlogUseCase.AuditLogRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for audit log repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return auditlogRepository.NewPostgreSQLAuditLogRepository(db), nil
	case "mysql":
		return auditlogRepository.NewMySQLAuditLogRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initAuditSigner unwraps the audit signing key and builds the HMAC signer.
func (c *Container) initAuditSigner() (auditlogService.Signer, error) {
	if c.config.AuditKMSKeyURI == "" {
		return nil, fmt.Errorf("AUDIT_KMS_KEY_URI is not configured")
	}
	if c.config.AuditSigningKeyWrapped == "" {
		return nil, fmt.Errorf("AUDIT_SIGNING_KEY_WRAPPED is not configured")
	}

	wrappedKey, err := base64.StdEncoding.DecodeString(c.config.AuditSigningKeyWrapped)
	if err != nil {
		return nil, fmt.Errorf("failed to decode wrapped audit signing key: %w", err)
	}

	unwrapper := auditlogService.NewKMSKeyUnwrapper()
	signingKey, err := unwrapper.UnwrapKey(context.Background(), c.config.AuditKMSKeyURI, wrappedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to unwrap audit signing key: %w", err)
	}

	signer, err := auditlogService.NewHMACSigner(signingKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create audit signer: %w", err)
	}

	return signer, nil
}

// initAuditLogUseCase creates the audit log use case with all its dependencies.
func (c *Container) initAuditLogUseCase() (auditlogUseCase.AuditLogUseCase, error) {
	auditLogRepo, err := c.AuditLogRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log repository for audit log use case: %w", err)
	}

	signer, err := c.AuditSigner()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit signer for audit log use case: %w", err)
	}

	return auditlogUseCase.NewAuditLogUseCase(auditLogRepo, signer), nil
}

// initAuditLogHandler creates the audit log HTTP handler with all its dependencies.
func (c *Container) initAuditLogHandler() (*auditlogHTTP.AuditLogHandler, error) {
	useCase, err := c.AuditLogUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log use case for audit log handler: %w", err)
	}

	return auditlogHTTP.NewAuditLogHandler(useCase, c.Logger()), nil
}
