package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/allisson/gatekeeper/internal/errors"
	"github.com/allisson/gatekeeper/internal/httputil"
	identityUseCase "github.com/allisson/gatekeeper/internal/identity/usecase"
)

// AuthenticationMiddleware provides API-key authentication via the
// Authorization header.
//
// Authorization header format: "Bearer <user_id>:<api_key>" (case-insensitive
// "bearer"). The user id names which credential to verify against; the key is
// compared with its Argon2id hash.
//
// Error handling:
//   - Missing or malformed Authorization header → 401 Unauthorized
//   - Unknown user, inactive user, or wrong key → 401 Unauthorized
//     (uniform ErrInvalidCredentials, no distinction leaked)
//
// On success the user is stored in the request context and downstream
// handlers can access it via GetUser().
func AuthenticationMiddleware(
	userUseCase identityUseCase.UserUseCase,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		// Parse Bearer credential (case-insensitive)
		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		credential := authHeader[len(bearerPrefix):]
		userIDPart, apiKey, found := strings.Cut(credential, ":")
		if !found || apiKey == "" {
			logger.Debug("authentication failed: malformed credential")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		userID, err := uuid.Parse(userIDPart)
		if err != nil {
			logger.Debug("authentication failed: invalid user id in credential")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		user, err := userUseCase.Authenticate(c.Request.Context(), userID, apiKey)
		if err != nil {
			logger.Debug("authentication failed",
				slog.String("user_id", userID.String()),
				slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := WithUser(c.Request.Context(), user)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful",
			slog.String("user_id", user.ID.String()),
			slog.String("email", user.Email))

		c.Next()
	}
}

// RequireSuperuser restricts a route to superusers.
//
// This middleware MUST be used after AuthenticationMiddleware: a request with
// no authenticated user in context is rejected with 401. Non-superusers
// receive the uniform 403 denial.
func RequireSuperuser(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetUser(c.Request.Context())
		if !ok || user == nil {
			logger.Debug("superuser check failed: no authenticated user in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if !user.IsSuperuser {
			logger.Debug("superuser check failed",
				slog.String("user_id", user.ID.String()))
			httputil.HandleErrorGin(c, apperrors.ErrForbidden, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
