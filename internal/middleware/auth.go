package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"salarypay-service/internal/model"
	"salarypay-service/internal/session"
	"salarypay-service/internal/store"
	"salarypay-service/pkg/jwtutil"
	"salarypay-service/pkg/logger"
	"salarypay-service/prometheus"
)

// JWTAuth verifies the bearer token, resolves the acting user (and the
// impersonation target, if any) against the store, and places the session
// in the request context.
func JWTAuth(jwt *jwtutil.JWTUtil, st *store.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			tokenString := c.Request().Header.Get("Authorization")
			if tokenString == "" {
				log.Warn("Missing authorization token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
			}

			// Remove "Bearer " prefix if present
			if len(tokenString) > 7 && strings.ToUpper(tokenString[0:7]) == "BEARER " {
				tokenString = tokenString[7:]
			}

			claims, err := jwt.ValidateToken(tokenString)
			if err != nil {
				log.Warn("Invalid token", zap.Error(err))
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			user, ok := st.UserByID(claims.UserID)
			if !ok {
				log.Warn("Token references unknown user", zap.String("user_id", claims.UserID))
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unknown user"})
			}

			sess := session.Session{User: user}
			if claims.ImpersonatedID != "" {
				target, ok := st.UserByID(claims.ImpersonatedID)
				if !ok {
					log.Warn("Token references unknown impersonation target", zap.String("impersonated_id", claims.ImpersonatedID))
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unknown impersonation target"})
				}
				sess.Impersonated = &target
			}

			c.Set(session.ContextKey, sess)

			log = log.With(
				zap.String("user_id", sess.User.ID),
				zap.String("role", string(sess.User.Role)),
			)
			if sess.IsImpersonating() {
				log = log.With(zap.String("impersonated_id", sess.Effective().ID))
			}
			c.Set("logger", log)

			return next(c)
		}
	}
}

// RequireRole rejects requests whose effective identity does not hold one of
// the given roles.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, ok := session.FromEcho(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
			}
			effective := sess.Effective().Role
			for _, r := range roles {
				if effective == r {
					return next(c)
				}
			}
			logger.FromContext(c).Warn("Role not permitted",
				zap.String("role", string(effective)),
				zap.String("path", c.Path()))
			return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
		}
	}
}

// RequireWritable rejects mutating requests while an impersonation overlay
// is active. Impersonated sessions are read-only by contract; this guard is
// where that contract is enforced.
func RequireWritable(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, ok := session.FromEcho(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
		}
		if sess.IsImpersonating() {
			prometheus.ReadOnlyDeniedCounter.Inc()
			logger.FromContext(c).Warn("Mutation rejected for impersonating session",
				zap.String("admin_id", sess.User.ID),
				zap.String("impersonated_id", sess.Effective().ID))
			return c.JSON(http.StatusForbidden, echo.Map{"error": "session is read-only while impersonating"})
		}
		return next(c)
	}
}
