package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/handmade-hub/handmade-hub-backend-go/authz"
	"github.com/handmade-hub/handmade-hub-backend-go/models"
)

const actorKey = "actor"

// ActorResolver turns a bearer token into the identity it was issued for.
type ActorResolver interface {
	Actor(token string) (models.Actor, error)
}

// Auth requires a valid "Authorization: Bearer <token>" header and stores the resolved
// actor in the request context.
func Auth(resolver ActorResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			tokenParts := strings.SplitN(authHeader, " ", 2)
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" || tokenParts[1] == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized - No token"})
			}

			actor, err := resolver.Actor(tokenParts[1])
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid token"})
			}

			c.Set(actorKey, actor)
			return next(c)
		}
	}
}

// ActorFrom returns the actor stored by Auth.
func ActorFrom(c echo.Context) (models.Actor, bool) {
	actor, ok := c.Get(actorKey).(models.Actor)
	return actor, ok
}

// RequireRoles rejects requests whose actor holds none of roles. It must run after Auth.
func RequireRoles(roles ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := ActorFrom(c)
			if !ok || !authz.Allow(actor.Role, roles...) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "unauthorized role access"})
			}
			return next(c)
		}
	}
}
