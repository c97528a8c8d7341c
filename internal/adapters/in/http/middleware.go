package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"herdshare/internal/core/domain/model/account"
)

// actorContextKey stores the resolved actor on the echo context.
const actorContextKey = "actor"

// authenticate resolves the bearer token into an actor and stores it on the
// request context. Missing or invalid tokens end the request with 401.
func (s *Server) authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		header := ctx.Request().Header.Get("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			return ctx.JSON(http.StatusUnauthorized, errorResponse{
				Code:    http.StatusUnauthorized,
				Message: "Bearer token is required",
			})
		}

		actor, err := s.identity.ActorFromToken(ctx.Request().Context(), token)
		if err != nil {
			return ctx.JSON(http.StatusUnauthorized, errorResponse{
				Code:    http.StatusUnauthorized,
				Message: "Bearer token is invalid",
			})
		}

		ctx.Set(actorContextKey, *actor)
		return next(ctx)
	}
}

// requireRoles gates a route on the actor's role. Admin passes every gate.
func requireRoles(required ...account.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			actor, ok := ctx.Get(actorContextKey).(account.Actor)
			if !ok {
				return ctx.JSON(http.StatusUnauthorized, errorResponse{
					Code:    http.StatusUnauthorized,
					Message: "Authentication is required",
				})
			}

			if !actor.Role().Satisfies(required...) {
				return ctx.JSON(http.StatusForbidden, errorResponse{
					Code:    http.StatusForbidden,
					Message: "Insufficient role for this operation",
				})
			}

			return next(ctx)
		}
	}
}

// requestActor returns the actor the authentication middleware resolved.
// The bool is false on routes mounted without the middleware.
func requestActor(ctx echo.Context) (account.Actor, bool) {
	actor, ok := ctx.Get(actorContextKey).(account.Actor)
	return actor, ok
}
