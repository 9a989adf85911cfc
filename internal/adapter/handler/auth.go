package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/srgjo27/healthbook/internal/core/domain"
	"github.com/srgjo27/healthbook/internal/platform/apperror"
	"go.uber.org/zap"
)

const principalKey = "principal"

// PrincipalResolver turns an authenticated user id into a role-bearing
// principal.
type PrincipalResolver interface {
	Resolve(ctx context.Context, userID uuid.UUID) (domain.Principal, error)
}

// JWTMiddleware accepts HS256 bearer tokens whose sub claim is the user id
// and stores the resolved principal on the context.
func JWTMiddleware(secret string, resolver PrincipalResolver, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || tokenString == "" {
				return c.JSON(http.StatusUnauthorized, errorBody{Error: "authorization header required", Code: apperror.ErrUnauthenticated})
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				return []byte(secret), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid {
				logger.Warn("JWT validation failed", zap.Error(err), zap.String("path", c.Path()))
				return c.JSON(http.StatusUnauthorized, errorBody{Error: "invalid or expired token", Code: apperror.ErrUnauthenticated})
			}

			sub, err := token.Claims.GetSubject()
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorBody{Error: "invalid token claims", Code: apperror.ErrUnauthenticated})
			}
			userID, err := uuid.Parse(sub)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorBody{Error: "invalid token subject", Code: apperror.ErrUnauthenticated})
			}

			principal, err := resolver.Resolve(c.Request().Context(), userID)
			if err != nil {
				logger.Warn("Principal resolution failed", zap.String("user_id", userID.String()), zap.Error(err))
				return c.JSON(http.StatusUnauthorized, errorBody{Error: "unknown user", Code: apperror.ErrUnauthenticated})
			}

			c.Set(principalKey, principal)
			return next(c)
		}
	}
}

// RequireRole rejects principals outside roles with 403.
func RequireRole(roles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, err := principalFrom(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorBody{Error: "authentication required", Code: apperror.ErrUnauthenticated})
			}
			for _, r := range roles {
				if p.Role == r {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, errorBody{Error: domain.ErrForbidden.Error(), Code: apperror.ErrUnauthorized})
		}
	}
}

func principalFrom(c echo.Context) (domain.Principal, error) {
	p, ok := c.Get(principalKey).(domain.Principal)
	if !ok {
		return domain.Principal{}, fmt.Errorf("no principal on request")
	}
	return p, nil
}
