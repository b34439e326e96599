package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/eventos-marketplace/internal/domain/actor"
	"github.com/BruksfildServices01/eventos-marketplace/internal/httperr"
)

const ContextActor = "actor"

// AuthMiddleware valida o JWT emitido pelo backend de autenticação (HS256)
// e guarda o ator (sub + role) no contexto.
func AuthMiddleware(secret string) gin.HandlerFunc {
	key := []byte(secret)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing_authorization_header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "invalid_authorization_header")
			return
		}

		token, err := jwt.Parse(
			strings.TrimSpace(parts[1]),
			func(token *jwt.Token) (interface{}, error) {
				return key, nil
			},
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		)
		if err != nil || !token.Valid {
			abortUnauthorized(c, "invalid_token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "invalid_token_claims")
			return
		}

		sub, _ := claims["sub"].(string)
		rawRole, _ := claims["role"].(string)

		id, err := uuid.Parse(sub)
		role, okRole := actor.ParseRole(rawRole)
		if err != nil || !okRole {
			abortUnauthorized(c, "invalid_token_payload")
			return
		}

		c.Set(ContextActor, actor.Actor{ID: id, Role: role})
		c.Next()
	}
}

// RequireRole barra quem não tem um dos papéis informados.
func RequireRole(roles ...actor.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		a, ok := ActorFrom(c)
		if !ok {
			abortUnauthorized(c, "unauthenticated")
			return
		}
		for _, r := range roles {
			if a.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, httperr.HTTPError{
			Code:    "forbidden",
			Message: "No tienes permiso para esta acción.",
		})
	}
}

func ActorFrom(c *gin.Context) (actor.Actor, bool) {
	v, ok := c.Get(ContextActor)
	if !ok {
		return actor.Actor{}, false
	}
	a, ok := v.(actor.Actor)
	return a, ok
}

func abortUnauthorized(c *gin.Context, code string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, httperr.HTTPError{
		Code:    code,
		Message: "Sesión inválida.",
	})
}
