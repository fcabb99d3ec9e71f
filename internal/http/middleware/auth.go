package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/apierr"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/ctxutil"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/logger"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/repos"
)

// AuthMiddleware verifies bearer tokens minted by the external identity
// provider and attaches the resolved identity to the request context. The
// role comes from the local user row when one exists, so admin grants take
// effect without reissuing tokens.
type AuthMiddleware struct {
	log       *logger.Logger
	jwtSecret []byte
	users     repos.UserRepo
}

func NewAuthMiddleware(baseLog *logger.Logger, jwtSecret string, users repos.UserRepo) *AuthMiddleware {
	return &AuthMiddleware{
		log:       baseLog.With("middleware", "AuthMiddleware"),
		jwtSecret: []byte(jwtSecret),
		users:     users,
	}
}

func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractBearerToken(c)
		if tokenString == "" {
			abortUnauthorized(c, "missing bearer token")
			return
		}
		identity, err := am.resolveIdentity(c, tokenString)
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}
		c.Request = c.Request.WithContext(ctxutil.WithIdentity(c.Request.Context(), identity))
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func (am *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := ctxutil.GetIdentity(c.Request.Context())
		if !id.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "admin role required",
				"code":  apierr.CodeForbidden,
			})
			return
		}
		c.Next()
	}
}

func (am *AuthMiddleware) resolveIdentity(c *gin.Context, tokenString string) (*ctxutil.Identity, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return am.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return nil, err
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, err
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if role == "" {
		role = "user"
	}
	if user, err := am.users.GetByID(c.Request.Context(), userID); err == nil && user != nil {
		role = user.Role
		if email == "" {
			email = user.Email
		}
	}
	return &ctxutil.Identity{UserID: userID, Email: email, Role: role}, nil
}

func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return ""
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": msg,
		"code":  apierr.CodeUnauthorized,
	})
}
