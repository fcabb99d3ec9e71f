package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/ctxutil"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/logger"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/types"
)

const testSecret = "test-secret"

type stubUserRepo struct {
	users map[uuid.UUID]*types.User
}

func (s *stubUserRepo) Create(ctx context.Context, users []*types.User) ([]*types.User, error) {
	return users, nil
}

func (s *stubUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*types.User, error) {
	return s.users[id], nil
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*types.User, error) {
	return nil, nil
}

func (s *stubUserRepo) UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return nil
}

func signToken(t *testing.T, secret string, userID uuid.UUID, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   userID.String(),
		"email": "caller@example.test",
		"role":  role,
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func newAuthRouter(users *stubUserRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	am := NewAuthMiddleware(logger.NewNop(), testSecret, users)
	router := gin.New()
	protected := router.Group("/api")
	protected.Use(am.RequireAuth())
	protected.GET("/whoami", func(c *gin.Context) {
		id := ctxutil.GetIdentity(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"user_id": id.UserID, "role": id.Role})
	})
	admin := protected.Group("/admin")
	admin.Use(am.RequireAdmin())
	admin.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return router
}

func doRequest(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	out := map[string]interface{}{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	router := newAuthRouter(&stubUserRepo{})

	rec := doRequest(router, "/api/whoami", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("got status %d, want 401", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["code"] != "UNAUTHORIZED" {
		t.Fatalf("got code %v, want UNAUTHORIZED", body["code"])
	}
}

func TestRequireAuthRejectsBadSignature(t *testing.T) {
	router := newAuthRouter(&stubUserRepo{})
	token := signToken(t, "wrong-secret", uuid.New(), "user")

	rec := doRequest(router, "/api/whoami", token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("got status %d, want 401", rec.Code)
	}
}

func TestRequireAuthAttachesIdentity(t *testing.T) {
	userID := uuid.New()
	router := newAuthRouter(&stubUserRepo{})
	token := signToken(t, testSecret, userID, "user")

	rec := doRequest(router, "/api/whoami", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["user_id"] != userID.String() {
		t.Fatalf("got user_id %v, want %s", body["user_id"], userID)
	}
}

func TestRoleRefreshedFromLocalUser(t *testing.T) {
	userID := uuid.New()
	users := &stubUserRepo{users: map[uuid.UUID]*types.User{
		userID: {ID: userID, Email: "caller@example.test", Role: types.UserRoleAdmin},
	}}
	router := newAuthRouter(users)

	// Token still carries the stale "user" role; the local row wins.
	token := signToken(t, testSecret, userID, "user")
	rec := doRequest(router, "/api/admin/ping", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200: %s", rec.Code, rec.Body.String())
	}
}

func TestRequireAdminForbidsNonAdmins(t *testing.T) {
	router := newAuthRouter(&stubUserRepo{})
	token := signToken(t, testSecret, uuid.New(), "user")

	rec := doRequest(router, "/api/admin/ping", token)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("got status %d, want 403", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["code"] != "FORBIDDEN" {
		t.Fatalf("got code %v, want FORBIDDEN", body["code"])
	}
}
