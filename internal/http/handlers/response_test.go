package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/apierr"
)

func record(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	handler(c)
	body := map[string]interface{}{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return rec, body
}

func TestRespondOKInjectsSuccess(t *testing.T) {
	rec, body := record(t, func(c *gin.Context) {
		RespondOK(c, gin.H{"campaign": "launch"})
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
	if body["success"] != true {
		t.Fatalf("success flag missing: %v", body)
	}
	if body["campaign"] != "launch" {
		t.Fatalf("payload key lost: %v", body)
	}
}

func TestRespondErrorEnvelope(t *testing.T) {
	rec, body := record(t, func(c *gin.Context) {
		RespondError(c, apierr.NotFound("campaign not found"))
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want 404", rec.Code)
	}
	if body["code"] != "NOT_FOUND" {
		t.Fatalf("got code %v, want NOT_FOUND", body["code"])
	}
	if body["error"] != "campaign not found" {
		t.Fatalf("got error %v", body["error"])
	}
	if _, ok := body["success"]; ok {
		t.Fatal("error envelope must not carry success flag")
	}
}

func TestRespondErrorWrapsUnknown(t *testing.T) {
	rec, body := record(t, func(c *gin.Context) {
		RespondError(c, errors.New("pq: connection reset"))
	})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("got status %d, want 500", rec.Code)
	}
	if body["code"] != "INTERNAL_ERROR" {
		t.Fatalf("got code %v, want INTERNAL_ERROR", body["code"])
	}
}
