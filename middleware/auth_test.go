package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clinicore/models"
	"clinicore/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func authTestRouter(t *testing.T, wantID uuid.UUID, wantRole models.Role) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWTAuthMiddleware())
	r.GET("/whoami", func(c *gin.Context) {
		id, ok := UserID(c)
		if !ok || id != wantID {
			c.Status(http.StatusInternalServerError)
			return
		}
		if RoleOf(c) != wantRole {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusOK)
	})
	return r
}

func TestJWTAuthMiddlewareResolvesIdentity(t *testing.T) {
	userID := uuid.New()
	token, err := utils.GenerateToken(userID.String(), string(models.RoleDoctor), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	r := authTestRouter(t, userID, models.RoleDoctor)
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestJWTAuthMiddlewareRejectsMissingToken(t *testing.T) {
	r := authTestRouter(t, uuid.New(), models.RoleDoctor)
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestJWTAuthMiddlewareRejectsUnknownRole(t *testing.T) {
	userID := uuid.New()
	token, err := utils.GenerateToken(userID.String(), "janitor", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	r := authTestRouter(t, userID, models.RoleDoctor)
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestOptionalJWTAuthAllowsAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(OptionalJWTAuth())
	r.GET("/open", func(c *gin.Context) {
		if _, ok := UserID(c); ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}
