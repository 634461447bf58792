package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/Gouveia04K/GA-Financas/internal/config"
	"github.com/Gouveia04K/GA-Financas/internal/database"

	"github.com/gin-gonic/gin"
)

func setupTestServer(t *testing.T) *gin.Engine {
	t.Helper()

	db, err := database.Init(config.DatabaseConfig{
		Path: filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("Init test database failed: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate failed: %v", err)
	}

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: gin.TestMode},
		JWT: config.JWTConfig{
			Secret:             "test-secret",
			AccessExpireMin:    60,
			RefreshExpireHours: 24,
		},
		Security: config.SecurityConfig{BcryptCost: 4}, // fast hashing in tests
	}
	return SetupRouter(cfg, db)
}

// doJSON performs a request with an optional JSON body and bearer token.
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeMap(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return m
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var l []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &l); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return l
}

func registerUser(t *testing.T, r *gin.Engine, username, password, email string) map[string]interface{} {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/register/", "", gin.H{
		"username": username,
		"password": password,
		"email":    email,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register %q status = %d, body %s", username, w.Code, w.Body.String())
	}
	return decodeMap(t, w)
}

// loginUser registers nothing; it exchanges credentials for the token pair.
func loginUser(t *testing.T, r *gin.Engine, username, password string) (access, refresh string) {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/login/", "", gin.H{
		"username": username,
		"password": password,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login %q status = %d, body %s", username, w.Code, w.Body.String())
	}
	resp := decodeMap(t, w)
	access, _ = resp["access"].(string)
	refresh, _ = resp["refresh"].(string)
	if access == "" || refresh == "" {
		t.Fatalf("login response missing tokens: %s", w.Body.String())
	}
	return access, refresh
}

// newTestUser registers and logs a user in, returning the access token.
func newTestUser(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()
	registerUser(t, r, username, "pw12345", username+"@example.com")
	access, _ := loginUser(t, r, username, "pw12345")
	return access
}
