package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/frontandrew/matricula/internal/domain"
	"github.com/frontandrew/matricula/internal/pkg/jwt"
	"github.com/frontandrew/matricula/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func tokenFor(t *testing.T, ts *jwt.TokenService, role domain.OperatorRole) string {
	t.Helper()
	token, err := ts.GenerateToken(&domain.Operator{Name: "Ventanilla", Role: role})
	require.NoError(t, err)
	return token.AccessToken
}

func TestAuthMiddleware(t *testing.T) {
	ts := jwt.NewTokenService("secret", time.Hour)
	valid := tokenFor(t, ts, domain.RoleOperator)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"без заголовка", "", http.StatusUnauthorized},
		{"неверный формат", "Token " + valid, http.StatusUnauthorized},
		{"чужая подпись", "Bearer " + tokenFor(t, jwt.NewTokenService("other", time.Hour), domain.RoleOperator), http.StatusUnauthorized},
		{"валидный токен", "Bearer " + valid, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			AuthMiddleware(ts)(okHandler).ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	ts := jwt.NewTokenService("secret", time.Hour)
	handler := AuthMiddleware(ts)(RequireRole(domain.RoleInspector)(okHandler))

	tests := []struct {
		name   string
		role   domain.OperatorRole
		status int
	}{
		{"инспектор", domain.RoleInspector, http.StatusOK},
		{"администратор", domain.RoleAdmin, http.StatusOK},
		{"оператор", domain.RoleOperator, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			req.Header.Set("Authorization", "Bearer "+tokenFor(t, ts, tt.role))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
		})
	}

	w := httptest.NewRecorder()
	RequireRole(domain.RoleInspector)(okHandler).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStaticOperatorMiddleware(t *testing.T) {
	handler := StaticOperatorMiddleware(&domain.Operator{Name: "local", Role: domain.RoleAdmin})(
		RequireRole(domain.RoleInspector)(okHandler),
	)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	RecoveryMiddleware(logger.NewNoop())(panicking).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Internal server error"}`, w.Body.String())
}

func TestLoggingMiddleware_KeepsStatus(t *testing.T) {
	created := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	w := httptest.NewRecorder()
	LoggingMiddleware(logger.NewNoop(), nil)(created).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCORSMiddleware(t *testing.T) {
	handler := CORSMiddleware(CORSConfig{
		AllowedOrigins: []string{"http://localhost:3000"},
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Authorization"},
	})(okHandler)

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST", w.Header().Get("Access-Control-Allow-Methods"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
