package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	httperr "github.com/storefront-lab/pulse/internal/core/errors"
	"github.com/stretchr/testify/require"
)

const testCookie = "pulse_session"

func newSessionRouter(t *testing.T, svc *TokenService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Middleware(svc, testCookie))
	r.GET("/whoami", func(c *gin.Context) {
		admin, err := ContextOracle{}.IsAdmin(c.Request.Context())
		require.NoError(t, err)
		c.JSON(http.StatusOK, gin.H{"admin": admin})
	})
	admin := r.Group("/admin", RequireAdmin())
	admin.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return r
}

func issue(t *testing.T, svc *TokenService, role string) string {
	t.Helper()
	token, _, err := svc.Issue("subject", role)
	require.NoError(t, err)
	return token
}

func TestMiddleware_ResolvesSession(t *testing.T) {
	svc := newTestTokenService(t, time.Now())
	router := newSessionRouter(t, svc)
	adminToken := issue(t, svc, RoleAdmin)

	tests := []struct {
		name      string
		prepare   func(req *http.Request)
		wantAdmin bool
	}{
		{name: "anonymous", prepare: func(req *http.Request) {}},
		{
			name: "admin cookie",
			prepare: func(req *http.Request) {
				req.AddCookie(&http.Cookie{Name: testCookie, Value: adminToken})
			},
			wantAdmin: true,
		},
		{
			name: "admin bearer",
			prepare: func(req *http.Request) {
				req.Header.Set("Authorization", "Bearer "+adminToken)
			},
			wantAdmin: true,
		},
		{
			name: "visitor token",
			prepare: func(req *http.Request) {
				req.Header.Set("Authorization", "Bearer "+issue(t, svc, "visitor"))
			},
		},
		{
			name: "bad token is a visitor",
			prepare: func(req *http.Request) {
				req.AddCookie(&http.Cookie{Name: testCookie, Value: "garbage"})
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			tc.prepare(req)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			var body map[string]bool
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			require.Equal(t, tc.wantAdmin, body["admin"])
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	svc := newTestTokenService(t, time.Now())
	router := newSessionRouter(t, svc)

	tests := []struct {
		name       string
		token      string
		wantStatus int
		wantType   string
	}{
		{name: "no session", wantStatus: http.StatusUnauthorized, wantType: httperr.HttpUnauthorizedError},
		{name: "visitor", token: issue(t, svc, "visitor"), wantStatus: http.StatusForbidden, wantType: httperr.HttpForbiddenError},
		{name: "admin", token: issue(t, svc, RoleAdmin), wantStatus: http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			require.Equal(t, tc.wantStatus, w.Code)
			if tc.wantType != "" {
				var resp httperr.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				require.Equal(t, tc.wantType, resp.ErrorType)
			} else {
				require.Equal(t, "pong", w.Body.String())
			}
		})
	}
}

func TestContextOracle(t *testing.T) {
	oracle := ContextOracle{}

	admin, err := oracle.IsAdmin(context.Background())
	require.NoError(t, err)
	require.False(t, admin)

	ctx := WithClaims(context.Background(), &Claims{Role: RoleAdmin})
	admin, err = oracle.IsAdmin(ctx)
	require.NoError(t, err)
	require.True(t, admin)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = oracle.IsAdmin(canceled)
	require.ErrorIs(t, err, context.Canceled)
}

func TestOracleFunc(t *testing.T) {
	var oracle Oracle = OracleFunc(func(ctx context.Context) (bool, error) {
		return true, nil
	})
	admin, err := oracle.IsAdmin(context.Background())
	require.NoError(t, err)
	require.True(t, admin)
}
