package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/rate_ledger/internal/core/domain"
	"github.com/SscSPs/rate_ledger/internal/middleware"
	"github.com/SscSPs/rate_ledger/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/posthog/posthog-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-that-is-long-enough"

func init() {
	gin.SetMode(gin.TestMode)
}

func signToken(t *testing.T, secret string, claims utils.ActorClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func claimsFor(sub, name, role string, expiresIn time.Duration) utils.ActorClaims {
	return utils.ActorClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
		Name: name,
		Role: role,
	}
}

func newAuthRouter(extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{middleware.AuthMiddleware(testSecret)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		actor, _ := middleware.GetActorFromContext(c)
		ctxActor, _ := middleware.ActorFromCtx(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"id": actor.ID, "name": actor.Name, "role": actor.Role, "ctx_id": ctxActor.ID})
	})
	r.GET("/protected", handlers...)
	return r
}

func doGet(r http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_ValidTokenStoresActor(t *testing.T) {
	token := signToken(t, testSecret, claimsFor("user-1", "Ana", "treasurer", time.Hour))

	w := doGet(newAuthRouter(), "Bearer "+token)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, map[string]string{"id": "user-1", "name": "Ana", "role": "treasurer", "ctx_id": "user-1"}, body)
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	cases := []struct {
		name    string
		header  string
		message string
	}{
		{"missing header", "", "Authorization header required"},
		{"wrong scheme", "Basic abc", "Authorization header format must be Bearer {token}"},
		{"bad signature", "Bearer " + signToken(t, "another-secret", claimsFor("user-1", "", "", time.Hour)), "Invalid token"},
		{"expired", "Bearer " + signToken(t, testSecret, claimsFor("user-1", "", "", -time.Minute)), "Token has expired"},
		{"no subject", "Bearer " + signToken(t, testSecret, claimsFor("", "Ana", "", time.Hour)), "Invalid token claims"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doGet(newAuthRouter(), tc.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"error":"`+tc.message+`"}`, w.Body.String())
		})
	}
}

func TestRequireWriter(t *testing.T) {
	r := newAuthRouter(middleware.RequireWriter(domain.RoleWritePolicy("treasurer")))

	allowed := doGet(r, "Bearer "+signToken(t, testSecret, claimsFor("user-1", "Ana", "treasurer", time.Hour)))
	assert.Equal(t, http.StatusOK, allowed.Code)

	denied := doGet(r, "Bearer "+signToken(t, testSecret, claimsFor("user-2", "Bo", "viewer", time.Hour)))
	assert.Equal(t, http.StatusForbidden, denied.Code)
	assert.JSONEq(t, `{"error":"You are not allowed to record conversion rates"}`, denied.Body.String())
}

func TestRequireWriter_NilPolicyAdmitsAuthenticated(t *testing.T) {
	r := newAuthRouter(middleware.RequireWriter(nil))
	w := doGet(r, "Bearer "+signToken(t, testSecret, claimsFor("user-1", "", "", time.Hour)))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStructuredLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger))
	r.GET("/ping", func(c *gin.Context) {
		middleware.GetLoggerFromCtx(c.Request.Context()).Info("inside handler")
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
	assert.Contains(t, buf.String(), `"msg":"inside handler"`)
	assert.Contains(t, buf.String(), `"request_id":"req-42"`)
	assert.Contains(t, buf.String(), `"msg":"Request completed"`)
}

func TestStructuredLoggingMiddleware_GeneratesRequestID(t *testing.T) {
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestGetLoggerFromCtx_FallsBackToDefault(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Same(t, slog.Default(), middleware.GetLoggerFromCtx(req.Context()))
}

func TestRateLimit(t *testing.T) {
	lim, err := middleware.NewRateLimiter("2-M")
	require.NoError(t, err)

	r := newAuthRouter(middleware.RateLimit(lim))
	token := "Bearer " + signToken(t, testSecret, claimsFor("user-1", "", "", time.Hour))

	assert.Equal(t, http.StatusOK, doGet(r, token).Code)
	second := doGet(r, token)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "0", second.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, http.StatusTooManyRequests, doGet(r, token).Code)

	other := "Bearer " + signToken(t, testSecret, claimsFor("user-2", "", "", time.Hour))
	assert.Equal(t, http.StatusOK, doGet(r, other).Code, "limits are kept per actor")
}

func TestNewRateLimiter_InvalidFormat(t *testing.T) {
	_, err := middleware.NewRateLimiter("lots")
	assert.Error(t, err)
}

type capturingPosthog struct {
	posthog.Client
	captured []posthog.Capture
}

func (c *capturingPosthog) Enqueue(msg posthog.Message) error {
	if capture, ok := msg.(posthog.Capture); ok {
		c.captured = append(c.captured, capture)
	}
	return nil
}

func TestPosthogMiddleware_TracksSuccessfulAuthenticatedCalls(t *testing.T) {
	client := &capturingPosthog{}
	wrapper := utils.NewPosthogClientWrapper(client, nil)

	r := gin.New()
	v1 := r.Group("/api/v1", middleware.PosthogMiddleware(wrapper), middleware.AuthMiddleware(testSecret))
	v1.GET("/conversion-rates", func(c *gin.Context) { c.JSON(http.StatusOK, nil) })
	v1.POST("/conversion-rates", func(c *gin.Context) { c.JSON(http.StatusBadRequest, gin.H{"error": "bad"}) })

	token := "Bearer " + signToken(t, testSecret, claimsFor("user-1", "", "", time.Hour))
	for _, method := range []string{http.MethodGet, http.MethodPost} {
		req := httptest.NewRequest(method, "/api/v1/conversion-rates", nil)
		req.Header.Set("Authorization", token)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	require.Len(t, client.captured, 1)
	assert.Equal(t, "user-1", client.captured[0].DistinctId)
	assert.Equal(t, "api_v1_conversion-rates", client.captured[0].Event)
}

func TestEventName(t *testing.T) {
	assert.Equal(t, "api_v1_conversion-rates_stats", middleware.EventName("/api/v1/conversion-rates/stats"))
	assert.Equal(t, "", middleware.EventName(""))
}
