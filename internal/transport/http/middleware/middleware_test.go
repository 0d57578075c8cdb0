package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"go-gin-portfolio/internal/core/auth"
)

func init() { gin.SetMode(gin.TestMode) }

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type verifierFunc func(string) (auth.Principal, error)

func (f verifierFunc) Verify(tok string) (auth.Principal, error) { return f(tok) }

type loaderFunc func(context.Context, auth.Principal) (auth.Principal, error)

func (f loaderFunc) LoadPrincipal(ctx context.Context, p auth.Principal) (auth.Principal, error) {
	return f(ctx, p)
}

func TestAuthenticateUsesStoredRole(t *testing.T) {
	v := verifierFunc(func(string) (auth.Principal, error) { return auth.Principal{UserID: "u1", Role: "admin"}, nil })
	demoted := loaderFunc(func(_ context.Context, p auth.Principal) (auth.Principal, error) {
		return auth.Principal{UserID: p.UserID, Role: "user"}, nil
	})

	r := gin.New()
	r.GET("/admin", Authenticate(v, demoted), RequireRole("admin"), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer anything")
	assert.Equal(t, http.StatusForbidden, serve(r, req).Code)
}

func TestAuthenticateLoaderFailure(t *testing.T) {
	v := verifierFunc(func(string) (auth.Principal, error) { return auth.Principal{UserID: "u1"}, nil })
	broken := loaderFunc(func(context.Context, auth.Principal) (auth.Principal, error) {
		return auth.Principal{}, errors.New("db down")
	})
	r := gin.New()
	r.GET("/me", Authenticate(v, broken), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer anything")
	assert.Equal(t, http.StatusInternalServerError, serve(r, req).Code)
}

func TestAuthenticateWithoutLoaderTrustsClaims(t *testing.T) {
	v := verifierFunc(func(string) (auth.Principal, error) { return auth.Principal{UserID: "u1", Role: "admin"}, nil })
	r := gin.New()
	r.GET("/me", Authenticate(v, nil), func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		require.True(t, ok)
		c.String(http.StatusOK, p.UserID+":"+p.Role)
	})
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer x")
	w := serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1:admin", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Basic x")
	assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)
}

func TestRequireRoleWithoutPrincipal(t *testing.T) {
	r := gin.New()
	r.GET("/", RequireRole("admin"), func(c *gin.Context) { c.Status(http.StatusOK) })
	assert.Equal(t, http.StatusUnauthorized, serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
}

func TestTimeoutAnswers504(t *testing.T) {
	r := gin.New()
	r.GET("/slow", Timeout(20*time.Millisecond), func(c *gin.Context) {
		<-c.Request.Context().Done()
	})
	w := serve(r, httptest.NewRequest(http.MethodGet, "/slow", nil))
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.Contains(t, w.Body.String(), `"code":504`)
}

func TestConcurrencyLimitRejectsWhenContextEnds(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	r := gin.New()
	r.GET("/", ConcurrencyLimit(1), func(c *gin.Context) {
		close(entered)
		<-release
		c.Status(http.StatusOK)
	})

	done := make(chan int)
	go func() { done <- serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code }()
	<-entered

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	close(release)
	assert.Equal(t, http.StatusOK, <-done)
}

func TestMaxBodyBytes(t *testing.T) {
	r := gin.New()
	r.POST("/", MaxBodyBytes(8), func(c *gin.Context) {
		_, err := io.ReadAll(c.Request.Body)
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})
	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("small"))).Code)
	assert.Equal(t, http.StatusRequestEntityTooLarge,
		serve(r, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("this is too large"))).Code)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.GET("/", RequestID(), func(c *gin.Context) { c.String(http.StatusOK, c.GetString(KeyRequestID)) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get(KeyRequestID))
	assert.Equal(t, w.Header().Get(KeyRequestID), w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(KeyRequestID, "abc")
	assert.Equal(t, "abc", serve(r, req).Header().Get(KeyRequestID))
}

type limiterFunc func(context.Context, string) (bool, error)

func (f limiterFunc) Allow(ctx context.Context, key string) (bool, error) { return f(ctx, key) }

func TestThrottle(t *testing.T) {
	var keys []string
	deny := limiterFunc(func(_ context.Context, key string) (bool, error) {
		keys = append(keys, key)
		return false, nil
	})
	broken := limiterFunc(func(context.Context, string) (bool, error) { return true, errors.New("redis down") })

	r := gin.New()
	r.POST("/deny", Throttle(deny, "contact", zap.NewNop()), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/open", Throttle(broken, "contact", zap.NewNop()), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusTooManyRequests, serve(r, httptest.NewRequest(http.MethodPost, "/deny", nil)).Code)
	assert.Equal(t, []string{"contact:192.0.2.1"}, keys)
	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodPost, "/open", nil)).Code)
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.GET("/", RateLimit(1, 1), func(c *gin.Context) { c.Status(http.StatusOK) })
	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
}

func TestMetricsReuseRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	a := NewMetrics(reg)
	b := NewMetrics(reg)
	assert.Same(t, a.total, b.total)

	r := gin.New()
	r.GET("/x", b.Handler(), func(c *gin.Context) { c.Status(http.StatusTeapot) })
	serve(r, httptest.NewRequest(http.MethodGet, "/x", nil))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	var found bool
	for _, mf := range mfs {
		if mf.GetName() == "http_requests_total" {
			found = true
			assert.Equal(t, 1.0, mf.GetMetric()[0].GetCounter().GetValue())
		}
	}
	assert.True(t, found)
}

func TestAccessLogMasksSecretsAndLevels(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(AccessLog(zap.New(core)), Recovery(zap.NewNop()))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(*gin.Context) { panic("boom") })

	serve(r, httptest.NewRequest(http.MethodGet, "/ok?token=abc&page=2", nil))
	w := serve(r, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	entries := logs.All()
	require.Len(t, entries, 2)
	q := entries[0].ContextMap()["query"].(map[string][]string)
	assert.Equal(t, []string{"****"}, q["token"])
	assert.Equal(t, []string{"2"}, q["page"])
	assert.Equal(t, zap.ErrorLevel, entries[1].Level)
}

func TestRequestIDReplacesUnprintable(t *testing.T) {
	r := gin.New()
	r.GET("/", RequestID(), func(c *gin.Context) { c.Status(http.StatusOK) })
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(KeyRequestID, "bad id")
	assert.NotEqual(t, "bad id", serve(r, req).Header().Get(KeyRequestID))
}
