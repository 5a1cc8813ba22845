package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelcm/hogdash-go/internal/cache"
	"github.com/angelcm/hogdash-go/internal/dashboard"
	"github.com/angelcm/hogdash-go/internal/models"
	"github.com/angelcm/hogdash-go/internal/posthog"
)

type fakeGateway struct {
	respond func(tool, body string) ([]string, error)
}

func (f *fakeGateway) ExecuteTool(ctx context.Context, tool string, params any) ([]string, error) {
	b, _ := json.Marshal(params)
	return f.respond(tool, string(b))
}

func newTestServer(gw dashboard.Gateway) *httptest.Server {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := dashboard.NewService(gw, cache.New(5*time.Minute), log)
	return httptest.NewServer(NewRouter(log, svc))
}

const pageViewsTable = `Results:
  - [0]: 2025-11-20,250,6
  - [1]: 2025-11-21,150,2
`

func TestPageViewsEndpoint(t *testing.T) {
	gw := &fakeGateway{respond: func(tool, body string) ([]string, error) {
		if strings.Contains(body, "page_views") {
			return []string{pageViewsTable}, nil
		}
		return []string{"no rows"}, nil
	}}
	srv := newTestServer(gw)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/pageviews")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rep models.PageViewReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rep))
	assert.False(t, rep.NoData)
	assert.Equal(t, 400, rep.Summary.TotalViews)
	require.Len(t, rep.Trend, 2)
}

func TestAuthFailureSurfacedInline(t *testing.T) {
	gw := &fakeGateway{respond: func(tool, body string) ([]string, error) {
		return nil, &posthog.AuthError{Msg: "authentication failed (401): check your DATAGEN_API_KEY"}
	}}
	srv := newTestServer(gw)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/dau")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)

	var payload map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "auth_error", payload["error"])
	assert.Contains(t, payload["message"], "DATAGEN_API_KEY")
}

func TestSectionFailureIsLocal(t *testing.T) {
	// errores del gateway en una sección no afectan a las demás
	gw := &fakeGateway{respond: func(tool, body string) ([]string, error) {
		if tool == posthog.ToolListErrors {
			return nil, errors.New("connection reset")
		}
		return []string{"no rows"}, nil
	}}
	srv := newTestServer(gw)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/errors")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/api/pageviews")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRefreshEndpoint(t *testing.T) {
	calls := 0
	gw := &fakeGateway{respond: func(tool, body string) ([]string, error) {
		calls++
		return []string{"no rows"}, nil
	}}
	srv := newTestServer(gw)
	defer srv.Close()

	_, _ = http.Get(srv.URL + "/api/pageviews")
	first := calls

	resp, err := http.Post(srv.URL+"/api/refresh", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, _ = http.Get(srv.URL + "/api/pageviews")
	assert.Equal(t, first*2, calls)
}

func TestErrorDetailNotFound(t *testing.T) {
	gw := &fakeGateway{respond: func(tool, body string) ([]string, error) {
		return nil, nil
	}}
	srv := newTestServer(gw)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/errors/err-404")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealthAndReady(t *testing.T) {
	gw := &fakeGateway{respond: func(tool, body string) ([]string, error) {
		if tool == posthog.ToolProjectsGet {
			return []string{"project: demo"}, nil
		}
		return nil, errors.New("unexpected tool")
	}}
	srv := newTestServer(gw)
	defer srv.Close()

	resp, _ := http.Get(srv.URL + "/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, _ = http.Get(srv.URL + "/readyz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestReadyzFailsWhenGatewayDown(t *testing.T) {
	gw := &fakeGateway{respond: func(tool, body string) ([]string, error) {
		return nil, errors.New("dial tcp: connection refused")
	}}
	srv := newTestServer(gw)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/readyz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestRequestIDHeader(t *testing.T) {
	gw := &fakeGateway{respond: func(tool, body string) ([]string, error) {
		return []string{"no rows"}, nil
	}}
	srv := newTestServer(gw)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}
