package handlers_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hugh/planit/internal/api"
	"github.com/hugh/planit/internal/auth"
	"github.com/hugh/planit/internal/testutil"
)

type testServer struct {
	*testutil.TestSetup
	router http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	setup := testutil.NewTestContext(t)

	router := api.NewRouter(api.RouterConfig{
		DB:          setup.DB,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		JWTService:  setup.JWTService,
		AuthService: auth.NewService(setup.DB, setup.JWTService, nil),
	})
	return &testServer{TestSetup: setup, router: router}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, testutil.UnauthenticatedRequest(t, method, path, body))
	return rr
}

func (s *testServer) doAuth(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, testutil.AuthenticatedRequest(t, method, path, body, token))
	return rr
}

// envelope decodes the common response fields and keeps everything else raw.
type envelope map[string]interface{}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	testutil.ParseJSONResponse(t, rr, &env)
	return env
}
