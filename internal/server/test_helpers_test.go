package server

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"playlist-rater/internal/config"
	"playlist-rater/internal/store"
	"playlist-rater/internal/testutil"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Skipf("skipping test; listen unavailable: %v", err)
	}
	ts := &httptest.Server{
		Listener: listener,
		Config:   &http.Server{Handler: handler},
	}
	ts.Start()
	t.Cleanup(ts.Close)
	return ts
}

// newTestApp wires a server to a fresh SQLite database.
func newTestApp(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	srv := New(store.New(testutil.OpenDB(t)), config.Default(), nil)
	return srv, newTestServer(t, srv.Handler())
}
