package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sushihentaime/blogdocs/internal/blogservice"
	"github.com/sushihentaime/blogdocs/internal/logger"
)

type testServer struct {
	*httptest.Server
}

// testEnvelope mirrors envelope but keeps data raw so each test decodes what it expects.
type testEnvelope struct {
	Error   bool            `json:"error"`
	Message string          `json:"message"`
	Status  int             `json:"status"`
	Data    json.RawMessage `json:"data"`
}

func newTestConfig() *Config {
	return &Config{
		Port:            ":0",
		Environment:     "testing",
		Version:         "1.0.0",
		APIVersion:      "/api/v1",
		StoreDriver:     "memory",
		ShutdownTimeout: time.Second,
	}
}

func newTestApplication(t *testing.T) *application {
	t.Helper()

	return newTestApplicationWithStore(t, blogservice.NewMemoryStore())
}

func newTestApplicationWithStore(t *testing.T, store blogservice.Store) *application {
	t.Helper()

	log := logger.NewNop()

	return &application{
		config:      newTestConfig(),
		logger:      log,
		blogService: blogservice.NewBlogService(store, nil, log),
	}
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

func readResponse(t *testing.T, res *http.Response) (int, http.Header, testEnvelope) {
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	var env testEnvelope
	err = json.Unmarshal(responseBody, &env)
	if err != nil {
		t.Fatalf("could not decode %q: %v", responseBody, err)
	}

	return res.StatusCode, res.Header, env
}

func (ts *testServer) get(t *testing.T, path string) (int, http.Header, testEnvelope) {
	res, err := ts.Client().Get(ts.URL + path)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

func (ts *testServer) post(t *testing.T, path string, data any) (int, http.Header, testEnvelope) {
	jsonPayload, err := json.Marshal(data)
	if err != nil {
		t.Fatal(err)
	}

	return ts.postRaw(t, path, string(jsonPayload))
}

func (ts *testServer) postRaw(t *testing.T, path, body string) (int, http.Header, testEnvelope) {
	req, err := http.NewRequest(http.MethodPost, ts.URL+path, bytes.NewBufferString(body))
	if err != nil {
		t.Fatal(err)
	}

	req.Header.Set("Content-Type", "application/json")
	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

func decodeData(t *testing.T, env testEnvelope, dst any) {
	t.Helper()

	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("could not decode data %q: %v", env.Data, err)
	}
}
