package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	nethttp "net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"resume-builder/internal/metrics"
	"resume-builder/internal/testutil"
	"resume-builder/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	app      *fiber.App
	accounts *testutil.AccountStore
	resumes  *testutil.ResumeStore
	renderer *testutil.Renderer
	registry *prometheus.Registry
	settings Settings
}

type envConfig struct {
	settings  Settings
	app       AppConfig
	pinger    Pinger
	maxUpload int64
}

type envOption func(*envConfig)

func withEnvironment(env string) envOption {
	return func(c *envConfig) {
		c.settings.Environment = env
		c.settings.Development = env == "development"
	}
}

func withAppConfig(fn func(*AppConfig)) envOption {
	return func(c *envConfig) { fn(&c.app) }
}

func withPinger(p Pinger) envOption {
	return func(c *envConfig) { c.pinger = p }
}

func withMaxUpload(n int64) envOption {
	return func(c *envConfig) { c.maxUpload = n }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	reg := prometheus.NewRegistry()
	cfg := envConfig{
		settings: Settings{Environment: "test", Version: "1.0.0", UploadDir: t.TempDir()},
		app: AppConfig{
			AllowedOrigins: "*",
			Logger:         slog.New(slog.NewJSONHandler(io.Discard, nil)),
			Metrics:        metrics.NewCollector(reg),
			Gatherer:       reg,
		},
		maxUpload: usecase.DefaultMaxUploadBytes,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	env := &testEnv{
		accounts: testutil.NewAccountStore(),
		resumes:  testutil.NewResumeStore(),
		renderer: &testutil.Renderer{},
		registry: reg,
		settings: cfg.settings,
	}
	h := NewHandler(
		usecase.NewAccounts(env.accounts),
		usecase.NewResumes(env.resumes),
		usecase.NewExporter(env.renderer, cfg.maxUpload),
		cfg.pinger,
		cfg.settings,
	)
	env.app = NewApp(h, cfg.app)
	return env
}

func (e *testEnv) do(t *testing.T, req *nethttp.Request) *nethttp.Response {
	t.Helper()
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (e *testEnv) doJSON(t *testing.T, method, target string, body interface{}) *nethttp.Response {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	return e.do(t, req)
}

type uploadFile struct {
	field       string
	name        string
	contentType string
	content     string
}

func (e *testEnv) upload(t *testing.T, files ...uploadFile) *nethttp.Response {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Disposition", `form-data; name="`+f.field+`"; filename="`+f.name+`"`)
		if f.contentType != "" {
			hdr.Set("Content-Type", f.contentType)
		}
		part, err := w.CreatePart(hdr)
		require.NoError(t, err)
		_, err = part.Write([]byte(f.content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(nethttp.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return e.do(t, req)
}

func decodeBody(t *testing.T, resp *nethttp.Response, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func readBody(t *testing.T, resp *nethttp.Response) []byte {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return b
}
