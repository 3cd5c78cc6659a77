package web_test

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/BerylCAtieno/content-generator/internal/apperror"
	"github.com/BerylCAtieno/content-generator/internal/config"
	"github.com/BerylCAtieno/content-generator/internal/content"
	"github.com/BerylCAtieno/content-generator/internal/generator"
	"github.com/BerylCAtieno/content-generator/internal/report"
	"github.com/BerylCAtieno/content-generator/internal/validation"
	"github.com/BerylCAtieno/content-generator/internal/web"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "content-generator", Version: "test"},
		Content: config.ContentConfig{
			Languages:         config.SupportedLanguages,
			BrandVoices:       config.BrandVoices,
			DefaultLanguage:   "English",
			DefaultBrandVoice: "Professional",
			MaxContentLength:  10000,
			EnforceChoices:    true,
		},
		Observability: config.ObservabilityConfig{
			Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
		},
	}
}

func newServer(t *testing.T, availability generator.Availability) http.Handler {
	t.Helper()
	cfg := testConfig()
	svc := content.NewService(availability, validation.RulesFromConfig(cfg.Content))
	h, err := web.NewHandler(svc, cfg)
	require.NoError(t, err)
	return web.NewRouter(cfg, h)
}

func replying(text string, err error) generator.Availability {
	return generator.Availability{Generator: generator.New(&generator.MockClient{
		ModelName: "test-model",
		CompleteFn: func(context.Context, generator.Prompt) (*generator.Completion, error) {
			if err != nil {
				return nil, err
			}
			return &generator.Completion{Text: text}, nil
		},
	})}
}

const validBody = `{
	"language": "English",
	"topic": "  AI in healthcare ",
	"primary_goal": "educate readers",
	"target_audience": "clinicians",
	"brand_voice": "Professional"
}`

type envelope struct {
	Code    int                  `json:"code"`
	Message string               `json:"message"`
	Data    web.GenerateResponse `json:"data"`
}

func postJSON(t *testing.T, srv http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestGenerateAPISuccess(t *testing.T) {
	t.Parallel()
	srv := newServer(t, replying("Hello world", nil))

	w := postJSON(t, srv, "/api/generate", validBody)
	require.Equal(t, http.StatusOK, w.Code)

	env := decode(t, w)
	assert.Equal(t, "success", env.Message)
	assert.Equal(t, content.StateSucceeded, env.Data.State)
	assert.True(t, env.Data.Valid)
	assert.Empty(t, env.Data.Errors)
	assert.Equal(t, "AI in healthcare", env.Data.SanitizedData["topic"])
	assert.Contains(t, env.Data.Report, "- **Word Count:** 2 words")
	assert.Contains(t, string(env.Data.ReportHTML), "<strong>Content Generated Successfully!</strong>")
	require.NotNil(t, env.Data.Outcome)
	assert.Equal(t, "Hello world", env.Data.Outcome.Content)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestGenerateAPIValidationFailure(t *testing.T) {
	t.Parallel()
	srv := newServer(t, replying("unused", nil))

	w := postJSON(t, srv, "/api/generate", `{"language":"English","brand_voice":"Professional","topic":"ab","primary_goal":" ","target_audience":"x"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	env := decode(t, w)
	assert.Equal(t, content.StateInvalid, env.Data.State)
	assert.False(t, env.Data.Valid)
	assert.Equal(t, []string{
		validation.MsgPrimaryGoalRequired,
		"Topic should be at least 3 characters long",
	}, env.Data.Errors)
	assert.True(t, strings.HasPrefix(env.Data.Report, report.ValidationHeader))
	assert.Nil(t, env.Data.Outcome)
}

func TestGenerateAPIGenerationFailure(t *testing.T) {
	t.Parallel()
	srv := newServer(t, replying("", errors.New("quota exceeded")))

	w := postJSON(t, srv, "/api/generate", validBody)
	require.Equal(t, http.StatusBadGateway, w.Code)

	env := decode(t, w)
	assert.Equal(t, content.StateFailed, env.Data.State)
	assert.Equal(t, "❌ **Generation Error:** quota exceeded", env.Data.Report)
}

func TestGenerateAPIUnavailable(t *testing.T) {
	t.Parallel()
	srv := newServer(t, generator.Availability{Err: apperror.ErrMissingCredential})

	w := postJSON(t, srv, "/api/generate", validBody)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	env := decode(t, w)
	assert.Equal(t, content.StateUnavailable, env.Data.State)
	assert.Equal(t, report.ConfigurationError, env.Data.Report)
}

func TestGenerateAPIBadJSON(t *testing.T) {
	t.Parallel()
	srv := newServer(t, replying("unused", nil))

	w := postJSON(t, srv, "/api/generate", `{"topic":`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp web.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "invalid_param", resp.Error.ErrorCode)
}

// streamRecorder adds the CloseNotifier that gin's Stream expects.
type streamRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func (r *streamRecorder) CloseNotify() <-chan bool { return r.closed }

func streamEvents(t *testing.T, srv http.Handler) (*streamRecorder, []string, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/generate/stream", strings.NewReader(validBody))
	req.Header.Set("Content-Type", "application/json")
	w := &streamRecorder{ResponseRecorder: httptest.NewRecorder(), closed: make(chan bool, 1)}
	srv.ServeHTTP(w, req)

	var names []string
	var last string
	scanner := bufio.NewScanner(strings.NewReader(w.Body.String()))
	for scanner.Scan() {
		line := scanner.Text()
		if name, ok := strings.CutPrefix(line, "event:"); ok {
			names = append(names, name)
		}
		if data, ok := strings.CutPrefix(line, "data:"); ok {
			last = data
		}
	}
	return w, names, last
}

func TestGenerateStream(t *testing.T) {
	t.Parallel()
	srv := newServer(t, replying("Hello world", nil))

	w, names, last := streamEvents(t, srv)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/event-stream"))
	assert.Equal(t, []string{"progress", "progress", "progress", "progress", "progress", "result"}, names)

	var result web.GenerateResponse
	require.NoError(t, json.Unmarshal([]byte(last), &result))
	assert.Equal(t, content.StateSucceeded, result.State)
}

func TestGenerateStreamRecoversRenderPanic(t *testing.T) {
	t.Parallel()
	cfg := testConfig()
	svc := content.NewService(replying("Hello world", nil), validation.RulesFromConfig(cfg.Content))
	h, err := web.NewHandler(svc, cfg)
	require.NoError(t, err)
	h.SetRenderHTML(func(string) (template.HTML, error) { panic("renderer exploded") })

	w, names, last := streamEvents(t, web.NewRouter(cfg, h))
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, names)
	assert.Equal(t, "result", names[len(names)-1])

	var result web.GenerateResponse
	require.NoError(t, json.Unmarshal([]byte(last), &result))
	assert.Equal(t, content.StateError, result.State)
	assert.Equal(t, report.FormatUnexpected("renderer exploded"), result.Report)
}

func TestStatus(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name         string
		availability generator.Availability
		want         string
	}{
		{"connected", replying("Hello", nil), report.StatusConnected},
		{"empty reply", replying("", nil), report.StatusFailed},
		{"error", replying("", errors.New("bad key")), "❌ **Connection Test Error:** bad key"},
		{"not configured", generator.Availability{Err: apperror.ErrMissingCredential}, report.StatusNotConfigured},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srv := newServer(t, tt.availability)
			w := httptest.NewRecorder()
			srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/status", nil))
			require.Equal(t, http.StatusOK, w.Code)

			var env struct {
				Data web.StatusResponse `json:"data"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
			assert.Equal(t, tt.want, env.Data.Status)
		})
	}
}

func TestOptions(t *testing.T) {
	t.Parallel()
	srv := newServer(t, replying("x", nil))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/options", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Data web.OptionsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Len(t, env.Data.Languages, 16)
	assert.Len(t, env.Data.BrandVoices, 16)
	assert.Equal(t, "English", env.Data.DefaultLanguage)
	assert.Len(t, env.Data.Examples, 3)
}

func TestWordCount(t *testing.T) {
	t.Parallel()
	srv := newServer(t, replying("x", nil))

	w := postJSON(t, srv, "/api/word-count", `{"text":"✅ **Content Generated Successfully!**"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "4 words, 37 characters")

	w = postJSON(t, srv, "/api/word-count", `{"text":""}`)
	assert.Contains(t, w.Body.String(), "No content to analyze")
}

func TestPageSubmit(t *testing.T) {
	t.Parallel()
	srv := newServer(t, replying("Hello **world**", nil))

	form := url.Values{
		"language":        {"English"},
		"topic":           {"  AI in   healthcare "},
		"primary_goal":    {"educate readers"},
		"target_audience": {"clinicians"},
		"brand_voice":     {"Professional"},
	}
	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `value="AI in healthcare"`)
	assert.Contains(t, body, "<strong>world</strong>")
	assert.Contains(t, body, "Content Generated Successfully!")
}

func TestPageIndexExampleAndClear(t *testing.T) {
	t.Parallel()
	srv := newServer(t, replying("x", nil))

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?example=1", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Digital marketing trends for small businesses in 2024")

	w = httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/clear", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), report.ReadyMessage)
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	ready := newServer(t, replying("x", nil))
	for _, path := range []string{"/health", "/ready", "/live", "/metrics"} {
		w := httptest.NewRecorder()
		ready.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	notReady := newServer(t, generator.Availability{Err: apperror.ErrMissingCredential})
	w := httptest.NewRecorder()
	notReady.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "not_ready")
}
