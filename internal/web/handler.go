// Package web serves the content generator page and its JSON API.
package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strconv"

	"github.com/BerylCAtieno/content-generator/internal/apperror"
	"github.com/BerylCAtieno/content-generator/internal/config"
	"github.com/BerylCAtieno/content-generator/internal/content"
	"github.com/BerylCAtieno/content-generator/internal/logger"
	"github.com/BerylCAtieno/content-generator/internal/models"
	"github.com/BerylCAtieno/content-generator/internal/report"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

type Handler struct {
	service    *content.Service
	app        config.AppConfig
	content    config.ContentConfig
	page       *template.Template
	renderHTML func(string) (template.HTML, error)
}

func NewHandler(service *content.Service, cfg *config.Config) (*Handler, error) {
	page, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	return &Handler{
		service:    service,
		app:        cfg.App,
		content:    cfg.Content,
		page:       page,
		renderHTML: report.RenderHTML,
	}, nil
}

// GenerateResponse is the body of /api/generate and the SSE result event.
type GenerateResponse struct {
	Report        string                    `json:"report"`
	ReportHTML    template.HTML             `json:"report_html"`
	State         content.State             `json:"state"`
	Valid         bool                      `json:"valid"`
	Errors        []string                  `json:"errors"`
	SanitizedData map[string]any            `json:"sanitized_data,omitempty"`
	Outcome       *models.GenerationOutcome `json:"outcome,omitempty"`
}

type StatusResponse struct {
	Status    string `json:"status"`
	Available bool   `json:"available"`
	Provider  string `json:"provider,omitempty"`
	Model     string `json:"model,omitempty"`
}

type OptionsResponse struct {
	Languages         []string  `json:"languages"`
	BrandVoices       []string  `json:"brand_voices"`
	DefaultLanguage   string    `json:"default_language"`
	DefaultBrandVoice string    `json:"default_brand_voice"`
	MaxContentLength  int       `json:"max_content_length"`
	EnforceChoices    bool      `json:"enforce_choices"`
	Examples          []Example `json:"examples"`
}

type WordCountRequest struct {
	Text string `json:"text" form:"text"`
}

type WordCountResponse struct {
	Result string `json:"result"`
}

type pageData struct {
	App         config.AppConfig
	Languages   []string
	BrandVoices []string
	Form        models.ContentRequest
	Examples    []Example
	Available   bool
	Report      string
	Output      template.HTML
}

// Index renders the empty form, or the form pre-filled with ?example=N.
func (h *Handler) Index(c *gin.Context) {
	form := h.defaultForm()
	if n, err := strconv.Atoi(c.Query("example")); err == nil && n >= 0 && n < len(examples) {
		form = examples[n].Request
	}
	h.render(c, form, "")
}

// Clear renders the empty form with the ready message.
func (h *Handler) Clear(c *gin.Context) {
	h.render(c, h.defaultForm(), report.ReadyMessage)
}

// Submit handles the form post and re-renders the page with the sanitized
// fields and the report.
func (h *Handler) Submit(c *gin.Context) {
	var req models.ContentRequest
	if err := c.ShouldBind(&req); err != nil {
		h.render(c, h.defaultForm(), report.FormatUnexpected(err.Error()))
		return
	}

	result := h.service.RunRequest(c.Request.Context(), req, nil)
	form := req
	if result.Validation != nil {
		form = result.Validation.Request()
	}
	h.render(c, form, result.Report)
}

func (h *Handler) Generate(c *gin.Context) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		fail(c, apperror.Wrap(err, apperror.CodeInvalidParam, "invalid request body"))
		return
	}

	result := h.service.Run(c.Request.Context(), raw, nil)
	status, message := http.StatusOK, "success"
	if result.Err != nil {
		status, message = result.Err.HTTPStatus, result.Err.Message
	}
	respond(c, status, message, h.generateResponse(c.Request.Context(), result))
}

type streamEvent struct {
	name string
	data any
}

// GenerateStream runs the pipeline and streams progress milestones as SSE
// "progress" events followed by one "result" event.
func (h *Handler) GenerateStream(c *gin.Context) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		fail(c, apperror.Wrap(err, apperror.CodeInvalidParam, "invalid request body"))
		return
	}

	ctx := c.Request.Context()
	events := make(chan streamEvent, 8)
	go func() {
		defer close(events)
		send := func(ev streamEvent) {
			select {
			case events <- ev:
			case <-ctx.Done():
			}
		}
		// gin's Recovery does not cover this goroutine.
		defer func() {
			if r := recover(); r != nil {
				logger.Error(ctx, "stream pipeline panic", fmt.Errorf("%v", r))
				send(streamEvent{name: "result", data: GenerateResponse{
					Report: report.FormatUnexpected(fmt.Sprint(r)),
					State:  content.StateError,
					Errors: []string{},
				}})
			}
		}()
		result := h.service.Run(ctx, raw, func(p content.Progress) {
			send(streamEvent{name: "progress", data: p})
		})
		send(streamEvent{name: "result", data: h.generateResponse(ctx, result)})
	}()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent(ev.name, ev.data)
			return true
		case <-ctx.Done():
			return false
		}
	})
}

// Status runs the connection test against the configured model.
func (h *Handler) Status(c *gin.Context) {
	availability := h.service.Availability()
	resp := StatusResponse{
		Status:    availability.Status(c.Request.Context()),
		Available: availability.Available(),
	}
	if resp.Available {
		resp.Provider = availability.Generator.Provider()
		resp.Model = availability.Generator.Model()
	}
	success(c, resp)
}

func (h *Handler) Options(c *gin.Context) {
	success(c, OptionsResponse{
		Languages:         h.content.Languages,
		BrandVoices:       h.content.BrandVoices,
		DefaultLanguage:   h.content.DefaultLanguage,
		DefaultBrandVoice: h.content.DefaultBrandVoice,
		MaxContentLength:  h.content.MaxContentLength,
		EnforceChoices:    h.content.EnforceChoices,
		Examples:          Examples(),
	})
}

func (h *Handler) WordCount(c *gin.Context) {
	var req WordCountRequest
	if err := c.ShouldBind(&req); err != nil {
		fail(c, apperror.Wrap(err, apperror.CodeInvalidParam, "invalid request body"))
		return
	}
	success(c, WordCountResponse{Result: report.CountReport(req.Text)})
}

func (h *Handler) generateResponse(ctx context.Context, result content.Result) GenerateResponse {
	resp := GenerateResponse{
		Report:     result.Report,
		ReportHTML: h.renderReport(ctx, result.Report),
		State:      result.State,
		Valid:      result.Validation != nil && result.Validation.IsValid,
		Errors:     []string{},
		Outcome:    result.Outcome,
	}
	if result.Validation != nil {
		resp.SanitizedData = result.Validation.SanitizedData
		if result.Validation.Errors != nil {
			resp.Errors = result.Validation.Errors
		}
	}
	return resp
}

func (h *Handler) renderReport(ctx context.Context, text string) template.HTML {
	if text == "" {
		return ""
	}
	html, err := h.renderHTML(text)
	if err != nil {
		logger.Warn(ctx, "failed to render report", "error", err)
		return template.HTML(template.HTMLEscapeString(text))
	}
	return html
}

func (h *Handler) defaultForm() models.ContentRequest {
	return models.ContentRequest{
		Language:   h.content.DefaultLanguage,
		BrandVoice: h.content.DefaultBrandVoice,
	}
}

func (h *Handler) render(c *gin.Context, form models.ContentRequest, text string) {
	data := pageData{
		App:         h.app,
		Languages:   h.content.Languages,
		BrandVoices: h.content.BrandVoices,
		Form:        form,
		Examples:    examples,
		Available:   h.service.Available(),
		Report:      text,
		Output:      h.renderReport(c.Request.Context(), text),
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := h.page.Execute(c.Writer, data); err != nil {
		logger.Error(c.Request.Context(), "failed to render page", err)
	}
}
