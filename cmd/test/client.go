package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
)

type TestClient struct {
	baseURL string
	client  *http.Client
	out     io.Writer
	raw     bool
}

func NewTestClient(baseURL string, timeout time.Duration, out io.Writer, raw bool) *TestClient {
	return &TestClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		out:     out,
		raw:     raw,
	}
}

// envelope mirrors the server's JSON response wrapper.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type generateData struct {
	Report string   `json:"report"`
	State  string   `json:"state"`
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

type exampleData struct {
	Name    string         `json:"name"`
	Request map[string]any `json:"request"`
}

func (tc *TestClient) testHealth() bool {
	tc.printTestHeader("Testing Health Endpoints")
	ok := true
	for _, path := range []string{"/health", "/live", "/ready"} {
		resp, body, err := tc.do(http.MethodGet, path, nil)
		if err != nil {
			tc.printError(fmt.Sprintf("GET %s failed: %v", path, err))
			ok = false
			continue
		}
		switch {
		case resp.StatusCode == http.StatusOK:
			tc.printSuccess(fmt.Sprintf("GET %s -> %d %s", path, resp.StatusCode, strings.TrimSpace(string(body))))
		case path == "/ready" && resp.StatusCode == http.StatusServiceUnavailable:
			tc.printWarning(fmt.Sprintf("GET %s -> 503 (generator not configured)", path))
		default:
			tc.printError(fmt.Sprintf("GET %s -> %d", path, resp.StatusCode))
			ok = false
		}
	}
	return ok
}

func (tc *TestClient) testStatus() bool {
	tc.printTestHeader("Testing API Connection")
	var data struct {
		Status    string `json:"status"`
		Available bool   `json:"available"`
		Provider  string `json:"provider"`
		Model     string `json:"model"`
	}
	if !tc.getJSON("/api/status", &data) {
		return false
	}
	fmt.Fprintf(tc.out, "Provider: %s  Model: %s\n", data.Provider, data.Model)
	tc.renderMarkdown(data.Status)
	if !data.Available {
		tc.printWarning("Generator is not configured")
	}
	return true
}

func (tc *TestClient) testOptions() bool {
	tc.printTestHeader("Testing Options Endpoint")
	var data struct {
		Languages   []string      `json:"languages"`
		BrandVoices []string      `json:"brand_voices"`
		Examples    []exampleData `json:"examples"`
	}
	if !tc.getJSON("/api/options", &data) {
		return false
	}
	if len(data.Languages) == 0 || len(data.BrandVoices) == 0 {
		tc.printError("Options are missing languages or brand voices")
		return false
	}
	tc.printSuccess(fmt.Sprintf("%d languages, %d brand voices, %d examples",
		len(data.Languages), len(data.BrandVoices), len(data.Examples)))
	return true
}

func (tc *TestClient) testValidation() bool {
	tc.printTestHeader("Testing Validation")
	payload := map[string]any{
		"language":        "English",
		"brand_voice":     "Professional",
		"topic":           "ab",
		"primary_goal":    "   ",
		"target_audience": "",
	}
	resp, body, err := tc.do(http.MethodPost, "/api/generate", payload)
	if err != nil {
		tc.printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if resp.StatusCode != http.StatusUnprocessableEntity {
		tc.printError(fmt.Sprintf("Expected status 422, got %d", resp.StatusCode))
		return false
	}
	var data generateData
	if err := decodeData(body, &data); err != nil {
		tc.printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}
	tc.renderMarkdown(data.Report)
	tc.printSuccess(fmt.Sprintf("Rejected with %d errors", len(data.Errors)))
	return true
}

func (tc *TestClient) testGenerate(request map[string]any) bool {
	tc.printTestHeader("Testing Content Generation")
	fmt.Fprintf(tc.out, "Topic: %v\n", request["topic"])

	start := time.Now()
	resp, body, err := tc.do(http.MethodPost, "/api/generate", request)
	if err != nil {
		tc.printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	var data generateData
	if err := decodeData(body, &data); err != nil {
		tc.printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}

	tc.renderMarkdown(data.Report)
	if resp.StatusCode != http.StatusOK {
		tc.printError(fmt.Sprintf("Generation ended in state %q with status %d", data.State, resp.StatusCode))
		return false
	}
	tc.printSuccess(fmt.Sprintf("Generated in %s", time.Since(start).Round(time.Millisecond)))
	return tc.testWordCount(data.Report)
}

// testGenerateStream prints progress events as they arrive.
func (tc *TestClient) testGenerateStream(request map[string]any) bool {
	tc.printTestHeader("Testing Streaming Generation")

	b, err := json.Marshal(request)
	if err != nil {
		tc.printError(err.Error())
		return false
	}
	resp, err := tc.client.Post(tc.baseURL+"/api/generate/stream", "application/json", bytes.NewReader(b))
	if err != nil {
		tc.printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	defer resp.Body.Close()

	var event string
	ok := false
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if name, found := strings.CutPrefix(line, "event:"); found {
			event = name
			continue
		}
		payload, found := strings.CutPrefix(line, "data:")
		if !found {
			continue
		}
		switch event {
		case "progress":
			var p struct {
				Fraction    float64 `json:"fraction"`
				Description string  `json:"description"`
			}
			if json.Unmarshal([]byte(payload), &p) == nil {
				fmt.Fprintf(tc.out, "%s[%3.0f%%] %s%s\n", colorBlue, p.Fraction*100, p.Description, colorReset)
			}
		case "result":
			var data generateData
			if err := json.Unmarshal([]byte(payload), &data); err != nil {
				tc.printError(fmt.Sprintf("Invalid result event: %v", err))
				return false
			}
			tc.renderMarkdown(data.Report)
			ok = data.State == "succeeded"
		}
	}
	if err := scanner.Err(); err != nil {
		tc.printError(fmt.Sprintf("Stream read failed: %v", err))
		return false
	}
	if ok {
		tc.printSuccess("Stream completed")
	} else {
		tc.printError("Stream did not produce content")
	}
	return ok
}

func (tc *TestClient) testWordCount(text string) bool {
	resp, body, err := tc.do(http.MethodPost, "/api/word-count", map[string]string{"text": text})
	if err != nil || resp.StatusCode != http.StatusOK {
		tc.printError(fmt.Sprintf("Word count failed: %v", err))
		return false
	}
	var data struct {
		Result string `json:"result"`
	}
	if err := decodeData(body, &data); err != nil {
		tc.printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}
	tc.renderMarkdown(data.Result)
	return true
}

func (tc *TestClient) example(index int) (map[string]any, error) {
	var data struct {
		Examples []exampleData `json:"examples"`
	}
	if !tc.getJSON("/api/options", &data) {
		return nil, fmt.Errorf("could not load examples")
	}
	if index < 0 || index >= len(data.Examples) {
		return nil, fmt.Errorf("example %d out of range (0-%d)", index, len(data.Examples)-1)
	}
	return data.Examples[index].Request, nil
}

func (tc *TestClient) getJSON(path string, v any) bool {
	resp, body, err := tc.do(http.MethodGet, path, nil)
	if err != nil {
		tc.printError(fmt.Sprintf("GET %s failed: %v", path, err))
		return false
	}
	if resp.StatusCode != http.StatusOK {
		tc.printError(fmt.Sprintf("Expected status 200, got %d", resp.StatusCode))
		return false
	}
	if err := decodeData(body, v); err != nil {
		tc.printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}
	return true
}

func (tc *TestClient) do(method, path string, payload any) (*http.Response, []byte, error) {
	var reader io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, tc.baseURL+path, reader)
	if err != nil {
		return nil, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := tc.client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	return resp, body, err
}

func decodeData(body []byte, v any) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return err
	}
	return json.Unmarshal(env.Data, v)
}

func (tc *TestClient) renderMarkdown(text string) {
	if !tc.raw {
		if rendered, err := glamour.Render(text, "dark"); err == nil {
			fmt.Fprint(tc.out, rendered)
			return
		}
	}
	fmt.Fprintln(tc.out, text)
}

func (tc *TestClient) printHeader(text string) {
	line := strings.Repeat("=", len(text)+4)
	fmt.Fprintf(tc.out, "%s%s\n  %s\n%s%s\n", colorBlue, line, text, line, colorReset)
}

func (tc *TestClient) printTestHeader(text string) {
	fmt.Fprintf(tc.out, "%s▶ %s%s\n", colorCyan, text, colorReset)
}

func (tc *TestClient) printSuccess(text string) {
	fmt.Fprintf(tc.out, "%s✓ %s%s\n", colorGreen, text, colorReset)
}

func (tc *TestClient) printWarning(text string) {
	fmt.Fprintf(tc.out, "%s! %s%s\n", colorYellow, text, colorReset)
}

func (tc *TestClient) printError(text string) {
	fmt.Fprintf(tc.out, "%s✗ %s%s\n", colorRed, text, colorReset)
}
