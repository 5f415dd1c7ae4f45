package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/styleforge/styleforge/internal/pipeline"
)

func TestGateway_GenerateStylesheetEmbedsEveryFile(t *testing.T) {
	var captured ChatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&captured)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"body{}"}}]}`))
	}))
	defer server.Close()

	gateway := Gateway{Client: Client{HTTPBaseURL: server.URL}, DefaultModel: "styler-1"}
	files := []pipeline.InputFile{
		{Name: "a.txt", Content: "alpha body"},
		{Name: "b.txt", Content: "beta body"},
	}
	if _, err := gateway.GenerateStylesheet(context.Background(), files, "make it retro", ""); err != nil {
		t.Fatalf("GenerateStylesheet: %v", err)
	}

	if captured.Model != "styler-1" {
		t.Fatalf("default model not applied, got %q", captured.Model)
	}
	user := captured.Messages[1].Content
	for _, fragment := range []string{"a.txt", "alpha body", "b.txt", "beta body", "make it retro"} {
		if !strings.Contains(user, fragment) {
			t.Fatalf("prompt missing %q:\n%s", fragment, user)
		}
	}
}

func TestGateway_RewriteEmbedsStylesheetAndOneFile(t *testing.T) {
	var captured ChatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&captured)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"<main/>"}}]}`))
	}))
	defer server.Close()

	gateway := Gateway{Client: Client{HTTPBaseURL: server.URL}, DefaultModel: "styler-1"}
	file := pipeline.InputFile{Name: "notes.txt", Content: "the notes"}
	if _, err := gateway.RewriteDocument(context.Background(), file, "body{color:red}", "retro", "override-model"); err != nil {
		t.Fatalf("RewriteDocument: %v", err)
	}

	if captured.Model != "override-model" {
		t.Fatalf("per-call model override not applied, got %q", captured.Model)
	}
	user := captured.Messages[1].Content
	for _, fragment := range []string{"body{color:red}", "notes.txt", "the notes"} {
		if !strings.Contains(user, fragment) {
			t.Fatalf("prompt missing %q", fragment)
		}
	}
}

func TestGateway_ListLocalModelsIsBestEffort(t *testing.T) {
	gateway := Gateway{Client: Client{HTTPBaseURL: "http://127.0.0.1:1"}}
	if models := gateway.ListLocalModels(context.Background()); len(models) != 0 {
		t.Fatalf("unreachable endpoint must yield an empty list, got %+v", models)
	}
}

func TestGateway_TemperatureOnlyWhenSupported(t *testing.T) {
	var captured ChatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&captured)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"x{}"}}]}`))
	}))
	defer server.Close()

	gateway := Gateway{Client: Client{HTTPBaseURL: server.URL}, DefaultModel: "m", DefaultTemp: 0.4}
	if _, err := gateway.GenerateStylesheet(context.Background(), nil, "p", ""); err != nil {
		t.Fatal(err)
	}
	if captured.Temperature != nil {
		t.Fatal("temperature must be omitted when unsupported")
	}

	gateway.SupportsTemperature = true
	if _, err := gateway.GenerateStylesheet(context.Background(), nil, "p", ""); err != nil {
		t.Fatal(err)
	}
	if captured.Temperature == nil || *captured.Temperature != 0.4 {
		t.Fatalf("temperature not applied: %v", captured.Temperature)
	}
}
