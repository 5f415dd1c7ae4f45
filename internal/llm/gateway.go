package llm

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/styleforge/styleforge/internal/pipeline"
)

// Gateway adapts the HTTP client to the orchestrator's generation contract.
type Gateway struct {
	Client              Client
	DefaultModel        string
	DefaultTokens       int
	DefaultTemp         float64
	SupportsTemperature bool
	Logger              *zap.Logger
}

var _ pipeline.Gateway = Gateway{}

func (g Gateway) GenerateStylesheet(ctx context.Context, files []pipeline.InputFile, prompt string, model string) (string, error) {
	return g.chat(ctx, stylesheetSystemPrompt, buildStylesheetPrompt(files, prompt), model)
}

func (g Gateway) RewriteDocument(ctx context.Context, file pipeline.InputFile, stylesheet string, prompt string, model string) (string, error) {
	return g.chat(ctx, rewriteSystemPrompt, buildRewritePrompt(file, stylesheet, prompt), model)
}

// ListLocalModels is best-effort: any failure yields an empty list, never an
// error.
func (g Gateway) ListLocalModels(ctx context.Context) []pipeline.ModelDescriptor {
	entries, err := g.Client.ListModels(ctx)
	if err != nil {
		g.logger().Debug("model listing unavailable", zap.Error(err))
		return nil
	}
	out := make([]pipeline.ModelDescriptor, 0, len(entries))
	for _, entry := range entries {
		out = append(out, pipeline.ModelDescriptor{ID: entry.ID, OwnedBy: entry.OwnedBy})
	}
	return out
}

func (g Gateway) chat(ctx context.Context, system, user, model string) (string, error) {
	resolved := strings.TrimSpace(model)
	if resolved == "" {
		resolved = g.DefaultModel
	}
	request := ChatCompletionRequest{
		Model: resolved,
		Messages: []ChatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxCompletionTokens: g.DefaultTokens,
	}
	// Many current models reject any temperature other than the server
	// default; only send one when the model is known to accept it.
	if g.SupportsTemperature && g.DefaultTemp > 0 {
		temp := g.DefaultTemp
		request.Temperature = &temp
	}
	return g.Client.CreateChatCompletion(ctx, request)
}

func (g Gateway) logger() *zap.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return zap.NewNop()
}
