package llm

import (
	"fmt"
	"strings"

	"github.com/styleforge/styleforge/internal/pipeline"
)

const stylesheetSystemPrompt = "You are a careful front-end designer. " +
	"Produce a single complete CSS stylesheet and nothing else: no explanations, no code fences."

const rewriteSystemPrompt = "You are a careful front-end developer. " +
	"Rewrite the given document as semantic HTML markup that the provided stylesheet styles well. " +
	"Output only the markup: no explanations, no code fences."

// buildStylesheetPrompt embeds every input document so the stylesheet can
// cover the whole set coherently.
func buildStylesheetPrompt(files []pipeline.InputFile, prompt string) string {
	var sb strings.Builder
	sb.WriteString("Design one shared stylesheet for the documents below.\n")
	sb.WriteString("Style request: ")
	sb.WriteString(strings.TrimSpace(prompt))
	sb.WriteString("\n")
	for _, file := range files {
		fmt.Fprintf(&sb, "\n--- document: %s ---\n%s\n", file.Name, file.Content)
	}
	return sb.String()
}

func buildRewritePrompt(file pipeline.InputFile, stylesheet, prompt string) string {
	var sb strings.Builder
	sb.WriteString("Rewrite this document as markup styled by the stylesheet below.\n")
	sb.WriteString("Style request: ")
	sb.WriteString(strings.TrimSpace(prompt))
	sb.WriteString("\n\n--- stylesheet ---\n")
	sb.WriteString(stylesheet)
	fmt.Fprintf(&sb, "\n\n--- document: %s ---\n%s\n", file.Name, file.Content)
	return sb.String()
}
