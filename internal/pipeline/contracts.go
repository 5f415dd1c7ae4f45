package pipeline

import (
	"context"
	"time"
)

// MaxInputFiles caps the working file set. Admission silently truncates
// anything beyond the cap.
const MaxInputFiles = 4

// InputFile is one uploaded document. Immutable once created.
type InputFile struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Content string `json:"content"`
}

type ArtifactKind string

const (
	ArtifactStylesheet ArtifactKind = "stylesheet"
	ArtifactMarkup     ArtifactKind = "markup"
)

// GeneratedArtifact is one unit of generated output. A completed run yields
// exactly one stylesheet artifact followed by one markup artifact per input
// file, in upload order.
type GeneratedArtifact struct {
	FileName string       `json:"file_name"`
	Content  string       `json:"content"`
	Kind     ArtifactKind `json:"kind"`
}

// InputSnapshot is a captured (file set, prompt) pair eligible for undo/redo.
type InputSnapshot struct {
	Files  []InputFile
	Prompt string
}

// Clone returns a deep copy so later edits to the live file set cannot reach
// into recorded history or a running pipeline's captured input.
func (s InputSnapshot) Clone() InputSnapshot {
	files := make([]InputFile, len(s.Files))
	copy(files, s.Files)
	return InputSnapshot{Files: files, Prompt: s.Prompt}
}

// RunRecord is one persisted completed run. Immutable once created.
type RunRecord struct {
	ID        string              `json:"id"`
	Timestamp time.Time           `json:"timestamp"`
	Prompt    string              `json:"prompt"`
	Artifacts []GeneratedArtifact `json:"artifacts"`
}

// State is the orchestrator's pipeline state. Completed and Error are not
// terminal; they return to Idle only through an explicit Reset.
type State string

const (
	StateIdle                 State = "idle"
	StateAnalyzing            State = "analyzing"
	StateGeneratingStylesheet State = "generating_stylesheet"
	StateRewritingDocuments   State = "rewriting_documents"
	StateCompleted            State = "completed"
	StateError                State = "error"
)

// ModelDescriptor identifies one model available at the generation endpoint.
type ModelDescriptor struct {
	ID      string
	OwnedBy string
}

// Gateway is the external text-generation service consumed by the
// orchestrator. GenerateStylesheet and RewriteDocument fail with a transport
// or model error; ListLocalModels is best-effort and returns an empty slice
// on any failure.
type Gateway interface {
	GenerateStylesheet(ctx context.Context, files []InputFile, prompt string, model string) (string, error)
	RewriteDocument(ctx context.Context, file InputFile, stylesheet string, prompt string, model string) (string, error)
	ListLocalModels(ctx context.Context) []ModelDescriptor
}

// RunLog receives the record of a successfully completed run.
type RunLog interface {
	Append(record RunRecord)
}

// ProgressFunc receives human-readable progress messages during a run.
type ProgressFunc func(message string)
