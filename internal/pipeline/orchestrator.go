package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/styleforge/styleforge/internal/stylecheck"
)

// RunOptions tune a single run.
type RunOptions struct {
	// Model is the model selector passed through to the gateway.
	Model string
	// Timeout bounds each individual gateway call. Zero means no bound.
	Timeout time.Duration
}

// RunResult is what a completed run hands back to the caller. Warnings are
// structural-validator findings; when present the run still completes but no
// record is persisted.
type RunResult struct {
	Record    RunRecord
	Artifacts []GeneratedArtifact
	Warnings  []string
}

// Orchestrator sequences one run at a time through the generation gateway:
// stylesheet first, then each document rewrite in upload order. It owns the
// pipeline state and the run token that guards against stale resolutions
// after a Reset.
type Orchestrator struct {
	gateway  Gateway
	runLog   RunLog
	logger   *zap.Logger
	progress ProgressFunc

	mu        sync.Mutex
	state     State
	runToken  string
	lastError string
	artifacts []GeneratedArtifact
	warnings  []string
}

func NewOrchestrator(gateway Gateway, runLog RunLog, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		gateway:  gateway,
		runLog:   runLog,
		logger:   logger,
		progress: func(string) {},
		state:    StateIdle,
	}
}

// SetProgress installs the sink for progress messages. Must be called before
// Start.
func (o *Orchestrator) SetProgress(fn ProgressFunc) {
	if fn != nil {
		o.progress = fn
	}
}

// State returns the current pipeline state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// LastError returns the retained message of the most recent failed run.
func (o *Orchestrator) LastError() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastError
}

// Artifacts returns the artifacts of the most recent completed run.
func (o *Orchestrator) Artifacts() []GeneratedArtifact {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]GeneratedArtifact, len(o.artifacts))
	copy(out, o.artifacts)
	return out
}

// Warnings returns the validator findings of the most recent completed run.
func (o *Orchestrator) Warnings() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, len(o.warnings))
	copy(out, o.warnings)
	return out
}

// Reset returns the orchestrator to Idle and rotates the run token. A
// gateway call already in flight may still resolve afterward; its resolution
// no longer matches the token and is dropped.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.state = StateIdle
	o.runToken = ""
	o.lastError = ""
	o.artifacts = nil
	o.warnings = nil
}

// runState is the accumulated state threaded through the step sequence.
type runState struct {
	snapshot   InputSnapshot
	options    RunOptions
	stylesheet string
	warnings   []string
	rewritten  []GeneratedArtifact
}

// runStep pairs the pipeline state entered before execution with the work
// performed in it.
type runStep struct {
	state State
	run   func(ctx context.Context, rs *runState) error
}

// Start validates the input, captures its own copy of the snapshot, and
// drives the step sequence to completion. It blocks for the duration of the
// run; the single-flight guard rejects overlapping calls.
func (o *Orchestrator) Start(ctx context.Context, snapshot InputSnapshot, options RunOptions) (RunResult, error) {
	o.mu.Lock()
	switch o.state {
	case StateIdle, StateCompleted, StateError:
	default:
		o.mu.Unlock()
		return RunResult{}, ErrRunInFlight
	}
	if len(snapshot.Files) == 0 {
		o.mu.Unlock()
		return RunResult{}, &ValidationError{Reason: "no documents to restyle"}
	}
	if strings.TrimSpace(snapshot.Prompt) == "" {
		o.mu.Unlock()
		return RunResult{}, &ValidationError{Reason: "style prompt is empty"}
	}

	token := uuid.NewString()
	o.runToken = token
	o.state = StateAnalyzing
	o.lastError = ""
	o.artifacts = nil
	o.warnings = nil
	o.mu.Unlock()

	rs := &runState{snapshot: snapshot.Clone(), options: options}
	for _, step := range o.steps() {
		if !o.enterState(token, step.state) {
			return RunResult{}, ErrRunSuperseded
		}
		if err := step.run(ctx, rs); err != nil {
			return RunResult{}, o.failRun(token, step.state, err)
		}
	}
	return o.finishRun(token, rs)
}

func (o *Orchestrator) steps() []runStep {
	return []runStep{
		{state: StateGeneratingStylesheet, run: o.generateStylesheet},
		{state: StateRewritingDocuments, run: o.rewriteDocuments},
	}
}

func (o *Orchestrator) generateStylesheet(ctx context.Context, rs *runState) error {
	callCtx, cancel := o.callContext(ctx, rs.options)
	defer cancel()
	raw, err := o.gateway.GenerateStylesheet(callCtx, rs.snapshot.Files, rs.snapshot.Prompt, rs.options.Model)
	if err != nil {
		return err
	}
	rs.stylesheet = StripCodeFence(raw)
	rs.warnings = stylecheck.Check(rs.stylesheet)
	for _, warning := range rs.warnings {
		o.logger.Warn("stylesheet finding", zap.String("finding", warning))
	}
	return nil
}

func (o *Orchestrator) rewriteDocuments(ctx context.Context, rs *runState) error {
	total := len(rs.snapshot.Files)
	used := map[string]bool{StylesheetFileName: true}
	for index, file := range rs.snapshot.Files {
		o.progress(fmt.Sprintf("rewriting %s (%d/%d)", file.Name, index+1, total))
		callCtx, cancel := o.callContext(ctx, rs.options)
		markup, err := o.gateway.RewriteDocument(callCtx, file, rs.stylesheet, rs.snapshot.Prompt, rs.options.Model)
		cancel()
		if err != nil {
			return err
		}
		rs.rewritten = append(rs.rewritten, GeneratedArtifact{
			FileName: uniqueArtifactName(markupFileName(file.Name), used),
			Content:  markup,
			Kind:     ArtifactMarkup,
		})
	}
	return nil
}

func (o *Orchestrator) callContext(ctx context.Context, options RunOptions) (context.Context, context.CancelFunc) {
	if options.Timeout > 0 {
		return context.WithTimeout(ctx, options.Timeout)
	}
	return context.WithCancel(ctx)
}

// enterState transitions to next if the run still owns the token. A false
// return means a Reset rotated the token and the run must discard itself.
func (o *Orchestrator) enterState(token string, next State) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.runToken != token {
		o.logger.Debug("dropping stale run transition", zap.String("state", string(next)))
		return false
	}
	o.state = next
	return true
}

// failRun aborts the run: Error state, message retained, nothing persisted,
// in-memory artifacts of the attempt discarded.
func (o *Orchestrator) failRun(token string, stage State, cause error) error {
	err := &GatewayError{Stage: stage, Err: cause}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.runToken != token {
		o.logger.Debug("dropping stale run failure", zap.Error(cause))
		return ErrRunSuperseded
	}
	o.state = StateError
	o.lastError = err.Error()
	o.artifacts = nil
	o.warnings = nil
	return err
}

// finishRun assembles the artifact sequence, enters Completed, and appends
// the record to the run log unless the validator reported findings. Runs
// with a known-malformed stylesheet complete but are not persisted; the
// warnings travel back to the caller instead.
func (o *Orchestrator) finishRun(token string, rs *runState) (RunResult, error) {
	artifacts := make([]GeneratedArtifact, 0, len(rs.rewritten)+1)
	artifacts = append(artifacts, GeneratedArtifact{
		FileName: StylesheetFileName,
		Content:  rs.stylesheet,
		Kind:     ArtifactStylesheet,
	})
	artifacts = append(artifacts, rs.rewritten...)

	record := RunRecord{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Prompt:    rs.snapshot.Prompt,
		Artifacts: artifacts,
	}

	o.mu.Lock()
	if o.runToken != token {
		o.mu.Unlock()
		o.logger.Debug("dropping stale run completion", zap.String("run_id", record.ID))
		return RunResult{}, ErrRunSuperseded
	}
	o.state = StateCompleted
	o.artifacts = artifacts
	o.warnings = rs.warnings
	o.mu.Unlock()

	if len(rs.warnings) == 0 && o.runLog != nil {
		o.runLog.Append(record)
	}
	return RunResult{Record: record, Artifacts: artifacts, Warnings: rs.warnings}, nil
}

// StylesheetFileName is the archive entry name of the generated stylesheet.
const StylesheetFileName = "style.css"

// markupFileName maps an input document name to its rewritten artifact name.
func markupFileName(name string) string {
	base := name
	if dot := strings.LastIndex(base, "."); dot > 0 {
		base = base[:dot]
	}
	return base + ".html"
}

// uniqueArtifactName disambiguates colliding output names. Inputs like
// "a.txt" and "a.md" both map to "a.html"; a numeric suffix keeps every
// archive entry and loose file distinct.
func uniqueArtifactName(name string, used map[string]bool) string {
	if !used[name] {
		used[name] = true
		return name
	}
	base, ext := name, ""
	if dot := strings.LastIndex(name, "."); dot > 0 {
		base, ext = name[:dot], name[dot:]
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d%s", base, n, ext)
		if !used[candidate] {
			used[candidate] = true
			return candidate
		}
	}
}
