// Package workflow runs the outline, script and hashtags generation chain.
package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abdulachik/reelsmith/internal/llm"
	"github.com/abdulachik/reelsmith/internal/prompt"
)

// Stage is the position of a run in the chain.
type Stage string

const (
	StagePending     Stage = "pending"
	StageOutlineDone Stage = "outline_done"
	StageScriptDone  Stage = "script_done"
	StageComplete    Stage = "complete"
	StageFailed      Stage = "failed"
)

// State is the record threaded through one run. Inputs never change after
// creation; each output is written by exactly one step.
type State struct {
	Inputs prompt.Request `json:"inputs"`

	Outline             string `json:"script_outline"`
	Script              string `json:"final_script"`
	HashtagsAndCaptions string `json:"hashtags_and_captions"`
	Error               string `json:"error"`

	Stage   Stage      `json:"stage"`
	Failure *StepError `json:"-"`
}

// Failed reports whether a step failed.
func (s State) Failed() bool {
	return s.Error != ""
}

// Err returns the step failure, if any.
func (s State) Err() error {
	if s.Failure == nil {
		return nil
	}
	return s.Failure
}

// StepError is a completion failure qualified by the step it happened in.
type StepError struct {
	Step prompt.Step
	Err  error
}

func (e *StepError) Error() string {
	return stepPrefix(e.Step) + e.Err.Error()
}

func (e *StepError) Unwrap() error { return e.Err }

func stepPrefix(step prompt.Step) string {
	switch step {
	case prompt.StepOutline:
		return "Error creating outline: "
	case prompt.StepScript:
		return "Error generating script: "
	case prompt.StepHashtags:
		return "Error generating hashtags: "
	default:
		return fmt.Sprintf("Error in %s: ", step)
	}
}

// step binds a prompt step to the output field it owns.
type step struct {
	name   prompt.Step
	done   Stage
	output func(*State) *string
}

// chain is the fixed step order.
var chain = []step{
	{name: prompt.StepOutline, done: StageOutlineDone, output: func(s *State) *string { return &s.Outline }},
	{name: prompt.StepScript, done: StageScriptDone, output: func(s *State) *string { return &s.Script }},
	{name: prompt.StepHashtags, done: StageComplete, output: func(s *State) *string { return &s.HashtagsAndCaptions }},
}

// Engine runs the chain against a completion client.
type Engine struct {
	client llm.Client
}

// New creates an engine. A nil client is a programming error and panics.
func New(client llm.Client) *Engine {
	if client == nil {
		panic("workflow: nil completion client")
	}
	return &Engine{client: client}
}

// Run executes outline, script and hashtags in order, one completion call
// each, stopping at the first failure. Completion failures are recorded in
// the returned state, never returned as errors.
func (e *Engine) Run(ctx context.Context, req prompt.Request) State {
	state := State{Inputs: req, Stage: StagePending}

	for _, st := range chain {
		in := prompt.Input{
			Request: state.Inputs,
			Outline: state.Outline,
			Script:  state.Script,
		}

		start := time.Now()
		text, err := e.client.Complete(ctx, llm.Prompt(prompt.Build(st.name, in)))
		if err != nil {
			state.Failure = &StepError{Step: st.name, Err: err}
			state.Error = state.Failure.Error()
			state.Stage = StageFailed
			slog.Warn("workflow step failed", "step", st.name, "error", err)
			return state
		}

		*st.output(&state) = text
		state.Stage = st.done
		slog.Debug("workflow step complete",
			"step", st.name,
			"chars", len(text),
			"elapsed", time.Since(start),
		)
	}

	return state
}

// Format renders a finished state as the markdown report shown to users.
func Format(s State) string {
	if s.Failed() {
		return "❌ " + s.Error
	}

	var b strings.Builder
	b.WriteString("## 📝 Script Outline\n")
	b.WriteString(orDefault(s.Outline, "No outline generated"))
	b.WriteString("\n\n## 🎬 Final Script\n")
	b.WriteString(orDefault(s.Script, "No script generated"))
	b.WriteString("\n\n## 🏷️ Captions & Hashtags by Platform\n")
	b.WriteString(orDefault(s.HashtagsAndCaptions, "No captions generated"))
	return strings.TrimSpace(b.String())
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
