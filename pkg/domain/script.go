package domain

// Step kinds understood by the default registry.
const (
	// KindMessage displays content and advances immediately (soft step).
	KindMessage = "message"
	// KindPrompt displays a question and advances once it is answered (hard step).
	KindPrompt = "prompt"
	// KindConfirm asks a yes/no question; "no" may rewind the session.
	KindConfirm = "confirm"
	// KindSession nests an independent session whose completion advances the parent.
	KindSession = "session"
)

// AnyAnswer is the Insert key matching every answer of a prompt.
const AnyAnswer = "*"

// Script is the authored form of a conversational flow.
type Script struct {
	Name         string     `json:"name" yaml:"name" mapstructure:"name"`
	InitialIndex int        `json:"initial_index,omitempty" yaml:"initial_index,omitempty" mapstructure:"initial_index"`
	Steps        []StepSpec `json:"steps" yaml:"steps" mapstructure:"steps"`
}

// StepSpec declares a single step.
// Only the fields relevant to Kind are read.
type StepSpec struct {
	Kind string `json:"kind" yaml:"kind" mapstructure:"kind"`

	// Text is the markdown content (message) or the question (prompt, confirm).
	// It may reference earlier answers with {{ .key }}.
	Text string `json:"text,omitempty" yaml:"text,omitempty" mapstructure:"text"`

	// Key names the answer slot written by prompts and confirms.
	Key     string `json:"key,omitempty" yaml:"key,omitempty" mapstructure:"key"`
	Default string `json:"default,omitempty" yaml:"default,omitempty" mapstructure:"default"`

	// ResetOnNo rewinds the owning session when a confirm is answered "no".
	ResetOnNo bool `json:"reset_on_no,omitempty" yaml:"reset_on_no,omitempty" mapstructure:"reset_on_no"`

	// Insert appends follow-up steps to the end of the session, keyed by answer.
	Insert map[string][]StepSpec `json:"insert,omitempty" yaml:"insert,omitempty" mapstructure:"insert"`

	// Steps and InitialIndex configure a nested session (KindSession).
	Steps        []StepSpec `json:"steps,omitempty" yaml:"steps,omitempty" mapstructure:"steps"`
	InitialIndex int        `json:"initial_index,omitempty" yaml:"initial_index,omitempty" mapstructure:"initial_index"`
}
