package domain

// StepView is the host-facing description of a visible step.
type StepView struct {
	Position int    `json:"position"`
	Kind     string `json:"kind,omitempty"`
	Text     string `json:"text,omitempty"`
}

// Snapshot is a read-only view of a session at a point in time.
type Snapshot struct {
	Session      string     `json:"session,omitempty"`
	CurrentIndex int        `json:"current_index"`
	Length       int        `json:"length"`
	Done         bool       `json:"done"`
	Visible      []StepView `json:"visible"`
}
