package loam

// StepMetadata represents the frontmatter of a step document.
// It uses "mapstructure" tags to match standard Frontmatter/YAML keys.
type StepMetadata struct {
	ID   string `json:"id" mapstructure:"id"`
	Kind string `json:"kind" mapstructure:"kind"`

	// Text overrides the document body.
	Text    string `json:"text" mapstructure:"text"`
	Key     string `json:"key" mapstructure:"key"`
	Default string `json:"default" mapstructure:"default"`

	// Order positions the step in the script; ties are broken by ID.
	// Numbers may arrive as json.Number in strict mode, so the raw value is kept.
	Order any `json:"order" mapstructure:"order"`

	ResetOnNo bool `json:"reset_on_no" mapstructure:"reset_on_no"`

	// Insert and Steps hold nested steps in the same loose form scripts use.
	Insert       map[string]any `json:"insert" mapstructure:"insert"`
	Steps        []any          `json:"steps" mapstructure:"steps"`
	InitialIndex any            `json:"initial_index" mapstructure:"initial_index"`
}
