package ports

// StepBuilder turns loosely typed step declarations (as found in a script)
// into units that can be inserted into a running session.
type StepBuilder func(raw []any) ([]any, error)
