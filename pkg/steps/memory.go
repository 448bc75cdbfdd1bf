package steps

import (
	"bytes"
	"maps"
	"strings"
	"sync"
	"text/template"
)

// Memory stores the answers collected during a run.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory creates an empty answer store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Set stores value under key. Empty keys are ignored.
func (m *Memory) Set(key, value string) {
	if m == nil || key == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

// Get returns the answer stored under key.
func (m *Memory) Get(key string) (string, bool) {
	if m == nil {
		return "", false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

// Values returns a copy of every stored answer.
func (m *Memory) Values() map[string]string {
	if m == nil {
		return map[string]string{}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.values)
}

// Interpolate renders {{ .key }} references against the stored answers.
// Missing keys render empty; malformed templates are returned unchanged.
func (m *Memory) Interpolate(text string) string {
	if !strings.Contains(text, "{{") {
		return text
	}
	tmpl, err := template.New("step").Option("missingkey=zero").Parse(text)
	if err != nil {
		return text
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, m.Values()); err != nil {
		return text
	}
	return buf.String()
}
