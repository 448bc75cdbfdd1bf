package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/clui/internal/compiler"
	"github.com/aretw0/clui/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ScriptLoader for a single YAML or JSON document.
type Loader struct {
	Path string
}

// New creates a Loader for path. The format is chosen by extension:
// .json is JSON, anything else is parsed as YAML.
func New(path string) *Loader {
	return &Loader{Path: path}
}

// Supports reports whether path has an extension the file loader reads.
func Supports(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

// Load reads and decodes the script. A script without a name is named after the file.
func (l *Loader) Load(ctx context.Context) (domain.Script, error) {
	var script domain.Script
	if err := ctx.Err(); err != nil {
		return script, err
	}

	data, err := os.ReadFile(l.Path)
	if err != nil {
		return script, fmt.Errorf("failed to read script: %w", err)
	}

	raw := make(map[string]any)
	if strings.EqualFold(filepath.Ext(l.Path), ".json") {
		err = json.Unmarshal(data, &raw)
	} else {
		err = yaml.Unmarshal(data, &raw)
	}
	if err != nil {
		return script, fmt.Errorf("%w: %s: %v", domain.ErrInvalidScript, l.Path, err)
	}

	script, err = compiler.DecodeScript(raw)
	if err != nil {
		return script, fmt.Errorf("%s: %w", l.Path, err)
	}
	if script.Name == "" {
		base := filepath.Base(l.Path)
		script.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return script, nil
}
