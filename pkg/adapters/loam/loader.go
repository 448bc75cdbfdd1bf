package loam

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/aretw0/clui/internal/compiler"
	"github.com/aretw0/clui/pkg/domain"
	"github.com/aretw0/loam"
)

// Loader adapts the Loam library to the ScriptLoader interface.
// Every document of the repository is one step.
type Loader struct {
	Repo *loam.TypedRepository[StepMetadata]
	Name string
}

// New creates a new Loam adapter. name labels the resulting script.
func New(repo *loam.TypedRepository[StepMetadata], name string) *Loader {
	return &Loader{
		Repo: repo,
		Name: name,
	}
}

// Open initializes a read-only, strict Loam repository at dir and wraps it.
// The script is named after the directory.
func Open(dir string) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// Strict mode keeps numbers as json.Number across JSON and Markdown documents.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[StepMetadata](repo), filepath.Base(absPath)), nil
}

type orderedStep struct {
	id    string
	order int
	spec  domain.StepSpec
}

// Load lists every document and assembles them into a script.
func (l *Loader) Load(ctx context.Context) (domain.Script, error) {
	script := domain.Script{Name: l.Name}
	if err := ctx.Err(); err != nil {
		return script, err
	}

	docs, err := l.Repo.List(ctx)
	if err != nil {
		return script, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	ordered := make([]orderedStep, 0, len(docs))

	for _, doc := range docs {
		// Use the ID from metadata if available, otherwise filename ID
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		if existingPath, ok := seen[id]; ok {
			return script, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID

		order, err := toInt(doc.Data.Order)
		if err != nil {
			return script, fmt.Errorf("%s: order: %w", id, err)
		}
		spec, err := buildSpec(doc.Data, doc.Content)
		if err != nil {
			return script, fmt.Errorf("%s: %w", id, err)
		}
		ordered = append(ordered, orderedStep{id: id, order: order, spec: spec})
	}

	slices.SortFunc(ordered, func(a, b orderedStep) int {
		return cmp.Or(cmp.Compare(a.order, b.order), strings.Compare(a.id, b.id))
	})

	script.Steps = make([]domain.StepSpec, 0, len(ordered))
	for _, o := range ordered {
		script.Steps = append(script.Steps, o.spec)
	}
	return script, nil
}

func buildSpec(meta StepMetadata, content string) (domain.StepSpec, error) {
	spec := domain.StepSpec{
		Kind:      meta.Kind,
		Text:      meta.Text,
		Key:       meta.Key,
		Default:   meta.Default,
		ResetOnNo: meta.ResetOnNo,
	}
	if spec.Kind == "" {
		spec.Kind = domain.KindMessage
	}
	if spec.Text == "" {
		spec.Text = strings.TrimSpace(content)
	}

	initial, err := toInt(meta.InitialIndex)
	if err != nil {
		return spec, fmt.Errorf("initial_index: %w", err)
	}
	spec.InitialIndex = initial

	if spec.Steps, err = decodeSteps(meta.Steps); err != nil {
		return spec, fmt.Errorf("steps: %w", err)
	}

	if len(meta.Insert) > 0 {
		spec.Insert = make(map[string][]domain.StepSpec, len(meta.Insert))
		for answer, raw := range meta.Insert {
			list, ok := raw.([]any)
			if !ok {
				return spec, fmt.Errorf("%w: insert[%s]: expected a list, got %T", domain.ErrInvalidScript, answer, raw)
			}
			if spec.Insert[answer], err = decodeSteps(list); err != nil {
				return spec, fmt.Errorf("insert[%s]: %w", answer, err)
			}
		}
	}
	return spec, nil
}

func decodeSteps(list []any) ([]domain.StepSpec, error) {
	if len(list) == 0 {
		return nil, nil
	}
	specs := make([]domain.StepSpec, 0, len(list))
	for i, raw := range list {
		spec, err := compiler.DecodeStep(raw)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		return int(i), err
	case string:
		return strconv.Atoi(n)
	default:
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
