package compiler

import (
	"fmt"
	"maps"

	"github.com/aretw0/clui/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// shorthands lists the keys that may stand in for "kind".
// {message: "hi"} is read as {kind: message, text: "hi"} and
// {session: [...]} as {kind: session, steps: [...]}.
var shorthands = []string{domain.KindMessage, domain.KindPrompt, domain.KindConfirm, domain.KindSession}

// DecodeScript converts loosely typed input (parsed YAML or JSON) into a Script.
// Plain strings in a step list are messages. Unknown fields are rejected.
func DecodeScript(raw map[string]any) (domain.Script, error) {
	var script domain.Script

	expanded := maps.Clone(raw)
	if list, ok := raw["steps"]; ok {
		steps, err := expandList(list)
		if err != nil {
			return script, fmt.Errorf("%w: steps: %v", domain.ErrInvalidScript, err)
		}
		expanded["steps"] = steps
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &script,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return script, err
	}
	if err := decoder.Decode(expanded); err != nil {
		return script, fmt.Errorf("%w: %v", domain.ErrInvalidScript, err)
	}
	return script, nil
}

// DecodeStep converts a single loosely typed step.
func DecodeStep(raw any) (domain.StepSpec, error) {
	var spec domain.StepSpec
	expanded, err := expandStep(raw)
	if err != nil {
		return spec, fmt.Errorf("%w: %v", domain.ErrInvalidScript, err)
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &spec,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return spec, err
	}
	if err := decoder.Decode(expanded); err != nil {
		return spec, fmt.Errorf("%w: %v", domain.ErrInvalidScript, err)
	}
	return spec, nil
}

func expandList(v any) ([]any, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a list, got %T", v)
	}
	out := make([]any, 0, len(list))
	for i, item := range list {
		step, err := expandStep(item)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		out = append(out, step)
	}
	return out, nil
}

func expandStep(v any) (any, error) {
	switch t := v.(type) {
	case string:
		return map[string]any{"kind": domain.KindMessage, "text": t}, nil
	case map[string]any:
		return expandMap(t)
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = val
		}
		return expandMap(m)
	default:
		return nil, fmt.Errorf("unsupported step %T", v)
	}
}

func expandMap(m map[string]any) (map[string]any, error) {
	out := maps.Clone(m)
	if _, hasKind := out["kind"]; !hasKind {
		for _, kind := range shorthands {
			val, ok := out[kind]
			if !ok {
				continue
			}
			delete(out, kind)
			out["kind"] = kind
			if kind == domain.KindSession {
				out["steps"] = val
			} else {
				out["text"] = val
			}
			break
		}
	}

	if list, ok := out["steps"]; ok {
		steps, err := expandList(list)
		if err != nil {
			return nil, fmt.Errorf("steps: %w", err)
		}
		out["steps"] = steps
	}

	if raw, ok := out["insert"]; ok {
		inserts, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("insert: expected a map, got %T", raw)
		}
		expanded := make(map[string]any, len(inserts))
		for answer, list := range inserts {
			steps, err := expandList(list)
			if err != nil {
				return nil, fmt.Errorf("insert[%s]: %w", answer, err)
			}
			expanded[answer] = steps
		}
		out["insert"] = expanded
	}
	return out, nil
}
