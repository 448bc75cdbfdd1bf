package session

import "reflect"

// Step is one opaque unit managed by a Session.
// Bind is called with the session's current Handle every time the step is rendered
// while visible.
type Step interface {
	Bind(h *Handle)
}

// Remounter is implemented by steps that keep state for one mount of the
// session holding them. Mount calls Remount on every declared step.
type Remounter interface {
	Remount()
}

// Sequence is an ordered list of steps; a step's position is its index.
type Sequence []Step

// Normalize flattens entries in document order and keeps only valid steps.
// Nested []any, []Step and Sequence values are expanded in place. Anything else
// (strings, numbers, booleans, nil, typed nil steps) is dropped silently.
func Normalize(entries ...any) Sequence {
	return appendEntries(make(Sequence, 0, len(entries)), entries)
}

func appendEntries(dst Sequence, entries []any) Sequence {
	for _, entry := range entries {
		switch v := entry.(type) {
		case nil:
		case Sequence:
			dst = appendSteps(dst, v)
		case []Step:
			dst = appendSteps(dst, v)
		case []any:
			dst = appendEntries(dst, v)
		case Step:
			if !isNilStep(v) {
				dst = append(dst, v)
			}
		}
	}
	return dst
}

func appendSteps(dst Sequence, steps []Step) Sequence {
	for _, st := range steps {
		if st != nil && !isNilStep(st) {
			dst = append(dst, st)
		}
	}
	return dst
}

// isNilStep reports whether st wraps a nil pointer (or other nil reference).
func isNilStep(st Step) bool {
	rv := reflect.ValueOf(st)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// sameInput reports whether a and b share identity: same backing array and length.
func sameInput(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}
