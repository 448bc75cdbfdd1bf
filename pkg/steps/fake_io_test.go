package steps

import (
	"context"
	"io"
)

// scriptedIO answers prompts from a fixed list and records everything written.
type scriptedIO struct {
	answers []string
	outputs []string
	prompts []string
	system  []string
}

func (s *scriptedIO) Output(_ context.Context, content string) error {
	s.outputs = append(s.outputs, content)
	return nil
}

func (s *scriptedIO) Input(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if len(s.answers) == 0 {
		return "", io.EOF
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	return a, nil
}

func (s *scriptedIO) SystemOutput(_ context.Context, msg string) error {
	s.system = append(s.system, msg)
	return nil
}
