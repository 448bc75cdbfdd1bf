package session

import (
	"testing"

	"github.com/aretw0/clui/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_BindsSameHandleToVisibleSteps(t *testing.T) {
	children := steps("A", "B", "C")
	s := New(children, WithInitialIndex(1))

	var entries []Entry
	s.Render(func(e Entry) { entries = append(entries, e) })

	require.Len(t, entries, 2)
	assert.Equal(t, 0, entries[0].Position)
	assert.Equal(t, 1, entries[1].Position)
	assert.Same(t, entries[0].Handle, entries[1].Handle)

	a, b, c := children[0].(*fakeStep), children[1].(*fakeStep), children[2].(*fakeStep)
	assert.Same(t, entries[0].Handle, a.last)
	assert.Same(t, entries[0].Handle, b.last)
	assert.Zero(t, c.binds, "steps past the cursor are not rendered")
}

func TestHandle_StableUntilStateChanges(t *testing.T) {
	s := New(steps("A", "B", "C"))

	h1 := s.Handle()
	assert.Same(t, h1, s.Handle(), "handle is reused while nothing changes")

	s.Reset() // already at zero
	assert.Same(t, h1, s.Handle())

	h1.Next()
	h2 := s.Handle()
	assert.NotSame(t, h1, h2)
	assert.Equal(t, 0, h1.CurrentIndex(), "old handle keeps the index it was issued at")
	assert.Equal(t, 1, h2.CurrentIndex())

	s.Insert(&fakeStep{name: "X"})
	assert.NotSame(t, h2, s.Handle(), "sequence growth changes what next does")

	h3 := s.Handle()
	s.SetOnDone(func() {})
	assert.NotSame(t, h3, s.Handle())
}

func TestHandle_ActsOnLiveSession(t *testing.T) {
	s := New(steps("A", "B", "C"))
	stale := s.Handle()

	stale.Next()
	stale.Next()
	stale.Next()

	assert.Equal(t, 2, s.CurrentIndex(), "a burst of calls stops at the sequence bound")
}

func TestHandle_StepDrivesItsOwnCompletion(t *testing.T) {
	done := false
	s := New(steps("A", "B"), WithOnDone(func() { done = true }))

	// Emulates a host that re-renders after every transition and lets the
	// newest visible step finish its work.
	for i := 0; i < 5 && !done; i++ {
		var last Entry
		s.Render(func(e Entry) { last = e })
		last.Step.(*fakeStep).last.Next()
	}

	assert.True(t, done)
	assert.Equal(t, 1, s.CurrentIndex())
}

func TestRender_NestedSessionsChain(t *testing.T) {
	var events []domain.EventType
	parentDone := 0

	child := New(steps("X", "Y"), WithName("child"))
	parent := New([]any{&fakeStep{name: "A"}, child, &fakeStep{name: "C"}},
		WithName("parent"),
		WithOnDone(func() { parentDone++ }),
		WithObserver(func(e domain.Event) { events = append(events, e.Type) }),
	)

	parent.Next()
	parent.Render(nil) // binds the child to the parent handle

	assert.Equal(t, []string{"A", "session:child"}, names(parent.Visible()))

	child.Handle().Next()
	assert.Equal(t, 1, parent.CurrentIndex(), "child still has steps to reveal")

	child.Handle().Next()
	assert.Equal(t, 2, parent.CurrentIndex(), "exhausted child advances the parent")
	assert.Equal(t, 1, child.CurrentIndex())

	parent.Handle().Next()
	assert.Equal(t, 1, parentDone)
	assert.Equal(t, []domain.EventType{domain.EventAdvance, domain.EventAdvance, domain.EventDone}, events)
}

func TestSnapshot(t *testing.T) {
	child := New(steps("X"), WithName("sub"))
	s := New([]any{&fakeStep{name: "hello"}, child}, WithName("main"), WithInitialIndex(1))

	snap := s.Snapshot()

	assert.Equal(t, "main", snap.Session)
	assert.Equal(t, 1, snap.CurrentIndex)
	assert.Equal(t, 2, snap.Length)
	assert.True(t, snap.Done)
	assert.Equal(t, []domain.StepView{
		{Position: 0, Text: "hello"},
		{Position: 1, Kind: domain.KindSession, Text: "sub"},
	}, snap.Visible)
}
