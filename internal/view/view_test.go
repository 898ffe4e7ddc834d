package view

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflowHappyPath(t *testing.T) {
	wf := &Workflow[string]{}
	assert.Equal(t, Idle, wf.Phase())
	assert.False(t, wf.Busy())

	tok := wf.Begin()
	assert.Equal(t, Loading, wf.Phase())
	assert.True(t, wf.Busy(), "controls disabled while loading")

	applied := wf.Complete(tok, "result", nil)
	assert.True(t, applied)
	assert.Equal(t, Succeeded, wf.Phase())
	assert.False(t, wf.Busy())

	result, err := wf.Result()
	require.NoError(t, err)
	assert.Equal(t, "result", result)
}

func TestWorkflowStaleCompletionIsDropped(t *testing.T) {
	wf := &Workflow[string]{}

	first := wf.Begin()
	second := wf.Begin() // supersedes first

	// The newer attempt resolves before the older one.
	require.True(t, wf.Complete(second, "newer", nil))

	// The older result arrives late and must not overwrite anything.
	assert.False(t, wf.Complete(first, "older", nil))

	result, err := wf.Result()
	require.NoError(t, err)
	assert.Equal(t, "newer", result)
	assert.Equal(t, Succeeded, wf.Phase())
}

func TestWorkflowStaleFailureIsDropped(t *testing.T) {
	wf := &Workflow[string]{}

	first := wf.Begin()
	second := wf.Begin()

	require.True(t, wf.Complete(second, "newer", nil))
	assert.False(t, wf.Complete(first, "", errors.New("late failure")))

	_, err := wf.Result()
	assert.NoError(t, err, "a superseded failure must not taint the newest result")
}

func TestWorkflowFailureReenablesControls(t *testing.T) {
	wf := &Workflow[string]{}
	before := wf.Busy()

	for i := 0; i < 2; i++ {
		tok := wf.Begin()
		require.True(t, wf.Complete(tok, "", errors.New("boom")))
	}

	// Two consecutive failures leave the control state as it was before
	// the first attempt.
	assert.Equal(t, before, wf.Busy())
	assert.Equal(t, Failed, wf.Phase())

	_, err := wf.Result()
	assert.Error(t, err)
}

func TestWorkflowCloseInvalidatesOutstandingTokens(t *testing.T) {
	wf := &Workflow[string]{}
	tok := wf.Begin()
	wf.Close()

	assert.False(t, wf.Complete(tok, "torn down", nil))
	assert.Equal(t, Idle, wf.Phase())
}

func TestRun(t *testing.T) {
	wf := &Workflow[int]{}

	got, err := Run(wf, func() (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, got)

	result, err := wf.Result()
	require.NoError(t, err)
	assert.Equal(t, 7, result)

	_, err = Run(wf, func() (int, error) { return 0, errors.New("boom") })
	assert.Error(t, err)
	assert.Equal(t, Failed, wf.Phase())
	assert.False(t, wf.Busy())
}
