package metrics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordSink struct {
	runs     int
	failures int
	err      error
}

func (r *recordSink) RecordRun(RunEvent) error {
	r.runs++
	return r.err
}

func (r *recordSink) RecordFailure(FailureEvent) error {
	r.failures++
	return nil
}

type runOnlySink struct{ runs int }

func (r *runOnlySink) RecordRun(RunEvent) error {
	r.runs++
	return nil
}

func TestMultiSink(t *testing.T) {
	s1 := &recordSink{}
	s2 := &runOnlySink{}
	m := NewMultiSink(s1, s2)
	require.NoError(t, m.RecordRun(RunEvent{Scenario: "a"}))
	require.NoError(t, m.RecordFailure(FailureEvent{Scenario: "a"}))
	assert.Equal(t, 1, s1.runs)
	assert.Equal(t, 1, s1.failures)
	assert.Equal(t, 1, s2.runs)
}

func TestMultiSink_StopsOnError(t *testing.T) {
	boom := errors.New("boom")
	s1 := &recordSink{err: boom}
	s2 := &recordSink{}
	m := NewMultiSink(s1, s2)
	assert.ErrorIs(t, m.RecordRun(RunEvent{}), boom)
	assert.Equal(t, 0, s2.runs)
}
