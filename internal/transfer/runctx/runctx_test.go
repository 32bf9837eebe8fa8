package runctx

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShouldStopWithinBudget(t *testing.T) {
	rc := New(time.Hour)
	assert.False(t, rc.ShouldStop(context.Background()))
	assert.False(t, rc.ShouldStop(context.Background()))
}

func TestShouldStopAfterBudget(t *testing.T) {
	rc := New(time.Nanosecond)
	time.Sleep(time.Millisecond)
	assert.True(t, rc.ShouldStop(context.Background()))
}

func TestShouldStopOnCancellation(t *testing.T) {
	rc := New(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	assert.False(t, rc.ShouldStop(ctx))
	cancel()
	assert.True(t, rc.ShouldStop(ctx))
}

func TestShouldStopLatches(t *testing.T) {
	rc := New(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.True(t, rc.ShouldStop(ctx))

	// Once stopped, a healthy context does not un-stop the run.
	assert.True(t, rc.ShouldStop(context.Background()))
}

func TestDefaultBudget(t *testing.T) {
	rc := New(0)
	assert.Equal(t, DefaultBudget, rc.budget)

	rc = New(-time.Second)
	assert.Equal(t, DefaultBudget, rc.budget)
}
