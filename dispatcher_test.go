package tally

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommandNames(t *testing.T) {
	assert.Equal(t, CommandName("tally:increment"), CommandNameOf(Increment{}))
	assert.Equal(t, CommandName("tally:increment-by"), CommandNameOf(IncrementBy{}))
	assert.Equal(t, CommandName("tally:decrement"), CommandNameOf(Decrement{}))
	assert.Equal(t, CommandName("tally:decrement-by"), CommandNameOf(DecrementBy{}))
	assert.Equal(t, CommandName("tally:reset"), CommandNameOf(Reset{}))
	assert.Equal(t, CommandName("tally:set"), CommandNameOf(Set{}))
}

func TestExecuteRoutesCommands(t *testing.T) {
	ctx := context.TODO()
	counter, _ := testCounter()

	record, err := Execute(ctx, counter, IncrementBy{Amount: 10})
	assert.NoError(t, err)
	assert.Equal(t, uint64(10), record.Value)

	record, err = Execute(ctx, counter, Decrement{})
	assert.NoError(t, err)
	assert.Equal(t, uint64(9), record.Value)

	record, err = Execute(ctx, counter, DecrementBy{Amount: 4})
	assert.NoError(t, err)
	assert.Equal(t, uint64(5), record.Value)

	record, err = Execute(ctx, counter, Increment{})
	assert.NoError(t, err)
	assert.Equal(t, uint64(6), record.Value)

	record, err = Execute(ctx, counter, Set{Value: 2})
	assert.NoError(t, err)
	assert.Equal(t, uint64(2), record.Value)
	assert.Equal(t, Increased, record.Direction)

	record, err = Execute(ctx, counter, Reset{})
	assert.NoError(t, err)
	assert.Equal(t, uint64(0), record.Value)
	assert.Equal(t, Decreased, record.Direction)
}

func TestExecuteSurfacesCounterFailures(t *testing.T) {
	ctx := context.TODO()
	counter, _ := testCounter()

	_, err := Execute(ctx, counter, DecrementBy{Amount: 1})
	_, ok := AsUnderflow(err)
	assert.True(t, ok)
}

func TestExecuteRejectsUnknownCommands(t *testing.T) {
	type Refund struct{}

	_, err := Execute(context.TODO(), NewCounter(), Refund{})

	assert.EqualError(t, err, "unknown command: tally:refund")
}
