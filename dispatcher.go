package tally

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
)

const tracerName = "tally"

// Execute routes a command to the matching counter operation. Reset and Set
// cannot fail; the arithmetic commands surface Overflow or Underflow from
// the counter unchanged.
func Execute(ctx context.Context, counter *Counter, command Command) (ChangeRecord, error) {
	_, span := otel.Tracer(tracerName).Start(ctx, fmt.Sprintf("execute %s", CommandNameOf(command)))
	defer span.End()

	switch cmd := command.(type) {
	case Increment:
		return counter.Increment()
	case IncrementBy:
		return counter.IncrementBy(cmd.Amount)
	case Decrement:
		return counter.Decrement()
	case DecrementBy:
		return counter.DecrementBy(cmd.Amount)
	case Reset:
		return counter.Reset(), nil
	case Set:
		return counter.Set(cmd.Value), nil
	default:
		return ChangeRecord{}, UnknownCommand(CommandNameOf(command))
	}
}
