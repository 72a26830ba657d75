package tally

import (
	"math"
	"sync"
)

// MaxValue is the largest value a Counter can hold.
const MaxValue uint64 = math.MaxUint64

type CounterOption func(counter *Counter)

func WithClock(clock Clock) CounterOption {
	return func(counter *Counter) {
		counter.clock = clock
	}
}

func WithListeners(listeners ...ChangeListener) CounterOption {
	return func(counter *Counter) {
		for _, listener := range listeners {
			counter.publisher.Subscribe(listener)
		}
	}
}

// Counter holds a single bounded unsigned value. Every mutation runs under
// one lock so the bounds check, the write and the change notification form a
// single unit. A failed mutation leaves the value untouched and emits no
// record.
type Counter struct {
	lk        sync.Mutex
	value     uint64
	clock     Clock
	publisher *ChangePublisher
}

func NewCounter(options ...CounterOption) *Counter {
	counter := &Counter{
		clock:     systemClock{},
		publisher: NewChangePublisher(),
	}

	for _, option := range options {
		option(counter)
	}

	return counter
}

// Subscribe registers a listener for future change records. The returned
// function cancels the subscription.
func (c *Counter) Subscribe(listener ChangeListener) func() {
	return c.publisher.Subscribe(listener)
}

func (c *Counter) Value() uint64 {
	c.lk.Lock()
	defer c.lk.Unlock()

	return c.value
}

func (c *Counter) Increment() (ChangeRecord, error) {
	c.lk.Lock()
	defer c.lk.Unlock()

	if c.value == MaxValue {
		return ChangeRecord{}, Overflow(c.value, 1)
	}

	c.value = c.value + 1

	return c.emit(Increased), nil
}

func (c *Counter) IncrementBy(amount uint64) (ChangeRecord, error) {
	c.lk.Lock()
	defer c.lk.Unlock()

	if amount > MaxValue-c.value {
		return ChangeRecord{}, Overflow(c.value, amount)
	}

	c.value = c.value + amount

	return c.emit(Increased), nil
}

func (c *Counter) Decrement() (ChangeRecord, error) {
	c.lk.Lock()
	defer c.lk.Unlock()

	if c.value == 0 {
		return ChangeRecord{}, Underflow(c.value, 1)
	}

	c.value = c.value - 1

	return c.emit(Decreased), nil
}

func (c *Counter) DecrementBy(amount uint64) (ChangeRecord, error) {
	c.lk.Lock()
	defer c.lk.Unlock()

	if amount > c.value {
		return ChangeRecord{}, Underflow(c.value, amount)
	}

	c.value = c.value - amount

	return c.emit(Decreased), nil
}

// Reset returns the counter to zero. The record is always tagged Decreased,
// even when the value was already zero.
func (c *Counter) Reset() ChangeRecord {
	c.lk.Lock()
	defer c.lk.Unlock()

	c.value = 0

	return c.emit(Decreased)
}

// Set overwrites the value. The record is always tagged Increased, even when
// the new value is below the old one.
func (c *Counter) Set(value uint64) ChangeRecord {
	c.lk.Lock()
	defer c.lk.Unlock()

	c.value = value

	return c.emit(Increased)
}

func (c *Counter) emit(direction Direction) ChangeRecord {
	record := ChangeRecord{
		Value:     c.value,
		Timestamp: TimestampFromTime(c.clock.Now()),
		Direction: direction,
	}

	c.publisher.Publish(record)

	return record
}
