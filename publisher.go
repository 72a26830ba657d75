package tally

import "sync"

// ChangeListener receives a change record for every successful mutation.
type ChangeListener interface {
	HandleChange(record ChangeRecord)
}

// ListenerFunction adapts a plain function to a ChangeListener.
type ListenerFunction func(record ChangeRecord)

func (f ListenerFunction) HandleChange(record ChangeRecord) {
	f(record)
}

// ChangePublisher fans change records out to subscribed listeners. Delivery
// is synchronous and in subscription order. Publishing never fails the
// mutation that produced the record; a panicking listener is contained.
type ChangePublisher struct {
	lk        sync.Mutex
	next      int
	order     []int
	listeners map[int]ChangeListener
}

func NewChangePublisher() *ChangePublisher {
	return &ChangePublisher{listeners: make(map[int]ChangeListener)}
}

// Subscribe registers a listener. The returned function cancels the
// subscription; cancelling twice is harmless.
func (p *ChangePublisher) Subscribe(listener ChangeListener) func() {
	p.lk.Lock()
	defer p.lk.Unlock()

	id := p.next
	p.next = p.next + 1

	p.order = append(p.order, id)
	p.listeners[id] = listener

	return func() {
		p.lk.Lock()
		defer p.lk.Unlock()

		delete(p.listeners, id)
	}
}

func (p *ChangePublisher) Publish(record ChangeRecord) {
	p.lk.Lock()
	defer p.lk.Unlock()

	for _, id := range p.order {
		listener := p.listeners[id]
		if listener == nil {
			continue
		}

		deliver(listener, record)
	}
}

func deliver(listener ChangeListener, record ChangeRecord) {
	defer func() {
		_ = recover()
	}()

	listener.HandleChange(record)
}
