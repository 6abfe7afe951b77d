// Package eventholder owns the event queue drained by the engine. Events pop
// in FIFO order; appends keep events that share a timestamp ordered by their
// kind priority so that a market event always settles through its signals,
// orders and fills before a later-ranked straggler of the same clock tick.
package eventholder

import "github.com/quantetra/backtester/common"

// Holder contains the event queue
type Holder struct {
	queue []common.EventHandler
}

// AppendEvent adds an event to the queue. An event that outranks queued
// events with the same timestamp is inserted ahead of them; insertion is
// stable within a rank.
func (h *Holder) AppendEvent(e common.EventHandler) {
	if e == nil {
		return
	}
	i := len(h.queue)
	for i > 0 &&
		h.queue[i-1].GetTime().Equal(e.GetTime()) &&
		h.queue[i-1].Priority() > e.Priority() {
		i--
	}
	h.queue = append(h.queue, nil)
	copy(h.queue[i+1:], h.queue[i:])
	h.queue[i] = e
}

// NextEvent pops the oldest event, reporting false on an empty queue
func (h *Holder) NextEvent() (common.EventHandler, bool) {
	if len(h.queue) == 0 {
		return nil, false
	}
	e := h.queue[0]
	h.queue = h.queue[1:]
	return e, true
}

// Len returns the number of queued events
func (h *Holder) Len() int {
	return len(h.queue)
}

// Reset drops all queued events
func (h *Holder) Reset() {
	h.queue = nil
}
