package fsm

import "sort"

// Message names a telegram's intent.
type Message string

// Receiver is anything that can be sent a telegram.
type Receiver interface {
	HandleMessage(t Telegram) bool
}

// Telegram is a message between two agents, optionally delayed.
type Telegram struct {
	Sender       Receiver
	Receiver     Receiver
	Message      Message
	Data         any
	DispatchTick int
}

// Dispatcher delivers telegrams immediately or on a later tick.
type Dispatcher struct {
	delayed []Telegram

	// OnDeliver, when set, observes every delivered telegram and whether the
	// receiver handled it.
	OnDeliver func(t Telegram, handled bool)
}

// NewDispatcher returns an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Dispatch sends msg from sender to receiver. A delay of zero or less delivers
// now; otherwise the telegram is queued for tick now+delayTicks. A delayed
// telegram identical in receiver, message and due tick to one already queued
// is dropped.
func (d *Dispatcher) Dispatch(now int, sender, receiver Receiver, msg Message, delayTicks int, data any) {
	if receiver == nil {
		return
	}
	t := Telegram{
		Sender:       sender,
		Receiver:     receiver,
		Message:      msg,
		Data:         data,
		DispatchTick: now,
	}
	if delayTicks <= 0 {
		d.deliver(t)
		return
	}
	t.DispatchTick = now + delayTicks
	for _, q := range d.delayed {
		if q.Receiver == t.Receiver && q.Message == t.Message && q.DispatchTick == t.DispatchTick {
			return
		}
	}
	d.delayed = append(d.delayed, t)
	sort.SliceStable(d.delayed, func(i, j int) bool {
		return d.delayed[i].DispatchTick < d.delayed[j].DispatchTick
	})
}

// DeliverDelayed delivers every queued telegram due at or before now, oldest first.
func (d *Dispatcher) DeliverDelayed(now int) {
	n := 0
	for n < len(d.delayed) && d.delayed[n].DispatchTick <= now {
		n++
	}
	if n == 0 {
		return
	}
	due := make([]Telegram, n)
	copy(due, d.delayed[:n])
	d.delayed = append(d.delayed[:0], d.delayed[n:]...)
	for _, t := range due {
		d.deliver(t)
	}
}

// Pending is the number of queued delayed telegrams.
func (d *Dispatcher) Pending() int {
	return len(d.delayed)
}

// Clear drops every queued telegram.
func (d *Dispatcher) Clear() {
	d.delayed = d.delayed[:0]
}

func (d *Dispatcher) deliver(t Telegram) {
	handled := t.Receiver.HandleMessage(t)
	if d.OnDeliver != nil {
		d.OnDeliver(t, handled)
	}
}
