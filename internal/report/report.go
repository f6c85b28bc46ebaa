// Package report defines the progress capability handed to long-running steps.
package report

import "sync"

// Reporter receives progress for a single named step at a time per caller.
// Implementations must be safe for concurrent use.
type Reporter interface {
	Start(msg string)
	Success(msg string)
	Fail(msg, detail string)
}

type nop struct{}

func (nop) Start(string)        {}
func (nop) Success(string)      {}
func (nop) Fail(string, string) {}

// Nop discards everything.
func Nop() Reporter { return nop{} }

type Kind string

const (
	KindStart   Kind = "start"
	KindSuccess Kind = "success"
	KindFail    Kind = "fail"
)

type Event struct {
	Kind   Kind
	Msg    string
	Detail string
}

// Recorder keeps every event in order.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Start(msg string)   { r.add(Event{Kind: KindStart, Msg: msg}) }
func (r *Recorder) Success(msg string) { r.add(Event{Kind: KindSuccess, Msg: msg}) }
func (r *Recorder) Fail(msg, detail string) {
	r.add(Event{Kind: KindFail, Msg: msg, Detail: detail})
}

func (r *Recorder) add(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event{}, r.events...)
}

// Count returns how many events of kind were recorded.
func (r *Recorder) Count(kind Kind) int {
	n := 0
	for _, e := range r.Events() {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
