//----------------------------------------------------------------------
// This file is part of manetsim.
// Copyright (C) 2022 Bernd Fix >Y<
//
// manetsim is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License,
// or (at your option) any later version.
//
// manetsim is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.
//
// SPDX-License-Identifier: AGPL3.0-or-later
//----------------------------------------------------------------------

package core

import (
	"container/heap"
	"sync/atomic"
)

//----------------------------------------------------------------------
// Scheduler is a single-threaded, cooperative discrete-event engine with
// one virtual clock. The unit of work is a Process: a resumable
// computation that repeatedly yields a non-negative time delta and is
// resumed at (now+delta). Processes are Go functions running on their
// own goroutine, but the scheduler only ever lets one of them run at a
// time - Step() hands control to exactly one process and blocks until
// that process yields again or returns, so the engine never actually
// runs concurrently even though goroutines carry the call stacks.
//----------------------------------------------------------------------

// Process is a resumable simulation task. It receives a Proc handle used
// to read the clock, yield control and check for cooperative cancellation.
type Process func(p *Proc)

// Proc is the handle a running Process uses to talk back to the
// Scheduler that owns it.
type Proc struct {
	sched  *Scheduler
	yield  chan SimTime  // process -> scheduler: requested delta (closed on return)
	resume chan struct{} // scheduler -> process: continue running
}

// Yield suspends the calling process for 'delta' simulated seconds and
// resumes when the scheduler dequeues it. This is the only suspension
// point; delta must be >= 0.
func (p *Proc) Yield(delta SimTime) {
	p.yield <- delta
	<-p.resume
}

// Now returns the scheduler's current virtual time.
func (p *Proc) Now() SimTime {
	return p.sched.Now()
}

// Stopped returns true if the scheduler-wide stop flag has been set; a
// long-running process polls this at every yield boundary and exits
// when it observes the flag, giving bounded shutdown latency.
func (p *Proc) Stopped() bool {
	return p.sched.Stopped()
}

//----------------------------------------------------------------------

// event is one entry in the scheduler's pending-event heap.
type event struct {
	at   SimTime
	seq  uint64 // insertion order, breaks ties at equal 'at'
	proc *Proc
}

// eventHeap implements container/heap.Interface, ordered by (at, seq).
type eventHeap []*event

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if h[i].at != h[j].at {
		return h[i].at < h[j].at
	}
	return h[i].seq < h[j].seq
}
func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *eventHeap) Push(x any)   { *h = append(*h, x.(*event)) }
func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}

// Scheduler drives the simulation's single virtual clock.
type Scheduler struct {
	now     SimTime
	pending eventHeap
	seq     uint64
	stop    atomic.Bool
}

// NewScheduler creates an empty scheduler with the clock at t=0.
func NewScheduler() *Scheduler {
	s := new(Scheduler)
	heap.Init(&s.pending)
	return s
}

// Now returns the current virtual time.
func (s *Scheduler) Now() SimTime {
	return s.now
}

// Stop requests cooperative shutdown; processes observe it at their next
// Yield boundary (core.Proc.Stopped).
func (s *Scheduler) Stop() {
	s.stop.Store(true)
}

// Stopped reports whether Stop has been called.
func (s *Scheduler) Stopped() bool {
	return s.stop.Load()
}

// Spawn starts a new process. The calling goroutine drives the process
// synchronously until its first Yield (or until it returns without
// yielding), then schedules its next wakeup.
func (s *Scheduler) Spawn(fn Process) {
	p := &Proc{
		sched:  s,
		yield:  make(chan SimTime),
		resume: make(chan struct{}),
	}
	go func() {
		fn(p)
		close(p.yield)
	}()
	s.advance(p)
}

// advance waits for a process to yield (or finish) and, if it yielded,
// schedules its next wakeup.
func (s *Scheduler) advance(p *Proc) {
	delta, ok := <-p.yield
	if !ok {
		// process returned without yielding again: it is done.
		return
	}
	if delta < 0 {
		delta = 0
	}
	s.seq++
	heap.Push(&s.pending, &event{at: s.now + delta, seq: s.seq, proc: p})
}

// Peek returns the time of the next pending event. Returns ErrNoEvents
// if the queue is empty.
func (s *Scheduler) Peek() (SimTime, error) {
	if len(s.pending) == 0 {
		return 0, ErrNoEvents
	}
	return s.pending[0].at, nil
}

// Step advances the clock to the next pending event and runs it to its
// next suspension point. Returns ErrNoEvents if the queue is empty.
func (s *Scheduler) Step() error {
	if len(s.pending) == 0 {
		return ErrNoEvents
	}
	ev := heap.Pop(&s.pending).(*event)
	s.now = ev.at
	ev.proc.resume <- struct{}{}
	s.advance(ev.proc)
	return nil
}

// Pending returns the number of events currently queued (for tests and
// diagnostics).
func (s *Scheduler) Pending() int {
	return len(s.pending)
}
