/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package reactor is the single-selector-thread I/O engine: it owns a
// set of non-blocking sockets (listeners, connections, the wakeup
// pipe, UDP sockets), drives their readiness events, and serializes
// every callback to a given connection on its one selector goroutine.
package reactor

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	libcache "github.com/nabbar/ngi/cache"
	libdur "github.com/nabbar/ngi/duration"
	liberr "github.com/nabbar/ngi/errors"
	liblog "github.com/nabbar/ngi/logger"
	loglvl "github.com/nabbar/ngi/logger/level"

	libconn "github.com/nabbar/ngi/conn"
)

type lifecycle int32

const (
	lifecycleIdle lifecycle = iota
	lifecycleRunning
	lifecycleStopping
)

const maxPollTimeout = 30 * time.Second

// pumpable is the subset of conn.Connection's concrete implementation
// the reactor drives directly; conn.New's result always satisfies it.
type pumpable interface {
	PumpReadable()
	PumpWritable()
	HasPendingOutput() bool
}

type connEntry struct {
	fd         int
	conn       libconn.Connection
	pump       pumpable
	wantWrite  bool
	fromAccept *listenerEntry // non-nil for a child of a Listener
}

// Reactor owns the selector map and runs the loop. Construct one with
// New, or use Default for the lazily-created process-wide instance.
type Reactor struct {
	id string

	m        sync.Mutex
	state    lifecycle
	poll     poller
	wake     *wakeup
	conns      map[int]*connEntry
	listens    map[int]*listenerEntry
	udpListn   map[int]*udpListenerEntry
	connecting map[int]*connectEntry
	udpOut     libcache.Cache[int, *udpSocket]

	cbMu sync.Mutex
	cb   []func()

	running sync.WaitGroup
	exited  chan struct{}

	log     liblog.Logger
	metrics *metrics
}

// New constructs an idle Reactor. Its selector goroutine is started
// lazily on the first Connect, Listen, UDPListen or Post call.
func New(log liblog.Logger) *Reactor {
	if log == nil {
		log = liblog.New(context.Background())
	}

	return &Reactor{
		id:         uuid.NewString(),
		conns:      make(map[int]*connEntry),
		listens:    make(map[int]*listenerEntry),
		udpListn:   make(map[int]*udpListenerEntry),
		connecting: make(map[int]*connectEntry),
		log:        log,
		metrics:    newMetrics(),
	}
}

// Post runs fn on the selector goroutine. When the caller already is
// the selector goroutine (fn was reached from inside another posted
// callback, a handler call, or a readiness pump), it still goes
// through the pending-callback queue, but that queue is drained to
// exhaustion before every poll, so nested posts run before the next
// blocking wait rather than merely "eventually" — see DESIGN.md for
// why this module does not attempt real goroutine-affinity detection.
func (r *Reactor) Post(fn func()) {
	if fn == nil {
		return
	}

	r.cbMu.Lock()
	r.cb = append(r.cb, fn)
	r.cbMu.Unlock()

	r.ensureStarted()
	r.wake.pulse()
}

func (r *Reactor) drainCallbacks() {
	for {
		r.cbMu.Lock()
		if len(r.cb) == 0 {
			r.cbMu.Unlock()
			return
		}
		batch := r.cb
		r.cb = nil
		r.cbMu.Unlock()

		for _, fn := range batch {
			r.safeCall(fn)
		}
	}
}

func (r *Reactor) safeCall(fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			r.handleError(rec)
		}
	}()
	fn()
}

func (r *Reactor) handleError(rec interface{}) {
	if err, ok := rec.(error); ok {
		r.log.Entry(loglvl.ErrorLevel, "reactor callback panicked").
			FieldAdd("reactor", r.id).ErrorAdd(true, err).Log()
		return
	}
	r.log.Entry(loglvl.ErrorLevel, "reactor callback panicked: %v", rec).
		FieldAdd("reactor", r.id).Log()
}

// ensureStarted lazily creates the poller, wakeup pipe, and starts the
// selector goroutine if it isn't already running.
func (r *Reactor) ensureStarted() {
	r.m.Lock()
	defer r.m.Unlock()

	if r.state == lifecycleRunning {
		return
	}

	p, err := newPoller()
	if err != nil {
		r.log.Entry(loglvl.ErrorLevel, "cannot create poller").ErrorAdd(true, err).Log()
		return
	}

	w, err := newWakeup()
	if err != nil {
		_ = p.close()
		r.log.Entry(loglvl.ErrorLevel, "cannot create wakeup").ErrorAdd(true, err).Log()
		return
	}

	if err = p.add(w.readFd()); err != nil {
		_ = p.close()
		_ = w.close()
		r.log.Entry(loglvl.ErrorLevel, "cannot register wakeup").ErrorAdd(true, err).Log()
		return
	}

	r.poll = p
	r.wake = w
	r.state = lifecycleRunning
	r.exited = make(chan struct{})

	r.running.Add(1)
	go r.loop()
}

// loop is the selector goroutine body: drain callbacks, re-arm write
// readiness for connections whose output queue changed outside a
// readiness pump, poll, dispatch readiness, exit when only the wakeup
// remains and no callbacks are pending.
func (r *Reactor) loop() {
	defer r.running.Done()

	for {
		r.drainCallbacks()

		r.m.Lock()
		entries := make([]*connEntry, 0, len(r.conns))
		for _, ce := range r.conns {
			entries = append(entries, ce)
		}
		r.m.Unlock()
		for _, ce := range entries {
			r.syncWriteInterest(ce)
		}

		if r.shouldExit() {
			r.teardown()
			return
		}

		events, err := r.poll.wait(maxPollTimeout)
		if err != nil {
			r.log.Entry(loglvl.ErrorLevel, "poller wait failed").ErrorAdd(true, err).Log()
			r.teardown()
			return
		}

		r.metrics.loopIterations.Inc()

		for _, ev := range events {
			r.dispatch(ev)
		}
	}
}

func (r *Reactor) dispatch(ev event) {
	if ev.fd == r.wake.readFd() {
		r.wake.drain()
		return
	}

	r.m.Lock()
	ce, okConn := r.conns[ev.fd]
	le, okListen := r.listens[ev.fd]
	ue, okUDP := r.udpListn[ev.fd]
	ne, okConnecting := r.connecting[ev.fd]
	r.m.Unlock()

	switch {
	case okConnecting:
		r.safeCall(func() { r.pollConnecting(ne) })
	case okConn:
		if ev.flags&readable != 0 {
			r.safeCall(ce.pump.PumpReadable)
		}
		if ev.flags&writable != 0 {
			r.safeCall(ce.pump.PumpWritable)
		}
		r.syncWriteInterest(ce)
		if !ce.conn.IsOpen() {
			r.removeConn(ce.fd)
		}
	case okListen:
		r.safeCall(func() { r.acceptOne(le) })
	case okUDP:
		r.safeCall(func() { r.udpReceiveOne(ue) })
	}
}

// syncWriteInterest arms or disarms write readiness to match whether
// the connection still has output queued.
func (r *Reactor) syncWriteInterest(ce *connEntry) {
	want := ce.pump.HasPendingOutput()
	if want == ce.wantWrite {
		return
	}
	ce.wantWrite = want
	_ = r.poll.setWritable(ce.fd, want)
}

func (r *Reactor) removeConn(fd int) {
	r.m.Lock()
	ce, ok := r.conns[fd]
	if ok {
		delete(r.conns, fd)
	}
	r.m.Unlock()

	if !ok {
		return
	}

	_ = r.poll.remove(fd)
	r.metrics.openConnections.Dec()

	if ce.fromAccept != nil {
		ce.fromAccept.childClosed(fd)
	}
}

func (r *Reactor) shouldExit() bool {
	r.cbMu.Lock()
	pending := len(r.cb)
	r.cbMu.Unlock()

	if pending > 0 {
		return false
	}

	r.m.Lock()
	defer r.m.Unlock()

	return len(r.conns) == 0 && len(r.listens) == 0 && len(r.udpListn) == 0 && len(r.connecting) == 0
}

func (r *Reactor) teardown() {
	r.m.Lock()
	_ = r.poll.remove(r.wake.readFd())
	_ = r.wake.close()
	_ = r.poll.close()
	r.state = lifecycleIdle
	exited := r.exited
	out := r.udpOut
	r.udpOut = nil
	r.m.Unlock()

	if out != nil {
		_ = out.Close()
	}

	close(exited)
}

// Wait blocks until the selector goroutine exits (the registered set
// has drained), or returns ErrorTimeout if timeout elapses first. A
// non-positive timeout waits forever.
func (r *Reactor) Wait(timeout libdur.Duration) liberr.Error {
	r.m.Lock()
	running := r.state == lifecycleRunning
	exited := r.exited
	r.m.Unlock()

	if !running {
		return nil
	}

	if timeout.Time() <= 0 {
		<-exited
		return nil
	}

	select {
	case <-exited:
		return nil
	case <-time.After(timeout.Time()):
		return ErrorTimeout.Error()
	}
}

// registerConn arms fd for read readiness and tracks its Connection.
func (r *Reactor) registerConn(fd int, c libconn.Connection, from *listenerEntry) {
	ce := &connEntry{fd: fd, conn: c, pump: c.(pumpable), fromAccept: from}

	r.m.Lock()
	r.conns[fd] = ce
	r.m.Unlock()

	_ = r.poll.add(fd)
	r.metrics.openConnections.Inc()
}
