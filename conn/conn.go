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

// Package conn implements the per-socket state machine: buffering,
// deferred handler binding, the output queue, and half-close. Every
// Connection is driven exclusively by its owning reactor goroutine;
// Write, Writelines and Close are the only methods safe to call from
// other goroutines.
package conn

import (
	"sync"

	liberr "github.com/nabbar/ngi/errors"
	loglvl "github.com/nabbar/ngi/logger/level"

	liblog "github.com/nabbar/ngi/logger"
)

type state uint8

const (
	stateUnboundOpen state = iota
	stateBoundOpen
	stateClosing
	stateClosed
)

// Poster is the subset of Reactor a Connection needs: a thread-safe
// way to run code on the selector goroutine and pulse its Wakeup so a
// pending write gets drained on the next loop iteration.
type Poster interface {
	Post(fn func())
}

// Connection represents one bidirectional byte stream. It is created
// by a Listener on accept or by a successful Connector, and is driven
// by the reactor goroutine that owns its socket.
type Connection interface {
	// SetHandler binds h. Must be called in direct response to
	// Connected, a server handler invocation, or a prior handler
	// call. A second call fails with ErrorHandlerAlreadySet. Any
	// input/close/exception event observed before binding is replayed
	// to h in arrival order.
	SetHandler(h Handler) liberr.Error

	// Write appends a buffer to the output queue and pulses the
	// reactor's Wakeup. Safe to call from any goroutine. Fails with
	// ErrorConnectionClosed once Close has been called.
	Write(b []byte) liberr.Error

	// Writelines appends a lazy producer of buffers. Each write pass
	// pulls one element at a time from it until it is exhausted or the
	// coalescing threshold is reached. Fails like Write on a closed
	// connection.
	Writelines(next func() (buf []byte, ok bool, err error)) liberr.Error

	// Close appends the END-OF-DATA sentinel; the connection
	// half-closes once every prior output element has been sent.
	// Idempotent.
	Close()

	// PeerAddress is the observable remote address.
	PeerAddress() string

	// IsOpen reports whether the connection has not yet reached its
	// closed state.
	IsOpen() bool
}

// rawSocket is the minimal non-blocking socket surface a Connection
// drives; reactor's listener/connector implementations satisfy it
// with raw fd syscalls, the in-process testing transport satisfies it
// with a paired in-memory peer.
type rawSocket interface {
	// Read performs one non-blocking read. A zero-length, nil-error
	// result means peer close (EOF).
	Read(buf []byte) (n int, err error)

	// Send performs one non-blocking write, returning however many
	// bytes were actually accepted.
	Send(buf []byte) (n int, err error)

	// CloseSocket releases the underlying descriptor.
	CloseSocket() error
}

type deferredEvent struct {
	isClose bool
	isExc   bool
	reason  string
	err     error
}

// impl is the concrete Connection. All mutation of handler-visible
// state happens on the reactor goroutine; m only guards the fields
// touched by Write/Writelines/Close/IsOpen from other goroutines.
type impl struct {
	m sync.Mutex

	sock rawSocket
	peer string
	post Poster
	log  liblog.Logger

	st      state
	handler Handler

	out *outQueue

	pendingInput [][]byte
	pendingEvent []deferredEvent
}

// New wraps sock as an unbound-open Connection. peer is the
// observable remote address; post lets Write/Writelines/Close hand
// work back to the owning reactor goroutine.
func New(sock rawSocket, peer string, post Poster, log liblog.Logger) Connection {
	return &impl{
		sock: sock,
		peer: peer,
		post: post,
		log:  log,
		out:  newOutQueue(),
	}
}

func (c *impl) PeerAddress() string {
	c.m.Lock()
	defer c.m.Unlock()
	return c.peer
}

func (c *impl) IsOpen() bool {
	c.m.Lock()
	defer c.m.Unlock()
	return c.st != stateClosed
}

func (c *impl) SetHandler(h Handler) liberr.Error {
	var replay []func()

	c.m.Lock()
	if c.handler != nil {
		c.m.Unlock()
		return ErrorHandlerAlreadySet.Error()
	}

	c.handler = h
	if c.st == stateUnboundOpen {
		c.st = stateBoundOpen
	}

	for _, b := range c.pendingInput {
		b := b
		replay = append(replay, func() { h.HandleInput(c, b) })
	}
	c.pendingInput = nil

	for _, ev := range c.pendingEvent {
		ev := ev
		if ev.isExc {
			if eh, ok := asExceptionHandler(h); ok {
				replay = append(replay, func() { eh.HandleException(c, ev.err) })
			}
		} else if ev.isClose {
			if ch, ok := asCloseHandler(h); ok {
				replay = append(replay, func() { ch.HandleClose(c, ev.reason) })
			}
		}
	}
	c.pendingEvent = nil
	c.m.Unlock()

	for _, fn := range replay {
		fn()
	}

	return nil
}

func (c *impl) Write(b []byte) liberr.Error {
	if !c.out.pushBuffer(b) {
		return ErrorConnectionClosed.Error()
	}

	if c.post != nil {
		c.post.Post(func() {})
	}

	return nil
}

func (c *impl) Writelines(next func() (buf []byte, ok bool, err error)) liberr.Error {
	if !c.out.pushProducer(&funcProducer{fn: next}) {
		return ErrorConnectionClosed.Error()
	}

	if c.post != nil {
		c.post.Post(func() {})
	}

	return nil
}

func (c *impl) Close() {
	c.out.pushEndOfData()

	if c.post != nil {
		c.post.Post(func() {})
	}
}

// --- reactor-goroutine-only methods below; never called concurrently ---

// deliverInput feeds one chunk to the bound handler, or buffers it if
// no handler is bound yet.
func (c *impl) deliverInput(chunk []byte) {
	c.m.Lock()
	h := c.handler
	if h == nil {
		cp := append([]byte(nil), chunk...)
		c.pendingInput = append(c.pendingInput, cp)
		c.m.Unlock()
		return
	}
	c.m.Unlock()

	h.HandleInput(c, chunk)
}

// deliverClose feeds the terminal close event, or records it if no
// handler is bound. At most one close is ever delivered.
func (c *impl) deliverClose(reason string) {
	c.m.Lock()
	if c.st == stateClosed {
		c.m.Unlock()
		return
	}
	c.st = stateClosed
	h := c.handler
	c.m.Unlock()

	if h == nil {
		c.m.Lock()
		c.pendingEvent = append(c.pendingEvent, deferredEvent{isClose: true, reason: reason})
		c.m.Unlock()
		return
	}

	if ch, ok := asCloseHandler(h); ok {
		ch.HandleClose(c, reason)
	}
}

// deliverException feeds an error to the bound handler's
// ExceptionHandler capability, or records it if unbound. Either way,
// the caller is responsible for closing the connection afterward: an
// exception is always terminal, whether or not a handler was told
// about it.
func (c *impl) deliverException(err error) {
	c.m.Lock()
	h := c.handler
	c.m.Unlock()

	if h == nil {
		c.m.Lock()
		c.pendingEvent = append(c.pendingEvent, deferredEvent{isExc: true, err: err})
		c.m.Unlock()
		return
	}

	if eh, ok := asExceptionHandler(h); ok {
		eh.HandleException(c, err)
		return
	}
}

// forceClose transitions straight to closed, releasing the socket and
// delivering a terminal close event.
func (c *impl) forceClose(reason string) {
	_ = c.sock.CloseSocket()
	c.deliverClose(reason)
}

func (c *impl) logEntry(lvl loglvl.Level, msg string) {
	if c.log == nil {
		return
	}
	c.log.Entry(lvl, msg).FieldAdd("peer", c.peer).Log()
}
