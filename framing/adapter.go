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

// Package framing wraps a conn.Connection and presents the same
// contract outwards while translating the raw byte stream into whole
// frames, so a handler written against one framing never has to
// reassemble partial reads itself.
package framing

import (
	"sync"

	liberr "github.com/nabbar/ngi/errors"

	libconn "github.com/nabbar/ngi/conn"
)

// splitFunc extracts one complete frame from the front of buf, if
// present, returning the frame's payload and the unconsumed remainder.
type splitFunc func(buf []byte) (frame []byte, rest []byte, ok bool, err error)

// encodeFunc renders a payload as this framing's wire representation.
type encodeFunc func(payload []byte) []byte

type deferredEvent struct {
	isClose bool
	isExc   bool
	reason  string
	err     error
}

// adapter is the shared plumbing behind Lines and Sized: both differ
// only in split/encode, everything about deferred handler binding,
// pending-frame replay and pass-through of close/exception events is
// identical, mirroring conn.impl's own buffering rules one layer up.
type adapter struct {
	m sync.Mutex

	inner libconn.Connection
	split splitFunc
	enc   encodeFunc

	buf []byte

	handler libconn.Handler

	pendingFrames [][]byte
	pendingEvent  []deferredEvent
}

func newAdapter(inner libconn.Connection, split splitFunc, enc encodeFunc) *adapter {
	a := &adapter{inner: inner, split: split, enc: enc}
	_ = inner.SetHandler(a)
	return a
}

// SetHandler binds the frame-level handler. Any full frame, close or
// exception observed before this call is replayed in arrival order.
func (a *adapter) SetHandler(h libconn.Handler) liberr.Error {
	var replay []func()

	a.m.Lock()
	if a.handler != nil {
		a.m.Unlock()
		return libconn.ErrorHandlerAlreadySet.Error()
	}
	a.handler = h

	for _, f := range a.pendingFrames {
		f := f
		replay = append(replay, func() { h.HandleInput(a, f) })
	}
	a.pendingFrames = nil

	for _, ev := range a.pendingEvent {
		ev := ev
		if ev.isExc {
			if eh, ok := h.(libconn.ExceptionHandler); ok {
				replay = append(replay, func() { eh.HandleException(a, ev.err) })
			}
		} else if ev.isClose {
			if ch, ok := h.(libconn.CloseHandler); ok {
				replay = append(replay, func() { ch.HandleClose(a, ev.reason) })
			}
		}
	}
	a.pendingEvent = nil
	a.m.Unlock()

	for _, fn := range replay {
		fn()
	}
	return nil
}

func (a *adapter) Write(b []byte) liberr.Error { return a.inner.Write(a.enc(b)) }
func (a *adapter) Close()                      { a.inner.Close() }
func (a *adapter) PeerAddress() string         { return a.inner.PeerAddress() }
func (a *adapter) IsOpen() bool                { return a.inner.IsOpen() }

// Writelines serialises each produced payload through enc before
// forwarding it to the inner connection's own lazy-producer queue.
func (a *adapter) Writelines(next func() ([]byte, bool, error)) liberr.Error {
	return a.inner.Writelines(func() ([]byte, bool, error) {
		buf, ok, err := next()
		if !ok || err != nil {
			return nil, ok, err
		}
		return a.enc(buf), true, nil
	})
}

// --- libconn.Handler / CloseHandler / ExceptionHandler, bound to inner ---

func (a *adapter) HandleInput(_ libconn.Connection, chunk []byte) {
	a.m.Lock()
	a.buf = append(a.buf, chunk...)

	var frames [][]byte
	for {
		frame, rest, ok, err := a.split(a.buf)
		if err != nil {
			h := a.handler
			a.m.Unlock()
			a.deliverException(h, err)
			return
		}
		if !ok {
			break
		}
		frames = append(frames, frame)
		a.buf = rest
	}

	h := a.handler
	if h == nil {
		a.pendingFrames = append(a.pendingFrames, frames...)
		a.m.Unlock()
		return
	}
	a.m.Unlock()

	for _, f := range frames {
		h.HandleInput(a, f)
	}
}

func (a *adapter) HandleClose(_ libconn.Connection, reason string) {
	a.m.Lock()
	h := a.handler
	if h == nil {
		a.pendingEvent = append(a.pendingEvent, deferredEvent{isClose: true, reason: reason})
		a.m.Unlock()
		return
	}
	a.m.Unlock()

	if ch, ok := h.(libconn.CloseHandler); ok {
		ch.HandleClose(a, reason)
	}
}

func (a *adapter) HandleException(_ libconn.Connection, err error) {
	a.m.Lock()
	h := a.handler
	a.m.Unlock()
	a.deliverException(h, err)
}

func (a *adapter) deliverException(h libconn.Handler, err error) {
	if h == nil {
		a.m.Lock()
		a.pendingEvent = append(a.pendingEvent, deferredEvent{isExc: true, err: err})
		a.m.Unlock()
		return
	}

	if eh, ok := h.(libconn.ExceptionHandler); ok {
		eh.HandleException(a, err)
		return
	}

	a.inner.Close()
}
