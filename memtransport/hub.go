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

// Package memtransport is a byte-for-byte behavioural twin of the
// reactor/conn/framing stack that never opens a real socket: every
// Connection it hands out is driven by the same conn.New state
// machine real listeners and connectors use, so handler code written
// against it runs unmodified against the real reactor.
package memtransport

import "sync"

// hub is this package's stand-in for a reactor's selector goroutine:
// one goroutine drains a pending-callback queue to exhaustion, giving
// every Connection on the Network the same "all callbacks serialised
// on one thread" guarantee the real Reactor provides, without polling
// any real file descriptor.
type hub struct {
	mu     sync.Mutex
	q      []func()
	wake   chan struct{}
	closed chan struct{}
}

func newHub() *hub {
	h := &hub{
		wake:   make(chan struct{}, 1),
		closed: make(chan struct{}),
	}
	go h.loop()
	return h
}

func (h *hub) post(fn func()) {
	h.mu.Lock()
	h.q = append(h.q, fn)
	h.mu.Unlock()

	select {
	case h.wake <- struct{}{}:
	default:
	}
}

func (h *hub) loop() {
	for {
		select {
		case <-h.closed:
			return
		case <-h.wake:
		}

		for {
			h.mu.Lock()
			if len(h.q) == 0 {
				h.mu.Unlock()
				break
			}
			batch := h.q
			h.q = nil
			h.mu.Unlock()

			for _, fn := range batch {
				fn()
			}
		}
	}
}

func (h *hub) close() {
	close(h.closed)
}

// node is the conn.Poster every in-process Connection is constructed
// with. A real Reactor learns "this socket is writable" from epoll;
// this package has no such signal, so node's Post wraps every posted
// callback (Write/Writelines/Close all post an empty func purely to
// pulse the selector) with an immediate check of the connection's own
// pending-output flag, draining it inline instead of waiting on a
// readiness event that will never come.
type node struct {
	hub  *hub
	conn pumpable
}

func (n *node) Post(fn func()) {
	n.hub.post(func() {
		fn()
		if n.conn != nil && n.conn.HasPendingOutput() {
			n.conn.PumpWritable()
		}
	})
}

// pumpable is the subset of conn.New's concrete return value this
// package drives directly, identical in shape to reactor's own
// unexported pumpable interface.
type pumpable interface {
	PumpReadable()
	PumpWritable()
	HasPendingOutput() bool
}
