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

package conn

import "sync"

const (
	// ReadChunkSize is the size of each non-blocking read off the
	// socket, handed to the handler as one HandleInput call.
	ReadChunkSize = 8192

	// WriteCoalesceSize is the soft threshold up to which adjacent
	// output buffers are concatenated into a single send(2) call.
	WriteCoalesceSize = 60000
)

// producer is a lazy source of output elements, advanced one item at
// a time by the reactor thread. It mirrors writelines' iterator.
type producer interface {
	// next returns the next buffer, or ok=false when exhausted.
	next() (buf []byte, ok bool, err error)
}

// sliceProducer adapts a pre-built [][]byte, the common case for
// Writelines callers that already hold every chunk in memory.
type sliceProducer struct {
	items [][]byte
	pos   int
}

func (p *sliceProducer) next() ([]byte, bool, error) {
	if p.pos >= len(p.items) {
		return nil, false, nil
	}
	b := p.items[p.pos]
	p.pos++
	return b, true, nil
}

// funcProducer adapts an arbitrary pull function, used by framing
// adapters that emit frames lazily.
type funcProducer struct {
	fn func() ([]byte, bool, error)
}

func (p *funcProducer) next() ([]byte, bool, error) {
	return p.fn()
}

type elemKind uint8

const (
	elemBuffer elemKind = iota
	elemProducer
	elemEndOfData
)

type elem struct {
	kind elemKind
	buf  []byte
	prod producer
}

// outQueue is the per-connection output queue: an ordered sequence of
// buffers, lazy producers, and a single terminal END-OF-DATA
// sentinel. The reactor goroutine is its only reader; any goroutine
// may append, under m.
type outQueue struct {
	m      sync.Mutex
	items  []elem
	ended  bool // true once an END-OF-DATA element has been appended
	closed bool // true once END-OF-DATA has been fully drained
}

func newOutQueue() *outQueue {
	return &outQueue{items: make([]elem, 0, 4)}
}

// pushBuffer appends a byte buffer. Returns false if the queue already
// reached END-OF-DATA.
func (q *outQueue) pushBuffer(b []byte) bool {
	q.m.Lock()
	defer q.m.Unlock()

	if q.ended {
		return false
	}

	q.items = append(q.items, elem{kind: elemBuffer, buf: b})
	return true
}

// pushProducer appends a lazy producer. Returns false if the queue
// already reached END-OF-DATA.
func (q *outQueue) pushProducer(p producer) bool {
	q.m.Lock()
	defer q.m.Unlock()

	if q.ended {
		return false
	}

	q.items = append(q.items, elem{kind: elemProducer, prod: p})
	return true
}

// pushEndOfData appends the terminal sentinel. Idempotent: a second
// call is a no-op.
func (q *outQueue) pushEndOfData() {
	q.m.Lock()
	defer q.m.Unlock()

	if q.ended {
		return
	}

	q.items = append(q.items, elem{kind: elemEndOfData})
	q.ended = true
}

// isEmpty reports whether the queue currently has nothing left to
// drain (used by the reactor to decide whether to keep write
// readiness registered).
func (q *outQueue) isEmpty() bool {
	q.m.Lock()
	defer q.m.Unlock()

	return len(q.items) == 0
}

// coalesce pops buffer/producer elements from the head of the queue,
// concatenating raw buffers up to WriteCoalesceSize and pulling one
// element at a time from the head producer, which is popped once
// exhausted. It stops at the first
// END-OF-DATA element (left in place, reported via eod) or once the
// soft size threshold is reached. Producer errors are returned
// immediately with whatever had already been coalesced.
func (q *outQueue) coalesce() (out []byte, eod bool, err error) {
	q.m.Lock()
	defer q.m.Unlock()

	for len(q.items) > 0 && len(out) < WriteCoalesceSize {
		head := q.items[0]

		switch head.kind {
		case elemEndOfData:
			eod = true
			return out, eod, nil

		case elemBuffer:
			out = append(out, head.buf...)
			q.items = q.items[1:]

		case elemProducer:
			buf, ok, perr := head.prod.next()
			if perr != nil {
				q.items = q.items[1:]
				return out, false, perr
			}
			if !ok {
				q.items = q.items[1:]
				continue
			}
			out = append(out, buf...)
			// producer stays at head; only one element was
			// consumed from it, not the producer itself.
		}
	}

	return out, eod, nil
}

// requeueUnsent reinserts an unsent tail at the head of the queue
// after a partial send.
func (q *outQueue) requeueUnsent(tail []byte) {
	if len(tail) == 0 {
		return
	}

	q.m.Lock()
	defer q.m.Unlock()

	q.items = append([]elem{{kind: elemBuffer, buf: tail}}, q.items...)
}

// markDrained records that END-OF-DATA was observed and consumed.
func (q *outQueue) markDrained() {
	q.m.Lock()
	defer q.m.Unlock()

	if len(q.items) > 0 && q.items[0].kind == elemEndOfData {
		q.items = q.items[1:]
	}
	q.closed = true
}
