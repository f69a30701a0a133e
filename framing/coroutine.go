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

package framing

import (
	libconn "github.com/nabbar/ngi/conn"
)

// CoroutineFunc is run in its own goroutine, once per connection. It
// reads chunks with plain blocking receives from in instead of
// implementing HandleInput itself. A receive from in that returns
// ok == false means the connection reached its terminal state; closed
// then holds the terminal reason (as an error) or the exception that
// ended it.
type CoroutineFunc func(c libconn.Connection, in <-chan []byte, closed <-chan error)

// CoroutineHandler adapts a CoroutineFunc to the ordinary callback
// contract (§9 option (b)): each HandleInput hands a copy of the chunk
// to a 64-slot buffered channel the user goroutine reads from. The
// reactor goroutine waits only while all 64 slots are full.
type CoroutineHandler struct {
	fn     CoroutineFunc
	chunks chan []byte
	closed chan error
	once   bool
	ended  bool
}

// NewCoroutineHandler returns a handler that starts fn in its own
// goroutine on its first HandleInput/HandleClose/HandleException call
// and forwards that call and every later one onto fn's channels. Only
// the first HandleClose or HandleException is forwarded; later ones
// are ignored.
func NewCoroutineHandler(fn CoroutineFunc) *CoroutineHandler {
	return &CoroutineHandler{
		fn:     fn,
		chunks: make(chan []byte, 64),
		closed: make(chan error, 1),
	}
}

func (h *CoroutineHandler) start(c libconn.Connection) {
	if h.once {
		return
	}
	h.once = true
	go h.fn(c, h.chunks, h.closed)
}

func (h *CoroutineHandler) HandleInput(c libconn.Connection, chunk []byte) {
	h.start(c)
	if chunk != nil {
		chunk = append(make([]byte, 0, len(chunk)), chunk...)
	}
	h.chunks <- chunk
}

func (h *CoroutineHandler) HandleClose(c libconn.Connection, reason string) {
	h.start(c)
	if h.ended {
		return
	}
	h.ended = true
	close(h.chunks)
	h.closed <- errClosed{reason}
	close(h.closed)
}

func (h *CoroutineHandler) HandleException(c libconn.Connection, err error) {
	h.start(c)
	if h.ended {
		return
	}
	h.ended = true
	close(h.chunks)
	h.closed <- err
	close(h.closed)
}

type errClosed struct{ reason string }

func (e errClosed) Error() string { return e.reason }
