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

package memtransport

import (
	"sync"
	"syscall"
)

// memSocket is one end of an in-process paired connection. It
// implements conn's unexported rawSocket contract the same way
// reactor's fdSocket does, by returning syscall.EAGAIN from Read when
// idle instead of blocking, so conn.impl's isTransient classifier
// treats an empty inbox exactly like a would-block real socket.
type memSocket struct {
	mu sync.Mutex

	hub  *hub
	peer *memSocket

	inbox      [][]byte
	closed     bool
	peerClosed bool

	readableFn func()
}

func newPair(h *hub) (a, b *memSocket) {
	a = &memSocket{hub: h}
	b = &memSocket{hub: h}
	a.peer = b
	b.peer = a
	return a, b
}

func (s *memSocket) Read(buf []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.inbox) == 0 {
		if s.peerClosed {
			return 0, nil
		}
		return 0, syscall.EAGAIN
	}

	head := s.inbox[0]
	n := copy(buf, head)
	if n < len(head) {
		s.inbox[0] = head[n:]
	} else {
		s.inbox = s.inbox[1:]
	}
	return n, nil
}

func (s *memSocket) Send(buf []byte) (int, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return 0, syscall.EPIPE
	}
	s.mu.Unlock()

	s.peer.receive(append([]byte(nil), buf...))
	return len(buf), nil
}

func (s *memSocket) CloseSocket() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.peer.mu.Lock()
	s.peer.peerClosed = true
	fn := s.peer.readableFn
	s.peer.mu.Unlock()

	if fn != nil {
		s.hub.post(fn)
	}
	return nil
}

// receive is called from the writing side's goroutine (Send is safe
// to call from any goroutine); it only mutates the inbox and hands
// the readable notification to the hub, never calls into conn
// directly, so every PumpReadable still runs on the hub's single
// goroutine.
func (s *memSocket) receive(b []byte) {
	s.mu.Lock()
	s.inbox = append(s.inbox, b)
	fn := s.readableFn
	s.mu.Unlock()

	if fn != nil {
		s.hub.post(fn)
	}
}
