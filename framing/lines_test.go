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

package framing_test

import (
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/ngi/conn"
	"github.com/nabbar/ngi/framing"
)

type memSocket struct {
	m     sync.Mutex
	sent  []byte
	inbox [][]byte
	pos   int
}

func (s *memSocket) Read(buf []byte) (int, error) {
	s.m.Lock()
	defer s.m.Unlock()
	if s.pos >= len(s.inbox) {
		return 0, nil
	}
	n := copy(buf, s.inbox[s.pos])
	s.pos++
	return n, nil
}

func (s *memSocket) Send(buf []byte) (int, error) {
	s.m.Lock()
	defer s.m.Unlock()
	s.sent = append(s.sent, buf...)
	return len(buf), nil
}

func (s *memSocket) CloseSocket() error { return nil }

type noopPost struct{}

func (noopPost) Post(fn func()) { fn() }

type recordHandler struct {
	input  [][]byte
	closed []string
}

func (h *recordHandler) HandleInput(c conn.Connection, chunk []byte) {
	// Preserve nil-ness: a nil chunk is the Sized adapter's NULL
	// notification, distinct from a non-nil empty chunk.
	if chunk == nil {
		h.input = append(h.input, nil)
		return
	}
	h.input = append(h.input, append([]byte{}, chunk...))
}

func (h *recordHandler) HandleClose(c conn.Connection, reason string) {
	h.closed = append(h.closed, reason)
}

type pumper interface {
	PumpReadable()
	PumpWritable()
}

var _ = Describe("Lines framing", func() {
	It("delivers one frame per complete line, stripping the newline", func() {
		sock := &memSocket{inbox: [][]byte{[]byte("foo\nbar\nbaz")}}
		c := conn.New(sock, "", noopPost{}, nil)
		c.(pumper).PumpReadable()

		lines := framing.NewLines(c)
		h := &recordHandler{}
		Expect(lines.SetHandler(h)).To(BeNil())

		Expect(h.input).To(HaveLen(2))
		Expect(string(h.input[0])).To(Equal("foo"))
		Expect(string(h.input[1])).To(Equal("bar"))
	})

	It("retains an incomplete trailing line across reads", func() {
		sock := &memSocket{inbox: [][]byte{[]byte("foo\nbar"), []byte("baz\n")}}
		c := conn.New(sock, "", noopPost{}, nil)

		lines := framing.NewLines(c)
		h := &recordHandler{}
		Expect(lines.SetHandler(h)).To(BeNil())

		c.(pumper).PumpReadable()
		c.(pumper).PumpReadable()

		Expect(h.input).To(HaveLen(2))
		Expect(string(h.input[0])).To(Equal("foo"))
		Expect(string(h.input[1])).To(Equal("barbaz"))
	})

	It("appends a newline on write", func() {
		sock := &memSocket{}
		c := conn.New(sock, "", noopPost{}, nil)
		lines := framing.NewLines(c)

		Expect(lines.Write([]byte("hello"))).To(BeNil())
		c.(pumper).PumpWritable()

		Expect(string(sock.sent)).To(Equal("hello\n"))
	})
})
