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

package conn_test

import (
	"errors"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/ngi/conn"
)

// memSocket is an in-memory rawSocket double: bytes written with Send
// are appended to sent; Read drains a preloaded inbox.
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

type recordHandler struct {
	input  [][]byte
	closed []string
}

func (h *recordHandler) HandleInput(c conn.Connection, chunk []byte) {
	h.input = append(h.input, append([]byte(nil), chunk...))
}

func (h *recordHandler) HandleClose(c conn.Connection, reason string) {
	h.closed = append(h.closed, reason)
}

// exceptionHandler additionally advertises the ExceptionHandler
// capability, so deliverException routes to HandleException instead
// of dropping the error.
type exceptionHandler struct {
	recordHandler
	exceptions []string
}

func (h *exceptionHandler) HandleException(c conn.Connection, err error) {
	h.exceptions = append(h.exceptions, err.Error())
}

type noopPost struct{}

func (noopPost) Post(fn func()) { fn() }

var _ = Describe("Connection", func() {
	It("writes b1 then b2 to the peer in append order", func() {
		sock := &memSocket{}
		c := conn.New(sock, "127.0.0.1:9", noopPost{}, nil)

		h := &recordHandler{}
		Expect(c.SetHandler(h)).To(BeNil())

		Expect(c.Write([]byte("a"))).To(BeNil())
		Expect(c.Write([]byte("b"))).To(BeNil())
		c.Close()

		// drain via the reactor-only pump, exercised directly since
		// this package has no reactor wired in yet.
		type pumper interface {
			PumpWritable()
		}
		c.(pumper).PumpWritable()

		Expect(string(sock.sent)).To(Equal("ab"))
		Expect(h.closed).To(ContainElement("local close"))
	})

	It("fails SetHandler on a second call", func() {
		c := conn.New(&memSocket{}, "", noopPost{}, nil)

		Expect(c.SetHandler(&recordHandler{})).To(BeNil())
		Expect(c.SetHandler(&recordHandler{})).ToNot(BeNil())
	})

	It("rejects Write after Close", func() {
		c := conn.New(&memSocket{}, "", noopPost{}, nil)
		c.Close()

		Expect(c.Write([]byte("x"))).ToNot(BeNil())
	})

	It("replays buffered input once a handler is bound", func() {
		sock := &memSocket{inbox: [][]byte{[]byte("hello")}}
		c := conn.New(sock, "", noopPost{}, nil)

		type pumper interface{ PumpReadable() }
		c.(pumper).PumpReadable()

		h := &recordHandler{}
		Expect(c.SetHandler(h)).To(BeNil())

		Expect(h.input).To(HaveLen(1))
		Expect(string(h.input[0])).To(Equal("hello"))
	})

	It("drains a Writelines producer in append order", func() {
		sock := &memSocket{}
		c := conn.New(sock, "127.0.0.1:9", noopPost{}, nil)
		Expect(c.SetHandler(&recordHandler{})).To(BeNil())

		items := [][]byte{[]byte("a"), []byte("b")}
		i := 0
		Expect(c.Writelines(func() ([]byte, bool, error) {
			if i >= len(items) {
				return nil, false, nil
			}
			b := items[i]
			i++
			return b, true, nil
		})).To(BeNil())
		c.Close()

		type pumper interface{ PumpWritable() }
		c.(pumper).PumpWritable()

		Expect(string(sock.sent)).To(Equal("ab"))
	})

	It("closes the connection after a Writelines producer error, handler with ExceptionHandler capability", func() {
		sock := &memSocket{}
		c := conn.New(sock, "127.0.0.1:9", noopPost{}, nil)

		h := &exceptionHandler{}
		Expect(c.SetHandler(h)).To(BeNil())

		Expect(c.Writelines(func() ([]byte, bool, error) {
			return nil, false, errors.New("boom")
		})).To(BeNil())

		type pumper interface{ PumpWritable() }
		c.(pumper).PumpWritable()

		Expect(h.exceptions).To(ContainElement("boom"))
		Expect(h.closed).To(ContainElement("boom"))
	})

	It("closes the connection after a Writelines producer error, handler without ExceptionHandler capability", func() {
		sock := &memSocket{}
		c := conn.New(sock, "127.0.0.1:9", noopPost{}, nil)

		h := &recordHandler{}
		Expect(c.SetHandler(h)).To(BeNil())

		Expect(c.Writelines(func() ([]byte, bool, error) {
			return nil, false, errors.New("boom")
		})).To(BeNil())

		type pumper interface{ PumpWritable() }
		c.(pumper).PumpWritable()

		Expect(h.closed).To(ContainElement("boom"))
	})
})
