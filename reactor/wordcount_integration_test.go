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

package reactor_test

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	libconn "github.com/nabbar/ngi/conn"
	liberr "github.com/nabbar/ngi/errors"
	liblog "github.com/nabbar/ngi/logger"
	libproto "github.com/nabbar/ngi/network/protocol"
	"github.com/nabbar/ngi/reactor"
)

// wordCountHandler buffers input across reads and, for each complete
// NUL-delimited message, replies with "<lines> <words> <chars>\n".
// "Q" replies "Q\n" and closes; "C" closes without a reply. Grounded
// on the original zc.ngi.wordcount.Server.handle_input.
type wordCountHandler struct {
	input []byte
}

func (w *wordCountHandler) HandleInput(c libconn.Connection, chunk []byte) {
	w.input = append(w.input, chunk...)

	for {
		idx := bytes.IndexByte(w.input, 0)
		if idx < 0 {
			return
		}

		data := append([]byte(nil), w.input[:idx]...)
		w.input = w.input[idx+1:]

		switch string(data) {
		case "Q":
			_ = c.Write([]byte("Q\n"))
			c.Close()
			return
		case "C":
			c.Close()
			return
		default:
			lines := bytes.Count(data, []byte("\n"))
			words := len(strings.Fields(string(data)))
			_ = c.Write([]byte(fmt.Sprintf("%d %d %d\n", lines, words, len(data))))
		}
	}
}

type connectWaiter struct {
	mu sync.Mutex
	c  libconn.Connection
}

func (w *connectWaiter) Connected(c libconn.Connection) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.c = c
}

func (w *connectWaiter) FailedConnect(err liberr.Error) {}

func (w *connectWaiter) get() libconn.Connection {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.c
}

// lineCapture splits accumulated chunks on '\n', the delimiter every
// word-count reply is terminated with.
type lineCapture struct {
	mu    sync.Mutex
	buf   []byte
	lines []string
}

func (c *lineCapture) HandleInput(_ libconn.Connection, chunk []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.buf = append(c.buf, chunk...)
	for {
		idx := bytes.IndexByte(c.buf, '\n')
		if idx < 0 {
			return
		}
		c.lines = append(c.lines, string(c.buf[:idx]))
		c.buf = c.buf[idx+1:]
	}
}

func (c *lineCapture) snapshot() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.lines...)
}

// sampleDocs mirrors zc.ngi.wordcount.sample_docs.
var sampleDocs = []string{
	"Hello world\n",
	"I give my pledge as an earthling\n" +
		"to save and faithfully to defend from waste\n" +
		"the natural resources of my planet\n" +
		"its soils, minerals, forests, waters and wildlife.\n",
	"On my honor, I will do my best\n" +
		"to do my duty to God and my country\n" +
		"and to obey the Scout Law\n" +
		"to always help others\n" +
		"to keep myself physically strong, mentally awake, and morally straight.\n",
	"What we have here, is a failure to communicate.\n",
}

func wordCountReply(doc string) string {
	lines := strings.Count(doc, "\n")
	words := len(strings.Fields(doc))
	return fmt.Sprintf("%d %d %d", lines, words, len(doc))
}

var _ = Describe("Reactor over real TCP loopback", func() {
	It("reports the true line count for a NUL-delimited multi-line document, then closes on Q", func() {
		log := liblog.New(context.Background())
		r := reactor.New(log)

		l, lerr := r.Listen(reactor.ListenConfig{
			Protocol: libproto.NetworkTCP,
			Address:  "127.0.0.1:0",
		}, func(c libconn.Connection) {
			_ = c.SetHandler(&wordCountHandler{})
		})
		Expect(lerr).To(BeNil())
		defer l.Close(nil)

		waiter := &connectWaiter{}
		cerr := r.Connect(reactor.ListenConfig{
			Protocol: libproto.NetworkTCP,
			Address:  l.Address(),
		}, waiter)
		Expect(cerr).To(BeNil())

		Eventually(waiter.get).ShouldNot(BeNil())

		replies := &lineCapture{}
		Expect(waiter.get().SetHandler(replies)).To(BeNil())

		doc := sampleDocs[1]
		Expect(waiter.get().Write(append([]byte(doc), 0))).To(BeNil())

		Eventually(replies.snapshot).Should(HaveLen(1))
		Expect(replies.snapshot()[0]).To(Equal(wordCountReply(doc)))

		Expect(waiter.get().Write([]byte("Q\x00"))).To(BeNil())
		Eventually(replies.snapshot).Should(HaveLen(2))
		Expect(replies.snapshot()[1]).To(Equal("Q"))
	})

	It("serves many concurrent clients each sending the sample documents", func() {
		log := liblog.New(context.Background())
		r := reactor.New(log)

		l, lerr := r.Listen(reactor.ListenConfig{
			Protocol: libproto.NetworkTCP,
			Address:  "127.0.0.1:0",
		}, func(c libconn.Connection) {
			_ = c.SetHandler(&wordCountHandler{})
		})
		Expect(lerr).To(BeNil())
		defer l.Close(nil)

		const clients = 50

		var wg sync.WaitGroup
		wg.Add(clients)

		for i := 0; i < clients; i++ {
			go func() {
				defer wg.Done()
				defer GinkgoRecover()

				waiter := &connectWaiter{}
				cerr := r.Connect(reactor.ListenConfig{
					Protocol: libproto.NetworkTCP,
					Address:  l.Address(),
				}, waiter)
				Expect(cerr).To(BeNil())
				Eventually(waiter.get).ShouldNot(BeNil())

				replies := &lineCapture{}
				Expect(waiter.get().SetHandler(replies)).To(BeNil())

				for _, doc := range sampleDocs {
					Expect(waiter.get().Write(append([]byte(doc), 0))).To(BeNil())
				}
				Expect(waiter.get().Write([]byte("Q\x00"))).To(BeNil())

				Eventually(replies.snapshot).Should(HaveLen(len(sampleDocs) + 1))

				got := replies.snapshot()
				for i, doc := range sampleDocs {
					Expect(got[i]).To(Equal(wordCountReply(doc)))
				}
				Expect(got[len(sampleDocs)]).To(Equal("Q"))
			}()
		}

		wg.Wait()
	})
})
