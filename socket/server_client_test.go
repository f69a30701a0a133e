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

package socket_test

import (
	"context"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	liblog "github.com/nabbar/ngi/logger"
	libproto "github.com/nabbar/ngi/network/protocol"
	"github.com/nabbar/ngi/reactor"
	"github.com/nabbar/ngi/socket"
	socketcfg "github.com/nabbar/ngi/socket/config"
)

// echoHandler is a socket.Handler that records every lifecycle
// callback it sees and, when echo is set, writes back whatever it
// reads.
type echoHandler struct {
	mu     sync.Mutex
	echo   bool
	opened bool
	ctx    socket.Context
	input  [][]byte
	closed string
	errs   []error
}

func (h *echoHandler) OnOpen(ctx socket.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.opened = true
	h.ctx = ctx
}

func (h *echoHandler) OnInput(ctx socket.Context, chunk []byte) {
	h.mu.Lock()
	h.input = append(h.input, append([]byte(nil), chunk...))
	echo := h.echo
	h.mu.Unlock()
	if echo {
		_ = ctx.Connection().Write(chunk)
	}
}

func (h *echoHandler) OnClose(_ socket.Context, reason string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = reason
}

func (h *echoHandler) OnError(_ socket.Context, err error) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errs = append(h.errs, err)
	return false
}

func (h *echoHandler) snapshotInput() [][]byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([][]byte(nil), h.input...)
}

func (h *echoHandler) isOpen() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.opened
}

func (h *echoHandler) connection() socket.Context {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.ctx
}

var _ = Describe("Server and Dial", func() {
	It("echoes a write back to the dialing client over TCP loopback", func() {
		r := reactor.New(liblog.New(context.Background()))

		srvHandler := &echoHandler{echo: true}
		srv, err := socket.NewServer(r, socketcfg.Server{
			Network: libproto.NetworkTCP,
			Address: "127.0.0.1:0",
		}, srvHandler, nil)
		Expect(err).To(BeNil())
		defer srv.Close()

		cliHandler := &echoHandler{}
		cli, err := socket.Dial(r, socketcfg.Client{
			Network: libproto.NetworkTCP,
			Address: srv.Address(),
		}, cliHandler, nil)
		Expect(err).To(BeNil())
		defer cli.Close()

		Eventually(cliHandler.isOpen).Should(BeTrue())
		Eventually(srvHandler.isOpen).Should(BeTrue())

		Expect(cliHandler.connection().Connection().Write([]byte("ping"))).To(BeNil())

		Eventually(srvHandler.snapshotInput).Should(HaveLen(1))
		Expect(string(srvHandler.snapshotInput()[0])).To(Equal("ping"))

		Eventually(cliHandler.snapshotInput).Should(HaveLen(1))
		Expect(string(cliHandler.snapshotInput()[0])).To(Equal("ping"))
	})
})
