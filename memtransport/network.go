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
	"fmt"
	"sync"

	libconn "github.com/nabbar/ngi/conn"
)

// ServerHandlerFunc is invoked on the hub goroutine for each connected
// peer, mirroring reactor.ServerHandlerFunc.
type ServerHandlerFunc func(c libconn.Connection)

// ConnectHandler receives the outcome of Connect, mirroring
// reactor.ConnectHandler's two-capability shape without depending on
// the reactor package: a testing transport is an independent
// implementation of the same contract, not a wrapper around it.
type ConnectHandler interface {
	Connected(c libconn.Connection)
	FailedConnect(err error)
}

// Listener is the handle returned by Listen.
type Listener interface {
	Address() string
	Close()
}

// Network is a self-contained address space: Listen registers a
// server handler under an address, Connect dials it without any
// socket, TCP handshake, or OS scheduling involved.
type Network struct {
	hub *hub

	mu  sync.Mutex
	srv map[string]ServerHandlerFunc
	udp map[string]DatagramHandlerFunc
}

// NewNetwork constructs an empty address space with its own hub
// goroutine. Call Close when done to stop it.
func NewNetwork() *Network {
	return &Network{
		hub: newHub(),
		srv: make(map[string]ServerHandlerFunc),
		udp: make(map[string]DatagramHandlerFunc),
	}
}

// Close stops the network's hub goroutine. Outstanding Connections are
// left as-is; nothing further will be delivered to them.
func (n *Network) Close() {
	n.hub.close()
}

type listener struct {
	net  *Network
	addr string
}

func (l *listener) Address() string { return l.addr }

func (l *listener) Close() {
	l.net.mu.Lock()
	delete(l.net.srv, l.addr)
	l.net.mu.Unlock()
}

// Listen registers handler as the server handler for address. Only
// one listener may be registered per address at a time.
func (n *Network) Listen(address string, handler ServerHandlerFunc) (Listener, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if _, exists := n.srv[address]; exists {
		return nil, fmt.Errorf("memtransport: address already in use: %s", address)
	}
	n.srv[address] = handler

	return &listener{net: n, addr: address}, nil
}

// Connect dials address. If no listener is registered there, handler's
// FailedConnect fires synchronously; otherwise a connected pair is
// built and both the client's Connected and the server's handler fire
// on the hub goroutine, preserving the single-thread callback
// ordering guarantee real reactors give.
func (n *Network) Connect(address string, handler ConnectHandler) {
	n.mu.Lock()
	srv, ok := n.srv[address]
	n.mu.Unlock()

	if !ok {
		handler.FailedConnect(fmt.Errorf("memtransport: connection refused: %s", address))
		return
	}

	sa, sb := newPair(n.hub)

	na := &node{hub: n.hub}
	nb := &node{hub: n.hub}

	ca := libconn.New(sa, "client", na, nil)
	cb := libconn.New(sb, address, nb, nil)

	na.conn = ca.(pumpable)
	nb.conn = cb.(pumpable)

	sa.readableFn = func() { ca.(pumpable).PumpReadable() }
	sb.readableFn = func() { cb.(pumpable).PumpReadable() }

	n.hub.post(func() {
		handler.Connected(ca)
		srv(cb)
	})
}
