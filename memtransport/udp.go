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

import "fmt"

// DatagramHandlerFunc is invoked on the hub goroutine once per
// delivered datagram, mirroring reactor.DatagramHandlerFunc.
type DatagramHandlerFunc func(peer string, payload []byte)

// UDPListen registers handler as the datagram handler for address in
// this network's handler table.
func (n *Network) UDPListen(address string, handler DatagramHandlerFunc) (Listener, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if _, exists := n.udp[address]; exists {
		return nil, fmt.Errorf("memtransport: address already in use: %s", address)
	}
	n.udp[address] = handler

	return &udpListener{net: n, addr: address}, nil
}

// UDPSend delivers payload to whatever handler is registered at to,
// tagging it with from as the source address. Silently drops the
// datagram if nothing is listening at to, matching UDP's own
// no-delivery-guarantee contract.
func (n *Network) UDPSend(from, to string, payload []byte) {
	n.mu.Lock()
	h, ok := n.udp[to]
	n.mu.Unlock()

	if !ok {
		return
	}

	cp := append([]byte(nil), payload...)
	n.hub.post(func() { h(from, cp) })
}

type udpListener struct {
	net  *Network
	addr string
}

func (l *udpListener) Address() string { return l.addr }

func (l *udpListener) Close() {
	l.net.mu.Lock()
	delete(l.net.udp, l.addr)
	l.net.mu.Unlock()
}
