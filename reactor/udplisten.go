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

package reactor

import (
	"sync"

	"golang.org/x/sys/unix"

	liberr "github.com/nabbar/ngi/errors"
	loglvl "github.com/nabbar/ngi/logger/level"
)

// DatagramHandlerFunc is invoked on the selector goroutine once per
// received datagram.
type DatagramHandlerFunc func(peer string, payload []byte)

// UDPListenConfig configures a UDPListen call.
type UDPListenConfig struct {
	// Address is "host:port" to bind.
	Address string

	// BufferSize bounds the largest datagram this listener accepts;
	// larger ones are silently truncated by the kernel, matching
	// recvfrom's own behaviour.
	BufferSize int
}

const defaultUDPBufferSize = 65507

// UDPListener is the handle returned by UDPListen.
type UDPListener interface {
	Address() string
	Close()
}

type udpListenerEntry struct {
	r    *Reactor
	fd   int
	addr string
	buf  []byte
	h    DatagramHandlerFunc

	m      sync.Mutex
	closed bool
}

// UDPListen binds a UDP socket and delivers each datagram to handler on
// the selector goroutine, tagged with its source address.
func (r *Reactor) UDPListen(cfg UDPListenConfig, handler DatagramHandlerFunc) (UDPListener, liberr.Error) {
	sz := cfg.BufferSize
	if sz <= 0 {
		sz = defaultUDPBufferSize
	}

	a, err := resolveTCP4(cfg.Address)
	if err != nil {
		return nil, ErrorListenFailed.Error(err)
	}

	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_DGRAM, 0)
	if err != nil {
		return nil, ErrorListenFailed.Error(err)
	}

	_ = unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)

	if err = unix.Bind(fd, a); err != nil {
		_ = unix.Close(fd)
		return nil, ErrorListenFailed.Error(err)
	}

	if err = unix.SetNonblock(fd, true); err != nil {
		_ = unix.Close(fd)
		return nil, ErrorListenFailed.Error(err)
	}

	boundSA, serr := unix.Getsockname(fd)
	if serr != nil {
		_ = unix.Close(fd)
		return nil, ErrorListenFailed.Error(serr)
	}

	ue := &udpListenerEntry{
		r:    r,
		fd:   fd,
		addr: sockaddrString(boundSA),
		buf:  make([]byte, sz),
		h:    handler,
	}

	r.m.Lock()
	r.udpListn[fd] = ue
	r.m.Unlock()

	r.ensureStarted()
	_ = r.poll.add(fd)
	r.wake.pulse()

	return ue, nil
}

// udpReceiveOne drains every pending datagram on ue's socket without
// blocking, matching the readable-edge behaviour of the TCP paths.
func (r *Reactor) udpReceiveOne(ue *udpListenerEntry) {
	for {
		n, from, err := unix.Recvfrom(ue.fd, ue.buf, 0)
		if err != nil {
			return
		}

		peer := ""
		if from != nil {
			peer = sockaddrString(from)
		}

		payload := append([]byte(nil), ue.buf[:n]...)
		ue.h(peer, payload)
	}
}

func (ue *udpListenerEntry) Address() string { return ue.addr }

func (ue *udpListenerEntry) Close() {
	ue.m.Lock()
	if ue.closed {
		ue.m.Unlock()
		return
	}
	ue.closed = true
	ue.m.Unlock()

	ue.r.m.Lock()
	delete(ue.r.udpListn, ue.fd)
	ue.r.m.Unlock()

	_ = ue.r.poll.remove(ue.fd)
	_ = unix.Close(ue.fd)
	ue.r.log.Entry(loglvl.InfoLevel, "udp listener stopped").FieldAdd("addr", ue.addr).Log()
}
