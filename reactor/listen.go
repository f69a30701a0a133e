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
	"os"
	"sync"

	"golang.org/x/sys/unix"

	liberr "github.com/nabbar/ngi/errors"
	loglvl "github.com/nabbar/ngi/logger/level"

	libconn "github.com/nabbar/ngi/conn"
	libproto "github.com/nabbar/ngi/network/protocol"
)

// ServerHandlerFunc is invoked on the selector goroutine for each
// accepted connection. If it panics, the Listener that produced the
// connection is closed.
type ServerHandlerFunc func(c libconn.Connection)

// ListenConfig configures a Listen call.
type ListenConfig struct {
	// Protocol selects the address family: NetworkTCP, NetworkTCP4,
	// NetworkTCP6 or NetworkUnix.
	Protocol libproto.NetworkProtocol

	// Address is "host:port" for TCP, or a filesystem path for unix.
	// Port 0 binds an OS-assigned port; Listener.Address reflects it
	// after bind.
	Address string

	// PerClientThread hands each accepted connection to a fresh,
	// private Reactor instead of this one, so a CPU-heavy handler
	// cannot monopolise the shared selector thread. Grounded on the
	// original's Acceptor.handle_accept behaviour (see SPEC_FULL.md).
	PerClientThread bool
}

// Listener is the handle returned by Listen: it tracks this
// listener's live children and supports graceful shutdown.
type Listener interface {
	// Address is the bound local address; for port 0 binds, this is
	// updated to the OS-assigned port once Listen returns.
	Address() string

	// Connections returns a snapshot of currently open children.
	Connections() []libconn.Connection

	// Close stops accepting. If handler is nil, the listener and all
	// of its children are closed immediately ("stopped" reason). If
	// handler is non-nil, existing children are kept and handler is
	// invoked once the last of them closes.
	Close(handler func(Listener))
}

type listenerEntry struct {
	r    *Reactor
	fd   int
	addr string
	cfg  ListenConfig
	srv  ServerHandlerFunc

	m          sync.Mutex
	children   map[int]libconn.Connection
	closing    bool
	closeHook  func(Listener)
	unixSocket string
}

// Listen binds addr, registers a Listener with r, and returns it. The
// accept loop runs on r's selector goroutine, calling cfg's server
// handler for each accepted connection.
func (r *Reactor) Listen(cfg ListenConfig, srv ServerHandlerFunc) (Listener, liberr.Error) {
	fd, addr, path, err := bindListen(cfg)
	if err != nil {
		return nil, ErrorListenFailed.Error(err)
	}

	le := &listenerEntry{
		r:          r,
		fd:         fd,
		addr:       addr,
		cfg:        cfg,
		srv:        srv,
		children:   make(map[int]libconn.Connection),
		unixSocket: path,
	}

	r.m.Lock()
	r.listens[fd] = le
	r.m.Unlock()

	r.ensureStarted()
	_ = r.poll.add(fd)
	r.wake.pulse()

	return le, nil
}

func bindListen(cfg ListenConfig) (fd int, addr string, unixPath string, err error) {
	var (
		domain int
		sa     unix.Sockaddr
	)

	switch cfg.Protocol {
	case libproto.NetworkUnix:
		domain = unix.AF_UNIX
		sa = &unix.SockaddrUnix{Name: cfg.Address}
		unixPath = cfg.Address
	default:
		domain = unix.AF_INET
		a, perr := resolveTCP4(cfg.Address)
		if perr != nil {
			return 0, "", "", perr
		}
		sa = a
	}

	fd, err = unix.Socket(domain, unix.SOCK_STREAM, 0)
	if err != nil {
		return 0, "", "", err
	}

	_ = unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)

	if err = unix.Bind(fd, sa); err != nil {
		_ = unix.Close(fd)
		return 0, "", "", err
	}

	if err = unix.Listen(fd, 1024); err != nil {
		_ = unix.Close(fd)
		return 0, "", "", err
	}

	if err = unix.SetNonblock(fd, true); err != nil {
		_ = unix.Close(fd)
		return 0, "", "", err
	}

	if cfg.Protocol == libproto.NetworkUnix {
		return fd, cfg.Address, unixPath, nil
	}

	boundSA, serr := unix.Getsockname(fd)
	if serr != nil {
		_ = unix.Close(fd)
		return 0, "", "", serr
	}

	addr = sockaddrString(boundSA)
	return fd, addr, "", nil
}

func (r *Reactor) acceptOne(le *listenerEntry) {
	for {
		nfd, _, err := unix.Accept(le.fd)
		if err != nil {
			return
		}

		if err = unix.SetNonblock(nfd, true); err != nil {
			_ = unix.Close(nfd)
			continue
		}

		peerSA, _ := unix.Getpeername(nfd)
		peer := sockaddrString(peerSA)

		cr := r
		if le.cfg.PerClientThread {
			cr = New(r.log)
			cr.ensureStarted()
		}

		c := libconn.New(&fdSocket{fd: nfd}, peer, cr, cr.log)

		le.m.Lock()
		le.children[nfd] = c
		le.m.Unlock()

		cr.registerConn(nfd, c, le)

		func() {
			defer func() {
				if rec := recover(); rec != nil {
					r.handleError(rec)
					le.Close(nil)
				}
			}()
			le.srv(c)
		}()
	}
}

func (le *listenerEntry) Address() string { return le.addr }

func (le *listenerEntry) Connections() []libconn.Connection {
	le.m.Lock()
	defer le.m.Unlock()

	out := make([]libconn.Connection, 0, len(le.children))
	for _, c := range le.children {
		out = append(out, c)
	}
	return out
}

func (le *listenerEntry) Close(handler func(Listener)) {
	le.m.Lock()
	if le.closing {
		le.m.Unlock()
		return
	}
	le.closing = true
	closeHandler := handler
	children := make([]libconn.Connection, 0, len(le.children))
	for _, c := range le.children {
		children = append(children, c)
	}
	le.m.Unlock()

	le.r.m.Lock()
	delete(le.r.listens, le.fd)
	le.r.m.Unlock()
	_ = le.r.poll.remove(le.fd)
	_ = unix.Close(le.fd)

	if le.unixSocket != "" {
		_ = os.Remove(le.unixSocket)
	}

	if closeHandler == nil {
		for _, c := range children {
			c.Close()
		}
		le.r.log.Entry(loglvl.InfoLevel, "listener stopped").FieldAdd("addr", le.addr).Log()
		return
	}

	le.m.Lock()
	le.closeHook = closeHandler
	hasChildren := len(le.children) > 0
	le.m.Unlock()

	if !hasChildren {
		closeHandler(le)
	}
}

// childClosed is called by the reactor when one of this listener's
// accepted connections reaches its closed state.
func (le *listenerEntry) childClosed(fd int) {
	le.m.Lock()
	delete(le.children, fd)
	hook := le.closeHook
	empty := len(le.children) == 0
	le.m.Unlock()

	if hook != nil && empty {
		hook(le)
	}
}
