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

//go:build linux

package reactor

import (
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

// epollPoller is the real selector backing the reactor on Linux: one
// epoll instance per Reactor, level-triggered so a partially drained
// buffer is reported again on the next wait without re-arming.
type epollPoller struct {
	fd int

	m        sync.Mutex
	writable map[int]bool
}

func newPoller() (poller, error) {
	fd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, err
	}

	return &epollPoller{fd: fd, writable: make(map[int]bool)}, nil
}

func (p *epollPoller) eventsFor(fd int) uint32 {
	ev := uint32(unix.EPOLLIN)
	if p.writable[fd] {
		ev |= uint32(unix.EPOLLOUT)
	}
	return ev
}

func (p *epollPoller) add(fd int) error {
	p.m.Lock()
	defer p.m.Unlock()

	p.writable[fd] = false
	return unix.EpollCtl(p.fd, unix.EPOLL_CTL_ADD, fd, &unix.EpollEvent{
		Events: p.eventsFor(fd),
		Fd:     int32(fd),
	})
}

func (p *epollPoller) setWritable(fd int, want bool) error {
	p.m.Lock()
	defer p.m.Unlock()

	if _, ok := p.writable[fd]; !ok {
		return nil
	}

	p.writable[fd] = want
	return unix.EpollCtl(p.fd, unix.EPOLL_CTL_MOD, fd, &unix.EpollEvent{
		Events: p.eventsFor(fd),
		Fd:     int32(fd),
	})
}

func (p *epollPoller) remove(fd int) error {
	p.m.Lock()
	delete(p.writable, fd)
	p.m.Unlock()

	err := unix.EpollCtl(p.fd, unix.EPOLL_CTL_DEL, fd, nil)
	if err == unix.ENOENT || err == unix.EBADF {
		return nil
	}
	return err
}

func (p *epollPoller) wait(timeout time.Duration) ([]event, error) {
	ms := int(timeout / time.Millisecond)
	if timeout <= 0 {
		ms = 0
	}

	raw := make([]unix.EpollEvent, 128)

	n, err := unix.EpollWait(p.fd, raw, ms)
	if err != nil {
		if err == unix.EINTR {
			return nil, nil
		}
		return nil, err
	}

	out := make([]event, 0, n)
	for i := 0; i < n; i++ {
		var flags readiness
		if raw[i].Events&unix.EPOLLIN != 0 {
			flags |= readable
		}
		if raw[i].Events&unix.EPOLLOUT != 0 {
			flags |= writable
		}
		if raw[i].Events&(unix.EPOLLHUP|unix.EPOLLERR) != 0 {
			flags |= readable | writable
		}
		out = append(out, event{fd: int(raw[i].Fd), flags: flags})
	}

	return out, nil
}

func (p *epollPoller) close() error {
	return unix.Close(p.fd)
}
