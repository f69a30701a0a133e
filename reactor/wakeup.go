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
	"sync/atomic"

	"golang.org/x/sys/unix"
)

// wakeup is the self-pipe: any goroutine may call pulse to unblock the
// selector goroutine currently parked in poller.wait. Go has no
// portable "selectable pipe" gap like Python once had on Windows, so
// this is unconditionally a pipe(2) pair, registered for read
// readiness like any other fd.
type wakeup struct {
	r, w int32

	pending int32 // atomic flag: a pulse is already in flight
}

func newWakeup() (*wakeup, error) {
	fds := make([]int, 2)
	if err := unix.Pipe2(fds, unix.O_NONBLOCK|unix.O_CLOEXEC); err != nil {
		return nil, err
	}

	return &wakeup{r: int32(fds[0]), w: int32(fds[1])}, nil
}

func (w *wakeup) readFd() int { return int(w.r) }

// pulse is thread-safe and idempotent: concurrent pulses coalesce
// into at most one additional wakeup, since writes only happen while
// no pulse is already pending.
func (w *wakeup) pulse() {
	if !atomic.CompareAndSwapInt32(&w.pending, 0, 1) {
		return
	}

	var b [1]byte
	_, _ = unix.Write(int(w.w), b[:])
}

// drain is called by the selector goroutine after a readiness event
// on the wakeup's read end, to empty the pipe and re-arm pulse.
func (w *wakeup) drain() {
	var b [64]byte
	for {
		n, err := unix.Read(int(w.r), b[:])
		if n <= 0 || err != nil {
			break
		}
	}
	atomic.StoreInt32(&w.pending, 0)
}

// close releases both pipe ends. Only ever called from the selector
// goroutine during teardown.
func (w *wakeup) close() error {
	_ = unix.Close(int(w.r))
	return unix.Close(int(w.w))
}
