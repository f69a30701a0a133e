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
	"syscall"

	"golang.org/x/sys/unix"
)

// fdSocket adapts a raw non-blocking file descriptor to the rawSocket
// surface conn.Connection drives. Errno values from golang.org/x/sys/unix
// are normalized to syscall.Errno so conn's transient-error classifier
// (errors.Is against syscall.EAGAIN and friends) recognizes them.
type fdSocket struct {
	fd int
}

func normalizeErrno(err error) error {
	if e, ok := err.(unix.Errno); ok {
		return syscall.Errno(e)
	}
	return err
}

func (s *fdSocket) Read(buf []byte) (int, error) {
	n, err := unix.Read(s.fd, buf)
	if err != nil {
		return 0, normalizeErrno(err)
	}
	return n, nil
}

func (s *fdSocket) Send(buf []byte) (int, error) {
	n, err := unix.Write(s.fd, buf)
	if err != nil {
		return 0, normalizeErrno(err)
	}
	return n, nil
}

func (s *fdSocket) CloseSocket() error {
	return unix.Close(s.fd)
}
