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

package framing

import (
	"bytes"

	libconn "github.com/nabbar/ngi/conn"
)

// NewLines wraps inner in a newline-delimited framing adapter: each
// complete line, with its trailing '\n' stripped, is delivered as one
// frame. Incomplete trailing data is retained across reads. Writes
// append the newline automatically.
func NewLines(inner libconn.Connection) libconn.Connection {
	return newAdapter(inner, splitLines, encodeLine)
}

func splitLines(buf []byte) (frame []byte, rest []byte, ok bool, err error) {
	i := bytes.IndexByte(buf, '\n')
	if i < 0 {
		return nil, buf, false, nil
	}

	frame = append([]byte(nil), buf[:i]...)
	rest = append([]byte(nil), buf[i+1:]...)
	return frame, rest, true, nil
}

func encodeLine(payload []byte) []byte {
	out := make([]byte, 0, len(payload)+1)
	out = append(out, payload...)
	out = append(out, '\n')
	return out
}
