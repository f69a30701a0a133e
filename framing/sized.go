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
	"encoding/binary"

	libconn "github.com/nabbar/ngi/conn"
)

// NullMarker is the reserved length-prefix value denoting a
// zero-payload NULL message rather than len||payload.
const NullMarker uint32 = 0xFFFFFFFF

// MaxFrameSize bounds an accepted declared length; a Sized peer that
// declares more is an exception, not an unbounded allocation.
const MaxFrameSize = 16 * 1024 * 1024

const sizedHeaderLen = 4

// NewSized wraps inner in a length-prefixed framing adapter: each
// frame is a 4-byte big-endian length followed by that many payload
// bytes, or the bare NullMarker length for a zero-payload message.
func NewSized(inner libconn.Connection) libconn.Connection {
	return newAdapter(inner, splitSized, encodeSized)
}

func splitSized(buf []byte) (frame []byte, rest []byte, ok bool, err error) {
	if len(buf) < sizedHeaderLen {
		return nil, buf, false, nil
	}

	n := binary.BigEndian.Uint32(buf[:sizedHeaderLen])

	if n == NullMarker {
		return nil, buf[sizedHeaderLen:], true, nil
	}

	if n > MaxFrameSize {
		return nil, buf, false, ErrorFrameTooLarge.Error()
	}

	total := sizedHeaderLen + int(n)
	if len(buf) < total {
		return nil, buf, false, nil
	}

	// A zero-length data frame is a distinct wire value from the NULL
	// marker (spec: b"" round-trips, it is not a NULL notification), so
	// its payload must stay a non-nil empty slice rather than collapse
	// to nil the way append([]byte(nil), emptyRange...) would.
	if n == 0 {
		frame = []byte{}
	} else {
		frame = append([]byte(nil), buf[sizedHeaderLen:total]...)
	}
	rest = append([]byte(nil), buf[total:]...)
	return frame, rest, true, nil
}

// encodeSized renders payload as len||payload, or the bare NullMarker
// header when payload is nil (NewSized's callers write nil to emit a
// NULL message).
func encodeSized(payload []byte) []byte {
	if payload == nil {
		out := make([]byte, sizedHeaderLen)
		binary.BigEndian.PutUint32(out, NullMarker)
		return out
	}

	out := make([]byte, sizedHeaderLen+len(payload))
	binary.BigEndian.PutUint32(out, uint32(len(payload)))
	copy(out[sizedHeaderLen:], payload)
	return out
}
