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

package framing_test

import (
	"encoding/binary"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/ngi/conn"
	"github.com/nabbar/ngi/framing"
)

func sizedFrame(payload string) []byte {
	out := make([]byte, 4+len(payload))
	binary.BigEndian.PutUint32(out, uint32(len(payload)))
	copy(out[4:], payload)
	return out
}

var _ = Describe("Sized framing", func() {
	It("delivers a frame once its full length has arrived", func() {
		whole := append(sizedFrame("hi"), sizedFrame("there")...)
		sock := &memSocket{inbox: [][]byte{whole}}
		c := conn.New(sock, "", noopPost{}, nil)
		c.(pumper).PumpReadable()

		sized := framing.NewSized(c)
		h := &recordHandler{}
		Expect(sized.SetHandler(h)).To(BeNil())

		Expect(h.input).To(HaveLen(2))
		Expect(string(h.input[0])).To(Equal("hi"))
		Expect(string(h.input[1])).To(Equal("there"))
	})

	It("accumulates a frame split across multiple reads", func() {
		frame := sizedFrame("hello world")
		sock := &memSocket{inbox: [][]byte{frame[:3], frame[3:]}}
		c := conn.New(sock, "", noopPost{}, nil)

		sized := framing.NewSized(c)
		h := &recordHandler{}
		Expect(sized.SetHandler(h)).To(BeNil())

		c.(pumper).PumpReadable()
		Expect(h.input).To(BeEmpty())

		c.(pumper).PumpReadable()
		Expect(h.input).To(HaveLen(1))
		Expect(string(h.input[0])).To(Equal("hello world"))
	})

	It("delivers the NULL marker as a zero-payload frame", func() {
		null := make([]byte, 4)
		binary.BigEndian.PutUint32(null, framing.NullMarker)

		sock := &memSocket{inbox: [][]byte{null}}
		c := conn.New(sock, "", noopPost{}, nil)
		c.(pumper).PumpReadable()

		sized := framing.NewSized(c)
		h := &recordHandler{}
		Expect(sized.SetHandler(h)).To(BeNil())

		Expect(h.input).To(HaveLen(1))
		Expect(h.input[0]).To(BeEmpty())
	})

	It("distinguishes a zero-length message from a NULL marker", func() {
		null := make([]byte, 4)
		binary.BigEndian.PutUint32(null, framing.NullMarker)
		empty := sizedFrame("")

		sock := &memSocket{inbox: [][]byte{append(append([]byte{}, empty...), null...)}}
		c := conn.New(sock, "", noopPost{}, nil)
		c.(pumper).PumpReadable()

		sized := framing.NewSized(c)
		h := &recordHandler{}
		Expect(sized.SetHandler(h)).To(BeNil())

		Expect(h.input).To(HaveLen(2))
		Expect(h.input[0]).NotTo(BeNil())
		Expect(h.input[0]).To(BeEmpty())
		Expect(h.input[1]).To(BeNil())
	})

	It("serialises writes as len||payload", func() {
		sock := &memSocket{}
		c := conn.New(sock, "", noopPost{}, nil)
		sized := framing.NewSized(c)

		Expect(sized.Write([]byte("abc"))).To(BeNil())
		c.(pumper).PumpWritable()

		Expect(sock.sent).To(Equal(sizedFrame("abc")))
	})
})
