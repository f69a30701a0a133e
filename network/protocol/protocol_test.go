/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

package protocol_test

import (
	"reflect"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	libptc "github.com/nabbar/ngi/network/protocol"
)

var _ = Describe("NetworkProtocol", func() {
	It("parses every known name case-insensitively", func() {
		Expect(libptc.Parse("TCP")).To(Equal(libptc.NetworkTCP))
		Expect(libptc.Parse(" unix ")).To(Equal(libptc.NetworkUnix))
		Expect(libptc.Parse("udp6")).To(Equal(libptc.NetworkUDP6))
	})

	It("returns NetworkEmpty for an unknown name", func() {
		Expect(libptc.Parse("sctp")).To(Equal(libptc.NetworkEmpty))
	})

	It("round-trips through String", func() {
		Expect(libptc.NetworkTCP.String()).To(Equal("tcp"))
		Expect(libptc.Parse(libptc.NetworkTCP.String())).To(Equal(libptc.NetworkTCP))
	})

	It("classifies stream vs datagram protocols", func() {
		Expect(libptc.NetworkTCP.IsStream()).To(BeTrue())
		Expect(libptc.NetworkUnix.IsStream()).To(BeTrue())
		Expect(libptc.NetworkUDP.IsDatagram()).To(BeTrue())
		Expect(libptc.NetworkUnixGram.IsDatagram()).To(BeTrue())
		Expect(libptc.NetworkTCP.IsDatagram()).To(BeFalse())
	})

	It("identifies the unix address families", func() {
		Expect(libptc.NetworkUnix.IsUnix()).To(BeTrue())
		Expect(libptc.NetworkUnixGram.IsUnix()).To(BeTrue())
		Expect(libptc.NetworkTCP.IsUnix()).To(BeFalse())
	})

	It("round-trips through JSON", func() {
		b, err := libptc.NetworkTCP.MarshalJSON()
		Expect(err).To(BeNil())

		var p libptc.NetworkProtocol
		Expect(p.UnmarshalJSON(b)).To(BeNil())
		Expect(p).To(Equal(libptc.NetworkTCP))
	})

	It("round-trips through YAML", func() {
		v, err := libptc.NetworkUDP.MarshalYAML()
		Expect(err).To(BeNil())

		var p libptc.NetworkProtocol
		Expect(p.UnmarshalYAML(func(out interface{}) error {
			reflect.ValueOf(out).Elem().Set(reflect.ValueOf(v))
			return nil
		})).To(BeNil())
		Expect(p).To(Equal(libptc.NetworkUDP))
	})

	Describe("ViperDecoderHook", func() {
		It("parses a string into a NetworkProtocol", func() {
			hook := libptc.ViperDecoderHook()
			out, err := hook(reflect.TypeOf(""), reflect.TypeOf(libptc.NetworkEmpty), "tcp")
			Expect(err).To(BeNil())
			Expect(out).To(Equal(libptc.NetworkTCP))
		})

		It("parses an integer into a NetworkProtocol", func() {
			hook := libptc.ViperDecoderHook()
			out, err := hook(reflect.TypeOf(0), reflect.TypeOf(libptc.NetworkEmpty), int(libptc.NetworkUDP))
			Expect(err).To(BeNil())
			Expect(out).To(Equal(libptc.NetworkUDP))
		})

		It("passes through data for an unrelated target type", func() {
			hook := libptc.ViperDecoderHook()
			out, err := hook(reflect.TypeOf(""), reflect.TypeOf(0), "unchanged")
			Expect(err).To(BeNil())
			Expect(out).To(Equal("unchanged"))
		})
	})
})
