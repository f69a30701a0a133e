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

package config_test

import (
	libptc "github.com/nabbar/ngi/network/protocol"
	"github.com/nabbar/ngi/socket/config"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Client", func() {
	It("has no protocol selected and no address in its zero value", func() {
		var c config.Client
		Expect(c.Network).To(Equal(libptc.NetworkProtocol(0)))
		Expect(c.Address).To(BeEmpty())
	})

	It("rejects the zero-value protocol", func() {
		c := config.Client{Network: libptc.NetworkProtocol(0), Address: "localhost:8080"}
		Expect(c.Validate()).To(MatchError(config.ErrInvalidProtocol))
	})

	DescribeTable("validates a well-formed host:port address",
		func(proto libptc.NetworkProtocol, addr string) {
			c := config.Client{Network: proto, Address: addr}
			Expect(c.Validate()).To(BeNil())
		},
		Entry("tcp", libptc.NetworkTCP, "localhost:8080"),
		Entry("tcp4", libptc.NetworkTCP4, "127.0.0.1:8080"),
		Entry("tcp6", libptc.NetworkTCP6, "[::1]:8080"),
		Entry("udp", libptc.NetworkUDP, "localhost:9000"),
	)

	It("rejects a TCP address missing a port", func() {
		c := config.Client{Network: libptc.NetworkTCP, Address: "invalid-address"}
		Expect(c.Validate()).To(MatchError(config.ErrInvalidAddress))
	})

	It("accepts any non-empty path for a unix client", func() {
		c := config.Client{Network: libptc.NetworkUnix, Address: "/tmp/test.sock"}
		Expect(c.Validate()).To(BeNil())
	})
})

var _ = Describe("Server", func() {
	It("has no protocol selected, no address and group 0 in its zero value", func() {
		var s config.Server
		Expect(s.Network).To(Equal(libptc.NetworkProtocol(0)))
		Expect(s.Address).To(BeEmpty())
		Expect(s.GroupPerm).To(Equal(int32(0)))
	})

	It("rejects the zero-value protocol", func() {
		s := config.Server{Network: libptc.NetworkProtocol(0), Address: ":8080"}
		Expect(s.Validate()).To(MatchError(config.ErrInvalidProtocol))
	})

	It("accepts a group id up to MaxGID", func() {
		s := config.Server{Network: libptc.NetworkUnix, Address: "/tmp/test.sock", GroupPerm: config.MaxGID}
		Expect(s.Validate()).To(BeNil())
	})

	It("rejects a group id above MaxGID", func() {
		s := config.Server{Network: libptc.NetworkUnix, Address: "/tmp/test.sock", GroupPerm: config.MaxGID + 1}
		Expect(s.Validate()).To(MatchError(config.ErrInvalidGroup))
	})
})
