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

package cache_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	libcache "github.com/nabbar/ngi/cache"
)

var _ = Describe("Cache", func() {
	It("stores and loads a value", func() {
		c := libcache.New[string, int](context.Background(), 0)
		defer c.Close()

		c.Store("a", 1)
		v, _, ok := c.Load("a")
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(1))
	})

	It("reports a miss for an absent key", func() {
		c := libcache.New[string, int](context.Background(), 0)
		defer c.Close()

		_, _, ok := c.Load("missing")
		Expect(ok).To(BeFalse())
	})

	It("never expires entries when ttl is zero", func() {
		c := libcache.New[string, int](context.Background(), 0)
		defer c.Close()

		c.Store("a", 1)
		time.Sleep(20 * time.Millisecond)

		_, remain, ok := c.Load("a")
		Expect(ok).To(BeTrue())
		Expect(remain).To(Equal(time.Duration(0)))
	})

	It("expires an entry once its ttl elapses", func() {
		c := libcache.New[string, int](context.Background(), 15*time.Millisecond)
		defer c.Close()

		c.Store("a", 1)
		Eventually(func() bool {
			_, _, ok := c.Load("a")
			return ok
		}, "200ms", "5ms").Should(BeFalse())
	})

	It("removes an entry on Delete", func() {
		c := libcache.New[string, int](context.Background(), 0)
		defer c.Close()

		c.Store("a", 1)
		c.Delete("a")

		_, _, ok := c.Load("a")
		Expect(ok).To(BeFalse())
	})

	It("stops its janitor and clears entries on Close", func() {
		c := libcache.New[string, int](context.Background(), 10*time.Millisecond)

		c.Store("a", 1)
		Expect(c.Close()).To(BeNil())

		_, _, ok := c.Load("a")
		Expect(ok).To(BeFalse())
	})
})
