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

// Package cache is a small generic, thread-safe key/value store with
// optional per-entry expiration, built directly on sync.Map. It
// keeps the constructor shape of a context-scoped TTL cache but
// drops the clone/merge/walk surface nothing in this module calls.
package cache

import (
	"context"
	"sync"
	"time"
)

// Cache is a typed, concurrency-safe store. A zero expiration passed
// to New means entries never expire.
type Cache[K comparable, V any] interface {
	// Load returns the value for key and the time remaining until it
	// expires (zero if the cache has no expiration). ok is false if
	// key is absent or its entry has expired.
	Load(key K) (val V, remain time.Duration, ok bool)

	// Store sets key to val, resetting its expiration clock.
	Store(key K, val V)

	// Delete removes key, if present.
	Delete(key K)

	// Close cancels the cache's context and stops its janitor
	// goroutine, if one is running.
	Close() error
}

type entry[V any] struct {
	val V
	at  time.Time
}

type cache[K comparable, V any] struct {
	m   sync.Map
	ttl time.Duration
	cnl context.CancelFunc
}

// New returns a Cache scoped to ctx (context.Background() if nil)
// whose entries expire after ttl. A ttl of zero or less disables
// expiration entirely: entries live until Delete'd or the cache is
// Close'd.
func New[K comparable, V any](ctx context.Context, ttl time.Duration) Cache[K, V] {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cnl := context.WithCancel(ctx)

	c := &cache[K, V]{ttl: ttl, cnl: cnl}

	if ttl > 0 {
		go c.janitor(ctx, ttl)
	}

	return c
}

func (c *cache[K, V]) janitor(ctx context.Context, ttl time.Duration) {
	t := time.NewTicker(ttl)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			c.sweep()
		}
	}
}

func (c *cache[K, V]) sweep() {
	now := time.Now()
	c.m.Range(func(key, val any) bool {
		e := val.(entry[V])
		if c.ttl > 0 && now.Sub(e.at) > c.ttl {
			c.m.Delete(key)
		}
		return true
	})
}

func (c *cache[K, V]) Load(key K) (V, time.Duration, bool) {
	raw, ok := c.m.Load(key)
	if !ok {
		var zero V
		return zero, 0, false
	}

	e := raw.(entry[V])
	if c.ttl <= 0 {
		return e.val, 0, true
	}

	remain := c.ttl - time.Since(e.at)
	if remain <= 0 {
		c.m.Delete(key)
		var zero V
		return zero, 0, false
	}

	return e.val, remain, true
}

func (c *cache[K, V]) Store(key K, val V) {
	c.m.Store(key, entry[V]{val: val, at: time.Now()})
}

func (c *cache[K, V]) Delete(key K) {
	c.m.Delete(key)
}

func (c *cache[K, V]) Close() error {
	c.cnl()
	c.m.Range(func(key, _ any) bool {
		c.m.Delete(key)
		return true
	})
	return nil
}
