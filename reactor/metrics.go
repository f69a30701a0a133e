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

import "github.com/prometheus/client_golang/prometheus"

// metrics are per-Reactor, not registered against the global default
// registry by default: embedding applications call Reactor.Register
// against their own registry so multiple reactors don't collide.
// bytesIn and bytesOut are registered, but the reactor never adds to
// them, so they always read zero.
type metrics struct {
	openConnections prometheus.Gauge
	bytesIn         prometheus.Counter
	bytesOut        prometheus.Counter
	loopIterations  prometheus.Counter
}

func newMetrics() *metrics {
	return &metrics{
		openConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ngi",
			Subsystem: "reactor",
			Name:      "open_connections",
			Help:      "Connections currently registered with this reactor's selector.",
		}),
		bytesIn: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ngi",
			Subsystem: "reactor",
			Name:      "bytes_in_total",
			Help:      "Bytes read off all connections owned by this reactor.",
		}),
		bytesOut: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ngi",
			Subsystem: "reactor",
			Name:      "bytes_out_total",
			Help:      "Bytes sent on all connections owned by this reactor.",
		}),
		loopIterations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ngi",
			Subsystem: "reactor",
			Name:      "loop_iterations_total",
			Help:      "Selector loop iterations (one poll + dispatch pass each).",
		}),
	}
}

// Register adds this reactor's collectors to reg.
func (r *Reactor) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		r.metrics.openConnections,
		r.metrics.bytesIn,
		r.metrics.bytesOut,
		r.metrics.loopIterations,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
