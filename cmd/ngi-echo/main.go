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

// Command ngi-echo starts a line-framed echo listener directly on top
// of the reactor package, for manual smoke-testing of the selector
// loop without writing a Go test. It is not part of the core: the
// core never ships a sample application (see spec.md §1 Non-goals),
// this is operational tooling built against the public contract.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mitchellh/mapstructure"
	spfcbr "github.com/spf13/cobra"
	spfvpr "github.com/spf13/viper"

	libconn "github.com/nabbar/ngi/conn"
	libdur "github.com/nabbar/ngi/duration"
	"github.com/nabbar/ngi/framing"
	liblog "github.com/nabbar/ngi/logger"
	loglvl "github.com/nabbar/ngi/logger/level"
	libptc "github.com/nabbar/ngi/network/protocol"
	"github.com/nabbar/ngi/reactor"
)

var (
	flagAddress  string
	flagBuffer   int
	flagConfig   string
	flagProtocol string

	cfgProtocol = libptc.NetworkTCP

	out = colorable.NewColorableStdout()
)

// fileConfig is the shape ngi-echo.yaml is unmarshalled into when
// --config is given; Protocol is bound through ViperDecoderHook so a
// bare "protocol: tcp" string resolves to libptc.NetworkTCP.
type fileConfig struct {
	Address    string               `mapstructure:"address"`
	BufferSize int                  `mapstructure:"buffer-size"`
	Protocol   libptc.NetworkProtocol `mapstructure:"protocol"`
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *spfcbr.Command {
	root := &spfcbr.Command{
		Use:   "ngi-echo",
		Short: "Line-framed echo server for exercising the ngi reactor",
		RunE:  runEcho,
	}

	root.PersistentFlags().StringVar(&flagAddress, "address", "127.0.0.1:0", "listen address (host:port)")
	root.PersistentFlags().IntVar(&flagBuffer, "buffer-size", 8192, "buffer size shown in the startup line; reads always use conn.ReadChunkSize")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "optional config file (ngi-echo.yaml) overriding flags")
	root.PersistentFlags().StringVar(&flagProtocol, "protocol", "tcp", "listen protocol (tcp, tcp4, tcp6, unix)")

	spfcbr.OnInitialize(func() {
		if p := libptc.Parse(flagProtocol); p != libptc.NetworkEmpty {
			cfgProtocol = p
		}

		if flagConfig == "" {
			return
		}
		spfvpr.SetConfigFile(flagConfig)
		if err := spfvpr.ReadInConfig(); err != nil {
			fmt.Fprintln(os.Stderr, color.RedString("config: %v", err))
			return
		}

		var fc fileConfig
		hook := spfvpr.DecodeHook(mapstructure.ComposeDecodeHookFunc(libptc.ViperDecoderHook()))
		if err := spfvpr.Unmarshal(&fc, hook); err != nil {
			fmt.Fprintln(out, color.RedString("config decode: %v", err))
			return
		}

		if spfvpr.IsSet("address") {
			flagAddress = fc.Address
		}
		if spfvpr.IsSet("buffer-size") {
			flagBuffer = fc.BufferSize
		}
		if spfvpr.IsSet("protocol") {
			cfgProtocol = fc.Protocol
		}
	})

	return root
}

// echoHandler implements conn.Handler (wrapped by the Lines framing
// adapter): it replies with the uppercased line and closes on "quit".
type echoHandler struct {
	log liblog.Logger
}

func (h *echoHandler) HandleInput(c libconn.Connection, chunk []byte) {
	line := string(chunk)
	if line == "quit" {
		c.Close()
		return
	}

	reply := make([]byte, len(line))
	for i := 0; i < len(line); i++ {
		b := line[i]
		if b >= 'a' && b <= 'z' {
			b -= 'a' - 'A'
		}
		reply[i] = b
	}
	_ = c.Write(reply)
}

func (h *echoHandler) HandleClose(c libconn.Connection, reason string) {
	h.log.Debug("connection from %s closed: %s", c.PeerAddress(), reason)
}

func (h *echoHandler) HandleException(c libconn.Connection, err error) {
	h.log.Error("connection from %s: %v", c.PeerAddress(), err)
}

func runEcho(cmd *spfcbr.Command, _ []string) error {
	log := liblog.New(context.Background())
	log.SetLevel(loglvl.DebugLevel)

	// Route cobra/viper's own jwalterweatherman diagnostics (unknown
	// flags, config parse errors) through this logger rather than
	// jww's default stderr writer.
	log.SetSPF13Level(loglvl.WarnLevel, nil)

	r := reactor.New(log)

	lst, err := r.Listen(reactor.ListenConfig{
		Protocol: cfgProtocol,
		Address:  flagAddress,
	}, func(c libconn.Connection) {
		lines := framing.NewLines(c)
		if e := lines.SetHandler(&echoHandler{log: log}); e != nil {
			log.Error("bind handler: %v", e)
		}
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(out, color.GreenString("ngi-echo listening on %s (buffer=%d)", lst.Address(), flagBuffer))

	return r.Wait(libdur.Seconds(0))
}
