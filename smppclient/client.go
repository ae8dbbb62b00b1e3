/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package smppclient implements the asynchronous SMPP client engine:
// one TCP connection multiplexed by sequence number, enquire-link
// keepalive, per-request timeouts, cancellation and graceful unbind
// (spec §4.6).
package smppclient

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/smpp-go/smpp/pdu"
)

type pendingResult struct {
	cmd *pdu.Command
	err error
}

// Client is a bound (or binding) SMPP session over a single TCP
// connection. The zero value isn't usable; build one with Connect.
type Client struct {
	conn net.Conn
	cfg  Config
	log  log.FieldLogger

	framer *pdu.Framer

	mu      sync.Mutex
	state   SessionState
	pending map[uint32]chan pendingResult
	seq     uint32

	events  chan Event
	writeCh chan []byte

	cancel    context.CancelFunc
	g         *errgroup.Group
	closeOnce sync.Once
	done      chan struct{}
}

// Connect dials addr, performs the bind handshake selected by
// cfg.BindMode, and starts the reader/writer/keepalive goroutines
// (§4.6 step 1). It blocks until the bind response arrives, fails, or
// cfg.SessionTimeout elapses.
func Connect(ctx context.Context, addr string, cfg Config) (*Client, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("smppclient: dial %s: %w", addr, err)
	}

	c := newClient(conn, cfg)
	if err := c.bind(ctx); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

// newClient wraps an already-established conn in a Client and starts
// its background goroutines, without performing the bind handshake.
// Split out from Connect so tests can inject a mock net.Conn (see
// conn_mock_test.go) instead of dialing a real socket.
func newClient(conn net.Conn, cfg Config) *Client {
	cfg = cfg.withDefaults()

	gctx, cancel := context.WithCancel(context.Background())
	g, gctx := errgroup.WithContext(gctx)

	c := &Client{
		conn:    conn,
		cfg:     cfg,
		log:     cfg.Logger,
		framer:  pdu.NewFramer(cfg.MaxFrameBytes),
		state:   Open,
		pending: make(map[uint32]chan pendingResult),
		events:  make(chan Event, cfg.EventBuffer),
		writeCh: make(chan []byte, 16),
		cancel:  cancel,
		g:       g,
		done:    make(chan struct{}),
	}

	g.Go(func() error { return c.readLoop(gctx) })
	g.Go(func() error { return c.writeLoop(gctx) })
	g.Go(func() error { return c.keepaliveLoop(gctx) })
	return c
}

func (c *Client) bind(ctx context.Context) error {
	bindCtx, cancel := context.WithTimeout(ctx, c.cfg.SessionTimeout)
	defer cancel()

	if c.cfg.BindDelay > 0 {
		select {
		case <-time.After(c.cfg.BindDelay):
		case <-bindCtx.Done():
			return bindCtx.Err()
		}
	}

	var body pdu.Body
	switch c.cfg.BindMode {
	case BindModeReceiver:
		body = pdu.NewBindReceiver(c.cfg.SystemID, c.cfg.Password, c.cfg.SystemType, pdu.InterfaceVersionSMPP34, c.cfg.AddrTon, c.cfg.AddrNpi, c.cfg.AddressRange)
	case BindModeTransceiver:
		body = pdu.NewBindTransceiver(c.cfg.SystemID, c.cfg.Password, c.cfg.SystemType, pdu.InterfaceVersionSMPP34, c.cfg.AddrTon, c.cfg.AddrNpi, c.cfg.AddressRange)
	default:
		body = pdu.NewBindTransmitter(c.cfg.SystemID, c.cfg.Password, c.cfg.SystemType, pdu.InterfaceVersionSMPP34, c.cfg.AddrTon, c.cfg.AddrNpi, c.cfg.AddressRange)
	}

	resp, err := c.send(bindCtx, body)
	if err != nil {
		return err
	}
	if !resp.Header.Status.Ok() {
		return &SessionError{Kind: KindBindRejected, Status: resp.Header.Status}
	}

	c.mu.Lock()
	c.state = c.cfg.BindMode.boundState()
	c.mu.Unlock()
	return nil
}

// Send submits body, allocating a sequence number, and blocks for the
// matching response (§4.6 step 2). ctx cancellation abandons the
// submission: the pending entry is removed immediately and a later
// response, if any, is silently discarded (§5 cancellation semantics).
func (c *Client) Send(ctx context.Context, body pdu.Body) (*pdu.Command, error) {
	c.mu.Lock()
	state := c.state
	c.mu.Unlock()
	if !state.allows(body.CommandID()) {
		return nil, &SessionError{Kind: KindNotAllowedInState, State: state}
	}
	return c.send(ctx, body)
}

// send is Send without the session-state gate, used internally for the
// bind handshake (which runs before any Bound* state exists).
func (c *Client) send(ctx context.Context, body pdu.Body) (*pdu.Command, error) {
	seq := c.nextSeq()
	cmd := pdu.NewCommand(pdu.EsmeRok, seq, body)
	raw, err := cmd.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("smppclient: encode %s: %w", body.CommandID(), err)
	}

	ch := make(chan pendingResult, 1)
	c.mu.Lock()
	c.pending[seq] = ch
	pendingCount := len(c.pending)
	c.mu.Unlock()
	c.cfg.Metrics.pendingSet(pendingCount)

	defer func() {
		c.mu.Lock()
		delete(c.pending, seq)
		pendingCount := len(c.pending)
		c.mu.Unlock()
		c.cfg.Metrics.pendingSet(pendingCount)
	}()

	select {
	case c.writeCh <- raw:
	case <-c.done:
		return nil, &SessionError{Kind: KindDisconnected}
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	c.cfg.Metrics.sent(body.CommandID())
	sentAt := time.Now()

	timeout := c.cfg.ResponseTimeout
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		c.cfg.Metrics.observeLatency(time.Since(sentAt))
		return res.cmd, res.err
	case <-timer.C:
		c.cfg.Metrics.timeout()
		return nil, &SessionError{Kind: KindRequestTimeout, Sequence: seq}
	case <-c.done:
		return nil, &SessionError{Kind: KindDisconnected}
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Events returns the stream of unsolicited commands and the terminal
// session error, if any, delivered when the connection ends.
func (c *Client) Events() <-chan Event { return c.events }

// State reports the current session state.
func (c *Client) State() SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Unbind sends an Unbind request, awaits UnbindResp (or ctx expiring),
// and closes the connection either way (§4.6 step 4).
func (c *Client) Unbind(ctx context.Context) error {
	c.mu.Lock()
	bound := c.state == BoundTx || c.state == BoundRx || c.state == BoundTrx
	c.mu.Unlock()
	var err error
	if bound {
		_, err = c.send(ctx, &pdu.Unbind{})
		c.mu.Lock()
		c.state = Unbound
		c.mu.Unlock()
		c.cfg.Metrics.unbind()
	}
	c.Close()
	return err
}

// Close tears the connection down without a graceful unbind exchange:
// every pending submission resolves with Disconnected, the socket is
// closed, and the background goroutines exit.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.state = Closed
		c.mu.Unlock()
		close(c.done)
		c.cancel()
		_ = c.conn.Close()
		c.failAllPending(&SessionError{Kind: KindDisconnected})
		_ = c.g.Wait()
		close(c.events)
	})
	return nil
}

func (c *Client) failAllPending(err error) {
	c.mu.Lock()
	pending := c.pending
	c.pending = make(map[uint32]chan pendingResult)
	c.mu.Unlock()
	for _, ch := range pending {
		ch <- pendingResult{err: err}
	}
}

// nextSeq allocates the next sequence number, wrapping from
// 0x7FFFFFFF back to 1 (§3, §4.6).
func (c *Client) nextSeq() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	if c.seq == 0 || c.seq > 0x7FFFFFFF {
		c.seq = 1
	}
	return c.seq
}

func (c *Client) writeLoop(ctx context.Context) error {
	for {
		select {
		case raw := <-c.writeCh:
			if _, err := c.conn.Write(raw); err != nil {
				c.fatal(fmt.Errorf("smppclient: write: %w", err))
				return err
			}
		case <-ctx.Done():
			return nil
		}
	}
}

func (c *Client) readLoop(ctx context.Context) error {
	buf := make([]byte, 4096)
	for {
		n, err := c.conn.Read(buf)
		if err != nil {
			c.fatal(fmt.Errorf("smppclient: read: %w", err))
			return err
		}
		cmds, err := c.framer.Feed(buf[:n])
		for _, cmd := range cmds {
			c.dispatch(cmd)
		}
		if err != nil {
			c.fatal(err)
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		default:
		}
	}
}

func (c *Client) dispatch(cmd *pdu.Command) {
	c.cfg.Metrics.received(cmd.Header.ID)

	if cmd.Header.ID.IsResponse() {
		c.mu.Lock()
		ch, ok := c.pending[cmd.Header.Sequence]
		c.mu.Unlock()
		if ok {
			ch <- pendingResult{cmd: cmd}
			return
		}
		c.emit(Event{Command: cmd, Err: &SessionError{Kind: KindUnexpectedResponse, Sequence: cmd.Header.Sequence}})
		return
	}

	switch cmd.Header.ID {
	case pdu.IDEnquireLink:
		c.respond(cmd.Header.Sequence, pdu.EsmeRok, &pdu.EnquireLinkResp{})
	case pdu.IDUnbind:
		c.respond(cmd.Header.Sequence, pdu.EsmeRok, &pdu.UnbindResp{})
		c.mu.Lock()
		c.state = Unbound
		c.mu.Unlock()
	}
	c.emit(Event{Command: cmd})
}

func (c *Client) respond(seq uint32, status pdu.CommandStatus, body pdu.Body) {
	if c.cfg.ResponseDelay > 0 {
		time.Sleep(c.cfg.ResponseDelay)
	}
	raw, err := pdu.NewCommand(status, seq, body).MarshalBinary()
	if err != nil {
		return
	}
	select {
	case c.writeCh <- raw:
		c.cfg.Metrics.sent(body.CommandID())
	case <-c.done:
	}
}

func (c *Client) emit(ev Event) {
	select {
	case c.events <- ev:
	case <-c.done:
	}
}

func (c *Client) fatal(err error) {
	c.log.WithError(err).Warn("smppclient: session ending")
	c.emit(Event{Err: err})
	go c.Close()
}
