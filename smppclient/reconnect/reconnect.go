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

// Package reconnect wraps smppclient.Client with automatic
// reconnect-and-rebind on disconnect (spec §4.7): exponential backoff
// with a cap and optional jitter, immediate-fail submissions while
// disconnected, and Reconnected/Disconnected markers folded into the
// event stream.
package reconnect

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/Knetic/govaluate"
	log "github.com/sirupsen/logrus"

	"github.com/smpp-go/smpp/pdu"
	"github.com/smpp-go/smpp/smppclient"
)

// Config is the backoff policy plus the underlying dial parameters.
type Config struct {
	Addr         string
	Client       smppclient.Config
	InitialDelay time.Duration // b0
	Multiplier   float64       // m
	MaxDelay     time.Duration // b_max
	Jitter       float64       // fraction of the computed delay, e.g. 0.1

	// DelayExpr, if set, replaces the built-in exponential formula with a
	// govaluate expression evaluated in milliseconds. Available variables:
	// attempt (failed reconnect attempts so far, starting at 1), initial, multiplier, max — all but
	// attempt mirror the fields above. Example: "initial * pow(multiplier, attempt)".
	DelayExpr string

	Logger log.FieldLogger
}

func (c Config) withDefaults() Config {
	if c.InitialDelay <= 0 {
		c.InitialDelay = 200 * time.Millisecond
	}
	if c.Multiplier <= 1 {
		c.Multiplier = 2
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = 30 * time.Second
	}
	if c.Logger == nil {
		c.Logger = log.StandardLogger()
	}
	return c
}

// delayExprFunctions are the functions a DelayExpr may call, the same
// mean/stddev/pow-style allowlist shape as ptp/c4u/clock's expression
// functions, scaled down to what a delay formula plausibly needs.
var delayExprFunctions = map[string]govaluate.ExpressionFunction{
	"pow": func(args ...interface{}) (interface{}, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("pow: wrong number of arguments: want 2, got %d", len(args))
		}
		base, _ := args[0].(float64)
		exp, _ := args[1].(float64)
		return math.Pow(base, exp), nil
	},
	"min": func(args ...interface{}) (interface{}, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("min: wrong number of arguments: want 2, got %d", len(args))
		}
		a, _ := args[0].(float64)
		b, _ := args[1].(float64)
		return math.Min(a, b), nil
	},
}

var delayExprVars = []string{"attempt", "initial", "multiplier", "max"}

func isSupportedDelayVar(name string) bool {
	for _, v := range delayExprVars {
		if v == name {
			return true
		}
	}
	return false
}

// compileDelayExpr parses and variable-checks exprStr, the same two-step
// prepareExpression ptp/c4u/clock.prepareExpression does for its own
// config-driven formulas.
func compileDelayExpr(exprStr string) (*govaluate.EvaluableExpression, error) {
	expr, err := govaluate.NewEvaluableExpressionWithFunctions(exprStr, delayExprFunctions)
	if err != nil {
		return nil, fmt.Errorf("reconnect: delay_expr: %w", err)
	}
	for _, v := range expr.Vars() {
		if !isSupportedDelayVar(v) {
			return nil, fmt.Errorf("reconnect: delay_expr: unsupported variable %q", v)
		}
	}
	return expr, nil
}

// Event is an smppclient.Event annotated with the reconnect wrapper's
// own lifecycle markers.
type Event struct {
	smppclient.Event
	Reconnected  bool
	Disconnected bool
}

// Client is a self-healing smppclient.Client: the same Send/Events/Unbind
// surface, but backed by a connection that redials and rebinds after a
// transport failure.
type Client struct {
	cfg       Config
	delayExpr *govaluate.EvaluableExpression

	mu           sync.Mutex
	current      *smppclient.Client
	disconnected bool
	closed       bool

	events chan Event
	done   chan struct{}
}

// Dial connects once (returning the initial connect error, if any) and
// then supervises the connection for the lifetime of the returned
// Client.
func Dial(ctx context.Context, cfg Config) (*Client, error) {
	cfg = cfg.withDefaults()

	var expr *govaluate.EvaluableExpression
	if cfg.DelayExpr != "" {
		var err error
		expr, err = compileDelayExpr(cfg.DelayExpr)
		if err != nil {
			return nil, err
		}
	}

	c := &Client{
		cfg:       cfg,
		delayExpr: expr,
		events:    make(chan Event, 64),
		done:      make(chan struct{}),
	}

	client, err := smppclient.Connect(ctx, cfg.Addr, cfg.Client)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.current = client
	c.mu.Unlock()

	go c.supervise(client)
	return c, nil
}

func (c *Client) supervise(client *smppclient.Client) {
	for ev := range client.Events() {
		c.forward(Event{Event: ev})
	}
	// client.Events() closed: the connection ended.
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return
	}
	c.reconnectLoop()
}

func (c *Client) reconnectLoop() {
	c.mu.Lock()
	c.disconnected = true
	c.mu.Unlock()
	c.forward(Event{Disconnected: true})

	delay := c.cfg.InitialDelay
	for attempt := 0; ; attempt++ {
		c.mu.Lock()
		closed := c.closed
		c.mu.Unlock()
		if closed {
			return
		}

		select {
		case <-time.After(jitter(delay, c.cfg.Jitter)):
		case <-c.done:
			return
		}

		client, err := smppclient.Connect(context.Background(), c.cfg.Addr, c.cfg.Client)
		if err != nil {
			c.cfg.Logger.WithError(err).Warn("reconnect: connect/bind failed")
			delay = c.nextDelay(delay, attempt+1)
			continue
		}

		c.mu.Lock()
		c.current = client
		c.disconnected = false
		c.mu.Unlock()
		c.forward(Event{Reconnected: true})
		go c.supervise(client)
		return
	}
}

func nextDelay(cur time.Duration, mult float64, max time.Duration) time.Duration {
	next := time.Duration(float64(cur) * mult)
	if next > max {
		next = max
	}
	return next
}

// nextDelay evaluates cfg.DelayExpr when configured, else falls back to
// the built-in exponential formula.
func (c *Client) nextDelay(cur time.Duration, attempt int) time.Duration {
	if c.delayExpr == nil {
		return nextDelay(cur, c.cfg.Multiplier, c.cfg.MaxDelay)
	}
	result, err := c.delayExpr.Evaluate(map[string]interface{}{
		"attempt":    float64(attempt),
		"initial":    float64(c.cfg.InitialDelay.Milliseconds()),
		"multiplier": c.cfg.Multiplier,
		"max":        float64(c.cfg.MaxDelay.Milliseconds()),
	})
	if err != nil {
		c.cfg.Logger.WithError(err).Warn("reconnect: delay_expr evaluation failed, falling back to default backoff")
		return nextDelay(cur, c.cfg.Multiplier, c.cfg.MaxDelay)
	}
	ms, ok := result.(float64)
	if !ok || ms < 0 {
		return nextDelay(cur, c.cfg.Multiplier, c.cfg.MaxDelay)
	}
	next := time.Duration(ms) * time.Millisecond
	if next > c.cfg.MaxDelay {
		next = c.cfg.MaxDelay
	}
	return next
}

func jitter(d time.Duration, frac float64) time.Duration {
	if frac <= 0 {
		return d
	}
	delta := float64(d) * frac
	return d + time.Duration((rand.Float64()*2-1)*delta)
}

func (c *Client) forward(ev Event) {
	select {
	case c.events <- ev:
	case <-c.done:
	}
}

// Send submits body on the current connection. While disconnected it
// fails immediately with smppclient.SessionError{Kind: Disconnected} —
// there is no buffering (§4.7).
func (c *Client) Send(ctx context.Context, body pdu.Body) (*pdu.Command, error) {
	c.mu.Lock()
	client, disconnected := c.current, c.disconnected
	c.mu.Unlock()
	if disconnected || client == nil {
		return nil, &smppclient.SessionError{Kind: smppclient.KindDisconnected}
	}
	return client.Send(ctx, body)
}

// Events returns the merged stream of the underlying client's events
// plus this wrapper's Reconnected/Disconnected markers.
func (c *Client) Events() <-chan Event { return c.events }

// Unbind gracefully shuts down the current connection and stops
// supervising reconnects.
func (c *Client) Unbind(ctx context.Context) error {
	c.mu.Lock()
	client := c.current
	alreadyClosed := c.closed
	c.closed = true
	c.mu.Unlock()
	if alreadyClosed {
		return nil
	}
	close(c.done)
	if client == nil {
		return nil
	}
	return client.Unbind(ctx)
}

// Close stops supervising and tears down the current connection
// without a graceful unbind exchange.
func (c *Client) Close() error {
	c.mu.Lock()
	client := c.current
	alreadyClosed := c.closed
	c.closed = true
	c.mu.Unlock()
	if alreadyClosed {
		return nil
	}
	close(c.done)
	if client == nil {
		return nil
	}
	return client.Close()
}
