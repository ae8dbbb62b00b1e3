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

package smppclient

import (
	"context"
	"fmt"
	"time"

	"github.com/smpp-go/smpp/pdu"
)

// keepaliveLoop fires an enquire_link every EnquireLinkInterval while
// the session is bound, whether or not other traffic flowed during the
// interval, and treats a missed response as a fatal session error
// (§4.6 step 3).
func (c *Client) keepaliveLoop(ctx context.Context) error {
	ticker := time.NewTicker(c.cfg.EnquireLinkInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			state := c.state
			c.mu.Unlock()
			if state != BoundTx && state != BoundRx && state != BoundTrx {
				continue
			}
			reqCtx, cancel := context.WithTimeout(ctx, c.cfg.ResponseTimeout)
			_, err := c.send(reqCtx, &pdu.EnquireLink{})
			cancel()
			if err != nil {
				err = &SessionError{Kind: KindSessionTimeout, Err: fmt.Errorf("keepalive: %w", err)}
				c.fatal(err)
				return err
			}
		case <-ctx.Done():
			return nil
		}
	}
}
