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

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/smpp-go/smpp/smppclient"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "bind and print unsolicited PDUs and session errors until interrupted",
	Run: func(cmd *cobra.Command, args []string) {
		client, err := connect(context.Background(), cmd)
		if err != nil {
			log.Fatalf("bind failed: %v", err)
		}
		defer client.Close()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		for {
			select {
			case ev, ok := <-client.Events():
				if !ok {
					color.Red("session ended")
					return
				}
				printEvent(ev)
			case <-sigCh:
				_ = client.Unbind(context.Background())
				return
			}
		}
	},
}

func printEvent(ev smppclient.Event) {
	if ev.Err != nil {
		color.Red("error: %v", ev.Err)
		return
	}
	if ev.Command == nil {
		return
	}
	if ev.Command.Header.ID.IsResponse() {
		if ev.Command.Header.Status.Ok() {
			color.Green("%s (seq=%d)", ev.Command.Header.ID, ev.Command.Header.Sequence)
		} else {
			color.Yellow("%s %s (seq=%d)", ev.Command.Header.ID, ev.Command.Header.Status, ev.Command.Header.Sequence)
		}
		return
	}
	color.Cyan("%s (seq=%d)", ev.Command.Header.ID, ev.Command.Header.Sequence)
}
