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
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/smpp-go/smpp/smppclient"
)

var (
	addr                string
	systemID            string
	password            string
	systemType          string
	bindMode            string
	enquireLinkInterval time.Duration
	responseTimeout     time.Duration
	profileName         string
)

var rootCmd = &cobra.Command{
	Use:   "smppctl",
	Short: "reference ESME CLI for binding, submitting and watching an SMPP session",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&addr, "addr", "127.0.0.1:2775", "MC host:port to connect to")
	rootCmd.PersistentFlags().StringVar(&systemID, "system-id", "", "system_id to bind with")
	rootCmd.PersistentFlags().StringVar(&password, "password", "", "password to bind with")
	rootCmd.PersistentFlags().StringVar(&systemType, "system-type", "", "system_type to bind with")
	rootCmd.PersistentFlags().StringVar(&bindMode, "mode", "transceiver", "bind mode: transmitter, receiver, or transceiver")
	rootCmd.PersistentFlags().DurationVar(&enquireLinkInterval, "enquire-link-interval", 30*time.Second, "enquire_link keepalive interval")
	rootCmd.PersistentFlags().DurationVar(&responseTimeout, "response-timeout", 5*time.Second, "per-request response timeout")

	rootCmd.AddCommand(bindCmd, submitCmd, watchCmd)
}

func parseBindMode() smppclient.BindMode {
	switch bindMode {
	case "transmitter":
		return smppclient.BindModeTransmitter
	case "receiver":
		return smppclient.BindModeReceiver
	default:
		return smppclient.BindModeTransceiver
	}
}

// connect applies any --profile defaults, prompts for a password on a
// real terminal when none was supplied (the same term.IsTerminal gate
// sa53fw/main.go uses before reading from stdin), and dials the MC.
func connect(ctx context.Context, cmd *cobra.Command) (*smppclient.Client, error) {
	if err := applyProfile(cmd); err != nil {
		return nil, err
	}
	if password == "" && term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintf(os.Stderr, "password for %s: ", systemID)
		pw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return nil, fmt.Errorf("smppctl: read password: %w", err)
		}
		password = string(pw)
	}
	return smppclient.Connect(ctx, addr, smppclient.Config{
		SystemID:            systemID,
		Password:            password,
		SystemType:          systemType,
		BindMode:            parseBindMode(),
		EnquireLinkInterval: enquireLinkInterval,
		ResponseTimeout:     responseTimeout,
		SessionTimeout:      responseTimeout * 2,
	})
}
