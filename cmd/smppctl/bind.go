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

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var bindCmd = &cobra.Command{
	Use:   "bind",
	Short: "bind to an MC and immediately unbind, to sanity-check credentials",
	Run: func(cmd *cobra.Command, args []string) {
		client, err := connect(context.Background(), cmd)
		if err != nil {
			log.Fatalf("bind failed: %v", err)
		}
		log.Infof("bound as %s (state %s)", systemID, client.State())
		if err := client.Unbind(context.Background()); err != nil {
			log.Fatalf("unbind failed: %v", err)
		}
	},
}
