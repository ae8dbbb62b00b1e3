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

	"github.com/smpp-go/smpp/pdu"
)

var (
	submitSource string
	submitDest   string
	submitText   string
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "bind, submit a single short_message, print the message id, and unbind",
	Run: func(cmd *cobra.Command, args []string) {
		client, err := connect(context.Background(), cmd)
		if err != nil {
			log.Fatalf("bind failed: %v", err)
		}
		defer client.Unbind(context.Background())

		body := pdu.NewSubmitSm(submitSource, submitDest, []byte(submitText))
		resp, err := client.Send(context.Background(), body)
		if err != nil {
			log.Fatalf("submit_sm failed: %v", err)
		}
		submitResp, ok := resp.Body.(*pdu.SubmitSmResp)
		if !ok {
			log.Fatalf("unexpected response body %T", resp.Body)
		}
		log.Infof("submitted, message_id=%s", submitResp.MessageID)
	},
}

func init() {
	submitCmd.Flags().StringVar(&submitSource, "source", "", "source address")
	submitCmd.Flags().StringVar(&submitDest, "dest", "", "destination address")
	submitCmd.Flags().StringVar(&submitText, "text", "", "short_message text")
	_ = submitCmd.MarkFlagRequired("dest")
}
