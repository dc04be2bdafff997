// Copyright 2019 Bull S.A.S. Atos Technologies - Bull, Rue Jean Jaures, B.P.68, 78340, Les Clayes-sous-Bois, France.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package commands holds the root of the trainsub commands tree
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ystia/trainsub/log"
)

// RootCmd is the root of trainsub commands tree
var RootCmd = &cobra.Command{
	Use:   "trainsub",
	Short: "A Vertex AI training job submitter",
	Long: `trainsub packages the Perceiver detection trainer and submits it to
Google Vertex AI custom training.
It generates the job configuration, creates the remote job through the
Google Cloud CLI and helps following it afterwards.
`,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		err := cmd.Help()
		if err != nil {
			fmt.Print(err)
		}
	},
}

func init() {
	RootCmd.PersistentFlags().Bool("debug", false, "Enable debug logs")
	cobra.OnInitialize(func() {
		if debug, err := RootCmd.PersistentFlags().GetBool("debug"); err == nil && debug {
			log.SetDebug(true)
		}
	})
}
