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

package jobs

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ystia/trainsub/config"
)

func init() {
	var displayName string
	var outputDir string
	var checkpoint string
	var renderCmd = &cobra.Command{
		Use:   "render",
		Short: "Generate a job configuration without submitting it",
		Long: `Generate the custom-job configuration exactly as the submit command would
	and write it under the working directory, without creating any remote job.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(displayName) == "" {
				return errors.New("Missing mandatory --name flag: a display name is required to render a job configuration")
			}
			cfg := GetConfig()
			if err := cfg.Validate(); err != nil {
				return err
			}
			configPath, err := generateJobConfig(cfg, displayName, outputDir, checkpoint)
			if err != nil {
				return err
			}
			fmt.Println("Generated job configuration:", configPath)
			return nil
		},
	}
	renderCmd.PersistentFlags().StringVarP(&displayName, "name", "n", "", "Display name of the training job (mandatory)")
	renderCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "Existing run directory to resume. A new timestamped run directory is created when omitted")
	renderCmd.PersistentFlags().StringVar(&checkpoint, "checkpoint", config.DefaultCheckpoint, "Checkpoint file name within the run directory, used when resuming")
	JobsCmd.AddCommand(renderCmd)
}
