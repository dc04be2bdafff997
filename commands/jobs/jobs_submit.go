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
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ystia/trainsub/config"
	"github.com/ystia/trainsub/helper/stringutil"
	"github.com/ystia/trainsub/jobs"
	"github.com/ystia/trainsub/log"
)

func init() {
	var displayName string
	var outputDir string
	var checkpoint string
	var custom string
	var assumeYes bool
	var submitCmd = &cobra.Command{
		Use:   "submit",
		Short: "Submit a training job",
		Long: `Generate a custom-job configuration and create the remote training job.
	Without --output a new timestamped run directory is created and the training starts fresh.
	With --output the given run directory is resumed from its checkpoint.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(displayName) == "" {
				return errors.New("Missing mandatory --name flag: a display name is required to submit a training job")
			}
			cfg := GetConfig()
			if err := cfg.Validate(); err != nil {
				return err
			}
			if custom != "" {
				// Accepted for compatibility, the trainer currently ignores it
				log.Debugf("Ignoring --custom value %q", custom)
			}

			configPath, err := generateJobConfig(cfg, displayName, outputDir, checkpoint)
			if err != nil {
				return err
			}
			fmt.Println("Generated job configuration:", configPath)

			if !assumeYes {
				ok, err := confirm(fmt.Sprintf("Create custom job %q in region %q?", displayName, cfg.Region()))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("Submission aborted")
					return nil
				}
			}

			ctx := context.Background()
			dispatcher := jobs.NewDispatcher(cfg)
			if err := dispatcher.CheckVersion(ctx); err != nil {
				return err
			}
			jobName, err := dispatcher.Create(ctx, displayName, configPath)
			if err != nil {
				return err
			}
			jobID := stringutil.GetLastElement(jobName, "/")
			if jobID == "" {
				jobID = jobName
			}
			fmt.Printf("Job submitted. Job Id: %s\n", jobID)
			return nil
		},
	}
	submitCmd.PersistentFlags().StringVarP(&displayName, "name", "n", "", "Display name of the training job (mandatory)")
	submitCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "Existing run directory to resume. A new timestamped run directory is created when omitted")
	submitCmd.PersistentFlags().StringVar(&checkpoint, "checkpoint", config.DefaultCheckpoint, "Checkpoint file name within the run directory, used when resuming")
	submitCmd.PersistentFlags().StringVar(&custom, "custom", "", "Extra value forwarded to the training entrypoint (currently unused)")
	submitCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Create the remote job without asking for confirmation")
	JobsCmd.AddCommand(submitCmd)
}

// generateJobConfig resolves the run directory, renders the custom-job
// document and writes it under the working directory, returning the path of
// the written file
func generateJobConfig(cfg config.Configuration, displayName, outputDir, checkpoint string) (string, error) {
	generator := jobs.NewGenerator(cfg)
	res := generator.Resolve(displayName, outputDir, checkpoint, time.Now())
	if res.ResumeArg != "" {
		log.Debugf("Resuming run directory %q from checkpoint %q", res.OutputDir, checkpoint)
	}
	return generator.WriteSpec(generator.GenerateSpec(res), res)
}
