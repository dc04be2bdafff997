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

	humanize "github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ystia/trainsub/jobs"
)

func init() {
	var infoCmd = &cobra.Command{
		Use:   "info <job id>",
		Short: "Get information about a training job",
		Long:  `Display the state of a given custom training job`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.Errorf("Expecting a job id (got %d parameters)", len(args))
			}
			cfg := GetConfig()
			colorize := !NoColor

			dispatcher := jobs.NewDispatcher(cfg)
			job, err := dispatcher.Describe(context.Background(), args[0])
			if err != nil {
				errExit(err)
			}

			fmt.Println("Name:", job.DisplayName)
			fmt.Println("Resource:", job.Name)
			fmt.Println("Region:", job.Region)
			fmt.Println("State:", getColoredJobState(colorize, job.State))
			fmt.Printf("Created: %s (%s)\n", job.CreateTime.Format("2006-01-02 15:04:05"), humanize.Time(job.CreateTime))
			fmt.Printf("Updated: %s (%s)\n", job.UpdateTime.Format("2006-01-02 15:04:05"), humanize.Time(job.UpdateTime))
			return nil
		},
	}
	JobsCmd.AddCommand(infoCmd)
}
