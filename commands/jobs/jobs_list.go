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
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ystia/trainsub/helper/stringutil"
	"github.com/ystia/trainsub/helper/tabutil"
	"github.com/ystia/trainsub/jobs"
)

func init() {
	JobsCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List training jobs",
	Long:  `List custom training jobs across the configured regions. Giving their ids and states.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		colorize := !NoColor

		dispatcher := jobs.NewDispatcher(cfg)
		jobsList, err := dispatcher.ListAll(context.Background())
		if err != nil {
			errExit(err)
		}

		jobsTable := tabutil.NewTable()
		jobsTable.AddHeaders("Id", "Name", "Region", "State", "Created")
		for _, job := range jobsList {
			jobID := stringutil.GetLastElement(job.Name, "/")
			if jobID == "" {
				jobID = job.Name
			}
			jobsTable.AddRow(jobID, job.DisplayName, job.Region,
				getColoredJobState(colorize, job.State),
				humanize.Time(job.CreateTime))
		}
		if colorize {
			defer color.Unset()
		}
		fmt.Println("Training jobs:")
		fmt.Println(jobsTable.Render())
		return nil
	},
}
