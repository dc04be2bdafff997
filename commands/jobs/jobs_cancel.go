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

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ystia/trainsub/jobs"
)

func init() {
	var assumeYes bool
	var cancelCmd = &cobra.Command{
		Use:   "cancel <job id>",
		Short: "Cancel a training job",
		Long:  `Request the cancellation of a given custom training job. The job and its run directory are left in place.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.Errorf("Expecting a job id (got %d parameters)", len(args))
			}
			cfg := GetConfig()
			if !assumeYes {
				ok, err := confirm(fmt.Sprintf("Cancel custom job %q in region %q?", args[0], cfg.Region()))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("Cancellation aborted")
					return nil
				}
			}
			dispatcher := jobs.NewDispatcher(cfg)
			if err := dispatcher.Cancel(context.Background(), args[0]); err != nil {
				errExit(err)
			}
			fmt.Println("Cancellation requested for job", args[0])
			return nil
		},
	}
	cancelCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Cancel the remote job without asking for confirmation")
	JobsCmd.AddCommand(cancelCmd)
}
