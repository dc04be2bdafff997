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

package image

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func init() {
	var pushCmd = &cobra.Command{
		Use:   "push",
		Short: "Publish the training container image",
		Long:  `Push the training container image to its registry so that the training service can pull it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, err := resolveTag()
			if err != nil {
				return err
			}
			if err := runDocker("push", tag); err != nil {
				return errors.Wrapf(err, "failed to push the training image %q", tag)
			}
			fmt.Println("Pushed training image:", tag)
			return nil
		},
	}
	ImageCmd.AddCommand(pushCmd)
}
