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

// Package image holds the commands building and publishing the training
// container image
package image

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ystia/trainsub/commands"
	"github.com/ystia/trainsub/config"
	"github.com/ystia/trainsub/helper/executil"
)

// ImageCmd is the base command of the image sub-tree
var ImageCmd = &cobra.Command{
	Use:           "image",
	Short:         "Perform commands on the training container image",
	Long:          `Build and publish the container image bundling the training code`,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var imageTag string

func init() {
	commands.RootCmd.AddCommand(ImageCmd)
	ImageCmd.PersistentFlags().StringVarP(&imageTag, "tag", "t", "", "Tag of the training container image. Defaults to the configured image URI")
	ImageCmd.PersistentFlags().String("docker-path", config.DefaultDockerPath, "Path to the docker CLI executable")

	viper.BindPFlag("docker_path", ImageCmd.PersistentFlags().Lookup("docker-path"))
	viper.BindEnv("docker_path", "TRAINSUB_DOCKER_PATH")
	viper.SetDefault("docker_path", config.DefaultDockerPath)
}

// resolveTag returns the image tag to operate on, favoring the --tag flag over
// the configured image URI
func resolveTag() (string, error) {
	if imageTag != "" {
		return imageTag, nil
	}
	if image := commands.GetConfig().ImageURI; image != "" {
		return image, nil
	}
	return "", errors.New("No image tag: provide the --tag flag or configure the image URI")
}

// runDocker runs the docker CLI with the given arguments, streaming its output
// to the current process streams
func runDocker(arg ...string) error {
	cmd := executil.Command(context.Background(), commands.GetConfig().DockerPath, arg...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
