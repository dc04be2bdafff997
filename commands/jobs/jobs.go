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

// Package jobs holds the commands creating and managing Vertex AI custom
// training jobs
package jobs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	survey "gopkg.in/AlecAivazis/survey.v1"

	"github.com/ystia/trainsub/commands"
	"github.com/ystia/trainsub/config"
	"github.com/ystia/trainsub/log"
)

// NoColor returns true when the commands of this package should not colorize
// their output
var NoColor bool

var cfgFile string

// JobsCmd is the base command of the jobs sub-tree
var JobsCmd = &cobra.Command{
	Use:           "jobs",
	Aliases:       []string{"job", "j"},
	Short:         "Perform commands on training jobs",
	Long:          `Perform different commands on Vertex AI custom training jobs`,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	commands.RootCmd.AddCommand(JobsCmd)
	setJobsConfig()
	cobra.OnInitialize(initConfig)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// enable ability to specify config file via flag
		viper.SetConfigFile(cfgFile)
	}
	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Debugln("Using config file:", viper.ConfigFileUsed())
	} else {
		log.Debugln("Config not found... ")
	}
}

func setJobsConfig() {

	JobsCmd.PersistentFlags().StringP("project", "p", "", "The Google Cloud project hosting the training jobs")
	JobsCmd.PersistentFlags().StringSliceP("region", "r", []string{config.DefaultRegion}, "Region where jobs are created. May be repeated, jobs are created in the first one and listed across all of them")
	JobsCmd.PersistentFlags().StringP("image", "i", "", "URI of the training container image")
	JobsCmd.PersistentFlags().StringP("working-directory", "w", config.DefaultWorkingDirectory, "Local directory where generated job configurations are written")
	JobsCmd.PersistentFlags().String("output-prefix", config.DefaultOutputPrefix, "Remote prefix under which run directories are created")
	JobsCmd.PersistentFlags().String("coco-path", config.DefaultCocoPath, "Location of the COCO dataset as seen from within the training container")
	JobsCmd.PersistentFlags().String("machine-type", config.DefaultMachineType, "Machine type of the training workers")
	JobsCmd.PersistentFlags().String("accelerator-type", config.DefaultAcceleratorType, "Accelerator attached to the training workers")
	JobsCmd.PersistentFlags().Int("accelerator-count", config.DefaultAcceleratorCount, "Number of accelerators per training worker")
	JobsCmd.PersistentFlags().Int("replicas", config.DefaultReplicaCount, "Number of workers in the training worker pool")
	JobsCmd.PersistentFlags().String("gcloud-path", config.DefaultGCloudPath, "Path to the Google Cloud CLI executable")
	JobsCmd.PersistentFlags().BoolVar(&NoColor, "no-color", false, "Disable coloring output")
	JobsCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./config.trainsub.yaml)")

	viper.BindPFlag("project", JobsCmd.PersistentFlags().Lookup("project"))
	viper.BindPFlag("regions", JobsCmd.PersistentFlags().Lookup("region"))
	viper.BindPFlag("image", JobsCmd.PersistentFlags().Lookup("image"))
	viper.BindPFlag("working_directory", JobsCmd.PersistentFlags().Lookup("working-directory"))
	viper.BindPFlag("output_prefix", JobsCmd.PersistentFlags().Lookup("output-prefix"))
	viper.BindPFlag("coco_path", JobsCmd.PersistentFlags().Lookup("coco-path"))
	viper.BindPFlag("machine_type", JobsCmd.PersistentFlags().Lookup("machine-type"))
	viper.BindPFlag("accelerator_type", JobsCmd.PersistentFlags().Lookup("accelerator-type"))
	viper.BindPFlag("accelerator_count", JobsCmd.PersistentFlags().Lookup("accelerator-count"))
	viper.BindPFlag("replicas", JobsCmd.PersistentFlags().Lookup("replicas"))
	viper.BindPFlag("gcloud_path", JobsCmd.PersistentFlags().Lookup("gcloud-path"))

	viper.SetEnvPrefix("trainsub") // will be uppercased automatically - Become "TRAINSUB_"
	viper.AutomaticEnv()           // read in environment variables that match
	viper.BindEnv("project", "TRAINSUB_PROJECT")
	viper.BindEnv("regions", "TRAINSUB_REGIONS")
	viper.BindEnv("image", "TRAINSUB_IMAGE")
	viper.BindEnv("working_directory")
	viper.BindEnv("output_prefix")
	viper.BindEnv("coco_path")
	viper.BindEnv("machine_type")
	viper.BindEnv("accelerator_type")
	viper.BindEnv("accelerator_count")
	viper.BindEnv("replicas")
	viper.BindEnv("gcloud_path")

	viper.SetDefault("regions", []string{config.DefaultRegion})
	viper.SetDefault("working_directory", config.DefaultWorkingDirectory)
	viper.SetDefault("output_prefix", config.DefaultOutputPrefix)
	viper.SetDefault("coco_path", config.DefaultCocoPath)
	viper.SetDefault("machine_type", config.DefaultMachineType)
	viper.SetDefault("accelerator_type", config.DefaultAcceleratorType)
	viper.SetDefault("accelerator_count", config.DefaultAcceleratorCount)
	viper.SetDefault("replicas", config.DefaultReplicaCount)
	viper.SetDefault("gcloud_path", config.DefaultGCloudPath)

	//Configuration file directories
	viper.SetConfigName("config.trainsub") // name of config file (without extension)
	if home, err := homedir.Dir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".trainsub"))
	}
	viper.AddConfigPath(".")
}

// GetConfig returns the configuration resolved from flags, environment
// variables and the configuration file
func GetConfig() config.Configuration {
	return commands.GetConfig()
}

// confirm asks the operator for a confirmation before an action with remote
// consequences
func confirm(message string) (bool, error) {
	answer := false
	prompt := &survey.Confirm{Message: message}
	err := survey.AskOne(prompt, &answer, nil)
	return answer, err
}

func errExit(msg interface{}) {
	fmt.Println("Error:", msg)
	os.Exit(1)
}

func getColoredJobState(colorize bool, state string) string {
	if !colorize {
		return state
	}
	switch {
	case strings.Contains(strings.ToLower(state), "failed"), strings.Contains(strings.ToLower(state), "expired"):
		return color.New(color.FgHiRed, color.Bold).SprintFunc()(state)
	case strings.Contains(strings.ToLower(state), "succeeded"):
		return color.New(color.FgHiGreen, color.Bold).SprintFunc()(state)
	case strings.Contains(strings.ToLower(state), "running"), strings.Contains(strings.ToLower(state), "pending"), strings.Contains(strings.ToLower(state), "queued"):
		return color.New(color.FgHiYellow, color.Bold).SprintFunc()(state)
	default:
		return color.New(color.Bold).SprintFunc()(state)
	}
}
