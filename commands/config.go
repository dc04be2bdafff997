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

package commands

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/ystia/trainsub/config"
)

// GetConfig returns the configuration resolved from flags, environment
// variables and the configuration file.
//
// Flag and environment bindings are registered by the command packages, this
// only collects the resolved values.
func GetConfig() config.Configuration {
	configuration := config.Configuration{}
	configuration.Project = viper.GetString("project")
	configuration.Regions = splitList(viper.GetStringSlice("regions"))
	configuration.ImageURI = viper.GetString("image")
	configuration.WorkingDirectory = viper.GetString("working_directory")
	configuration.OutputPrefix = viper.GetString("output_prefix")
	configuration.CocoPath = viper.GetString("coco_path")
	configuration.MachineType = viper.GetString("machine_type")
	configuration.AcceleratorType = viper.GetString("accelerator_type")
	configuration.AcceleratorCount = viper.GetInt("accelerator_count")
	configuration.ReplicaCount = viper.GetInt("replicas")
	configuration.GCloudPath = viper.GetString("gcloud_path")
	configuration.DockerPath = viper.GetString("docker_path")
	configuration.Hyperparameters = config.DynamicMap(viper.GetStringMap("hyperparameters"))
	return configuration
}

// splitList splits coma separated input flags as Cobra may give a slice with
// only one element containing them all
func splitList(values []string) []string {
	res := make([]string, 0, len(values))
	for _, value := range values {
		for _, v := range strings.Split(value, ",") {
			if v = strings.TrimSpace(v); v != "" {
				res = append(res, v)
			}
		}
	}
	return res
}
