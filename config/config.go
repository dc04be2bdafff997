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

// Package config defines configuration structures
package config

import (
	"sort"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// DefaultRegion is the default Google Cloud region where custom jobs are created
const DefaultRegion = "europe-west4"

// DefaultMachineType is the default machine type of the training worker pool
const DefaultMachineType = "n1-standard-16"

// DefaultAcceleratorType is the default accelerator attached to training workers
const DefaultAcceleratorType = "NVIDIA_TESLA_T4"

// DefaultAcceleratorCount is the default number of accelerators per worker.
//
// It must match the process count of the distributed-training launcher as each
// process drives exactly one accelerator.
const DefaultAcceleratorCount = 4

// DefaultReplicaCount is the default number of workers in the training worker pool
const DefaultReplicaCount = 1

// DefaultCheckpoint is the default checkpoint file name within a run directory
const DefaultCheckpoint = "checkpoint.pth"

// DefaultWorkingDirectory is the default local directory where generated job
// configuration files are written
const DefaultWorkingDirectory = "not_tracked_dir"

// DefaultOutputPrefix is the default remote prefix under which run directories
// are created
const DefaultOutputPrefix = "/gcs/perceiver-detection"

// DefaultCocoPath is the default location of the COCO dataset as seen from
// within the training container
const DefaultCocoPath = "/gcs/perceiver-detection/coco"

// DefaultGCloudPath is the default name of the Google Cloud CLI executable,
// resolved against PATH
const DefaultGCloudPath = "gcloud"

// DefaultDockerPath is the default name of the docker CLI executable, resolved
// against PATH
const DefaultDockerPath = "docker"

// Configuration holds config information filled by Cobra and Viper (see commands package for more information)
type Configuration struct {
	Project          string
	Regions          []string
	ImageURI         string
	WorkingDirectory string
	OutputPrefix     string
	CocoPath         string
	MachineType      string
	AcceleratorType  string
	AcceleratorCount int
	ReplicaCount     int
	GCloudPath       string
	DockerPath       string
	Hyperparameters  DynamicMap
}

// Region returns the first configured region.
//
// Jobs are always created in a single region, the remaining entries are only
// used by listing commands.
func (c Configuration) Region() string {
	if len(c.Regions) == 0 {
		return DefaultRegion
	}
	return c.Regions[0]
}

// Validate checks the configuration consistency and returns all detected
// problems at once
func (c Configuration) Validate() error {
	var err *multierror.Error
	if c.ImageURI == "" {
		err = multierror.Append(err, errors.New("missing mandatory image URI of the training container"))
	}
	if len(c.Regions) == 0 {
		err = multierror.Append(err, errors.New("missing mandatory region"))
	}
	if c.AcceleratorCount <= 0 {
		err = multierror.Append(err, errors.Errorf("invalid accelerator count %d: expecting a strictly positive number", c.AcceleratorCount))
	}
	if c.ReplicaCount <= 0 {
		err = multierror.Append(err, errors.Errorf("invalid replica count %d: expecting a strictly positive number", c.ReplicaCount))
	}
	return err.ErrorOrNil()
}

// DynamicMap is a map of generic values that can be casted to the desired type
// on retrieval.
//
// It typically holds hyperparameter overrides read from the configuration file.
type DynamicMap map[string]interface{}

// Keys returns the keys of this map in lexical order
func (dm DynamicMap) Keys() []string {
	keys := make([]string, 0, len(dm))
	for k := range dm {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the raw value of a given configuration key
func (dm DynamicMap) Get(name string) interface{} {
	return dm[name]
}

// GetString returns the value of the given key casted into a string.
// An empty string is returned if not found.
func (dm DynamicMap) GetString(name string) string {
	return cast.ToString(dm[name])
}
