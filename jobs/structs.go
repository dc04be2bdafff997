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

// Package jobs generates Vertex AI custom-job configurations for the Perceiver
// detection trainer and dispatches them through the Google Cloud CLI.
package jobs

import (
	"time"
)

// CustomJobSpec is the document consumed by the custom-job creation API.
//
// It is marshalled as-is to YAML, so field tags follow the API wire names.
type CustomJobSpec struct {
	WorkerPoolSpecs []WorkerPoolSpec `yaml:"workerPoolSpecs"`
}

// WorkerPoolSpec defines the hardware and the container of a pool of training workers
type WorkerPoolSpec struct {
	MachineSpec   MachineSpec   `yaml:"machineSpec"`
	ReplicaCount  int           `yaml:"replicaCount"`
	ContainerSpec ContainerSpec `yaml:"containerSpec"`
}

// MachineSpec defines a machine type and its attached accelerators
type MachineSpec struct {
	MachineType      string `yaml:"machineType"`
	AcceleratorType  string `yaml:"acceleratorType"`
	AcceleratorCount int    `yaml:"acceleratorCount"`
}

// ContainerSpec defines the training container, its launch command and arguments
type ContainerSpec struct {
	ImageURI string   `yaml:"imageUri"`
	Env      []EnvVar `yaml:"env,omitempty"`
	Command  []string `yaml:"command"`
	Args     []string `yaml:"args,omitempty"`
}

// EnvVar is an environment variable forwarded into the training container
type EnvVar struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// Resolution is the outcome of resolving a submission into a run directory.
//
// ResumeArg is empty for a fresh run and holds the complete trainer argument
// restoring a prior checkpoint when resuming an existing run directory.
type Resolution struct {
	DisplayName string
	OutputDir   string
	ResumeArg   string
	Timestamp   string
}

// CustomJob is a created training job as reported by the Google Cloud CLI
type CustomJob struct {
	Name        string    `json:"name"`
	DisplayName string    `json:"displayName"`
	State       string    `json:"state"`
	CreateTime  time.Time `json:"createTime"`
	UpdateTime  time.Time `json:"updateTime"`
	Region      string    `json:"-"`
}

// Job states reported by the custom-job API
const (
	StateQueued    = "JOB_STATE_QUEUED"
	StatePending   = "JOB_STATE_PENDING"
	StateRunning   = "JOB_STATE_RUNNING"
	StateSucceeded = "JOB_STATE_SUCCEEDED"
	StateFailed    = "JOB_STATE_FAILED"
	StateCancelled = "JOB_STATE_CANCELLED"
)
