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
	"io/ioutil"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v2"

	"github.com/ystia/trainsub/config"
)

func testConfiguration() config.Configuration {
	return config.Configuration{
		Project:          "my-project",
		Regions:          []string{config.DefaultRegion},
		ImageURI:         "eu.gcr.io/my-project/detr-perceiver:latest",
		WorkingDirectory: config.DefaultWorkingDirectory,
		OutputPrefix:     config.DefaultOutputPrefix,
		CocoPath:         config.DefaultCocoPath,
		MachineType:      config.DefaultMachineType,
		AcceleratorType:  config.DefaultAcceleratorType,
		AcceleratorCount: config.DefaultAcceleratorCount,
		ReplicaCount:     config.DefaultReplicaCount,
		GCloudPath:       config.DefaultGCloudPath,
	}
}

var timestampRegexp = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}_\d{2}-\d{2}-\d{2}$`)

func TestResolveFreshRun(t *testing.T) {
	t.Parallel()
	g := NewGenerator(testConfiguration())
	now := time.Date(2024, time.March, 7, 16, 5, 9, 0, time.UTC)

	res := g.Resolve("foo", "", config.DefaultCheckpoint, now)

	assert.Equal(t, "foo", res.DisplayName)
	assert.Equal(t, "/gcs/perceiver-detection/output_foo_perceiver_2024-03-07_16-05-09", res.OutputDir)
	assert.Empty(t, res.ResumeArg, "a fresh run must not resume from a checkpoint")
	assert.Regexp(t, timestampRegexp, res.Timestamp)
}

func TestResolveResume(t *testing.T) {
	t.Parallel()
	g := NewGenerator(testConfiguration())

	res := g.Resolve("foo", "/x/y", "c.pth", time.Now())

	assert.Equal(t, "/x/y", res.OutputDir)
	assert.Equal(t, "--resume=/x/y/c.pth", res.ResumeArg)
	// The timestamp is computed on the resume branch too so that the generated
	// configuration file name never contains an empty segment
	assert.Regexp(t, timestampRegexp, res.Timestamp)
}

func TestResolveCheckpointRoundTrip(t *testing.T) {
	t.Parallel()
	g := NewGenerator(testConfiguration())
	for _, checkpoint := range []string{"checkpoint.pth", "best_model.pth", "epoch_0042.pth"} {
		res := g.Resolve("foo", "/runs/foo", checkpoint, time.Now())
		assert.Equal(t, "--resume=/runs/foo/"+checkpoint, res.ResumeArg)
	}
}

func TestGenerateSpecFreshRun(t *testing.T) {
	t.Parallel()
	cfg := testConfiguration()
	g := NewGenerator(cfg)
	res := g.Resolve("foo", "", config.DefaultCheckpoint, time.Now())

	spec := g.GenerateSpec(res)

	require.Len(t, spec.WorkerPoolSpecs, 1)
	pool := spec.WorkerPoolSpecs[0]
	assert.Equal(t, cfg.MachineType, pool.MachineSpec.MachineType)
	assert.Equal(t, cfg.AcceleratorType, pool.MachineSpec.AcceleratorType)
	assert.Equal(t, cfg.AcceleratorCount, pool.MachineSpec.AcceleratorCount)
	assert.Equal(t, cfg.ReplicaCount, pool.ReplicaCount)
	assert.Equal(t, cfg.ImageURI, pool.ContainerSpec.ImageURI)
	assert.Equal(t, []string{"torchrun", "--nnodes=1", "--nproc_per_node=4", "main.py"}, pool.ContainerSpec.Command)
	assert.Contains(t, pool.ContainerSpec.Env, EnvVar{Name: "PYTORCH_CUDA_ALLOC_CONF", Value: "expandable_segments:True"})

	assert.Contains(t, pool.ContainerSpec.Args, "--model=perceiver")
	assert.Contains(t, pool.ContainerSpec.Args, "--backbone=resnet50")
	assert.Contains(t, pool.ContainerSpec.Args, "--output_dir="+res.OutputDir)
	for _, arg := range pool.ContainerSpec.Args {
		assert.False(t, strings.HasPrefix(arg, "--resume"), "unexpected resume argument %q on a fresh run", arg)
	}
}

func TestGenerateSpecResume(t *testing.T) {
	t.Parallel()
	g := NewGenerator(testConfiguration())
	res := g.Resolve("foo", "/x/y", "c.pth", time.Now())

	spec := g.GenerateSpec(res)

	require.Len(t, spec.WorkerPoolSpecs, 1)
	args := spec.WorkerPoolSpecs[0].ContainerSpec.Args
	assert.Contains(t, args, "--resume=/x/y/c.pth")
	assert.Contains(t, args, "--output_dir=/x/y")
}

func TestGenerateSpecHyperparameterOverrides(t *testing.T) {
	t.Parallel()
	cfg := testConfiguration()
	cfg.Hyperparameters = config.DynamicMap{"epochs": 500, "aux_loss": "true"}
	g := NewGenerator(cfg)

	spec := g.GenerateSpec(g.Resolve("foo", "", config.DefaultCheckpoint, time.Now()))

	args := spec.WorkerPoolSpecs[0].ContainerSpec.Args
	assert.Contains(t, args, "--epochs=500")
	assert.NotContains(t, args, "--epochs=300")
	assert.Contains(t, args, "--aux_loss=true")
	// Untouched entries of the fixed block keep their values
	assert.Contains(t, args, "--lr_drop=200")
	assert.Contains(t, args, "--batch_size=2")
}

func TestWriteSpec(t *testing.T) {
	t.Parallel()
	workDir, err := ioutil.TempDir("", "trainsub-generator-test")
	require.NoError(t, err)
	defer os.RemoveAll(workDir)

	cfg := testConfiguration()
	cfg.WorkingDirectory = workDir
	g := NewGenerator(cfg)
	res := g.Resolve("foo", "", config.DefaultCheckpoint, time.Date(2024, time.March, 7, 16, 5, 9, 0, time.UTC))

	configPath, err := g.WriteSpec(g.GenerateSpec(res), res)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(workDir, "google_cloud_run", "google_config_foo_2024-03-07_16-05-09.yaml"), configPath)
	b, err := ioutil.ReadFile(configPath)
	require.NoError(t, err)

	var written CustomJobSpec
	require.NoError(t, yaml.Unmarshal(b, &written))
	require.Len(t, written.WorkerPoolSpecs, 1)
	assert.Equal(t, cfg.ImageURI, written.WorkerPoolSpecs[0].ContainerSpec.ImageURI)
}

func TestWriteSpecSuccessiveRunsProduceDistinctFiles(t *testing.T) {
	t.Parallel()
	workDir, err := ioutil.TempDir("", "trainsub-generator-test")
	require.NoError(t, err)
	defer os.RemoveAll(workDir)

	cfg := testConfiguration()
	cfg.WorkingDirectory = workDir
	g := NewGenerator(cfg)

	first := g.Resolve("foo", "", config.DefaultCheckpoint, time.Date(2024, time.March, 7, 16, 5, 9, 0, time.UTC))
	second := g.Resolve("foo", "", config.DefaultCheckpoint, time.Date(2024, time.March, 7, 16, 5, 10, 0, time.UTC))

	firstPath, err := g.WriteSpec(g.GenerateSpec(first), first)
	require.NoError(t, err)
	secondPath, err := g.WriteSpec(g.GenerateSpec(second), second)
	require.NoError(t, err)

	assert.NotEqual(t, firstPath, secondPath)
}
