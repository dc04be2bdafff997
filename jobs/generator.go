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
	"fmt"
	"io/ioutil"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"

	"github.com/ystia/trainsub/config"
	"github.com/ystia/trainsub/helper/stringutil"
	"github.com/ystia/trainsub/log"
)

// modelName identifies the model family trained by the container entrypoint.
// It is baked into generated run directory names.
const modelName = "perceiver"

// configDirName is the directory under the working directory where generated
// job configurations are written
const configDirName = "google_cloud_run"

// allocatorEnv tunes the GPU memory allocator of the training framework to use
// expandable segments, which avoids fragmentation on long trainings
var allocatorEnv = EnvVar{Name: "PYTORCH_CUDA_ALLOC_CONF", Value: "expandable_segments:True"}

type hyperparameter struct {
	name  string
	value string
}

// Generator renders custom-job configuration documents from a resolved submission
type Generator struct {
	cfg config.Configuration
}

// NewGenerator creates a Generator for the given configuration
func NewGenerator(cfg config.Configuration) *Generator {
	return &Generator{cfg: cfg}
}

// Resolve computes the run directory and the resume argument of a submission.
//
// Without an explicit output directory a new timestamped run directory is
// created under the configured output prefix and the training starts fresh.
// With an explicit output directory the run is resumed from the checkpoint
// expected at <outputDir>/<checkpoint>; the file existence is not verified,
// a missing checkpoint is only detected by the remote training process.
//
// The timestamp is computed on both branches so that generated configuration
// file names never contain an empty segment.
func (g *Generator) Resolve(displayName, outputDir, checkpoint string, now time.Time) Resolution {
	res := Resolution{
		DisplayName: displayName,
		Timestamp:   stringutil.Timestamp(now),
	}
	if outputDir == "" {
		res.OutputDir = path.Join(g.cfg.OutputPrefix,
			fmt.Sprintf("output_%s_%s_%s", displayName, modelName, res.Timestamp))
		return res
	}
	res.OutputDir = outputDir
	res.ResumeArg = "--resume=" + path.Join(outputDir, checkpoint)
	return res
}

// GenerateSpec renders the custom-job document for a resolved submission: a
// single worker pool running the training container under the distributed
// launcher, with the fixed hyperparameter block and the resolved run directory
func (g *Generator) GenerateSpec(res Resolution) CustomJobSpec {
	args := make([]string, 0, 20)
	for _, hp := range g.hyperparameters() {
		args = append(args, fmt.Sprintf("--%s=%s", hp.name, hp.value))
	}
	args = append(args, "--output_dir="+res.OutputDir)
	if res.ResumeArg != "" {
		args = append(args, res.ResumeArg)
	}

	return CustomJobSpec{
		WorkerPoolSpecs: []WorkerPoolSpec{
			{
				MachineSpec: MachineSpec{
					MachineType:      g.cfg.MachineType,
					AcceleratorType:  g.cfg.AcceleratorType,
					AcceleratorCount: g.cfg.AcceleratorCount,
				},
				ReplicaCount: g.cfg.ReplicaCount,
				ContainerSpec: ContainerSpec{
					ImageURI: g.cfg.ImageURI,
					Env:      []EnvVar{allocatorEnv},
					Command: []string{
						"torchrun",
						"--nnodes=1",
						fmt.Sprintf("--nproc_per_node=%d", g.cfg.AcceleratorCount),
						"main.py",
					},
					Args: args,
				},
			},
		},
	}
}

// WriteSpec marshals the given document and writes it under the working
// directory. It returns the path of the written file.
//
// The file name embeds the display name and the resolution timestamp; two
// submissions within the same second and with the same display name collide,
// this is not guarded.
func (g *Generator) WriteSpec(spec CustomJobSpec, res Resolution) (string, error) {
	configDir := filepath.Join(g.cfg.WorkingDirectory, configDirName)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", errors.Wrapf(err, "failed to create the job configurations directory %q", configDir)
	}
	configPath := filepath.Join(configDir,
		fmt.Sprintf("google_config_%s_%s.yaml", res.DisplayName, res.Timestamp))
	b, err := yaml.Marshal(spec)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal the job configuration")
	}
	if err := ioutil.WriteFile(configPath, b, 0644); err != nil {
		return "", errors.Wrapf(err, "failed to write the job configuration to %q", configPath)
	}
	log.Debugf("Generated job configuration written to %q", configPath)
	return configPath, nil
}

// hyperparameters returns the fixed hyperparameter block of the trainer, with
// values overridden by the hyperparameters section of the configuration.
// Override keys that are not part of the fixed block are appended in lexical
// order and passed through to the trainer as-is.
func (g *Generator) hyperparameters() []hyperparameter {
	block := []hyperparameter{
		{"model", modelName},
		{"coco_path", g.cfg.CocoPath},
		{"epochs", "300"},
		{"lr_drop", "200"},
		{"dropout", "0.1"},
		{"batch_size", "2"},
		{"preprocessor_type", "fourier_pos_convnet"},
		{"num_latents", "256"},
		{"d_latents", "512"},
		{"depth", "26"},
		{"num_self_attends_per_block", "26"},
		{"interm_layer", "2"},
		{"lr_backbone", "0"},
		{"backbone", "resnet50"},
	}
	if len(g.cfg.Hyperparameters) == 0 {
		return block
	}
	known := make(map[string]bool, len(block))
	for i, hp := range block {
		known[hp.name] = true
		if g.cfg.Hyperparameters.Get(hp.name) != nil {
			block[i].value = g.cfg.Hyperparameters.GetString(hp.name)
		}
	}
	for _, name := range g.cfg.Hyperparameters.Keys() {
		if !known[name] {
			block = append(block, hyperparameter{name, g.cfg.Hyperparameters.GetString(name)})
		}
	}
	return block
}
