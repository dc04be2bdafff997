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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ystia/trainsub/commands"
	"github.com/ystia/trainsub/config"
)

// The docker path must resolve from this package alone, other command
// packages may not be loaded
func TestDockerPathDefault(t *testing.T) {
	assert.Equal(t, config.DefaultDockerPath, commands.GetConfig().DockerPath)
}

func TestDockerPathFlag(t *testing.T) {
	require.NoError(t, ImageCmd.PersistentFlags().Set("docker-path", "/opt/docker/bin/docker"))
	assert.Equal(t, "/opt/docker/bin/docker", commands.GetConfig().DockerPath)
}

func TestResolveTag(t *testing.T) {
	imageTag = "eu.gcr.io/my-project/detr-perceiver:dev"
	tag, err := resolveTag()
	require.NoError(t, err)
	assert.Equal(t, "eu.gcr.io/my-project/detr-perceiver:dev", tag)

	imageTag = ""
	_, err = resolveTag()
	require.Error(t, err, "resolving a tag with no flag and no configured image must fail")
	assert.Contains(t, err.Error(), "--tag")
}
