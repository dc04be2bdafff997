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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ystia/trainsub/commands"
)

// executeCommand runs the full commands tree with the given arguments and
// returns the resulting error, as main would see it
func executeCommand(args ...string) error {
	commands.RootCmd.SetArgs(args)
	return commands.RootCmd.Execute()
}

func TestSubmitWithoutNameFails(t *testing.T) {
	testResetConfig()

	err := executeCommand("jobs", "submit")

	require.Error(t, err, "submitting without a display name must fail")
	assert.Contains(t, err.Error(), "--name")
}

func TestRenderWithoutNameFails(t *testing.T) {
	testResetConfig()

	err := executeCommand("jobs", "render")

	require.Error(t, err, "rendering without a display name must fail")
	assert.Contains(t, err.Error(), "--name")
}

func TestSubmitUnknownFlagFails(t *testing.T) {
	testResetConfig()

	err := executeCommand("jobs", "submit", "--bogus-flag")

	require.Error(t, err)
	// The diagnostic names the offending token
	assert.Contains(t, err.Error(), "--bogus-flag")
}
