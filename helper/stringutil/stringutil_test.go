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

package stringutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimestamp(t *testing.T) {
	t.Parallel()
	ref := time.Date(2024, time.March, 7, 16, 5, 9, 0, time.UTC)
	assert.Equal(t, "2024-03-07_16-05-09", Timestamp(ref))
}

func TestGetLastElement(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		str       string
		separator string
		want      string
	}{
		{name: "TestJobResourceName", str: "projects/123/locations/europe-west4/customJobs/456", separator: "/", want: "456"},
		{name: "TestWithoutSeparator", str: "customJobs", separator: "/", want: ""},
		{name: "TestEmptyString", str: "", separator: ".", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetLastElement(tt.str, tt.separator); got != tt.want {
				t.Errorf("GetLastElement() = %v, want %v", got, tt.want)
			}
		})
	}
}
