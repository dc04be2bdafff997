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
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/blang/semver"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ystia/trainsub/config"
	"github.com/ystia/trainsub/helper/executil"
	"github.com/ystia/trainsub/log"
)

// minGCloudVersion is the lowest Google Cloud SDK version known to support the
// "ai custom-jobs" command group
var minGCloudVersion = semver.MustParse("319.0.0")

// sdkVersionKey is the entry of the version report holding the SDK version
const sdkVersionKey = "Google Cloud SDK"

// submissionLabel is the label attached to every created job. It carries a
// generated submission identifier and is purely informational: the service
// does not dedupe on it, resubmitting the same job creates a second one.
const submissionLabel = "trainsub-submission"

// runner abstracts the execution of the Google Cloud CLI so that it can be
// stubbed in tests
type runner interface {
	// output runs the CLI with the given arguments and returns its standard output
	output(ctx context.Context, arg ...string) ([]byte, error)
	// run runs the CLI with the given arguments, streaming its output to the
	// current process streams
	run(ctx context.Context, arg ...string) error
}

type gcloudRunner struct {
	executable string
}

func (r gcloudRunner) output(ctx context.Context, arg ...string) ([]byte, error) {
	cmd := executil.Command(ctx, r.executable, arg...)
	cmd.Stderr = os.Stderr
	return cmd.Output()
}

func (r gcloudRunner) run(ctx context.Context, arg ...string) error {
	cmd := executil.Command(ctx, r.executable, arg...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Dispatcher drives the Google Cloud CLI to create and manage custom training jobs.
//
// It does not retry and does not interpret CLI failures: any error of the
// external tool is wrapped with context and propagated to the caller.
type Dispatcher struct {
	cfg    config.Configuration
	runner runner
}

// NewDispatcher creates a Dispatcher for the given configuration
func NewDispatcher(cfg config.Configuration) *Dispatcher {
	return &Dispatcher{cfg: cfg, runner: gcloudRunner{executable: cfg.GCloudPath}}
}

// CheckVersion verifies that the installed Google Cloud SDK is recent enough
// to handle custom jobs
func (d *Dispatcher) CheckVersion(ctx context.Context) error {
	out, err := d.runner.output(ctx, "version", "--format=json")
	if err != nil {
		return errors.Wrap(err, "failed to check the Google Cloud SDK version, is the gcloud CLI installed?")
	}
	var components map[string]string
	if err := json.Unmarshal(out, &components); err != nil {
		return errors.Wrap(err, "failed to parse the Google Cloud SDK version report")
	}
	raw, ok := components[sdkVersionKey]
	if !ok {
		return errors.Errorf("no %q entry in the Google Cloud SDK version report", sdkVersionKey)
	}
	version, err := semver.ParseTolerant(raw)
	if err != nil {
		return errors.Wrapf(err, "unexpected Google Cloud SDK version %q", raw)
	}
	if version.LT(minGCloudVersion) {
		return errors.Errorf("Google Cloud SDK version %s is not supported, expecting at least %s", version, minGCloudVersion)
	}
	log.Debugf("Using Google Cloud SDK version %s", version)
	return nil
}

// Create submits the job configuration written at configPath and returns the
// resource name of the created job.
//
// Creating a job is not idempotent: two calls with the same display name
// create two distinct jobs with real cost and execution consequences. The
// configuration file is left in place whether the call succeeds or not.
func (d *Dispatcher) Create(ctx context.Context, displayName, configPath string) (string, error) {
	submissionID := uuid.NewV4().String()
	log.Debugf("Submitting job %q with submission id %s", displayName, submissionID)
	out, err := d.runner.output(ctx,
		"ai", "custom-jobs", "create",
		"--region="+d.cfg.Region(),
		"--display-name="+displayName,
		"--config="+configPath,
		"--labels="+submissionLabel+"="+submissionID,
		"--format=value(name)")
	if err != nil {
		return "", errors.Wrapf(err, "failed to create the custom job %q in region %q", displayName, d.cfg.Region())
	}
	return strings.TrimSpace(string(out)), nil
}

// List returns the custom jobs of a single region
func (d *Dispatcher) List(ctx context.Context, region string) ([]CustomJob, error) {
	out, err := d.runner.output(ctx,
		"ai", "custom-jobs", "list",
		"--region="+region,
		"--format=json")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list custom jobs in region %q", region)
	}
	var jobs []CustomJob
	if err := json.Unmarshal(out, &jobs); err != nil {
		return nil, errors.Wrapf(err, "failed to parse the custom jobs listing of region %q", region)
	}
	for i := range jobs {
		jobs[i].Region = region
	}
	return jobs, nil
}

// ListAll returns the custom jobs of all configured regions, querying regions
// concurrently
func (d *Dispatcher) ListAll(ctx context.Context) ([]CustomJob, error) {
	regionJobs := make([][]CustomJob, len(d.cfg.Regions))
	g, gCtx := errgroup.WithContext(ctx)
	for i, region := range d.cfg.Regions {
		i, region := i, region
		g.Go(func() error {
			jobs, err := d.List(gCtx, region)
			if err != nil {
				return err
			}
			regionJobs[i] = jobs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var all []CustomJob
	for _, jobs := range regionJobs {
		all = append(all, jobs...)
	}
	return all, nil
}

// Describe returns the custom job with the given identifier. The identifier
// may be either the numeric job id or the full job resource name.
func (d *Dispatcher) Describe(ctx context.Context, jobID string) (CustomJob, error) {
	var job CustomJob
	out, err := d.runner.output(ctx,
		"ai", "custom-jobs", "describe", jobID,
		"--region="+d.cfg.Region(),
		"--format=json")
	if err != nil {
		return job, errors.Wrapf(err, "failed to describe the custom job %q", jobID)
	}
	if err := json.Unmarshal(out, &job); err != nil {
		return job, errors.Wrapf(err, "failed to parse the description of the custom job %q", jobID)
	}
	job.Region = d.cfg.Region()
	return job, nil
}

// Cancel requests the cancellation of the custom job with the given identifier
func (d *Dispatcher) Cancel(ctx context.Context, jobID string) error {
	err := d.runner.run(ctx,
		"ai", "custom-jobs", "cancel", jobID,
		"--region="+d.cfg.Region())
	return errors.Wrapf(err, "failed to cancel the custom job %q", jobID)
}
