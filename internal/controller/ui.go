// Package controller provides output adapters for presenting buildsync runs.
package controller

import (
	"time"

	m "buildsync.dev/pkg/buildsync/internal/model"
)

// BuilderSummary groups the scan matches for one builder section.
type BuilderSummary struct {
	Builder string
	Files   []string
}

// UI defines how run progress and results are presented to the user.
// Implementations can use different output methods.
type UI interface {
	DisplayToolInfo(bin, path, version string)
	DisplayScanSummary(summaries []BuilderSummary) error
	DisplayDiff(name, before, after string) error
	DisplaySyncComplete(workDir string)
	DisplayStepStart(step m.PipelineStep)
	DisplayStepDone(step m.PipelineStep, took time.Duration)
}
