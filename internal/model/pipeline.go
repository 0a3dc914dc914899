package model

import "time"

// PipelineStep describes one external build-tool invocation.
type PipelineStep struct {
	Description string
	Args        []string
}

// CommandResult captures the outcome of one external invocation.
type CommandResult struct {
	Stdout   string
	Stderr   string
	Duration time.Duration
}
