package domain

import m "buildsync.dev/pkg/buildsync/internal/model"

// BuildPipeline returns the fixed sequence of external invocations run after
// build.yaml has been rewritten. Steps execute in order and the first
// non-zero exit aborts the rest.
func BuildPipeline() []m.PipelineStep {
	return []m.PipelineStep{
		{Description: "clean build outputs", Args: []string{"clean"}},
		{Description: "upgrade dependencies", Args: []string{"pub", "upgrade"}},
		{Description: "fetch dependencies", Args: []string{"pub", "get"}},
		{Description: "run code generation", Args: []string{"pub", "run", "build_runner", "build", "--delete-conflicting-outputs"}},
	}
}
