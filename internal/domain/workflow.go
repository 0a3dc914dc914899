package domain

import (
	"fmt"
	"log/slog"

	"buildsync.dev/pkg/buildsync/internal/adapter"
	"buildsync.dev/pkg/buildsync/internal/controller"
	m "buildsync.dev/pkg/buildsync/internal/model"
)

// Workflow drives the buildsync commands end to end.
type Workflow interface {
	// Sync probes the build tool, rewrites build.yaml, and runs the build
	// pipeline. Dry runs only print the proposed build.yaml diff.
	Sync(args SyncArgs) error

	// Scan reports the annotated files each builder section would receive,
	// without writing anything.
	Scan(args ScanArgs) error

	// Doctor resolves the build tool on PATH and reports its version.
	Doctor(bin string) error
}

// SyncArgs carries the parameters of one sync run.
type SyncArgs struct {
	WorkDir    m.Path
	FlutterBin string
	DryRun     bool
	NoBuild    bool
}

// ScanArgs carries the parameters of one scan run.
type ScanArgs struct {
	WorkDir m.Path
}

type workflow struct {
	fs       adapter.SourceFSAdapter
	runner   adapter.ToolRunnerAdapter
	ui       controller.UI
	registry *Registry
	scanner  *Scanner
	syncer   *Syncer
}

// NewWorkflow creates a Workflow instance with the provided dependencies.
func NewWorkflow(
	fs adapter.SourceFSAdapter,
	runner adapter.ToolRunnerAdapter,
	ui controller.UI,
	registry *Registry,
	scanner *Scanner,
	syncer *Syncer,
) Workflow {
	return &workflow{
		fs:       fs,
		runner:   runner,
		ui:       ui,
		registry: registry,
		scanner:  scanner,
		syncer:   syncer,
	}
}

// Sync implements the full run. The tool probe happens before build.yaml is
// even read, so a missing Flutter SDK fails fast without touching the file.
func (w *workflow) Sync(args SyncArgs) error {
	if args.DryRun {
		return w.dryRun(args.WorkDir)
	}

	path, version, err := w.runner.Probe(args.FlutterBin)
	if err != nil {
		slog.Error("build tool probe failed", "bin", args.FlutterBin, "error", err)
		return err
	}

	slog.Info("build tool resolved", "bin", args.FlutterBin, "path", path, "version", version)
	w.ui.DisplayToolInfo(args.FlutterBin, path, version)

	if err := w.syncer.Sync(args.WorkDir); err != nil {
		slog.Error("failed to regenerate build.yaml", "error", err)
		return err
	}

	w.ui.DisplaySyncComplete(string(args.WorkDir))

	if args.NoBuild {
		return nil
	}

	return w.runPipeline(args)
}

func (w *workflow) runPipeline(args SyncArgs) error {
	for _, step := range BuildPipeline() {
		w.ui.DisplayStepStart(step)
		slog.Info("running pipeline step", "step", step.Description)

		result, err := w.runner.Run(string(args.WorkDir), args.FlutterBin, step.Args)
		if err != nil {
			slog.Error("pipeline step failed", "step", step.Description, "error", err)
			return fmt.Errorf("%s: %w", step.Description, err)
		}

		w.ui.DisplayStepDone(step, result.Duration)
	}

	return nil
}

// dryRun renders the document a real run would write and shows the diff
// against the current file. Nothing is written and nothing is executed.
func (w *workflow) dryRun(workDir m.Path) error {
	current, err := w.fs.ReadFile(w.fs.JoinPath(string(workDir), BuildFileName))
	if err != nil {
		current = nil
	}

	doc, err := w.syncer.Load(workDir)
	if err != nil {
		return err
	}

	if err := w.syncer.Patch(workDir, doc); err != nil {
		return err
	}

	rendered, err := w.syncer.Render(doc)
	if err != nil {
		return err
	}

	proposed := NormalizeText(string(rendered), workDir)

	return w.ui.DisplayDiff(BuildFileName, string(current), proposed)
}

// Scan implements the read-only scan report.
func (w *workflow) Scan(args ScanArgs) error {
	summaries := make([]controller.BuilderSummary, 0, len(w.registry.Kinds()))

	for _, kind := range w.registry.Kinds() {
		rule, ok := w.registry.RuleFor(kind)
		if !ok {
			continue
		}

		files, err := w.scanner.Scan(args.WorkDir, rule)
		if err != nil {
			slog.Error("scan failed", "builder", rule.BuilderKey, "error", err)
			return err
		}

		summaries = append(summaries, controller.BuilderSummary{
			Builder: rule.BuilderKey,
			Files:   files,
		})
	}

	return w.ui.DisplayScanSummary(summaries)
}

// Doctor implements the availability check.
func (w *workflow) Doctor(bin string) error {
	path, version, err := w.runner.Probe(bin)
	if err != nil {
		slog.Error("build tool probe failed", "bin", bin, "error", err)
		return err
	}

	w.ui.DisplayToolInfo(bin, path, version)

	return nil
}
