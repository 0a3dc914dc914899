package controller

import (
	"bytes"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	m "buildsync.dev/pkg/buildsync/internal/model"
)

// SimpleUI implements UI by printing through the cobra command's stdout.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayToolInfo prints the resolved build tool and its version.
func (s *SimpleUI) DisplayToolInfo(bin, path, version string) {
	s.printf("%s: %s\n", bin, path)

	if version != "" {
		s.printf("version: %s\n", version)
	}
}

// DisplayScanSummary renders a per-builder match table followed by the
// sorted file lists.
func (s *SimpleUI) DisplayScanSummary(summaries []BuilderSummary) error {
	tableStr, total := renderScanTable(summaries)
	s.printf("\n%s", tableStr)

	for _, summary := range summaries {
		if len(summary.Files) == 0 {
			continue
		}

		s.printf("\n%s:\n", summary.Builder)

		for _, file := range summary.Files {
			s.printf("  - %s\n", file)
		}
	}

	s.printf("\nTotal: %d file(s) across %d builder(s)\n", total, len(summaries))

	return nil
}

func renderScanTable(summaries []BuilderSummary) (string, int) {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Builder", "Files"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	total := 0

	for _, summary := range summaries {
		table.Append([]string{summary.Builder, fmt.Sprintf("%d", len(summary.Files))})

		total += len(summary.Files)
	}

	table.Render()

	return tableBuffer.String(), total
}

// DisplayDiff prints a unified diff between the current and proposed document.
func (s *SimpleUI) DisplayDiff(name, before, after string) error {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: name,
		ToFile:   name + " (proposed)",
		Context:  3,
	})
	if err != nil {
		return fmt.Errorf("render diff: %w", err)
	}

	if diff == "" {
		s.printf("%s is already up to date\n", name)
		return nil
	}

	s.printf("%s", diff)

	return nil
}

// DisplaySyncComplete confirms that build.yaml was rewritten.
func (s *SimpleUI) DisplaySyncComplete(workDir string) {
	s.printf("Updated build.yaml in %s\n", workDir)
}

// DisplayStepStart announces a pipeline step.
func (s *SimpleUI) DisplayStepStart(step m.PipelineStep) {
	s.printf("==> %s\n", step.Description)
}

// DisplayStepDone reports a completed pipeline step with its duration.
func (s *SimpleUI) DisplayStepDone(step m.PipelineStep, took time.Duration) {
	s.printf("    done in %s\n", took.Round(time.Millisecond))
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
