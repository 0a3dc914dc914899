package domain

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"buildsync.dev/pkg/buildsync/internal/adapter"
	m "buildsync.dev/pkg/buildsync/internal/model"
)

// BuildFileName is the fixed name of the configuration document.
const BuildFileName = "build.yaml"

// ErrBuildFileNotFound reports a missing build.yaml in the working directory.
var ErrBuildFileNotFound = errors.New("build.yaml not found")

// Syncer loads build.yaml, replaces its generate_for lists with fresh scan
// results, and persists the document with cosmetic normalization.
type Syncer struct {
	fs       adapter.SourceFSAdapter
	scanner  *Scanner
	registry *Registry
}

// NewSyncer constructs a Syncer with the provided dependencies.
func NewSyncer(fs adapter.SourceFSAdapter, scanner *Scanner, registry *Registry) *Syncer {
	return &Syncer{fs: fs, scanner: scanner, registry: registry}
}

// Sync rewrites workDir/build.yaml in place from a fresh scan of workDir.
func (s *Syncer) Sync(workDir m.Path) error {
	slog.Info("regenerating build.yaml", "dir", workDir)

	doc, err := s.Load(workDir)
	if err != nil {
		return err
	}

	if err := s.Patch(workDir, doc); err != nil {
		return err
	}

	if err := s.Save(workDir, doc); err != nil {
		return err
	}

	if err := s.Normalize(workDir); err != nil {
		return err
	}

	slog.Info("build.yaml updated", "dir", workDir)

	return nil
}

// Load reads and parses workDir/build.yaml into a node tree.
func (s *Syncer) Load(workDir m.Path) (*yaml.Node, error) {
	path := s.fs.JoinPath(string(workDir), BuildFileName)

	raw, err := s.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w in %s", ErrBuildFileNotFound, workDir)
		}

		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return &doc, nil
}

// Patch replaces every pre-declared generate_for list in doc with a fresh
// scan of workDir. Builder sections absent from the document are skipped
// silently; the document's structure is only ever filled in, never extended.
func (s *Syncer) Patch(workDir m.Path, doc *yaml.Node) error {
	for _, kind := range s.registry.Kinds() {
		rule, ok := s.registry.RuleFor(kind)
		if !ok {
			continue
		}

		files, err := s.scanner.Scan(workDir, rule)
		if err != nil {
			return err
		}

		target := lookupPath(doc, "targets", "$default", "builders", rule.BuilderKey, "generate_for")
		if target == nil {
			slog.Debug("builder section not declared, skipping", "builder", rule.BuilderKey)
			continue
		}

		*target = sequenceOf(files)

		slog.Info("updated generate_for", "builder", rule.BuilderKey, "files", len(files))
	}

	return nil
}

// Save serializes the whole document back to workDir/build.yaml in one write.
func (s *Syncer) Save(workDir m.Path, doc *yaml.Node) error {
	raw, err := s.Render(doc)
	if err != nil {
		return err
	}

	path := s.fs.JoinPath(string(workDir), BuildFileName)
	if err := s.fs.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}

// Render serializes doc with the two-space indentation build_runner
// projects conventionally use.
func (s *Syncer) Render(doc *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("serialize %s: %w", BuildFileName, err)
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("serialize %s: %w", BuildFileName, err)
	}

	return buf.Bytes(), nil
}

// Normalize applies the cosmetic passes over the freshly written build.yaml.
// It is textual, not structural, and idempotent.
func (s *Syncer) Normalize(workDir m.Path) error {
	path := s.fs.JoinPath(string(workDir), BuildFileName)

	raw, err := s.fs.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	normalized := NormalizeText(string(raw), workDir)

	if err := s.fs.WriteFile(path, []byte(normalized), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}

// NormalizeText strips the quote characters the serializer wraps around
// scalar strings, drops the absolute working-directory prefix for brevity,
// and normalizes path separators to forward slashes.
func NormalizeText(text string, workDir m.Path) string {
	abs, err := filepath.Abs(string(workDir))
	if err != nil {
		abs = string(workDir)
	}

	text = strings.ReplaceAll(text, "'", "")
	text = strings.ReplaceAll(text, abs+string(os.PathSeparator), "")

	return strings.ReplaceAll(text, string(os.PathSeparator), "/")
}

// lookupPath walks nested mapping keys, returning nil as soon as any segment
// is absent or the current node is not a mapping. Callers treat nil as "leave
// the document alone".
func lookupPath(node *yaml.Node, keys ...string) *yaml.Node {
	if node != nil && node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}

	for _, key := range keys {
		node = mappingValue(node, key)
		if node == nil {
			return nil
		}
	}

	return node
}

// mappingValue returns the value node stored under key, or nil.
func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}

	return nil
}

// sequenceOf builds a sequence node of single-quoted scalars. Single quoting
// is what the serializer would pick anyway for values that embed double
// quotes; the normalization pass strips those quotes afterwards.
func sequenceOf(values m.ScanResult) yaml.Node {
	content := make([]*yaml.Node, 0, len(values))
	for _, v := range values {
		content = append(content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Style: yaml.SingleQuotedStyle,
			Value: v,
		})
	}

	return yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: content}
}
