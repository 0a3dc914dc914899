package domain

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"buildsync.dev/pkg/buildsync/internal/adapter"
	m "buildsync.dev/pkg/buildsync/internal/model"
)

// dartExt is the only file extension the scanner reads.
const dartExt = ".dart"

// partOfMarker introduces a Dart fragment declaration (`part of parent;`).
const partOfMarker = "part of "

// Scanner locates Dart sources whose content matches a detection rule.
type Scanner struct {
	fs adapter.SourceFSAdapter
}

// NewScanner constructs a Scanner over the provided filesystem adapter.
func NewScanner(fs adapter.SourceFSAdapter) *Scanner {
	return &Scanner{fs: fs}
}

// Scan walks the tree under root and returns the quoted, lexicographically
// sorted paths of .dart files matching rule. Files that declare
// `part of parent;` resolve to the parent path next to them. Entries that
// cannot be read are logged and skipped; only an unreadable root is fatal.
// Resolved paths are not deduplicated, so two fragments naming the same
// parent list it twice.
func (s *Scanner) Scan(root m.Path, rule m.DetectionRule) (m.ScanResult, error) {
	if _, err := s.fs.FileInfo(root); err != nil {
		return nil, fmt.Errorf("scan root %s: %w", root, err)
	}

	var matches []string

	cleanRoot := filepath.Clean(string(root))

	err := s.fs.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// filepath.Walk reports a root that stats fine but cannot be
			// enumerated by re-invoking the callback with the root path and
			// the readdir error. Skipping that would silently turn every
			// generate_for list into an empty one, so only non-root entries
			// get the warn-and-skip treatment.
			if filepath.Clean(path) == cleanRoot {
				return fmt.Errorf("scan root %s: %w", root, err)
			}

			slog.Warn("skipping unreadable entry", "path", path, "error", err)
			return nil
		}

		if info.IsDir() || filepath.Ext(path) != dartExt {
			return nil
		}

		content, readErr := s.fs.ReadFile(m.Path(path))
		if readErr != nil {
			slog.Warn("skipping unreadable file", "path", path, "error", readErr)
			return nil
		}

		if !rule.Pattern.Match(content) {
			return nil
		}

		resolved := resolvePartOf(m.Path(path), string(content))
		matches = append(matches, `"`+string(resolved)+`"`)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	// Sort on the quoted strings so output order is independent of the
	// filesystem enumeration order.
	sort.Strings(matches)

	return m.ScanResult(matches), nil
}

// resolvePartOf maps a fragment file to the compilation unit that owns it.
// Generation responsibility belongs to the declared parent, so the parent
// path is what ends up in build.yaml. A missing clause, or a malformed one
// without a terminating semicolon, resolves to the file itself.
func resolvePartOf(path m.Path, content string) m.Path {
	idx := strings.Index(content, partOfMarker)
	if idx < 0 {
		return path
	}

	rest := content[idx+len(partOfMarker):]

	end := strings.IndexByte(rest, ';')
	if end < 0 {
		return path
	}

	parent := strings.TrimSpace(rest[:end])

	return m.Path(filepath.Join(filepath.Dir(string(path)), parent))
}
