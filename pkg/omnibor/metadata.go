package omnibor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/odvcencio/bomdep/pkg/deps"
)

// WriteMetadata writes the sidecar recording the resolved output path and
// every input's gitoid, in the document's sorted order, at
// metadata/gnu/<algo-dir>/<basename(outFile)>.metadata. The build_cmd
// line is a placeholder filled in by tooling that knows the full driver
// invocation.
func (s *Store) WriteMetadata(d *Document, outFile string) error {
	root, handles, err := s.ensureRoot()
	if err != nil {
		return fmt.Errorf("metadata: root %q: %w", s.root, err)
	}
	defer handles.Close()

	path := root
	for _, level := range []string{"metadata", "gnu", d.Algorithm.DirName()} {
		path = filepath.Join(path, level)
		f, err := ensureDir(path)
		if err != nil {
			return fmt.Errorf("metadata: %w", err)
		}
		handles.track(f)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "outfile: %s\n", resolvedPath(outFile))
	for _, rec := range d.Records {
		fmt.Fprintf(&b, "infile: %s path: %s\n", rec.ID, resolvedPath(rec.Path))
	}
	b.WriteString("build_cmd:\n")

	dest := filepath.Join(path, filepath.Base(outFile)+".metadata")
	if err := os.WriteFile(dest, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("metadata: write %s: %w", dest, err)
	}
	return nil
}

// resolvedPath makes p absolute. The "not available" sentinel and paths
// that cannot be resolved pass through unchanged.
func resolvedPath(p string) string {
	if p == deps.OutputNotAvailable {
		return p
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}
