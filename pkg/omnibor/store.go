package omnibor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store persists documents beneath a result directory using a 2-character
// fan-out layout: objects/<algo-dir>/ab/cdef0123...
//
// The tree is shared by independent, concurrent compiler invocations
// without locking: "directory already exists" is success, and object
// names are content-derived, so racing writers always agree on the final
// bytes.
type Store struct {
	root string // "" means the current directory
}

// NewStore creates a Store rooted at root. Directories are created lazily
// on first write.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// ObjectPath returns the filesystem path a document with the given gitoid
// is stored at.
func (s *Store) ObjectPath(d *Document) string {
	id := d.Gitoid()
	root := s.root
	if root == "" {
		root = "."
	}
	return filepath.Join(root, "objects", d.Algorithm.DirName(), string(id[:2]), string(id[2:]))
}

// dirList tracks directories opened while walking a path so every handle
// is released on success and failure alike. Some platforms need a valid
// handle at each level to create the next, so the handles stay open for
// the duration of the walk.
type dirList struct {
	open []*os.File
}

func (l *dirList) track(f *os.File) {
	l.open = append(l.open, f)
}

// Close releases every tracked handle, most recent first.
func (l *dirList) Close() {
	for i := len(l.open) - 1; i >= 0; i-- {
		l.open[i].Close()
	}
	l.open = nil
}

// ensureDir opens path as a directory, creating it first if missing.
// A concurrent creator winning the race is fine: EEXIST is success.
func ensureDir(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err == nil {
		return f, nil
	}
	if err := os.Mkdir(path, 0o755); err != nil && !os.IsExist(err) {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	f, err = os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

// ensureRoot walks the result directory segment by segment, creating
// missing components, and returns the effective root plus the list of
// opened handles. The caller must Close the list on every path.
func (s *Store) ensureRoot() (string, *dirList, error) {
	handles := &dirList{}
	if s.root == "" {
		return ".", handles, nil
	}

	path := ""
	if filepath.IsAbs(s.root) {
		path = string(filepath.Separator)
		f, err := os.Open(path)
		if err != nil {
			return "", nil, fmt.Errorf("open %s: %w", path, err)
		}
		handles.track(f)
	}

	for _, seg := range strings.Split(filepath.ToSlash(s.root), "/") {
		if seg == "" {
			continue
		}
		path = filepath.Join(path, seg)
		f, err := ensureDir(path)
		if err != nil {
			handles.Close()
			return "", nil, err
		}
		handles.track(f)
	}

	return path, handles, nil
}

// Write persists the document under its canonical sharded path, creating
// every missing directory level on demand. The final write is a plain
// truncate-create-write: the destination name is content-derived, so a
// concurrent writer can only ever race with byte-identical contents.
func (s *Store) Write(d *Document) error {
	id := d.Gitoid()

	root, handles, err := s.ensureRoot()
	if err != nil {
		return fmt.Errorf("object store: root %q: %w", s.root, err)
	}
	defer handles.Close()

	path := root
	for _, level := range []string{"objects", d.Algorithm.DirName(), string(id[:2])} {
		path = filepath.Join(path, level)
		f, err := ensureDir(path)
		if err != nil {
			return fmt.Errorf("object store: %w", err)
		}
		handles.track(f)
	}

	dest := filepath.Join(path, string(id[2:]))
	if err := os.WriteFile(dest, d.Bytes(), 0o644); err != nil {
		return fmt.Errorf("object store: write %s: %w", dest, err)
	}
	return nil
}
