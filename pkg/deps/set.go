// Package deps records the targets and input files of one compilation and
// renders them as a Makefile fragment, a binary dependency cache, or (via
// pkg/omnibor) a content-addressed provenance document.
package deps

import (
	"path/filepath"
	"strings"
)

const objectSuffix = ".o"

// Set is the per-compilation dependency record. It is created empty,
// populated incrementally by the front end, consumed once at the end of
// the compilation, and then discarded. It is not safe for concurrent use;
// one compilation owns one Set.
type Set struct {
	targets []string
	deps    []string
	vpath   []string
	modules []string

	moduleName string
	cmiName    string
	headerUnit bool

	// quoteLWM is the index of the first target that gets Make quoting
	// when written. Unquoted targets occupy the slots below it.
	quoteLWM int
}

// New returns an empty dependency set.
func New() *Set {
	return &Set{}
}

// Targets returns the target names in emission order.
func (s *Set) Targets() []string {
	return s.targets
}

// Deps returns the dependency paths in discovery order. Duplicates are
// preserved.
func (s *Set) Deps() []string {
	return s.deps
}

// Modules returns the names of imported compile modules.
func (s *Set) Modules() []string {
	return s.modules
}

// ModuleName returns the bound module target name, or "".
func (s *Set) ModuleName() string {
	return s.moduleName
}

// CMIName returns the compiled-interface file name of the module target,
// or "".
func (s *Set) CMIName() string {
	return s.cmiName
}

// IsHeaderUnit reports whether the bound module target is a header unit.
func (s *Set) IsHeaderUnit() bool {
	return s.headerUnit
}

// applyVpath strips the longest-standing applicable vpath prefix from t,
// checking the most recently added rule first, then removes any leading
// "./" components.
func (s *Set) applyVpath(t string) string {
	for i := len(s.vpath) - 1; i >= 0; i-- {
		prefix := s.vpath[i]
		if !strings.HasPrefix(t, prefix) {
			continue
		}
		rest := t[len(prefix):]
		if len(rest) == 0 || rest[0] != '/' {
			continue
		}
		// Do not simplify $(vpath)/../whatever.
		if strings.HasPrefix(rest, "/../") {
			continue
		}
		t = rest[1:]
		break
	}

	for strings.HasPrefix(t, "./") {
		t = t[2:]
		for strings.HasPrefix(t, "/") {
			t = t[1:]
		}
	}
	return t
}

// AddTarget records an output target. If quote is false the target is kept
// below the quoting low-water mark, swapping out the lowest quoted entry
// so unquoted entries stay first.
func (s *Set) AddTarget(t string, quote bool) {
	t = s.applyVpath(t)

	if !quote {
		if s.quoteLWM != len(s.targets) {
			lowest := s.targets[s.quoteLWM]
			s.targets[s.quoteLWM] = t
			t = lowest
		}
		s.quoteLWM++
	}

	s.targets = append(s.targets, t)
}

// AddDefaultTarget sets a target derived from src if no target has been
// given already. An empty src means stdin and yields "-"; otherwise the
// basename of src with its extension replaced by ".o" is added, quoted.
func (s *Set) AddDefaultTarget(src string) {
	if len(s.targets) != 0 {
		return
	}

	if src == "" {
		s.targets = append(s.targets, "-")
		return
	}

	base := filepath.Base(src)
	if ext := filepath.Ext(base); ext != "" {
		base = base[:len(base)-len(ext)]
	}
	s.AddTarget(base+objectSuffix, true)
}

// AddDep records a dependency path after vpath rewriting. Empty paths are
// a programming error.
func (s *Set) AddDep(t string) {
	if t == "" {
		panic("deps: empty dependency path")
	}
	s.deps = append(s.deps, s.applyVpath(t))
}

// AddVpath splits a colon-delimited vpath specification and records each
// element. Rules are applied most-recently-added first.
func (s *Set) AddVpath(vpath string) {
	for len(vpath) > 0 {
		i := strings.IndexByte(vpath, ':')
		if i < 0 {
			s.vpath = append(s.vpath, vpath)
			return
		}
		s.vpath = append(s.vpath, vpath[:i])
		vpath = vpath[i+1:]
	}
}

// AddModuleTarget binds the module target. There can only be one; a second
// call is a programming error.
func (s *Set) AddModuleTarget(module, cmi string, headerUnit bool) {
	if s.moduleName != "" {
		panic("deps: module target already set")
	}
	s.moduleName = module
	s.cmiName = cmi
	s.headerUnit = headerUnit
}

// AddModuleDep records the name of an imported compile module.
func (s *Set) AddModuleDep(module string) {
	s.modules = append(s.modules, module)
}
