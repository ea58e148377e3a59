package deps

import (
	"bytes"
	"fmt"
	"io"
)

// MakeOpts controls Makefile fragment emission.
type MakeOpts struct {
	// Cols is the wrap column. Zero disables wrapping; any other value
	// below 34 is raised to 34.
	Cols uint
	// Phony appends an empty phony rule for every dependency after the
	// first, so deleted headers do not break rebuilds.
	Phony bool
	// Modules enables the C++ module rule block (CMI bindings, .PHONY
	// and order-only rules, CXX_IMPORTS accumulation).
	Modules bool
}

const moduleSuffix = ".c++m"

// quoteName applies Make quoting to name with trail appended. Escaping is
// best-effort: \n, %, *, ?, [ and ~ cannot be quoted portably in any Make.
// A space or tab preceded by 2N+1 backslashes represents N backslashes
// followed by the space; 2N backslashes represent N backslashes ending a
// name; backslashes in other contexts are not doubled.
func quoteName(name, trail string) string {
	buf := make([]byte, 0, len(name)+len(trail)+8)

	for _, s := range []string{name, trail} {
		slashes := 0
		for i := 0; i < len(s); i++ {
			c := s[i]
			switch c {
			case '\\':
				slashes++
			case '$':
				buf = append(buf, '$')
				slashes = 0
			case ' ', '\t':
				for ; slashes > 0; slashes-- {
					buf = append(buf, '\\')
				}
				buf = append(buf, '\\')
			case '#':
				buf = append(buf, '\\')
				slashes = 0
			default:
				slashes = 0
			}
			buf = append(buf, c)
		}
	}
	return string(buf)
}

// writeName writes name to buf with a leading space, wrapping with a
// backslash continuation when the next name would exceed colmax. It
// returns the new column.
func writeName(buf *bytes.Buffer, name string, col, colmax uint, quote bool, trail string) uint {
	if quote {
		name = quoteName(name, trail)
	}
	size := uint(len(name))

	if col != 0 {
		if colmax != 0 && col+size > colmax {
			buf.WriteString(" \\\n")
			col = 0
		}
		col++
		buf.WriteString(" ")
	}

	col += size
	buf.WriteString(name)
	return col
}

// writeVec writes every name in names, quoting those at or above quoteLWM.
func writeVec(buf *bytes.Buffer, names []string, col, colmax uint, quoteLWM int, trail string) uint {
	for i, name := range names {
		col = writeName(buf, name, col, colmax, i >= quoteLWM, trail)
	}
	return col
}

// WriteMake renders the set as a Makefile fragment.
func (s *Set) WriteMake(w io.Writer, opts MakeOpts) error {
	var buf bytes.Buffer

	colmax := opts.Cols
	if colmax != 0 && colmax < 34 {
		colmax = 34
	}

	if len(s.deps) > 0 {
		col := writeVec(&buf, s.targets, 0, colmax, s.quoteLWM, "")
		if opts.Modules && s.cmiName != "" {
			col = writeName(&buf, s.cmiName, col, colmax, true, "")
		}
		buf.WriteString(":")
		col++
		writeVec(&buf, s.deps, col, colmax, 0, "")
		buf.WriteString("\n")

		if opts.Phony {
			for _, dep := range s.deps[1:] {
				fmt.Fprintf(&buf, "%s:\n", quoteName(dep, ""))
			}
		}
	}

	if opts.Modules {
		s.writeModuleRules(&buf, colmax)
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// writeModuleRules emits the rules binding the module's compiled interface
// to its dependency graph.
func (s *Set) writeModuleRules(buf *bytes.Buffer, colmax uint) {
	if len(s.modules) > 0 {
		col := writeVec(buf, s.targets, 0, colmax, s.quoteLWM, "")
		if s.cmiName != "" {
			col = writeName(buf, s.cmiName, col, colmax, true, "")
		}
		buf.WriteString(":")
		col++
		writeVec(buf, s.modules, col, colmax, 0, moduleSuffix)
		buf.WriteString("\n")
	}

	if s.moduleName != "" && s.cmiName != "" {
		// module-name.c++m : cmi-name
		col := writeName(buf, s.moduleName, 0, colmax, true, moduleSuffix)
		buf.WriteString(":")
		col++
		writeName(buf, s.cmiName, col, colmax, true, "")
		buf.WriteString("\n")

		buf.WriteString(".PHONY:")
		writeName(buf, s.moduleName, uint(len(".PHONY:")), colmax, true, moduleSuffix)
		buf.WriteString("\n")

		if !s.headerUnit {
			// An order-only dependency: cmi-name :| first-target.
			col = writeName(buf, s.cmiName, 0, colmax, true, "")
			buf.WriteString(":|")
			col++
			writeName(buf, s.targets[0], col, colmax, true, "")
			buf.WriteString("\n")
		}
	}

	if len(s.modules) > 0 {
		buf.WriteString("CXX_IMPORTS +=")
		writeVec(buf, s.modules, uint(len("CXX_IMPORTS +=")), colmax, 0, moduleSuffix)
		buf.WriteString("\n")
	}
}
