package deps

import "path/filepath"

// Mode is the compilation mode detected from the driver's recorded
// options.
type Mode int

const (
	// ModeLink is the default: the driver links a full program.
	ModeLink Mode = iota
	// ModeCompile is -c: compile each input to an object file.
	ModeCompile
	// ModeAssemble is -S: compile each input to an assembly file.
	ModeAssemble
	// ModePreprocess is -E: output goes to stdout, no file materializes.
	ModePreprocess
)

// OutputNotAvailable is the sentinel recorded when the compilation output
// does not materialize as a file.
const OutputNotAvailable = "not available"

// Output is the result of parsing a driver option list.
type Output struct {
	// Explicit is the path given with -o, or "".
	Explicit string
	Mode     Mode
}

// ParseOptions scans an already-tokenized driver option list for an
// explicit output path and the compilation mode. Tokens are expected
// unquoted. An -o at the end of the input is ignored, as the GCC driver
// does.
func ParseOptions(tokens []string) Output {
	out := Output{Mode: ModeLink}
	var preprocess, assemble, compile bool

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch {
		case tok == "-o":
			if i+1 < len(tokens) {
				i++
				out.Explicit = tokens[i]
			}
		case len(tok) > 2 && tok[:2] == "-o":
			out.Explicit = tok[2:]
		case tok == "-E":
			preprocess = true
		case tok == "-S":
			assemble = true
		case tok == "-c":
			compile = true
		}
	}

	switch {
	case preprocess:
		out.Mode = ModePreprocess
	case assemble:
		out.Mode = ModeAssemble
	case compile:
		out.Mode = ModeCompile
	}
	return out
}

// Resolve returns the output file the compilation produces, given the
// input files. An explicit -o path wins; preprocess-only mode yields the
// OutputNotAvailable sentinel; single-file modes derive the name from the
// first input; otherwise the linked default applies.
func (o Output) Resolve(inputs []string) string {
	if o.Explicit != "" {
		return o.Explicit
	}

	switch o.Mode {
	case ModePreprocess:
		return OutputNotAvailable
	case ModeCompile, ModeAssemble:
		if len(inputs) == 0 {
			return OutputNotAvailable
		}
		base := filepath.Base(inputs[0])
		if ext := filepath.Ext(base); ext != "" {
			base = base[:len(base)-len(ext)]
		}
		if o.Mode == ModeCompile {
			return base + ".o"
		}
		return base + ".s"
	default:
		return "a.out"
	}
}
