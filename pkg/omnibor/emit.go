package omnibor

import (
	"github.com/sirupsen/logrus"

	"github.com/odvcencio/bomdep/pkg/deps"
	"github.com/odvcencio/bomdep/pkg/gitoid"
)

// Options configures one emission.
type Options struct {
	// ResultDir is where the objects/ and metadata/ trees are rooted.
	// Empty means the current directory. Relative and absolute paths
	// are both accepted; missing intermediate segments are created.
	ResultDir string
	// OutFile is the compilation's resolved output path, or
	// deps.OutputNotAvailable when the output does not materialize as a
	// file. See deps.Output.Resolve.
	OutFile string
	// Logger, when non-nil, receives best-effort warnings about skipped
	// dependencies and failed writes. Nil keeps the emission silent.
	Logger *logrus.Logger
}

// Emit builds the document for the set's dependencies, persists it in the
// object store, and writes the metadata sidecar. It returns the
// document's gitoid, or the empty gitoid if the algorithm selector is
// invalid or either artifact could not be written. Document and metadata
// are attempted independently; no failure here ever propagates as an
// error, because provenance recording is a best-effort side channel of
// the build.
func Emit(s *deps.Set, algo gitoid.Algorithm, opts Options) gitoid.Gitoid {
	doc, err := Build(algo, s.Deps(), opts.Logger)
	if err != nil {
		warnf(opts.Logger, "omnibor: %v", err)
		return ""
	}

	store := NewStore(opts.ResultDir)
	failed := false

	if err := store.Write(doc); err != nil {
		warnf(opts.Logger, "omnibor: document not recorded: %v", err)
		failed = true
	}
	if err := store.WriteMetadata(doc, opts.OutFile); err != nil {
		warnf(opts.Logger, "omnibor: metadata not recorded: %v", err)
		failed = true
	}

	if failed {
		return ""
	}
	return doc.Gitoid()
}

// EmitSHA1 emits with the 160-bit digest.
func EmitSHA1(s *deps.Set, opts Options) gitoid.Gitoid {
	return Emit(s, gitoid.SHA1, opts)
}

// EmitSHA256 emits with the 256-bit digest.
func EmitSHA256(s *deps.Set, opts Options) gitoid.Gitoid {
	return Emit(s, gitoid.SHA256, opts)
}
