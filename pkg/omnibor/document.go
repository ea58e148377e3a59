// Package omnibor builds and persists OmniBOR provenance documents: a
// content-addressed manifest of the gitoids of every input that went into
// a compiled output, stored in a sharded object tree with a metadata
// sidecar per output. Every failure degrades to "provenance not
// recorded"; nothing here may abort the host build.
package omnibor

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/odvcencio/bomdep/pkg/gitoid"
)

// Record pairs a dependency's path (as recorded in the dependency set)
// with its gitoid.
type Record struct {
	Path string
	ID   gitoid.Gitoid
}

// Document is the manifest of one compilation's dependencies. Records are
// sorted by gitoid, which makes the serialized form, and therefore the
// document's own gitoid, independent of discovery order.
type Document struct {
	Algorithm gitoid.Algorithm
	Records   []Record
}

// Build hashes every dependency path and assembles the sorted document.
// Unreadable dependencies are skipped, not fatal: the document still
// covers every input that could be hashed. Only an invalid algorithm
// selector is an error.
func Build(algo gitoid.Algorithm, depPaths []string, log *logrus.Logger) (*Document, error) {
	if !algo.Valid() {
		return nil, fmt.Errorf("omnibor: invalid algorithm selector %d", int(algo))
	}

	records := make([]Record, 0, len(depPaths))
	for _, path := range depPaths {
		f, err := os.Open(path)
		if err != nil {
			warnf(log, "omnibor: skipping dependency: %v", err)
			continue
		}
		id, err := gitoid.HashFile(algo, f)
		f.Close()
		if err != nil {
			warnf(log, "omnibor: skipping dependency: %v", err)
			continue
		}
		records = append(records, Record{Path: path, ID: id})
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].ID != records[j].ID {
			return records[i].ID < records[j].ID
		}
		return records[i].Path < records[j].Path
	})

	return &Document{Algorithm: algo, Records: records}, nil
}

// Bytes serializes the document: the algorithm tag line, then one
// "blob <hex-gitoid>" line per sorted record.
func (d *Document) Bytes() []byte {
	var b strings.Builder
	b.WriteString(d.Algorithm.Tag())
	b.WriteString("\n")
	for _, rec := range d.Records {
		b.WriteString("blob ")
		b.WriteString(string(rec.ID))
		b.WriteString("\n")
	}
	return []byte(b.String())
}

// Gitoid returns the document's own content identifier.
func (d *Document) Gitoid() gitoid.Gitoid {
	return gitoid.HashBytes(d.Algorithm, d.Bytes())
}

func warnf(log *logrus.Logger, format string, args ...any) {
	if log != nil {
		log.Warnf(format, args...)
	}
}
