// Package gitoid computes git-convention content identifiers ("gitoids")
// as used by the OmniBOR specification: the digest of
// "blob <decimal length>\0" followed by the content itself.
package gitoid

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
)

// Algorithm selects the digest used for gitoid computation.
type Algorithm int

const (
	SHA1 Algorithm = iota
	SHA256
)

// Valid reports whether a is one of the two supported algorithms.
func (a Algorithm) Valid() bool {
	return a == SHA1 || a == SHA256
}

// Size returns the digest length in bytes.
func (a Algorithm) Size() int {
	if a == SHA1 {
		return sha1.Size
	}
	return sha256.Size
}

// New returns a fresh hash.Hash for the algorithm.
func (a Algorithm) New() hash.Hash {
	if a == SHA1 {
		return sha1.New()
	}
	return sha256.New()
}

// Tag returns the document header line identifying the algorithm.
func (a Algorithm) Tag() string {
	if a == SHA1 {
		return "gitoid:blob:sha1"
	}
	return "gitoid:blob:sha256"
}

// DirName returns the object-store directory component for the algorithm.
func (a Algorithm) DirName() string {
	if a == SHA1 {
		return "gitoid_blob_sha1"
	}
	return "gitoid_blob_sha256"
}

func (a Algorithm) String() string {
	if a == SHA1 {
		return "sha1"
	}
	return "sha256"
}

// Gitoid is a lowercase hex-encoded digest: 40 characters for SHA1,
// 64 for SHA256. The zero value marks "no gitoid" / failure.
type Gitoid string

// IsZero reports whether g is the empty sentinel.
func (g Gitoid) IsZero() bool {
	return g == ""
}

// Raw decodes the hex form back into digest bytes.
func (g Gitoid) Raw() ([]byte, error) {
	return hex.DecodeString(string(g))
}

// HashBytes computes the gitoid of an in-memory buffer.
func HashBytes(a Algorithm, data []byte) Gitoid {
	h := a.New()
	fmt.Fprintf(h, "blob %d\x00", len(data))
	h.Write(data)
	return Gitoid(hex.EncodeToString(h.Sum(nil)))
}

// HashFile computes the gitoid of an open file. The length is taken by
// seeking to the end; the file is then rewound and streamed through the
// digest. A nil file or a failed seek is an error for this input only.
func HashFile(a Algorithm, f *os.File) (Gitoid, error) {
	if f == nil {
		return "", fmt.Errorf("gitoid: nil file")
	}
	size, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return "", fmt.Errorf("gitoid %s: size: %w", f.Name(), err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("gitoid %s: rewind: %w", f.Name(), err)
	}

	h := a.New()
	fmt.Fprintf(h, "blob %d\x00", size)
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("gitoid %s: read: %w", f.Name(), err)
	}
	return Gitoid(hex.EncodeToString(h.Sum(nil))), nil
}

// HashPath opens path and computes its gitoid.
func HashPath(a Algorithm, path string) (Gitoid, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("gitoid: open %s: %w", path, err)
	}
	defer f.Close()
	return HashFile(a, f)
}
