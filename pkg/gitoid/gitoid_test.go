package gitoid

import (
	"crypto/sha1"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"
)

func TestHashBytesHeaderConvention(t *testing.T) {
	// The gitoid of "ab\n" must equal the plain digest of the literal
	// bytes "blob 3\0ab\n".
	want := sha1.Sum([]byte("blob 3\x00ab\n"))
	got := HashBytes(SHA1, []byte("ab\n"))
	if string(got) != hex.EncodeToString(want[:]) {
		t.Errorf("HashBytes: got %s, want %s", got, hex.EncodeToString(want[:]))
	}
}

func TestHashBytesKnownVectors(t *testing.T) {
	// Git's well-known blob hashes.
	cases := []struct {
		algo Algorithm
		data string
		want Gitoid
	}{
		{SHA1, "", "e69de29bb2d1d6434b8b29ae775ad8c2e48c5391"},
		{SHA1, "hello world\n", "3b18e512dba79e4c8300dd08aeb37f8e728b8dad"},
		{SHA256, "", "473a0f4c3be8a93681a267e3b1e9a7dcda1185436fe141f7749120a303721813"},
	}
	for _, c := range cases {
		if got := HashBytes(c.algo, []byte(c.data)); got != c.want {
			t.Errorf("HashBytes(%s, %q): got %s, want %s", c.algo, c.data, got, c.want)
		}
	}
}

func TestHashBytesLength(t *testing.T) {
	if got := HashBytes(SHA1, []byte("x")); len(got) != 40 {
		t.Errorf("SHA1 hex length: got %d, want 40", len(got))
	}
	if got := HashBytes(SHA256, []byte("x")); len(got) != 64 {
		t.Errorf("SHA256 hex length: got %d, want 64", len(got))
	}
}

func TestHashFileMatchesHashBytes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dep.h")
	content := []byte("#define DEP 1\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	got, err := HashFile(SHA256, f)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	if want := HashBytes(SHA256, content); got != want {
		t.Errorf("HashFile: got %s, want %s", got, want)
	}
}

func TestHashFileNil(t *testing.T) {
	if _, err := HashFile(SHA1, nil); err == nil {
		t.Error("HashFile(nil) should return error")
	}
}

func TestHashPathMissing(t *testing.T) {
	if _, err := HashPath(SHA1, filepath.Join(t.TempDir(), "nope.h")); err == nil {
		t.Error("HashPath of missing file should return error")
	}
}

func TestHashIsLowerHex(t *testing.T) {
	h := HashBytes(SHA1, []byte("case check"))
	for _, c := range string(h) {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			t.Errorf("gitoid contains non-lowercase-hex character: %c", c)
		}
	}
}

func TestAlgorithmAccessors(t *testing.T) {
	if SHA1.Tag() != "gitoid:blob:sha1" || SHA256.Tag() != "gitoid:blob:sha256" {
		t.Error("Tag mismatch")
	}
	if SHA1.DirName() != "gitoid_blob_sha1" || SHA256.DirName() != "gitoid_blob_sha256" {
		t.Error("DirName mismatch")
	}
	if SHA1.Size() != 20 || SHA256.Size() != 32 {
		t.Error("Size mismatch")
	}
	if Algorithm(7).Valid() {
		t.Error("arbitrary selector should not be valid")
	}
}
