package deps

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
)

// maxEntryLen bounds a single saved path record. Anything longer marks a
// corrupt cache file.
const maxEntryLen = 1 << 16

// Save writes the dependency list to w in a form Restore can read back:
// a record count, then a byte-length prefix and the raw bytes per entry.
// Lengths are little-endian uint64.
func (s *Set) Save(w io.Writer) error {
	var lenbuf [8]byte

	binary.LittleEndian.PutUint64(lenbuf[:], uint64(len(s.deps)))
	if _, err := w.Write(lenbuf[:]); err != nil {
		return fmt.Errorf("deps save: count: %w", err)
	}

	for _, dep := range s.deps {
		binary.LittleEndian.PutUint64(lenbuf[:], uint64(len(dep)))
		if _, err := w.Write(lenbuf[:]); err != nil {
			return fmt.Errorf("deps save: %w", err)
		}
		if _, err := io.WriteString(w, dep); err != nil {
			return fmt.Errorf("deps save: %w", err)
		}
	}
	return nil
}

// Restore reads dependency records written by Save and adds them to the
// set. If self is non-empty, the entry matching it is skipped (used to
// exclude a precompiled header's own file); if self is empty, the records
// are read and discarded. Malformed or truncated input is an error;
// entries added before the failure remain.
func (s *Set) Restore(r io.Reader, self string) error {
	var lenbuf [8]byte

	if _, err := io.ReadFull(r, lenbuf[:]); err != nil {
		return fmt.Errorf("deps restore: count: %w", err)
	}
	count := binary.LittleEndian.Uint64(lenbuf[:])

	var buf []byte
	for ; count > 0; count-- {
		if _, err := io.ReadFull(r, lenbuf[:]); err != nil {
			return fmt.Errorf("deps restore: length: %w", err)
		}
		size := binary.LittleEndian.Uint64(lenbuf[:])
		if size == 0 || size > maxEntryLen {
			return fmt.Errorf("deps restore: bad record length %d", size)
		}

		if uint64(len(buf)) < size {
			buf = make([]byte, size)
		}
		if _, err := io.ReadFull(r, buf[:size]); err != nil {
			return fmt.Errorf("deps restore: entry: %w", err)
		}

		if self != "" && string(buf[:size]) != self {
			s.AddDep(string(buf[:size]))
		}
	}
	return nil
}

// SaveFile writes the dependency list to path, zstd-compressed around the
// Save record format.
func (s *Set) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("deps save: %w", err)
	}

	enc, err := zstd.NewWriter(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("deps save: %w", err)
	}

	if err := s.Save(enc); err != nil {
		enc.Close()
		f.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("deps save: flush: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("deps save: close: %w", err)
	}
	return nil
}

// RestoreFile reads a file written by SaveFile. See Restore for the self
// parameter.
func (s *Set) RestoreFile(path, self string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("deps restore: %w", err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return fmt.Errorf("deps restore: %w", err)
	}
	defer dec.Close()

	return s.Restore(dec, self)
}
