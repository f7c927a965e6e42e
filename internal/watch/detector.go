package watch

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"io/fs"
	"path/filepath"
)

// Fingerprint is a comparable summary of a directory tree's state at one
// point in time. Two fingerprints are equal iff no tracked file was added,
// removed, or modified between the two scans. The empty string means
// "not yet observed".
type Fingerprint string

// Scan computes the fingerprint of the tree rooted at root. The digest
// covers each regular file's relative path, size, and modification time;
// contents are never read, so a scan costs one stat per file. Entries that
// vanish mid-scan or cannot be read are skipped: a partial scan only
// delays detection by one tick.
func Scan(root string) Fingerprint {
	h := sha256.New()
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			// Vanished between the directory read and the stat.
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}

		h.Write([]byte(rel))
		var buf [16]byte
		binary.BigEndian.PutUint64(buf[:8], uint64(info.ModTime().UnixNano()))
		binary.BigEndian.PutUint64(buf[8:], uint64(info.Size()))
		h.Write(buf[:])
		return nil
	})
	return Fingerprint(hex.EncodeToString(h.Sum(nil)))
}
