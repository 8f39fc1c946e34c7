package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/kvdrop"
)

// Writer delivers export documents as files in a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteDocument writes doc to baseDir/doc.Filename atomically and returns
// the file path. A file whose content hash already matches is left alone
// and changed is false.
func (w *Writer) WriteDocument(ctx context.Context, doc *kvdrop.ExportDocument) (path string, changed bool, err error) {
	if err := validateFilename(doc.Filename); err != nil {
		return "", false, err
	}
	path = filepath.Join(w.baseDir, doc.Filename)

	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		if Checksum(existing) == Checksum(doc.Content) {
			return path, false, nil
		}
	case !errors.Is(err, os.ErrNotExist):
		return "", false, err
	}

	if err := writeFileAtomic(path, doc.Content); err != nil {
		return "", false, err
	}
	return path, true, nil
}

// Checksum returns the xxhash of data.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// validateFilename rejects names that would escape the base directory.
func validateFilename(name string) error {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	if base == "" || base == "." || base == ".." {
		return kvdrop.Errorf(kvdrop.EINVALID, "invalid export filename %q", name)
	}
	if strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return kvdrop.Errorf(kvdrop.EINVALID, "export filename %q must not contain path separators", name)
	}
	return nil
}
