package source

import (
	"fmt"
	"path/filepath"

	"fortio.org/safecast"
)

// FileID identifies a source artifact registered in a FileSet.
type FileID uint32

// NoFileID marks the absence of a source artifact.
const NoFileID FileID = ^FileID(0)

// File records the identity of one source artifact. The backend never reads
// source text; files exist so diagnostics and provenance annotations can name
// the originating artifact.
type File struct {
	ID   FileID
	Path string
}

// FileSet manages source artifact identities and their provenance labels.
type FileSet struct {
	files []File
	index map[string]FileID
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 0),
		index: make(map[string]FileID),
	}
}

// Add registers a source path and returns its FileID. Registering the same
// path twice returns the original ID.
func (fs *FileSet) Add(path string) FileID {
	normalized := filepath.ToSlash(path)
	if id, ok := fs.index[normalized]; ok {
		return id
	}
	lenFiles, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(lenFiles)
	fs.files = append(fs.files, File{ID: id, Path: normalized})
	fs.index[normalized] = id
	return id
}

// Path returns the registered path for a FileID, or "" when unknown.
func (fs *FileSet) Path(id FileID) string {
	if id == NoFileID || int(id) >= len(fs.files) {
		return ""
	}
	return fs.files[id].Path
}

// Len reports how many files are registered.
func (fs *FileSet) Len() int {
	return len(fs.files)
}
