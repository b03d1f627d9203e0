package iris

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileUpload describes the file part of a multipart upload. Either Path
// or Reader must be set; Filename overrides the name sent to the
// backend (defaults to the path's base name).
type FileUpload struct {
	Path     string
	Reader   io.Reader
	Filename string
}

// filename returns the effective multipart filename.
func (f FileUpload) filename() string {
	if f.Filename != "" {
		return f.Filename
	}
	if f.Path != "" {
		return filepath.Base(f.Path)
	}
	return "upload"
}

// open returns a reader for the file content plus the filename to send.
// A path that does not exist (or is a directory) fails here, before any
// network call is made.
func (f FileUpload) open() (io.ReadCloser, string, error) {
	if f.Reader != nil {
		if rc, ok := f.Reader.(io.ReadCloser); ok {
			return rc, f.filename(), nil
		}
		return io.NopCloser(f.Reader), f.filename(), nil
	}

	if f.Path == "" {
		return nil, "", &LocalError{Message: "file upload requires Path or Reader"}
	}

	file, err := os.Open(f.Path)
	if err != nil {
		return nil, "", &LocalError{Message: fmt.Sprintf("file not found: %s", f.Path), Err: err}
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, "", &LocalError{Message: fmt.Sprintf("stat file: %s", f.Path), Err: err}
	}
	if info.IsDir() {
		file.Close()
		return nil, "", &LocalError{Message: fmt.Sprintf("file upload requires a file, got directory: %s", f.Path)}
	}
	return file, f.filename(), nil
}
