// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"io"
	"io/fs"
	"sync"
)

// FileReader is an io.Reader that handles opening a file for reading automatically.
type FileReader struct {
	path string
	fs   fs.FS

	mu     sync.Mutex
	opened bool
	file   fs.File
	err    error
}

// NewFileReader configures a FileReader.
func NewFileReader(fs fs.FS, path string) *FileReader {
	return &FileReader{
		path: path,
		fs:   fs,
	}
}

// Name returns the path of the file. Sources use it to describe the origin of values.
func (r *FileReader) Name() string {
	return r.path
}

// open returns the underlying file, opening it on first use. The file is
// only ever opened once, so a failure to open it is returned on every call.
// A nil file means the reader has been closed.
func (r *FileReader) open() (fs.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.opened {
		r.opened = true
		r.file, r.err = r.fs.Open(r.path)
	}
	return r.file, r.err
}

// Read implements the io.Reader interface.
func (r *FileReader) Read(b []byte) (int, error) {
	f, err := r.open()
	if err != nil {
		return 0, err
	}
	if f == nil {
		return 0, io.EOF
	}
	return f.Read(b)
}

// Close implements the io.Closer interface.
func (r *FileReader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.opened = true
	if r.file == nil {
		return nil
	}

	err := r.file.Close()
	r.file = nil
	return err
}
