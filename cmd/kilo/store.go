package main

import (
	"bufio"
	"errors"
	"io"
	"os"
)

// store loads and saves buffer contents. The editor only touches the disk
// through it, on explicit open and save.
type store interface {
	Load(path string) ([][]byte, error)
	Save(path string, data []byte) (int, error)
}

type fileStore struct{}

// Load reads path as '\n' separated lines, dropping a trailing '\r' from each.
// A missing file is reported with an error satisfying os.ErrNotExist.
func (fileStore) Load(path string) ([][]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &opError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return nil, &opError{Op: "stat", Path: path, Err: err}
	}
	if !st.Mode().IsRegular() {
		return nil, &opError{Op: "open", Path: path, Err: errNotRegular}
	}
	var lines [][]byte
	r := bufio.NewReader(f)
	for {
		line, rerr := r.ReadBytes('\n')
		if len(line) > 0 {
			if line[len(line)-1] == '\n' {
				line = line[:len(line)-1]
				if len(line) > 0 && line[len(line)-1] == '\r' {
					line = line[:len(line)-1]
				}
			}
			lines = append(lines, line)
		}
		if errors.Is(rerr, io.EOF) {
			return lines, nil
		}
		if rerr != nil {
			return nil, &opError{Op: "read", Path: path, Err: rerr}
		}
	}
}

// Save truncates path and writes data to it, returning the bytes written.
func (fileStore) Save(path string, data []byte) (int, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, &opError{Op: "save", Path: path, Err: err}
	}
	n, err := f.Write(data)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return n, &opError{Op: "save", Path: path, Err: err}
	}
	return n, nil
}

var errNotRegular = errors.New("not a regular file")
