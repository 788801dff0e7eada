// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package cmd

import (
	"github.com/juju/errors"
)

// FileVar represents a path to a file.
type FileVar struct {
	Path string
}

// Set stores the path.
func (f *FileVar) Set(v string) error {
	if v == "" {
		return errors.New("empty path")
	}
	f.Path = v
	return nil
}

// IsSet reports whether a path was given.
func (f *FileVar) IsSet() bool {
	return f.Path != ""
}

// AbsPath returns the path relative to the context.
func (f *FileVar) AbsPath(ctx *Context) (string, error) {
	if f.Path == "" {
		return "", errors.New("path not set")
	}
	return ctx.AbsPath(f.Path), nil
}

// String returns the path to the file.
func (f *FileVar) String() string {
	return f.Path
}
