// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package testing

import (
	"bytes"
	"io"
	"strings"

	gc "gopkg.in/check.v1"

	"github.com/juju/cdn/cmd"
)

// Context returns a command context writing to buffers, rooted in a
// fresh temporary directory.
func Context(c *gc.C) *cmd.Context {
	return &cmd.Context{
		Dir:    c.MkDir(),
		Stdin:  strings.NewReader(""),
		Stdout: &bytes.Buffer{},
		Stderr: &bytes.Buffer{},
	}
}

// Stdout returns what the command wrote to standard output.
func Stdout(ctx *cmd.Context) string {
	return bufferString(ctx.Stdout)
}

// Stderr returns what the command wrote to standard error.
func Stderr(ctx *cmd.Context) string {
	return bufferString(ctx.Stderr)
}

func bufferString(w io.Writer) string {
	return w.(*bytes.Buffer).String()
}

// RunCommand parses args on com and runs it in a buffered context.
func RunCommand(c *gc.C, com cmd.Command, args ...string) (*cmd.Context, error) {
	ctx := Context(c)
	if err := cmd.Parse(com, ctx.Stderr, args); err != nil {
		return ctx, err
	}
	return ctx, com.Run(ctx)
}
