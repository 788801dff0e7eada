// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/juju/errors"
	"github.com/juju/gnuflag"
	"gopkg.in/yaml.v2"
)

// Format names an output encoding. It implements gnuflag.Value.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Marshal encodes value in format f. A nil value encodes to nothing.
func (f Format) Marshal(value interface{}) ([]byte, error) {
	if value == nil {
		return nil, nil
	}
	switch f {
	case FormatJSON:
		return json.Marshal(value)
	case FormatYAML:
		data, err := yaml.Marshal(value)
		return []byte(strings.TrimSuffix(string(data), "\n")), err
	}
	return nil, errors.Errorf("unknown format %q", string(f))
}

// Set implements gnuflag.Value.
func (f *Format) Set(value string) error {
	switch Format(value) {
	case FormatYAML, FormatJSON:
		*f = Format(value)
		return nil
	}
	return errors.Errorf("unknown format %q", value)
}

// String implements gnuflag.Value.
func (f *Format) String() string {
	return string(*f)
}

// Output writes a command's result to stdout or a file in the format
// chosen on the command line.
type Output struct {
	format  Format
	outPath string
}

// AddFlags adds --format and -o/--output to f. Results are written as
// YAML unless another format is chosen.
func (c *Output) AddFlags(f *gnuflag.FlagSet) {
	c.format = FormatYAML
	f.Var(&c.format, "format", "Specify output format (json|yaml)")
	f.StringVar(&c.outPath, "o", "", "Specify an output file")
	f.StringVar(&c.outPath, "output", "", "")
}

// Write encodes value and writes it followed by a newline. Nothing is
// written for a nil value.
func (c *Output) Write(ctx *Context, value interface{}) (err error) {
	data, err := c.format.Marshal(value)
	if err != nil || len(data) == 0 {
		return errors.Trace(err)
	}
	var target io.Writer = ctx.Stdout
	if c.outPath != "" {
		f, createErr := os.Create(ctx.AbsPath(c.outPath))
		if createErr != nil {
			return errors.Trace(createErr)
		}
		defer func() {
			if closeErr := f.Close(); err == nil {
				err = closeErr
			}
		}()
		target = f
	}
	_, err = fmt.Fprintf(target, "%s\n", data)
	return errors.Trace(err)
}
