// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/juju/errors"
	"github.com/juju/gnuflag"
	"github.com/juju/loggo/v2"
)

// SuperCommandParams describes a SuperCommand.
type SuperCommandParams struct {
	Name    string
	Purpose string
	Doc     string

	// SetCommonFlags adds options shared by every subcommand.
	SetCommonFlags func(f *gnuflag.FlagSet)
}

// SuperCommand dispatches to one of its registered subcommands, chosen
// by the first positional argument.
type SuperCommand struct {
	params  SuperCommandParams
	subcmds map[string]Command
	debug   bool
	subcmd  Command
}

// NewSuperCommand returns a SuperCommand with no subcommands.
func NewSuperCommand(params SuperCommandParams) *SuperCommand {
	return &SuperCommand{
		params:  params,
		subcmds: make(map[string]Command),
	}
}

// Register makes c available as a subcommand.
func (c *SuperCommand) Register(subcmd Command) {
	name := subcmd.Info().Name
	if _, found := c.subcmds[name]; found {
		panic(fmt.Sprintf("command already registered: %q", name))
	}
	c.subcmds[name] = subcmd
}

// Info implements Command.
func (c *SuperCommand) Info() *Info {
	names := make([]string, 0, len(c.subcmds))
	for name := range c.subcmds {
		names = append(names, name)
	}
	sort.Strings(names)
	var doc strings.Builder
	doc.WriteString(strings.TrimSpace(c.params.Doc))
	doc.WriteString("\n\ncommands:\n")
	for _, name := range names {
		fmt.Fprintf(&doc, "    %-12s - %s\n", name, c.subcmds[name].Info().Purpose)
	}
	return &Info{
		Name:    c.params.Name,
		Args:    "<command> ...",
		Purpose: c.params.Purpose,
		Doc:     doc.String(),
	}
}

// SetFlags implements Command.
func (c *SuperCommand) SetFlags(f *gnuflag.FlagSet) {
	f.BoolVar(&c.debug, "debug", false, "Show debug log messages")
}

// AllowInterspersedFlags stops option parsing at the subcommand name.
func (c *SuperCommand) AllowInterspersedFlags() bool {
	return false
}

// Init implements Command. Options following the subcommand name are
// parsed by the subcommand.
func (c *SuperCommand) Init(args []string) error {
	if len(args) == 0 {
		return errors.New("no command specified")
	}
	subcmd, found := c.subcmds[args[0]]
	if !found {
		return errors.Errorf("unrecognized command: %s %s", c.params.Name, args[0])
	}
	f := gnuflag.NewFlagSet(c.params.Name+" "+args[0], gnuflag.ContinueOnError)
	f.SetOutput(io.Discard)
	if c.params.SetCommonFlags != nil {
		c.params.SetCommonFlags(f)
	}
	subcmd.SetFlags(f)
	if err := f.Parse(true, args[1:]); err != nil {
		return errors.Trace(err)
	}
	c.subcmd = subcmd
	return subcmd.Init(f.Args())
}

// Run implements Command.
func (c *SuperCommand) Run(ctx *Context) error {
	if c.subcmd == nil {
		return errors.New("Run called before Init")
	}
	if c.debug {
		if err := loggo.ConfigureLoggers("<root>=DEBUG"); err != nil {
			return errors.Trace(err)
		}
	}
	logger.Debugf("running %s %s", c.params.Name, c.subcmd.Info().Name)
	return c.subcmd.Run(ctx)
}
