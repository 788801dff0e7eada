// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package main

import (
	"context"

	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	"github.com/juju/cdn"
	"github.com/juju/cdn/backend"
	"github.com/juju/cdn/cmd"
	"github.com/juju/cdn/config"
)

const cdnDoc = `
juju-cdn manages CDN distribution of storage containers.

Credentials and endpoints are read from the YAML file given with --config
and may be overridden by the individual options.
`

// NewCDNCommand returns the juju-cdn super command with every subcommand
// registered.
func NewCDNCommand() *cmd.SuperCommand {
	flags := &serviceFlags{}
	super := cmd.NewSuperCommand(cmd.SuperCommandParams{
		Name:           "juju-cdn",
		Purpose:        "manage CDN distribution of storage containers",
		Doc:            cdnDoc,
		SetCommonFlags: flags.SetFlags,
	})
	super.Register(&containersCommand{serviceCommand: serviceCommand{flags: flags}})
	super.Register(&publishCommand{serviceCommand: serviceCommand{flags: flags}, publish: true})
	super.Register(&publishCommand{serviceCommand: serviceCommand{flags: flags}})
	super.Register(&urlsCommand{serviceCommand: serviceCommand{flags: flags}})
	super.Register(&publicURLCommand{serviceCommand: serviceCommand{flags: flags}})
	super.Register(&purgeCommand{serviceCommand: serviceCommand{flags: flags}})
	return super
}

// serviceFlags holds the options shared by every subcommand.
type serviceFlags struct {
	configFile cmd.FileVar
	username   string
	apiKey     string
	authURL    string
	region     string
	cdnURL     string
	mock       bool
}

// SetFlags adds the shared options to f.
func (sf *serviceFlags) SetFlags(f *gnuflag.FlagSet) {
	f.Var(&sf.configFile, "config", "Path to a YAML file holding service configuration")
	f.StringVar(&sf.username, "username", "", "Account user name")
	f.StringVar(&sf.apiKey, "api-key", "", "Account API key")
	f.StringVar(&sf.authURL, "auth-url", "", "Identity service endpoint")
	f.StringVar(&sf.region, "region", "", "Region of the CDN endpoint")
	f.StringVar(&sf.cdnURL, "cdn-url", "", "CDN management endpoint")
	f.BoolVar(&sf.mock, "mock", false, "Use the in-memory backend")
}

// serviceConfig builds the service configuration from the config file,
// if any, overlaid with the options that were given.
func (sf *serviceFlags) serviceConfig(ctx *cmd.Context) (*config.Config, error) {
	overrides := make(map[string]interface{})
	for key, value := range map[string]string{
		config.UsernameKey: sf.username,
		config.APIKeyKey:   sf.apiKey,
		config.AuthURLKey:  sf.authURL,
		config.RegionKey:   sf.region,
		config.CDNURLKey:   sf.cdnURL,
	} {
		if value != "" {
			overrides[key] = value
		}
	}
	if sf.mock {
		overrides[config.MockKey] = true
	}
	if !sf.configFile.IsSet() {
		cfg, err := config.New(overrides)
		return cfg, errors.Trace(err)
	}
	path, err := sf.configFile.AbsPath(ctx)
	if err != nil {
		return nil, errors.Trace(err)
	}
	base, err := config.ReadConfigFile(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	cfg, err := base.Apply(overrides)
	return cfg, errors.Trace(err)
}

// serviceCommand is embedded by every subcommand that talks to the CDN.
type serviceCommand struct {
	flags *serviceFlags
	out   cmd.Output
}

func (c *serviceCommand) SetFlags(f *gnuflag.FlagSet) {
	c.out.AddFlags(f)
}

func (c *serviceCommand) service(ctx *cmd.Context) (*cdn.Service, error) {
	cfg, err := c.flags.serviceConfig(ctx)
	if err != nil {
		return nil, errors.Trace(err)
	}
	svc, err := cdn.NewService(cdn.ServiceParams{Config: cfg})
	if err != nil {
		return nil, errors.Annotate(err, "connecting to CDN")
	}
	return svc, nil
}

// containerArg is embedded by commands taking a single container name.
type containerArg struct {
	container string
}

func (c *containerArg) Init(args []string) error {
	if len(args) == 0 {
		return errors.New("no container specified")
	}
	c.container, args = args[0], args[1:]
	return cmd.CheckEmpty(args)
}

type containersCommand struct {
	serviceCommand
	enabledOnly bool
	limit       int
	marker      string
}

func (c *containersCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "containers",
		Purpose: "list CDN containers",
	}
}

func (c *containersCommand) SetFlags(f *gnuflag.FlagSet) {
	c.serviceCommand.SetFlags(f)
	f.BoolVar(&c.enabledOnly, "enabled-only", false, "List only CDN-enabled containers")
	f.IntVar(&c.limit, "limit", 0, "Maximum number of containers to list")
	f.StringVar(&c.marker, "marker", "", "List containers sorting after this name")
}

func (c *containersCommand) Init(args []string) error {
	if c.limit < 0 {
		return errors.NotValidf("negative limit %d", c.limit)
	}
	return cmd.CheckEmpty(args)
}

func (c *containersCommand) Run(ctx *cmd.Context) error {
	svc, err := c.service(ctx)
	if err != nil {
		return errors.Trace(err)
	}
	resp, err := svc.GetContainers(context.Background(), backend.ListOptions{
		EnabledOnly: c.enabledOnly,
		Limit:       c.limit,
		Marker:      c.marker,
	})
	if err != nil {
		return errors.Trace(err)
	}
	listing := resp.Decoded
	if listing == nil {
		listing = []interface{}{}
	}
	return c.out.Write(ctx, listing)
}

type publishCommand struct {
	serviceCommand
	containerArg
	publish bool
}

func (c *publishCommand) Info() *cmd.Info {
	if c.publish {
		return &cmd.Info{
			Name:    "publish",
			Args:    "<container>",
			Purpose: "enable CDN distribution of a container",
		}
	}
	return &cmd.Info{
		Name:    "unpublish",
		Args:    "<container>",
		Purpose: "disable CDN distribution of a container",
	}
}

func (c *publishCommand) Run(ctx *cmd.Context) error {
	svc, err := c.service(ctx)
	if err != nil {
		return errors.Trace(err)
	}
	urls, err := svc.PublishContainer(context.Background(), cdn.ContainerName(c.container), c.publish)
	if err != nil {
		return errors.Trace(err)
	}
	if urls.IsEmpty() {
		return nil
	}
	return c.out.Write(ctx, urls)
}

type urlsCommand struct {
	serviceCommand
	containerArg
}

func (c *urlsCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "urls",
		Args:    "<container>",
		Purpose: "show the CDN URLs of a container",
	}
}

func (c *urlsCommand) Run(ctx *cmd.Context) error {
	svc, err := c.service(ctx)
	if err != nil {
		return errors.Trace(err)
	}
	urls, err := svc.URLs(context.Background(), cdn.ContainerName(c.container))
	if err != nil {
		return errors.Trace(err)
	}
	if urls.IsEmpty() {
		return nil
	}
	return c.out.Write(ctx, urls)
}

type publicURLCommand struct {
	serviceCommand
	containerArg
}

func (c *publicURLCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "public-url",
		Args:    "<container>",
		Purpose: "show the URL a container is served from",
	}
}

func (c *publicURLCommand) Run(ctx *cmd.Context) error {
	svc, err := c.service(ctx)
	if err != nil {
		return errors.Trace(err)
	}
	u, err := svc.PublicURL(context.Background(), cdn.ContainerName(c.container))
	if err != nil {
		return errors.Trace(err)
	}
	if u == "" {
		return errors.Errorf("container %q is not published", c.container)
	}
	return c.out.Write(ctx, u)
}

type purgeCommand struct {
	serviceCommand
	object cdn.ObjectRef
}

func (c *purgeCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "purge",
		Args:    "<container> <object>",
		Purpose: "evict an object from the CDN edge caches",
	}
}

func (c *purgeCommand) Init(args []string) error {
	if len(args) < 2 {
		return errors.New("expected container and object names")
	}
	c.object = cdn.ObjectRef{Container: args[0], Name: args[1]}
	return cmd.CheckEmpty(args[2:])
}

func (c *purgeCommand) Run(ctx *cmd.Context) error {
	svc, err := c.service(ctx)
	if err != nil {
		return errors.Trace(err)
	}
	_, err = svc.Purge(context.Background(), c.object)
	return errors.Trace(err)
}
