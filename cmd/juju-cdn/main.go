// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package main

import (
	"fmt"
	"os"

	"github.com/juju/loggo/v2"

	"github.com/juju/cdn/cmd"
)

// loggingConfigEnvKey names the environment variable holding the initial
// logging configuration.
const loggingConfigEnvKey = "JUJU_CDN_LOGGING_CONFIG"

func main() {
	if err := loggo.ConfigureLoggers(os.Getenv(loggingConfigEnvKey)); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR parsing %s: %s\n\n", loggingConfigEnvKey, err)
	}
	ctx, err := cmd.DefaultContext()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR %v\n", err)
		os.Exit(2)
	}
	os.Exit(cmd.Main(NewCDNCommand(), ctx, os.Args[1:]))
}
