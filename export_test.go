// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package cdn

import (
	"github.com/juju/cdn/backend"
	"github.com/juju/cdn/config"
)

func NewServiceWithBackend(cfg *config.Config, b backend.Backend) *Service {
	return newService(cfg, b)
}
