// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package metrics

import "github.com/prometheus/client_golang/prometheus"

func (c *Collector) RequestCounter(method, code string) prometheus.Counter {
	return c.requests.WithLabelValues(method, code)
}
