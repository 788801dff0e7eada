// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package config

import (
	"fmt"
	"os"

	"github.com/juju/collections/set"
	"github.com/juju/errors"
	"github.com/juju/schema"
	"gopkg.in/juju/environschema.v1"
	"gopkg.in/yaml.v2"
)

const (
	// APIKeyKey holds the account API key.
	APIKeyKey = "api-key"

	// UsernameKey holds the account user name.
	UsernameKey = "username"

	// AuthURLKey holds the identity endpoint. Its path decides which
	// authentication protocol is used.
	AuthURLKey = "auth-url"

	// PersistentKey enables connection reuse between requests.
	PersistentKey = "persistent"

	// UseSSLKey selects the SSL URI as a container's public URL.
	UseSSLKey = "use-ssl"

	// RegionKey holds the region used for the service catalog lookup.
	RegionKey = "region"

	// CDNURLKey overrides the CDN management endpoint.
	CDNURLKey = "cdn-url"

	// MockKey selects the in-memory backend.
	MockKey = "mock"

	// DefaultRegion is used when no region is configured.
	DefaultRegion = "dfw"
)

// ConfigSchema describes every attribute a service accepts.
var ConfigSchema = environschema.Fields{
	APIKeyKey: {
		Description: "The API key used to authenticate.",
		Type:        environschema.Tstring,
		Mandatory:   true,
		Secret:      true,
	},
	UsernameKey: {
		Description: "The account user name.",
		Type:        environschema.Tstring,
		Mandatory:   true,
	},
	AuthURLKey: {
		Description: "The identity service endpoint.",
		Type:        environschema.Tstring,
	},
	PersistentKey: {
		Description: "Reuse connections between requests.",
		Type:        environschema.Tbool,
	},
	UseSSLKey: {
		Description: "Prefer the SSL URI when reporting a public URL.",
		Type:        environschema.Tbool,
	},
	RegionKey: {
		Description: "The region whose CDN endpoint is looked up in the service catalog.",
		Type:        environschema.Tstring,
	},
	CDNURLKey: {
		Description: "The CDN management endpoint, bypassing the service catalog.",
		Type:        environschema.Tstring,
	},
	MockKey: {
		Description: "Use the in-memory backend instead of the network.",
		Type:        environschema.Tbool,
	},
}

// ConfigDefaults holds the values used for absent optional attributes.
var ConfigDefaults = schema.Defaults{
	AuthURLKey:    schema.Omit,
	PersistentKey: false,
	UseSSLKey:     true,
	RegionKey:     DefaultRegion,
	CDNURLKey:     schema.Omit,
	MockKey:       false,
}

// ConfigAttributes is the raw attribute map of a Config.
type ConfigAttributes map[string]interface{}

// Config holds validated service configuration. It is immutable once
// created.
type Config struct {
	attributes ConfigAttributes
}

// KnownConfigKeys returns the attribute names declared by fields.
func KnownConfigKeys(fields environschema.Fields) set.Strings {
	keys := set.NewStrings()
	for name := range fields {
		keys.Add(name)
	}
	return keys
}

func schemaChecker(fields environschema.Fields, defaults schema.Defaults) (schema.Checker, error) {
	checkerFields, _, err := fields.ValidationSchema()
	if err != nil {
		return nil, errors.Trace(err)
	}
	return schema.StrictFieldMap(checkerFields, defaults), nil
}

// NewConfig validates attrs against fields, filling in defaults.
func NewConfig(attrs map[string]interface{}, fields environschema.Fields, defaults schema.Defaults) (*Config, error) {
	checker, err := schemaChecker(fields, defaults)
	if err != nil {
		return nil, errors.Trace(err)
	}
	coerced, err := checker.Coerce(attrs, nil)
	if err != nil {
		return nil, errors.Annotate(err, "validating service config")
	}
	validated := coerced.(map[string]interface{})
	for name, field := range fields {
		if !field.Mandatory {
			continue
		}
		if v, ok := validated[name]; !ok || fmt.Sprint(v) == "" {
			return nil, errors.NotValidf("empty value for %q", name)
		}
	}
	return &Config{attributes: validated}, nil
}

// New returns a service Config built from attrs.
func New(attrs map[string]interface{}) (*Config, error) {
	return NewConfig(attrs, ConfigSchema, ConfigDefaults)
}

// ReadConfigFile reads a YAML attribute map from path and validates it.
func ReadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	attrs := make(map[string]interface{})
	if err := yaml.Unmarshal(data, &attrs); err != nil {
		return nil, errors.Annotatef(err, "parsing %s", path)
	}
	return New(attrs)
}

// Attributes returns a copy of the validated attributes.
func (c *Config) Attributes() ConfigAttributes {
	if c == nil {
		return nil
	}
	result := make(ConfigAttributes, len(c.attributes))
	for k, v := range c.attributes {
		result[k] = v
	}
	return result
}

// Apply returns a new Config with attrs layered over the receiver's.
func (c *Config) Apply(attrs map[string]interface{}) (*Config, error) {
	merged := c.Attributes()
	for k, v := range attrs {
		merged[k] = v
	}
	return New(merged)
}

// Get returns the value for key, or defaultValue if it is absent.
func (a ConfigAttributes) Get(key string, defaultValue interface{}) interface{} {
	if v, ok := a[key]; ok {
		return v
	}
	return defaultValue
}

// GetString returns the string value for key, or defaultValue.
func (a ConfigAttributes) GetString(key string, defaultValue string) string {
	if v, ok := a[key].(string); ok {
		return v
	}
	return defaultValue
}

// GetBool returns the bool value for key, or defaultValue.
func (a ConfigAttributes) GetBool(key string, defaultValue bool) bool {
	if v, ok := a[key].(bool); ok {
		return v
	}
	return defaultValue
}

func (c *Config) asString(key string) string {
	return c.attributes.GetString(key, "")
}

func (c *Config) asBool(key string) bool {
	return c.attributes.GetBool(key, false)
}

// APIKey returns the account API key.
func (c *Config) APIKey() string {
	return c.asString(APIKeyKey)
}

// Username returns the account user name. It also identifies the
// account in the in-memory backend.
func (c *Config) Username() string {
	return c.asString(UsernameKey)
}

// AuthURL returns the configured identity endpoint, or "".
func (c *Config) AuthURL() string {
	return c.asString(AuthURLKey)
}

// Persistent reports whether connections are reused between requests.
func (c *Config) Persistent() bool {
	return c.asBool(PersistentKey)
}

// UseSSL reports whether the SSL URI is preferred as the public URL.
func (c *Config) UseSSL() bool {
	return c.asBool(UseSSLKey)
}

// Region returns the catalog region.
func (c *Config) Region() string {
	return c.asString(RegionKey)
}

// CDNURL returns the explicit management endpoint, or "".
func (c *Config) CDNURL() string {
	return c.asString(CDNURLKey)
}

// Mock reports whether the in-memory backend was requested.
func (c *Config) Mock() bool {
	return c.asBool(MockKey)
}
