// Package config handles credential and organization configuration with
// layered precedence: command-line flags override environment variables,
// which override the config file.
package config

import (
	"fmt"
	"os"

	"github.com/portctl/portctl/internal/port"
)

// Organization holds the API credentials for one organization.
type Organization struct {
	ClientID     string `mapstructure:"client_id" yaml:"client_id"`
	ClientSecret string `mapstructure:"client_secret" yaml:"client_secret"`
	APIURL       string `mapstructure:"api_url" yaml:"api_url"`
}

// Config is the file-backed configuration: a set of named organizations and
// the default one to use.
type Config struct {
	DefaultOrg    string                  `mapstructure:"default_org" yaml:"default_org"`
	Organizations map[string]Organization `mapstructure:"organizations" yaml:"organizations"`
}

// Org returns the named organization, or the default one when name is
// empty.
func (c *Config) Org(name string) (Organization, error) {
	if name == "" {
		name = c.DefaultOrg
	}
	if name == "" {
		return Organization{}, fmt.Errorf("no organization specified: use --org or set default_org in the config file")
	}
	org, ok := c.Organizations[name]
	if !ok {
		return Organization{}, fmt.Errorf("organization %q not found in configuration", name)
	}
	return org, nil
}

// Layer is one source of credential settings. Empty fields are unset.
type Layer struct {
	ClientID     string
	ClientSecret string
	APIURL       string
	Org          string
}

// FromEnv reads the environment credential layer.
func FromEnv() Layer {
	return Layer{
		ClientID:     os.Getenv("PORT_CLIENT_ID"),
		ClientSecret: os.Getenv("PORT_CLIENT_SECRET"),
		APIURL:       os.Getenv("PORT_API_URL"),
		Org:          os.Getenv("PORT_DEFAULT_ORG"),
	}
}

// Resolve computes the effective organization credentials from the three
// layers. Pure function: flags win over env, env wins over the file-based
// organization selected by name (flags.Org > env.Org > file default).
func Resolve(flags, env Layer, file *Config) (Organization, error) {
	org := Organization{}
	orgName := firstNonEmpty(flags.Org, env.Org)
	if file != nil {
		if fileOrg, err := file.Org(orgName); err == nil {
			org = fileOrg
		}
	}

	org.ClientID = firstNonEmpty(flags.ClientID, env.ClientID, org.ClientID)
	org.ClientSecret = firstNonEmpty(flags.ClientSecret, env.ClientSecret, org.ClientSecret)
	org.APIURL = firstNonEmpty(flags.APIURL, env.APIURL, org.APIURL, port.DefaultAPIURL)

	if org.ClientID == "" || org.ClientSecret == "" {
		return Organization{}, fmt.Errorf("missing credentials: set --client-id/--client-secret, PORT_CLIENT_ID/PORT_CLIENT_SECRET, or add an organization to the config file")
	}
	return org, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
