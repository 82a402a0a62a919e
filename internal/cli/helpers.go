// Package cli implements the portctl command-line interface.
// This file contains shared helper functions used across multiple commands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/portctl/portctl/internal/config"
	"github.com/portctl/portctl/internal/port"
)

// maxErrorLines caps how many per-item errors are printed; the rest are
// summarized as a count.
const maxErrorLines = 10

// resolveOrg computes the effective organization credentials from flags,
// environment and the config file.
func resolveOrg() (config.Organization, error) {
	file, err := config.Load(cfgFile)
	if err != nil {
		return config.Organization{}, err
	}
	flags := config.Layer{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		APIURL:       apiURL,
		Org:          orgName,
	}
	return config.Resolve(flags, config.FromEnv(), file)
}

// newClient builds an API client for the effective organization.
func newClient() (*port.Client, error) {
	org, err := resolveOrg()
	if err != nil {
		return nil, err
	}
	return port.NewClient(port.ClientConfig{
		ClientID:     org.ClientID,
		ClientSecret: org.ClientSecret,
		APIURL:       org.APIURL,
	})
}

// newOrgClient builds an API client for a named organization from the
// config file. Used by migrate, where flag/env credential overrides would
// be ambiguous between source and target.
func newOrgClient(name string) (*port.Client, error) {
	file, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	org, err := file.Org(name)
	if err != nil {
		return nil, err
	}
	return port.NewClient(port.ClientConfig{
		ClientID:     org.ClientID,
		ClientSecret: org.ClientSecret,
		APIURL:       org.APIURL,
	})
}

// parseList splits a comma-separated flag value into a slice, or nil when
// the flag was not given.
func parseList(value string) []string {
	if value == "" {
		return nil
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// printItemErrors prints per-item errors as warnings, truncated to
// maxErrorLines. Per-item errors do not fail the operation.
func printItemErrors(errors []string) {
	if len(errors) == 0 {
		return
	}
	fmt.Fprintf(os.Stderr, "%s completed with %d warning(s):\n", warnMark(), len(errors))
	for i, e := range errors {
		if i == maxErrorLines {
			fmt.Fprintf(os.Stderr, "  ... and %d more\n", len(errors)-maxErrorLines)
			break
		}
		fmt.Fprintf(os.Stderr, "  %s\n", e)
	}
}

// warnMark returns a warning marker, colored when stderr is a terminal.
func warnMark() string {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		return "\033[33mWarning:\033[0m"
	}
	return "Warning:"
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// readRecord reads a JSON record from a file path, or from stdin when path
// is "-".
func readRecord(path string) (port.Record, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	var record port.Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("parse input JSON: %w", err)
	}
	return record, nil
}
