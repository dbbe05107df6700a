package pmpsdb

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// HostConfig maps PLC hostnames to their IOC prefixes. The prefixes are
// only display metadata for presentation layers; this module keys every
// operation on the hostname alone.
type HostConfig map[string]string

// LoadHostConfig reads one or more YAML host files and merges them in
// order, later files winning on duplicate hostnames. Each file is a
// flat mapping:
//
//	plc-kfe-motion: PLC:KFE:MOTION
//	plc-kfe-gatt: PLC:KFE:GATT
func LoadHostConfig(paths ...string) (HostConfig, error) {
	merged := HostConfig{}
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read host config: %w", err)
		}
		var hosts HostConfig
		if err := yaml.Unmarshal(raw, &hosts); err != nil {
			return nil, fmt.Errorf("parse host config %s: %w", path, err)
		}
		for name, prefix := range hosts {
			merged[name] = prefix
		}
	}
	return merged, nil
}

// Hostnames returns the configured PLC hostnames in sorted order.
func (h HostConfig) Hostnames() []string {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
