/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package smppserver is a reference MC (message center): it accepts
// ESME connections, authenticates the bind, enforces enquire_link and
// session_timeout, and answers submissions with a generated message
// id. It keeps no message store — there is no store-and-forward here,
// only protocol-level bookkeeping (spec.md §1 Non-goals, §6).
package smppserver

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/go-version"
	yaml "gopkg.in/yaml.v2"

	"github.com/smpp-go/smpp/pdu"
)

// Credential is one accepted system_id/password pair. A server with an
// empty Credentials list accepts any bind (useful for local testing).
type Credential struct {
	SystemID string `yaml:"system_id"`
	Password string `yaml:"password"`
}

// Config is the reference server's YAML configuration, read from the
// path given by --config-file or the SMPPD_CONFIG_FILE environment
// variable (spec.md §6).
type Config struct {
	ListenAddr          string        `yaml:"listen_addr"`
	LogLevel            string        `yaml:"log_level"`
	EnquireLinkInterval time.Duration `yaml:"enquire_link_interval"`
	SessionTimeout      time.Duration `yaml:"session_timeout"`
	MaxFrameBytes       int           `yaml:"max_frame_bytes"`
	Credentials         []Credential  `yaml:"credentials"`
	MonitoringAddr      string        `yaml:"monitoring_addr"`

	// MinInterfaceVersion/MaxInterfaceVersion bound the bind
	// interface_version an ESME may present, e.g. "3.3"/"5.0". Empty
	// means no bound on that side.
	MinInterfaceVersion string `yaml:"min_interface_version"`
	MaxInterfaceVersion string `yaml:"max_interface_version"`
}

func (c Config) withDefaults() Config {
	if c.ListenAddr == "" {
		c.ListenAddr = ":2775"
	}
	if c.EnquireLinkInterval <= 0 {
		c.EnquireLinkInterval = 30 * time.Second
	}
	if c.SessionTimeout <= 0 {
		c.SessionTimeout = 2 * c.EnquireLinkInterval
	}
	if c.MaxFrameBytes <= 0 {
		c.MaxFrameBytes = 64 * 1024
	}
	return c
}

// interfaceVersionString turns the single-byte interface_version field
// into the dotted form hashicorp/go-version parses, e.g. 0x34 -> "3.4".
func interfaceVersionString(v pdu.InterfaceVersion) string {
	return fmt.Sprintf("%d.%d", v>>4, v&0x0f)
}

// acceptInterfaceVersion reports whether v falls within
// [MinInterfaceVersion, MaxInterfaceVersion], using
// hashicorp/go-version for the same kind of ordered-constraint check
// ptp/sptp uses go-version for (software version gating).
func (c Config) acceptInterfaceVersion(v pdu.InterfaceVersion) bool {
	got, err := version.NewVersion(interfaceVersionString(v))
	if err != nil {
		return true
	}
	if c.MinInterfaceVersion != "" {
		min, err := version.NewVersion(c.MinInterfaceVersion)
		if err == nil && got.LessThan(min) {
			return false
		}
	}
	if c.MaxInterfaceVersion != "" {
		max, err := version.NewVersion(c.MaxInterfaceVersion)
		if err == nil && got.GreaterThan(max) {
			return false
		}
	}
	return true
}

// authenticate reports whether systemID/password are accepted. An
// empty Credentials list accepts everything.
func (c Config) authenticate(systemID, password string) bool {
	if len(c.Credentials) == 0 {
		return true
	}
	for _, cred := range c.Credentials {
		if cred.SystemID == systemID && cred.Password == password {
			return true
		}
	}
	return false
}

// ReadConfig loads the YAML config at path and fills in defaults, mirroring
// ptp4u/server.ReadDynamicConfig's read-then-unmarshal shape.
func ReadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	c = c.withDefaults()
	return &c, nil
}
