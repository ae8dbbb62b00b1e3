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

package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-ini/ini"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// Profile is one named set of --addr/--system-id/... defaults, the way
// calnex/config loads per-device settings out of an INI section per
// device rather than one flat file.
type Profile struct {
	Addr       string
	SystemID   string
	Password   string
	SystemType string
	BindMode   string
}

// loadProfiles reads an INI file where each [section] is a profile
// name and its keys are addr/system_id/password/system_type/mode,
// mirroring calnex/api's ini.File section-per-device layout.
func loadProfiles(path string) (map[string]Profile, error) {
	f, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("smppctl: load profiles %s: %w", path, err)
	}
	out := make(map[string]Profile)
	for _, s := range f.Sections() {
		if s.Name() == ini.DefaultSection {
			continue
		}
		out[s.Name()] = Profile{
			Addr:       s.Key("addr").String(),
			SystemID:   s.Key("system_id").String(),
			Password:   s.Key("password").String(),
			SystemType: s.Key("system_type").String(),
			BindMode:   s.Key("mode").String(),
		}
	}
	return out, nil
}

var profilesFile string

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "list connection profiles from --profiles-file",
	RunE: func(cmd *cobra.Command, args []string) error {
		profiles, err := loadProfiles(profilesFile)
		if err != nil {
			return err
		}
		names := make([]string, 0, len(profiles))
		for name := range profiles {
			names = append(names, name)
		}
		sort.Strings(names)

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"profile", "addr", "system_id", "system_type", "mode"})
		for _, name := range names {
			p := profiles[name]
			table.Append([]string{name, p.Addr, p.SystemID, p.SystemType, p.BindMode})
		}
		table.Render()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&profilesFile, "profiles-file", "", "INI file of named connection profiles (see 'smppctl profiles')")
	rootCmd.PersistentFlags().StringVar(&profileName, "profile", "", "profile name from --profiles-file to use for unset flags")
	rootCmd.AddCommand(profilesCmd)
}

// applyProfile fills in addr/systemID/password/systemType/bindMode from
// the selected profile wherever the matching flag was left at its
// default, i.e. the caller didn't pass it explicitly on the command line.
func applyProfile(cmd *cobra.Command) error {
	if profileName == "" {
		return nil
	}
	if profilesFile == "" {
		return fmt.Errorf("smppctl: --profile requires --profiles-file")
	}
	profiles, err := loadProfiles(profilesFile)
	if err != nil {
		return err
	}
	p, ok := profiles[profileName]
	if !ok {
		return fmt.Errorf("smppctl: no such profile %q in %s", profileName, profilesFile)
	}

	if !cmd.Flags().Changed("addr") && p.Addr != "" {
		addr = p.Addr
	}
	if !cmd.Flags().Changed("system-id") && p.SystemID != "" {
		systemID = p.SystemID
	}
	if !cmd.Flags().Changed("password") && p.Password != "" {
		password = p.Password
	}
	if !cmd.Flags().Changed("system-type") && p.SystemType != "" {
		systemType = p.SystemType
	}
	if !cmd.Flags().Changed("mode") && p.BindMode != "" {
		bindMode = p.BindMode
	}
	return nil
}
