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
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func writeProfilesFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profiles.ini")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
	return path
}

func TestLoadProfiles(t *testing.T) {
	path := writeProfilesFile(t, ""+
		"[prod]\n"+
		"addr=smsc.example.com:2775\n"+
		"system_id=acct1\n"+
		"password=secret\n"+
		"system_type=VMS\n"+
		"mode=transceiver\n"+
		"\n"+
		"[staging]\n"+
		"addr=staging.example.com:2775\n"+
		"system_id=acct2\n")

	profiles, err := loadProfiles(path)
	require.NoError(t, err)
	require.Len(t, profiles, 2)

	prod := profiles["prod"]
	require.Equal(t, "smsc.example.com:2775", prod.Addr)
	require.Equal(t, "acct1", prod.SystemID)
	require.Equal(t, "secret", prod.Password)
	require.Equal(t, "VMS", prod.SystemType)
	require.Equal(t, "transceiver", prod.BindMode)

	staging := profiles["staging"]
	require.Equal(t, "staging.example.com:2775", staging.Addr)
	require.Equal(t, "acct2", staging.SystemID)
	require.Empty(t, staging.Password)
}

func TestApplyProfileFillsUnsetFlagsOnly(t *testing.T) {
	path := writeProfilesFile(t, ""+
		"[prod]\n"+
		"addr=smsc.example.com:2775\n"+
		"system_id=acct1\n"+
		"password=secret\n")

	profilesFile = path
	profileName = "prod"
	addr = "127.0.0.1:2775"
	systemID = ""
	password = ""
	t.Cleanup(func() { profilesFile, profileName = "", "" })

	cmd := &cobra.Command{}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:2775", "")
	require.NoError(t, cmd.Flags().Set("addr", "explicit.example.com:2775"))

	require.NoError(t, applyProfile(cmd))
	require.Equal(t, "explicit.example.com:2775", addr) // explicit flag wins
	require.Equal(t, "acct1", systemID)                 // unset flag takes profile value
	require.Equal(t, "secret", password)
}

func TestApplyProfileUnknownName(t *testing.T) {
	path := writeProfilesFile(t, "[prod]\naddr=x\n")
	profilesFile = path
	profileName = "nope"
	t.Cleanup(func() { profilesFile, profileName = "", "" })

	require.Error(t, applyProfile(&cobra.Command{}))
}
