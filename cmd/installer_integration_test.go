package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/daym/bigip-geoip-updater/tools/sshserv"
)

// TestInstall_EndToEnd exercises the full installer path against the in-repo
// test SSH server: TOFU host key acceptance, SCP upload, and the per-package
// install command.
func TestInstall_EndToEnd(t *testing.T) {
	srv, err := sshserv.Start("127.0.0.1:0", func(cmd string) (string, int) {
		return "geoip data loaded\n", 0
	})
	require.NoError(t, err)
	defer srv.Stop()

	dir := stageDir(t, "geo1.rpm", "geo2.rpm", "readme.md")
	knownHosts := filepath.Join(t.TempDir(), "known_hosts")

	client, err := dialSSH(srv.Addr(), "updater", "pw", "", knownHosts, 5*time.Second)
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	// The previously-unseen host key was accepted and persisted.
	b, err := os.ReadFile(knownHosts)
	require.NoError(t, err)
	require.NotEmpty(t, b)

	copier, err := newSCPCopier(client)
	require.NoError(t, err)
	defer func() { _ = copier.close() }()

	require.NoError(t, installFromDir(testLogger(), sshClientWrapper{client}, copier, dir, false))

	content, ok := srv.File("geo1.rpm")
	require.True(t, ok)
	require.Equal(t, "geo1.rpm-content", string(content))
	_, ok = srv.File("geo2.rpm")
	require.True(t, ok)
	_, ok = srv.File("readme.md")
	require.False(t, ok)

	var installs []string
	for _, c := range srv.Commands() {
		if len(c) >= 3 && c[:3] == "scp" {
			continue
		}
		installs = append(installs, c)
	}
	require.Equal(t, []string{
		"geoip_update_data -f /shared/tmp/geo1.rpm",
		"geoip_update_data -f /shared/tmp/geo2.rpm",
	}, installs)
}

// TestInstall_StrictModeSurfacesFailure runs the same path with a failing
// install command and strict mode enabled.
func TestInstall_StrictModeSurfacesFailure(t *testing.T) {
	srv, err := sshserv.Start("127.0.0.1:0", func(cmd string) (string, int) {
		return "unexpected data version\n", 1
	})
	require.NoError(t, err)
	defer srv.Stop()

	dir := stageDir(t, "geo1.rpm")
	knownHosts := filepath.Join(t.TempDir(), "known_hosts")

	client, err := dialSSH(srv.Addr(), "updater", "pw", "", knownHosts, 5*time.Second)
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	copier, err := newSCPCopier(client)
	require.NoError(t, err)
	defer func() { _ = copier.close() }()

	err = installFromDir(testLogger(), sshClientWrapper{client}, copier, dir, true)
	require.Error(t, err)
	require.Contains(t, err.Error(), "exit code 1")
}
