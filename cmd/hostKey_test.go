package cmd

import (
	"crypto/rand"
	"crypto/rsa"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
)

func testPublicKey(t *testing.T) ssh.PublicKey {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	signer, err := ssh.NewSignerFromKey(priv)
	require.NoError(t, err)
	return signer.PublicKey()
}

func TestTofuHostKey_AcceptsAndPersistsUnseenHost(t *testing.T) {
	path := filepath.Join(t.TempDir(), "known_hosts")
	key := testPublicKey(t)
	addr := &net.TCPAddr{IP: net.ParseIP("192.0.2.10"), Port: 22}

	cb, err := tofuHostKey(path)
	require.NoError(t, err)
	require.NoError(t, cb("bigip1.example.net:22", addr, key))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(b), "bigip1.example.net")

	// A fresh callback sees the persisted key and accepts it again.
	cb2, err := tofuHostKey(path)
	require.NoError(t, err)
	require.NoError(t, cb2("bigip1.example.net:22", addr, key))
}

func TestTofuHostKey_RejectsChangedKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "known_hosts")
	addr := &net.TCPAddr{IP: net.ParseIP("192.0.2.10"), Port: 22}

	cb, err := tofuHostKey(path)
	require.NoError(t, err)
	require.NoError(t, cb("bigip1.example.net:22", addr, testPublicKey(t)))

	cb2, err := tofuHostKey(path)
	require.NoError(t, err)
	err = cb2("bigip1.example.net:22", addr, testPublicKey(t))
	require.Error(t, err)
}

func TestTofuHostKey_CreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "known_hosts")
	_, err := tofuHostKey(path)
	require.NoError(t, err)
	_, err = os.Stat(path)
	require.NoError(t, err)
}
