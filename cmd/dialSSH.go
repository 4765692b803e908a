package cmd

import (
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
)

// dialSSH establishes the SSH connection to the appliance. Password auth is
// used when a password is given; otherwise authentication falls back to the
// ambient environment (private key file, SSH agent). Host keys follow a
// trust-on-first-use policy: keys already recorded must match, unseen keys
// are accepted and persisted to the known_hosts file.
func dialSSH(target, user, password, keyPath, knownHostsPath string, dialTimeout time.Duration) (*ssh.Client, error) {
	var auths []ssh.AuthMethod

	if password != "" {
		auths = append(auths, ssh.Password(password))
	}

	if keyPath != "" {
		signer, err := loadSigner(keyPath)
		if err != nil {
			return nil, fmt.Errorf("load key: %w", err)
		}
		auths = append(auths, ssh.PublicKeys(signer))
	}

	// Try SSH agent if available
	if a := os.Getenv("SSH_AUTH_SOCK"); a != "" {
		if conn, err := net.Dial("unix", a); err == nil {
			ag := agent.NewClient(conn)
			auths = append(auths, ssh.PublicKeysCallback(ag.Signers))
		}
	}

	if len(auths) == 0 {
		return nil, errors.New("no SSH authentication available: provide --password, --ssh-key, or an SSH agent")
	}

	hostKeyCB, err := tofuHostKey(knownHostsPath)
	if err != nil {
		return nil, fmt.Errorf("known_hosts: %w", err)
	}

	cfg := &ssh.ClientConfig{
		User:            user,
		Auth:            auths,
		HostKeyCallback: hostKeyCB,
		Timeout:         dialTimeout,
	}

	// Use explicit net.Dialer for connection timeout
	d := net.Dialer{Timeout: dialTimeout}
	conn, err := d.Dial("tcp", target)
	if err != nil {
		return nil, err
	}
	c, chans, reqs, err := ssh.NewClientConn(conn, target, cfg)
	if err != nil {
		return nil, err
	}
	return ssh.NewClient(c, chans, reqs), nil
}
