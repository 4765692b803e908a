package cmd

import (
	"context"
	"os"

	scp "github.com/bramvdbogaerde/go-scp"
	"golang.org/x/crypto/ssh"
)

// fileCopier abstracts the upload channel so installs can be exercised
// without a live SCP endpoint.
type fileCopier interface {
	copy(ctx context.Context, localPath, remotePath string) error
	close() error
}

// scpCopier copies files over an SCP channel on an existing SSH connection.
type scpCopier struct {
	c scp.Client
}

func newSCPCopier(client *ssh.Client) (*scpCopier, error) {
	c, err := scp.NewClientBySSH(client)
	if err != nil {
		return nil, err
	}
	return &scpCopier{c: c}, nil
}

func (s *scpCopier) copy(ctx context.Context, localPath, remotePath string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return s.c.CopyFromFile(ctx, *f, remotePath, "0644")
}

func (s *scpCopier) close() error {
	s.c.Close()
	return nil
}
