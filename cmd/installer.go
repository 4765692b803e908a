package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

const (
	// remoteStageDir is the shared staging directory on the appliance;
	// every uploaded package lands there.
	remoteStageDir = "/shared/tmp"
	// installCommand loads an uploaded GeoIP package into the running system.
	installCommand = "geoip_update_data"
	// packageExt is matched case-sensitively against extracted file names.
	packageExt = ".rpm"
)

// installPackages opens one SSH connection to the appliance and one SCP
// channel over it, then uploads and installs every package file found under
// dir.
func installPackages(log *zap.SugaredLogger, host, user, password, dir string) error {
	client, err := dialSSHFunc(sshTarget(host), user, password, cfgSSHKeyPath, cfgKnownHosts, cfgConnTimeout)
	if err != nil {
		return fmt.Errorf("ssh connection to %s failed: %w", host, err)
	}
	defer func() { _ = client.Close() }()

	copier, err := newFileCopierFunc(client)
	if err != nil {
		return fmt.Errorf("open copy channel: %w", err)
	}
	defer func() { _ = copier.close() }()

	return installFromDir(log, sshClientWrapper{client}, copier, dir, cfgStrictInstall)
}

// installFromDir uploads each package file to the staging directory and runs
// the install command against it, one file at a time in name order. The
// install command's exit status is logged; it only fails the run when strict
// is set.
func installFromDir(log *zap.SugaredLogger, client sessionClient, copier fileCopier, dir string, strict bool) error {
	files, err := packageFiles(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		log.Warnw("no package files found", "dir", dir)
		return nil
	}

	for i, path := range files {
		name := filepath.Base(path)
		remote := remoteStageDir + "/" + name
		log.Infow("uploading package", "file", name, "remote", remote, "n", i+1, "of", len(files))
		if err := copier.copy(context.Background(), path, remote); err != nil {
			return fmt.Errorf("upload %s: %w", name, err)
		}

		line := fmt.Sprintf("%s -f %s", installCommand, shellQuote(remote))
		out, code, err := runRemoteCommandFunc(client, line, cfgTimeout)
		if err != nil {
			return fmt.Errorf("install %s: %w", name, err)
		}
		log.Infow("install command finished", "file", name, "exit", code, "output", strings.TrimSpace(string(out)))
		if code != 0 && strict {
			return fmt.Errorf("install %s: exit code %d", name, code)
		}
	}
	return nil
}

// packageFiles lists package files under dir (any depth, since the archive's
// internal layout is preserved on extraction), sorted by path so multi-package
// installs run in a deterministic order.
func packageFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), packageExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// sshTarget appends the default SSH port when host carries none.
func sshTarget(host string) string {
	if strings.Contains(host, ":") {
		return host
	}
	return host + ":22"
}
