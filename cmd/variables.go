package cmd

import (
	"time"

	"golang.org/x/crypto/ssh"
)

// Version is the CLI version string injected at build time via -ldflags.
var Version = "0.1.0"

var (
	// Global configuration populated by flags, environment variables, and the
	// optional run profile. Declared here so they are visible across
	// subcommands.
	cfgHost               string
	cfgApplianceUser      string
	cfgAppliancePassword  string
	cfgSSHKeyPath         string
	cfgTargetVersion      string
	cfgPortalUser         string
	cfgPortalPasswordFile string
	cfgTOTPSeedFile       string
	cfgProfile            string
	cfgRegion             string
	cfgOTPSelector        string
	cfgHeadless           bool
	cfgStrictInstall      bool
	cfgKnownHosts         string
	cfgPageTimeout        time.Duration
	cfgTimeout            time.Duration
	cfgConnTimeout        time.Duration
	cfgLogLevel           string
	cfgLogFormat          string
)

// Allow tests to stub browser launch and network operations
var (
	newBrowserFunc = func(headless bool, wait time.Duration) (browser, error) {
		return newChromeBrowser(headless, wait)
	}
	portalDownloadURLFunc = portalDownloadURL
	fetchArchiveFunc      = fetchArchive
	installPackagesFunc   = installPackages
	dialSSHFunc           = dialSSH
	newFileCopierFunc     = func(c *ssh.Client) (fileCopier, error) { return newSCPCopier(c) }
	runRemoteCommandFunc  = runRemoteCommand
)
