package cmd

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

// resetConfig snapshots the global configuration and stub functions and
// restores them when the test finishes, so tests can mutate freely.
func resetConfig(t *testing.T) {
	t.Helper()
	host, user, pass := cfgHost, cfgApplianceUser, cfgAppliancePassword
	key, ver, puser := cfgSSHKeyPath, cfgTargetVersion, cfgPortalUser
	pwFile, seedFile, prof := cfgPortalPasswordFile, cfgTOTPSeedFile, cfgProfile
	region, otpSel := cfgRegion, cfgOTPSelector
	headless, strict := cfgHeadless, cfgStrictInstall
	kh := cfgKnownHosts
	pageT, cmdT, connT := cfgPageTimeout, cfgTimeout, cfgConnTimeout
	level, format := cfgLogLevel, cfgLogFormat

	browserF := newBrowserFunc
	portalF := portalDownloadURLFunc
	fetchF := fetchArchiveFunc
	installF := installPackagesFunc
	dialF := dialSSHFunc
	copierF := newFileCopierFunc
	runF := runRemoteCommandFunc

	t.Cleanup(func() {
		cfgHost, cfgApplianceUser, cfgAppliancePassword = host, user, pass
		cfgSSHKeyPath, cfgTargetVersion, cfgPortalUser = key, ver, puser
		cfgPortalPasswordFile, cfgTOTPSeedFile, cfgProfile = pwFile, seedFile, prof
		cfgRegion, cfgOTPSelector = region, otpSel
		cfgHeadless, cfgStrictInstall = headless, strict
		cfgKnownHosts = kh
		cfgPageTimeout, cfgTimeout, cfgConnTimeout = pageT, cmdT, connT
		cfgLogLevel, cfgLogFormat = level, format

		newBrowserFunc = browserF
		portalDownloadURLFunc = portalF
		fetchArchiveFunc = fetchF
		installPackagesFunc = installF
		dialSSHFunc = dialF
		newFileCopierFunc = copierF
		runRemoteCommandFunc = runF
	})

	cfgHost, cfgApplianceUser, cfgAppliancePassword = "", "", ""
	cfgSSHKeyPath, cfgTargetVersion, cfgPortalUser = "", "", ""
	cfgPortalPasswordFile, cfgTOTPSeedFile, cfgProfile = "", "", ""
	cfgRegion, cfgOTPSelector = "", ""
	cfgHeadless, cfgStrictInstall = true, false
	cfgPageTimeout, cfgTimeout, cfgConnTimeout = 10*time.Second, 0, 15*time.Second
	cfgLogLevel, cfgLogFormat = "info", "console"
}

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
