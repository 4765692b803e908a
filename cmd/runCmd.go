package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// runCmd executes the primary workflow: resolves the download URL for the
// target version through an authenticated portal session, downloads and
// extracts the GeoIP archive, and installs every package file on the
// appliance. The extracted directory is removed on every exit path.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch the GeoIP update and install it on the appliance",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Profile may supply defaults; flags win when both are set.
		if err := applyProfile(); err != nil {
			return err
		}

		// All validation happens before any network activity.
		if cfgHost == "" {
			return errors.New("--host is required (appliance FQDN/IP)")
		}
		if cfgTargetVersion == "" {
			return errors.New("--target-version is required (e.g., 17.1.0.1)")
		}
		if cfgPortalUser == "" {
			return errors.New("--portal-user is required")
		}
		if cfgPortalPasswordFile == "" {
			return errors.New("--portal-password-file is required")
		}
		if cfgTOTPSeedFile == "" {
			return errors.New("--totp-seed-file is required")
		}
		if _, err := productLine(cfgTargetVersion); err != nil {
			return err
		}
		if cfgApplianceUser == "" {
			cfgApplianceUser = "root"
		}
		if cfgRegion == "" {
			cfgRegion = defaultRegion
		}

		logger, err := newLogger(cfgLogFormat, cfgLogLevel)
		if err != nil {
			return fmt.Errorf("logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()
		log := logger.Sugar()

		portalPassword, err := readCredentialFile(cfgPortalPasswordFile)
		if err != nil {
			return fmt.Errorf("portal password: %w", err)
		}
		seed, err := readCredentialFile(cfgTOTPSeedFile)
		if err != nil {
			return fmt.Errorf("totp seed: %w", err)
		}
		creds := portalCredentials{
			User:     cfgPortalUser,
			Password: portalPassword,
			OTP:      totpGenerator(seed),
		}

		log.Infow("resolving download URL", "version", cfgTargetVersion, "region", cfgRegion)
		url, err := portalDownloadURLFunc(log, creds, cfgTargetVersion, cfgRegion)
		if err != nil {
			return fmt.Errorf("portal session: %w", err)
		}
		log.Infow("download URL resolved", "url", url)

		dir, err := fetchArchiveFunc(log, url)
		if err != nil {
			return fmt.Errorf("fetch archive: %w", err)
		}
		// Deferred so the extracted files are removed on error paths too.
		defer func() { _ = os.RemoveAll(dir) }()
		log.Infow("archive extracted", "dir", dir)

		if err := installPackagesFunc(log, cfgHost, cfgApplianceUser, cfgAppliancePassword, dir); err != nil {
			return fmt.Errorf("install: %w", err)
		}
		log.Infow("geoip update complete", "host", cfgHost, "version", cfgTargetVersion)
		return nil
	},
}
