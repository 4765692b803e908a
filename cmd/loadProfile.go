package cmd

import (
	"fmt"
	"os"
	"strings"
)

// loadProfile reads and parses the YAML run profile at path.
func loadProfile(path string) (*profile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p := &profile{}
	if err := yamlUnmarshal(b, p); err != nil {
		return nil, err
	}
	return p, nil
}

// applyProfile loads the profile named by --profile, if any, and fills in
// configuration values the operator did not set on the command line.
func applyProfile() error {
	if cfgProfile == "" {
		return nil
	}
	p, err := loadProfile(cfgProfile)
	if err != nil {
		return fmt.Errorf("failed to read profile: %w", err)
	}
	if cfgHost == "" {
		cfgHost = strings.TrimSpace(p.Host)
	}
	if cfgApplianceUser == "" {
		cfgApplianceUser = strings.TrimSpace(p.ApplianceUser)
	}
	if cfgTargetVersion == "" {
		cfgTargetVersion = strings.TrimSpace(p.TargetVersion)
	}
	if cfgPortalUser == "" {
		cfgPortalUser = strings.TrimSpace(p.PortalUser)
	}
	if cfgPortalPasswordFile == "" {
		cfgPortalPasswordFile = strings.TrimSpace(p.PortalPasswordFile)
	}
	if cfgTOTPSeedFile == "" {
		cfgTOTPSeedFile = strings.TrimSpace(p.TOTPSeedFile)
	}
	if cfgRegion == "" {
		cfgRegion = strings.TrimSpace(p.Region)
	}
	if cfgOTPSelector == "" {
		cfgOTPSelector = strings.TrimSpace(p.Selectors.OTPInput)
	}
	return nil
}
