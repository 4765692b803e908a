package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate configuration and credential files without touching the network",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := applyProfile(); err != nil {
			return err
		}
		if cfgTargetVersion == "" {
			return errors.New("--target-version is required")
		}
		line, err := productLine(cfgTargetVersion)
		if err != nil {
			return err
		}
		if cfgPortalPasswordFile != "" {
			if _, err := readCredentialFile(cfgPortalPasswordFile); err != nil {
				return fmt.Errorf("portal password: %w", err)
			}
		}
		if cfgTOTPSeedFile != "" {
			seed, err := readCredentialFile(cfgTOTPSeedFile)
			if err != nil {
				return fmt.Errorf("totp seed: %w", err)
			}
			if _, err := totpGenerator(seed)(); err != nil {
				return fmt.Errorf("totp seed: %w", err)
			}
		}
		_, _ = fmt.Fprintf(os.Stdout, "Configuration OK (product line %s)\n", line)
		return nil
	},
}
