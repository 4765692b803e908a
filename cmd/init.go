package cmd

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// init configures the root command's persistent flags, binds them to environment
// variables via Viper, and registers all subcommands. This wiring ensures a
// consistent configuration surface across run/check and keeps environment
// overrides predictable for operators.
func init() {
	// Persistent flags (inherited by subcommands like `run`)
	rootCmd.PersistentFlags().StringVarP(&cfgHost, "host", "H", "", "Appliance FQDN/IP (port 22 assumed unless given)")
	rootCmd.PersistentFlags().StringVarP(&cfgApplianceUser, "user", "u", "", "Appliance SSH username (default root)")
	rootCmd.PersistentFlags().StringVar(&cfgAppliancePassword, "password", "", "Appliance SSH password; empty falls back to key/agent auth (or set BIGIP_GEOIP_PASSWORD)")
	rootCmd.PersistentFlags().StringVar(&cfgSSHKeyPath, "ssh-key", "", "Path to SSH private key for appliance login")
	rootCmd.PersistentFlags().StringVarP(&cfgTargetVersion, "target-version", "t", "", "BIG-IP software version on the appliance (e.g., 17.1.0.1)")
	rootCmd.PersistentFlags().StringVar(&cfgPortalUser, "portal-user", "", "F5 downloads portal username")
	rootCmd.PersistentFlags().StringVar(&cfgPortalPasswordFile, "portal-password-file", "", "Path to file containing the portal password")
	rootCmd.PersistentFlags().StringVar(&cfgTOTPSeedFile, "totp-seed-file", "", "Path to file containing the base32 TOTP seed")
	rootCmd.PersistentFlags().StringVarP(&cfgProfile, "profile", "p", "", "Path to YAML run profile supplying flag defaults")
	rootCmd.PersistentFlags().StringVar(&cfgRegion, "region", "", "Download mirror region label (default IRELAND)")
	rootCmd.PersistentFlags().StringVar(&cfgOTPSelector, "otp-selector", "", "Override for the portal one-time-code input selector")
	rootCmd.PersistentFlags().BoolVar(&cfgHeadless, "headless", true, "Run the browser headless (disable to watch the portal flow)")
	rootCmd.PersistentFlags().DurationVar(&cfgPageTimeout, "page-timeout", 10*time.Second, "Wait budget for each portal page element")
	rootCmd.PersistentFlags().DurationVar(&cfgTimeout, "cmd-timeout", 0, "Per-install-command timeout (e.g., 30s). 0 disables")
	rootCmd.PersistentFlags().DurationVar(&cfgConnTimeout, "conn-timeout", 15*time.Second, "SSH connection timeout")
	rootCmd.PersistentFlags().StringVar(&cfgKnownHosts, "known-hosts", filepath.Join(os.Getenv("HOME"), ".ssh", "known_hosts"), "Path to known_hosts file (unseen appliance keys are appended)")
	rootCmd.PersistentFlags().BoolVar(&cfgStrictInstall, "strict-install", false, "Treat a non-zero install command exit as fatal")
	rootCmd.PersistentFlags().StringVar(&cfgLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&cfgLogFormat, "log-format", "console", "Log encoding (console or json)")

	// Bind env with Viper
	_ = viper.BindPFlag("host", rootCmd.PersistentFlags().Lookup("host"))
	_ = viper.BindPFlag("user", rootCmd.PersistentFlags().Lookup("user"))
	_ = viper.BindPFlag("password", rootCmd.PersistentFlags().Lookup("password"))
	_ = viper.BindPFlag("ssh-key", rootCmd.PersistentFlags().Lookup("ssh-key"))
	_ = viper.BindPFlag("target-version", rootCmd.PersistentFlags().Lookup("target-version"))
	_ = viper.BindPFlag("portal-user", rootCmd.PersistentFlags().Lookup("portal-user"))
	_ = viper.BindPFlag("portal-password-file", rootCmd.PersistentFlags().Lookup("portal-password-file"))
	_ = viper.BindPFlag("totp-seed-file", rootCmd.PersistentFlags().Lookup("totp-seed-file"))
	_ = viper.BindPFlag("profile", rootCmd.PersistentFlags().Lookup("profile"))
	_ = viper.BindPFlag("region", rootCmd.PersistentFlags().Lookup("region"))
	_ = viper.BindPFlag("known-hosts", rootCmd.PersistentFlags().Lookup("known-hosts"))
	_ = viper.BindPFlag("cmd-timeout", rootCmd.PersistentFlags().Lookup("cmd-timeout"))
	_ = viper.BindPFlag("conn-timeout", rootCmd.PersistentFlags().Lookup("conn-timeout"))
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log-format", rootCmd.PersistentFlags().Lookup("log-format"))

	viper.SetEnvPrefix("BIGIP_GEOIP")
	viper.AutomaticEnv()

	// Pull in environment overrides on init
	cobra.OnInitialize(func() {
		if v := viper.GetString("host"); v != "" {
			cfgHost = v
		}
		if v := viper.GetString("user"); v != "" {
			cfgApplianceUser = v
		}
		if v := viper.GetString("password"); v != "" {
			cfgAppliancePassword = v
		}
		if v := viper.GetString("ssh-key"); v != "" {
			cfgSSHKeyPath = v
		}
		if v := viper.GetString("target-version"); v != "" {
			cfgTargetVersion = v
		}
		if v := viper.GetString("portal-user"); v != "" {
			cfgPortalUser = v
		}
		if v := viper.GetString("portal-password-file"); v != "" {
			cfgPortalPasswordFile = v
		}
		if v := viper.GetString("totp-seed-file"); v != "" {
			cfgTOTPSeedFile = v
		}
		if v := viper.GetString("profile"); v != "" {
			cfgProfile = v
		}
		if v := viper.GetString("region"); v != "" {
			cfgRegion = v
		}
		if v := viper.GetString("known-hosts"); v != "" {
			cfgKnownHosts = v
		}
		if v := viper.GetString("cmd-timeout"); v != "" {
			if d, err := time.ParseDuration(v); err == nil {
				cfgTimeout = d
			}
		}
		if v := viper.GetString("conn-timeout"); v != "" {
			if d, err := time.ParseDuration(v); err == nil {
				cfgConnTimeout = d
			}
		}
	})

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)
}
