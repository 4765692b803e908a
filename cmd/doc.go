// Package cmd implements the bigip-geoip-updater command-line interface.
//
// The package organizes the CLI subcommands (run, check) and the underlying
// helpers for the three workflow stages: the portal session that drives a
// browser through the F5 downloads portal to resolve a GeoIP archive URL, the
// archive fetcher that downloads and unzips it, and the remote installer that
// uploads each package over SCP and installs it on the appliance via SSH.
//
// New contributors should start by reading runCmd.go to see how the stages are
// sequenced, portal.go for the login/navigation flow, and installer.go for the
// upload-and-install loop.
package cmd
