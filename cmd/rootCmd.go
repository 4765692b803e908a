package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bigip-geoip-updater",
	Short: "Fetch F5 GeoIP updates and install them on a BIG-IP appliance",
	Long: "Logs into the F5 downloads portal with username, password, and a time-based one-time code, downloads " +
		"the GeoIP update archive for a BIG-IP version, and installs each package on the appliance over SSH.",
	Version: Version,
}
