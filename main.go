package main

import "github.com/daym/bigip-geoip-updater/cmd"

func main() {
	cmd.Execute()
}
