package cmd

import (
	"fmt"
	"strings"
)

// productLine derives the downloads-portal product-line identifier from an
// appliance version string, e.g. "17.1" -> "big-ip_v17.x".
func productLine(version string) (string, error) {
	major, _, _ := strings.Cut(strings.TrimSpace(version), ".")
	if major == "" {
		return "", fmt.Errorf("version %q has no major component", version)
	}
	for _, r := range major {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("version %q has a non-numeric major component", version)
		}
	}
	return fmt.Sprintf("big-ip_v%s.x", major), nil
}
