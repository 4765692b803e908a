package cmd

import (
	"fmt"
	"os"
	"strings"
)

// readCredentialFile returns the trimmed contents of a single-value secret
// file (portal password, TOTP seed). The value is held in memory only.
func readCredentialFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	s := strings.TrimSpace(string(b))
	if s == "" {
		return "", fmt.Errorf("credential file %s is empty", path)
	}
	return s, nil
}
