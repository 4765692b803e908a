package cmd

import (
	"strings"
	"time"

	"github.com/pquerna/otp/totp"
)

// timeNow allows tests to pin the clock for deterministic codes.
var timeNow = time.Now

// totpGenerator returns a generator producing the currently valid one-time
// code for the given base32 seed. The seed is normalized once; each call
// derives the code for the current 30-second window.
func totpGenerator(seed string) func() (string, error) {
	seed = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(seed), " ", ""))
	return func() (string, error) {
		return totp.GenerateCode(seed, timeNow())
	}
}
