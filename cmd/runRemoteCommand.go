package cmd

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/ssh"
)

// runRemoteCommand executes one command on the appliance and returns its
// combined output and exit code. A non-zero exit is reported through the
// code, not the error; the error covers transport and session failures.
// timeout <= 0 disables the deadline.
func runRemoteCommand(client sessionClient, cmd string, timeout time.Duration) ([]byte, int, error) {
	type result struct {
		out      []byte
		exitCode int
		err      error
	}

	run := func() result {
		currSession, err := client.NewSession()
		if err != nil {
			return result{nil, -1, err}
		}
		defer func(thisSession session) {
			_ = thisSession.Close()
		}(currSession)
		b, err := currSession.CombinedOutput(cmd)
		if err == nil {
			return result{b, 0, nil}
		}
		// A remote non-zero exit is data for the caller, not a transport error
		var ee *ssh.ExitError
		if errors.As(err, &ee) {
			return result{b, ee.ExitStatus(), nil}
		}
		return result{b, -1, err}
	}

	if timeout <= 0 {
		r := run()
		return r.out, r.exitCode, r.err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	ch := make(chan result, 1)
	go func() { ch <- run() }()

	select {
	case r := <-ch:
		return r.out, r.exitCode, r.err
	case <-ctx.Done():
		// Best-effort: indicate timeout. Caller may reconnect if desired.
		return nil, -1, context.DeadlineExceeded
	}
}
