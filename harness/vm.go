// Package harness wraps the externally supplied VM-control API used by the
// compatibility tests: interface resets, static addressing and readiness
// waits. The wrappers are thin and synchronous; each blocks until its
// condition holds or returns an error.
package harness

import (
	"context"
	"time"
)

// VM is the control surface of one test machine, supplied by the external
// test driver.
type VM interface {
	// Succeed runs a shell command and returns an error if it exits non-zero.
	Succeed(ctx context.Context, cmd string) error
	// WaitForUnit blocks until the systemd unit is active.
	WaitForUnit(ctx context.Context, unit string) error
	// WaitForOpenPort blocks until the TCP port is accepting connections.
	WaitForOpenPort(ctx context.Context, port int) error
	// WaitUntilSucceeds re-runs the command until it exits zero or the
	// timeout elapses. A zero timeout means the driver's default.
	WaitUntilSucceeds(ctx context.Context, cmd string, timeout time.Duration) error
}

const portWaitTimeout = 30 * time.Second

// sleep waits for d unless the context is cancelled first.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
