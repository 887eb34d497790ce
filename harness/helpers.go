package harness

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"
)

// ResetClientInterface flushes addresses, sets a fresh MAC and brings the
// interface back up. systemd-networkd and its socket are stopped first so it
// does not re-apply addresses while other DHCP clients run; the
// systemd-networkd client test re-enables both. Stale client processes are
// killed and a short settle delay allows link-local DAD to finish.
func ResetClientInterface(ctx context.Context, vm VM, iface, mac string) error {
	cmds := []string{
		"systemctl stop systemd-networkd.socket systemd-networkd.service || true",
		fmt.Sprintf("ip link set %s down", iface),
		fmt.Sprintf("ip addr flush dev %s", iface),
		fmt.Sprintf("ip link set %s address %s", iface, mac),
		fmt.Sprintf("ip link set %s up", iface),
		"pkill -9 dhcpcd  || true",
		"pkill -9 udhcpc  || true",
		"pkill -9 dhcpm   || true",
	}
	for _, cmd := range cmds {
		if err := vm.Succeed(ctx, cmd); err != nil {
			return fmt.Errorf("interface reset failed at %q: %w", cmd, err)
		}
	}
	return sleep(ctx, time.Second)
}

// AddStaticIP re-adds a static IPv4 address for tool-based clients that need
// a bind address.
func AddStaticIP(ctx context.Context, vm VM, iface, ip string, prefix int) error {
	return vm.Succeed(ctx, fmt.Sprintf("ip addr add %s/%d dev %s || true", ip, prefix, iface))
}

// AddStaticIP6 re-adds a static IPv6 address for tool-based clients that
// need a bind address.
func AddStaticIP6(ctx context.Context, vm VM, iface, ip string, prefix int) error {
	return vm.Succeed(ctx, fmt.Sprintf("ip addr add %s/%d dev %s || true", ip, prefix, iface))
}

// WaitStandaloneReady blocks until a standalone dora instance is listening
// on both DHCP ports.
func WaitStandaloneReady(ctx context.Context, server VM) error {
	if err := server.WaitForUnit(ctx, "dora.service"); err != nil {
		return err
	}
	for _, port := range []int{67, 547} {
		cmd := fmt.Sprintf("ss -lun | grep -q ':%d'", port)
		if err := server.WaitUntilSucceeds(ctx, cmd, portWaitTimeout); err != nil {
			return fmt.Errorf("dora not listening on port %d: %w", port, err)
		}
	}
	return nil
}

// WaitNATSClusterReady blocks until both NATS servers and both dora
// instances of a clustered deployment are up, the NATS account responds and
// the host-options KV bucket exists. The client VM's own dhcpcd service is
// stopped so it does not compete with the clients under test.
func WaitNATSClusterReady(ctx context.Context, dhcp1, dhcp2, client VM) error {
	for _, server := range []VM{dhcp1, dhcp2} {
		if err := server.WaitForUnit(ctx, "nats.service"); err != nil {
			return err
		}
		if err := server.WaitForOpenPort(ctx, 4222); err != nil {
			return err
		}
	}
	for _, server := range []VM{dhcp1, dhcp2} {
		if err := server.WaitForUnit(ctx, "dora.service"); err != nil {
			return err
		}
	}
	for _, server := range []VM{dhcp1, dhcp2} {
		for _, port := range []int{67, 547} {
			cmd := fmt.Sprintf("ss -lun | grep -q ':%d'", port)
			if err := server.WaitUntilSucceeds(ctx, cmd, portWaitTimeout); err != nil {
				return fmt.Errorf("clustered dora not listening on port %d: %w", port, err)
			}
		}
	}
	for _, server := range []VM{dhcp1, dhcp2} {
		if err := server.WaitUntilSucceeds(ctx,
			"nats --server nats://127.0.0.1:4222 account info >/dev/null 2>&1", 0); err != nil {
			return fmt.Errorf("NATS account not responding: %w", err)
		}
	}
	if err := dhcp1.WaitUntilSucceeds(ctx,
		"nats --server nats://127.0.0.1:4222 kv info dora_host_options >/dev/null 2>&1"+
			" || nats --server nats://127.0.0.1:4222 kv add dora_host_options >/dev/null 2>&1", 0); err != nil {
		return fmt.Errorf("host-options KV bucket not available: %w", err)
	}
	return client.Succeed(ctx, "systemctl stop dhcpcd.service >/dev/null 2>&1 || true")
}

// TimedTest runs a test body and converts any fault into a failed outcome.
// An error return or a panic never propagates; the message and, for panics,
// the stack trace are captured in details.
func TimedTest(fn func() (string, error)) (passed bool, durationMS int64, details string) {
	start := time.Now()
	defer func() {
		durationMS = time.Since(start).Milliseconds()
		if r := recover(); r != nil {
			passed = false
			details = fmt.Sprintf("%v\n%s", r, debug.Stack())
		}
	}()

	out, err := fn()
	if err != nil {
		return false, durationMS, err.Error()
	}
	return true, durationMS, out
}
