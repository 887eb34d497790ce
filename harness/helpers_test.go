package harness

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeVM records every call in order and can be told to fail a command.
type fakeVM struct {
	calls  []string
	failOn string
}

func (f *fakeVM) Succeed(_ context.Context, cmd string) error {
	f.calls = append(f.calls, "succeed: "+cmd)
	if f.failOn != "" && cmd == f.failOn {
		return errors.New("command failed")
	}
	return nil
}

func (f *fakeVM) WaitForUnit(_ context.Context, unit string) error {
	f.calls = append(f.calls, "unit: "+unit)
	return nil
}

func (f *fakeVM) WaitForOpenPort(_ context.Context, port int) error {
	f.calls = append(f.calls, fmt.Sprintf("port: %d", port))
	return nil
}

func (f *fakeVM) WaitUntilSucceeds(_ context.Context, cmd string, _ time.Duration) error {
	f.calls = append(f.calls, "until: "+cmd)
	return nil
}

func TestResetClientInterfaceSequence(t *testing.T) {
	vm := &fakeVM{}
	require.NoError(t, ResetClientInterface(context.Background(), vm, "eth1", "02:00:00:00:00:01"))

	assert.Equal(t, []string{
		"succeed: systemctl stop systemd-networkd.socket systemd-networkd.service || true",
		"succeed: ip link set eth1 down",
		"succeed: ip addr flush dev eth1",
		"succeed: ip link set eth1 address 02:00:00:00:00:01",
		"succeed: ip link set eth1 up",
		"succeed: pkill -9 dhcpcd  || true",
		"succeed: pkill -9 udhcpc  || true",
		"succeed: pkill -9 dhcpm   || true",
	}, vm.calls)
}

func TestResetClientInterfaceStopsOnFailure(t *testing.T) {
	vm := &fakeVM{failOn: "ip addr flush dev eth1"}
	err := ResetClientInterface(context.Background(), vm, "eth1", "02:00:00:00:00:01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ip addr flush dev eth1")
	assert.Len(t, vm.calls, 3, "no commands run past the failing one")
}

func TestAddStaticIP(t *testing.T) {
	vm := &fakeVM{}
	require.NoError(t, AddStaticIP(context.Background(), vm, "eth1", "192.168.1.5", 24))
	require.NoError(t, AddStaticIP6(context.Background(), vm, "eth1", "fd00::5", 64))

	assert.Equal(t, []string{
		"succeed: ip addr add 192.168.1.5/24 dev eth1 || true",
		"succeed: ip addr add fd00::5/64 dev eth1 || true",
	}, vm.calls)
}

func TestWaitStandaloneReady(t *testing.T) {
	vm := &fakeVM{}
	require.NoError(t, WaitStandaloneReady(context.Background(), vm))

	assert.Equal(t, []string{
		"unit: dora.service",
		"until: ss -lun | grep -q ':67'",
		"until: ss -lun | grep -q ':547'",
	}, vm.calls)
}

func TestWaitNATSClusterReady(t *testing.T) {
	dhcp1, dhcp2, client := &fakeVM{}, &fakeVM{}, &fakeVM{}
	require.NoError(t, WaitNATSClusterReady(context.Background(), dhcp1, dhcp2, client))

	// Both servers go through NATS, dora and port waits; only the first
	// ensures the KV bucket.
	assert.Contains(t, dhcp1.calls, "unit: nats.service")
	assert.Contains(t, dhcp1.calls, "port: 4222")
	assert.Contains(t, dhcp2.calls, "unit: dora.service")
	assert.Contains(t, dhcp2.calls, "until: ss -lun | grep -q ':547'")

	kvEnsure := "until: nats --server nats://127.0.0.1:4222 kv info dora_host_options >/dev/null 2>&1" +
		" || nats --server nats://127.0.0.1:4222 kv add dora_host_options >/dev/null 2>&1"
	assert.Contains(t, dhcp1.calls, kvEnsure)
	assert.NotContains(t, dhcp2.calls, kvEnsure)

	assert.Equal(t, []string{
		"succeed: systemctl stop dhcpcd.service >/dev/null 2>&1 || true",
	}, client.calls)
}

func TestTimedTest(t *testing.T) {
	t.Run("success returns details", func(t *testing.T) {
		passed, durationMS, details := TimedTest(func() (string, error) {
			time.Sleep(5 * time.Millisecond)
			return "bound 192.168.1.20", nil
		})
		assert.True(t, passed)
		assert.GreaterOrEqual(t, durationMS, int64(5))
		assert.Equal(t, "bound 192.168.1.20", details)
	})

	t.Run("error becomes failed outcome", func(t *testing.T) {
		passed, _, details := TimedTest(func() (string, error) {
			return "", errors.New("lease never acquired")
		})
		assert.False(t, passed)
		assert.Equal(t, "lease never acquired", details)
	})

	t.Run("panic is recovered with stack", func(t *testing.T) {
		passed, durationMS, details := TimedTest(func() (string, error) {
			panic("client crashed")
		})
		assert.False(t, passed)
		assert.GreaterOrEqual(t, durationMS, int64(0))
		assert.Contains(t, details, "client crashed")
		assert.Contains(t, details, "goroutine")
	})
}
