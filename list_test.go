package ctsmon

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPorts(t *testing.T) {
	ports, err := ListPorts()
	require.NoError(t, err)

	for _, port := range ports {
		assert.Regexp(t, `^/dev/`, port)
		assert.True(t, isCharacterDevice(port), "%s is not a character device", port)
	}
	assert.True(t, sort.StringsAreSorted(ports), "ports are not sorted: %v", ports)
}

func TestListPortsSkipsRegularFiles(t *testing.T) {
	tmpDir := t.TempDir()
	for _, name := range []string{"ttyUSB0", "ttyS1", "tty1"} {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, name), nil, 0644))
	}

	saved := devRoot
	devRoot = tmpDir
	defer func() { devRoot = saved }()

	ports, err := ListPorts()
	require.NoError(t, err)
	assert.Empty(t, ports, "regular files are not ports")
}

func TestIsCharacterDevice(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"/dev/null", true},
		{"/dev/zero", true},
		{"/tmp", false},
		{"/nonexistent", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, isCharacterDevice(tt.path), tt.path)
	}
}

func TestGetPortDescription(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"ttyUSB0", "USB Serial Port"},
		{"ttyACM0", "USB CDC/ACM Device"},
		{"ttyS0", "Standard Serial Port"},
		{"ttyAMA0", "ARM Serial Port"},
		{"ttymxc0", "i.MX Serial Port"},
		{"ttyO0", "OMAP Serial Port"},
		{"ttySAC0", "Samsung Serial Port"},
		{"ttyTHS0", "Tegra Serial Port"},
		{"unknown", "Serial Port"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, getPortDescription(tt.name), tt.name)
	}
}

func TestGetPortInfo(t *testing.T) {
	// /dev/null always exists and is a character device
	info, err := GetPortInfo("/dev/null")
	require.NoError(t, err)

	assert.Equal(t, "null", info.Name)
	assert.Equal(t, "/dev/null", info.Path)
	assert.NotEmpty(t, info.Description)
	assert.False(t, info.IsUSB(), "/dev/null should not carry USB metadata")

	_, err = GetPortInfo("/dev/nonexistent")
	assert.ErrorIs(t, err, ErrDeviceUnavailable)
}

func TestPortFiltering(t *testing.T) {
	tests := []struct {
		name        string
		shouldMatch bool
	}{
		{"ttyUSB0", true},
		{"ttyUSB1", true},
		{"ttyACM0", true},
		{"ttyS0", true},
		{"ttyAMA0", true},
		{"ttyTHS2", true},
		{"tty1", false},    // Virtual terminal
		{"tty2", false},    // Virtual terminal
		{"console", false}, // Console
		{"ptmx", false},    // Pseudo-terminal multiplexer
		{"ptyp0", false},   // Pseudo-terminal
		{"random", false},
		{"urandom", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.shouldMatch, isSerialName(tt.name), tt.name)
	}
}

func TestPortInfoParsing(t *testing.T) {
	info := &PortInfo{VendorID: "0403", ProductID: "6010", BusNumber: "5", DeviceNumber: "7"}

	vid, pid, ok := info.USBIDs()
	require.True(t, ok)
	assert.Equal(t, uint16(0x0403), vid)
	assert.Equal(t, uint16(0x6010), pid)

	bus, addr, ok := info.USBLocation()
	require.True(t, ok)
	assert.Equal(t, 5, bus)
	assert.Equal(t, 7, addr)

	empty := &PortInfo{}
	_, _, ok = empty.USBIDs()
	assert.False(t, ok, "USBIDs without IDs")
	_, _, ok = empty.USBLocation()
	assert.False(t, ok, "USBLocation without bus/devnum")
}

func BenchmarkListPorts(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := ListPorts(); err != nil {
			b.Errorf("ListPorts failed: %v", err)
		}
	}
}

// TestListPortsIntegration lists whatever the host has attached
func TestListPortsIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ports, err := ListPorts()
	require.NoError(t, err)

	t.Logf("Found %d serial ports:", len(ports))
	for i, port := range ports {
		info, err := GetPortInfo(port)
		if err != nil {
			t.Logf("  %d. %s (error getting info: %v)", i+1, port, err)
			continue
		}
		t.Logf("  %d. %s (%s)", i+1, port, info.Description)
	}
}
