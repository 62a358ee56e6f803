package arp

import (
	"strings"
	"testing"
)

const sampleARPTable = `IP address       HW type     Flags       HW address            Mask     Device
192.168.1.1      0x1         0x2         AA:BB:CC:DD:EE:FF     *        eth0
192.168.1.50     0x1         0x0         00:00:00:00:00:00     *        eth0
192.168.1.60     0x1         0x2         00:00:00:00:00:00     *        eth0
10.0.0.7         0x1         0x2         11:22:33:44:55:66     *        wlan0
`

func TestParseProcNetARP(t *testing.T) {
	tests := []struct {
		name     string
		ip       string
		expected string
		wantErr  bool
	}{
		{
			name:     "resolved entry normalized to lowercase",
			ip:       "192.168.1.1",
			expected: "aa:bb:cc:dd:ee:ff",
		},
		{
			name:     "second interface",
			ip:       "10.0.0.7",
			expected: "11:22:33:44:55:66",
		},
		{
			name:    "incomplete entry rejected",
			ip:      "192.168.1.50",
			wantErr: true,
		},
		{
			name:    "all-zero MAC rejected",
			ip:      "192.168.1.60",
			wantErr: true,
		},
		{
			name:    "unknown host",
			ip:      "192.168.1.99",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseProcNetARP(strings.NewReader(sampleARPTable), tt.ip)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseProcNetARP(%q) error = %v, wantErr %v", tt.ip, err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("parseProcNetARP(%q) = %v, want %v", tt.ip, got, tt.expected)
			}
		})
	}
}

func TestMACPattern(t *testing.T) {
	out := "? (192.168.1.1) at aa:bb:cc:dd:ee:ff on en0 ifscope [ethernet]"
	if got := macPattern.FindString(out); got != "aa:bb:cc:dd:ee:ff" {
		t.Errorf("macPattern matched %q, want aa:bb:cc:dd:ee:ff", got)
	}

	if macPattern.FindString("? (192.168.1.2) -- no entry") != "" {
		t.Error("macPattern matched output without a MAC address")
	}
}
