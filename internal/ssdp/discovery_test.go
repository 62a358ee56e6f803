package ssdp

import (
	"testing"
)

func TestDiscoveryComplete(t *testing.T) {
	complete := Discovery{
		USN:      "uuid:igd-1::" + STInternetGatewayV1,
		ST:       STInternetGatewayV1,
		Location: "http://192.168.1.1:5000/desc.xml",
		UDN:      "uuid:igd-1",
	}

	tests := []struct {
		name   string
		modify func(d *Discovery)
		want   bool
	}{
		{
			name:   "all fields present",
			modify: func(d *Discovery) {},
			want:   true,
		},
		{
			name:   "missing USN",
			modify: func(d *Discovery) { d.USN = "" },
			want:   false,
		},
		{
			name:   "missing ST",
			modify: func(d *Discovery) { d.ST = "" },
			want:   false,
		},
		{
			name:   "missing location",
			modify: func(d *Discovery) { d.Location = "" },
			want:   false,
		},
		{
			name:   "missing UDN",
			modify: func(d *Discovery) { d.UDN = "" },
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := complete
			tt.modify(&d)
			if got := d.Complete(); got != tt.want {
				t.Errorf("Complete() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDiscoveryFriendlyLabel(t *testing.T) {
	tests := []struct {
		name     string
		device   Discovery
		expected string
	}{
		{
			name: "friendly name preferred",
			device: Discovery{
				FriendlyName: "FRITZ!Box 7590",
				ModelName:    "7590",
				Host:         "192.168.1.1",
			},
			expected: "FRITZ!Box 7590",
		},
		{
			name: "model name fallback",
			device: Discovery{
				ModelName: "RT-AX58U",
				Host:      "192.168.1.1",
			},
			expected: "RT-AX58U",
		},
		{
			name: "host fallback",
			device: Discovery{
				Host: "192.168.1.1",
			},
			expected: "192.168.1.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.device.FriendlyLabel(); got != tt.expected {
				t.Errorf("FriendlyLabel() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUDNFromUSN(t *testing.T) {
	tests := []struct {
		name     string
		usn      string
		expected string
	}{
		{
			name:     "composite USN",
			usn:      "uuid:igd-1234::" + STInternetGatewayV1,
			expected: "uuid:igd-1234",
		},
		{
			name:     "bare UDN",
			usn:      "uuid:igd-1234",
			expected: "uuid:igd-1234",
		},
		{
			name:     "empty",
			usn:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UDNFromUSN(tt.usn); got != tt.expected {
				t.Errorf("UDNFromUSN(%q) = %v, want %v", tt.usn, got, tt.expected)
			}
		})
	}
}

func TestHostFromLocation(t *testing.T) {
	tests := []struct {
		name     string
		location string
		expected string
		wantErr  bool
	}{
		{
			name:     "standard location",
			location: "http://192.168.1.1:5000/rootDesc.xml",
			expected: "192.168.1.1",
		},
		{
			name:     "no port",
			location: "http://192.168.1.1/desc.xml",
			expected: "192.168.1.1",
		},
		{
			name:     "no host",
			location: "/desc.xml",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HostFromLocation(tt.location)
			if (err != nil) != tt.wantErr {
				t.Fatalf("HostFromLocation(%q) error = %v, wantErr %v", tt.location, err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("HostFromLocation(%q) = %v, want %v", tt.location, got, tt.expected)
			}
		})
	}
}

func TestHostFromAddr(t *testing.T) {
	if got := hostFromAddr("192.168.1.1:1900"); got != "192.168.1.1" {
		t.Errorf("hostFromAddr() = %v, want 192.168.1.1", got)
	}
	if got := hostFromAddr("192.168.1.1"); got != "192.168.1.1" {
		t.Errorf("hostFromAddr() without port = %v, want 192.168.1.1", got)
	}
}
