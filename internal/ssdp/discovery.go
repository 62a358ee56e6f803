package ssdp

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"
)

// Service types for the UPnP Internet Gateway Device profile.
const (
	// STInternetGatewayV1 is the SSDP search target for IGDv1 routers
	STInternetGatewayV1 = "urn:schemas-upnp-org:device:InternetGatewayDevice:1"

	// STInternetGatewayV2 is the SSDP search target for IGDv2 routers
	STInternetGatewayV2 = "urn:schemas-upnp-org:device:InternetGatewayDevice:2"
)

// Discovery represents a single IGD router seen on the network.
//
// USN, ST and Location come straight from the SSDP response headers.
// UDN, FriendlyName and ModelName are filled in from the device
// description fetched from Location and may be empty when the fetch
// failed or the response was truncated.
type Discovery struct {
	// USN is the unique service name (e.g., "uuid:igd-1234::urn:...:1")
	USN string

	// ST is the service type the device responded for
	ST string

	// Location is the URL of the device description XML
	Location string

	// Host is the IP address of the responding device
	Host string

	// UDN is the unique device name (e.g., "uuid:igd-1234")
	UDN string

	// FriendlyName is the vendor-provided device name
	FriendlyName string

	// ModelName is the vendor-provided model identifier
	ModelName string

	// DiscoveredAt is when the device was discovered
	DiscoveredAt time.Time
}

// Complete reports whether the discovery carries everything needed to
// configure the device: a USN to deduplicate on, a service type, a
// location to reach it, and a UDN.
func (d *Discovery) Complete() bool {
	return d.USN != "" && d.ST != "" && d.Location != "" && d.UDN != ""
}

// FriendlyLabel returns a user-recognizable name for the device:
// the friendly name, falling back to the model name, then the host.
func (d *Discovery) FriendlyLabel() string {
	if d.FriendlyName != "" {
		return d.FriendlyName
	}
	if d.ModelName != "" {
		return d.ModelName
	}
	return d.Host
}

// String returns a human-readable string representation of the discovery
func (d *Discovery) String() string {
	return fmt.Sprintf("IGD %s (%s) at %s", d.FriendlyLabel(), d.USN, d.Location)
}

// UDNFromUSN extracts the device UDN from a composite USN.
// A composite USN has the form "uuid:<device>::<service-type>"; a bare
// USN is already a UDN and is returned unchanged.
func UDNFromUSN(usn string) string {
	if i := strings.Index(usn, "::"); i >= 0 {
		return usn[:i]
	}
	return usn
}

// HostFromLocation extracts the host address from a description URL.
func HostFromLocation(location string) (string, error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", fmt.Errorf("invalid location %q: %w", location, err)
	}
	host := u.Hostname()
	if host == "" {
		return "", fmt.Errorf("location %q has no host", location)
	}
	return host, nil
}

// hostFromAddr extracts the IP portion of a network address, used for
// SSDP response and notification source addresses.
func hostFromAddr(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}
