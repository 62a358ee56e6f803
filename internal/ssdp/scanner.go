package ssdp

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/huin/goupnp"
	gossdp "github.com/koron/go-ssdp"
	"go.uber.org/zap"

	"github.com/muurk/igd-setup/internal/logging"
)

const (
	// DefaultSearchWait is the M-SEARCH response window per service type
	DefaultSearchWait = 3 * time.Second

	// describeTimeout bounds a single device description fetch
	describeTimeout = 5 * time.Second
)

// Scanner performs active SSDP searches for IGD routers
type Scanner struct {
	// Wait is the response window for each M-SEARCH round
	Wait time.Duration

	// FetchDescriptions controls whether device descriptions are
	// fetched from each location URL to fill in vendor info
	FetchDescriptions bool

	// search and describe are swappable for tests
	search   func(st string, waitSec int, localAddr string) ([]gossdp.Service, error)
	describe func(loc *url.URL) (*goupnp.RootDevice, error)
}

// NewScanner creates a new SSDP scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Wait:              DefaultSearchWait,
		FetchDescriptions: true,
		search:            gossdp.Search,
		describe:          goupnp.DeviceByURL,
	}
}

// Search discovers IGD routers on the local network. Both the IGDv1 and
// IGDv2 service types are searched; devices answering for both are
// deduplicated by USN, keeping the first response seen. The context is
// checked between search rounds; an in-flight round is not interrupted.
func (s *Scanner) Search(ctx context.Context) ([]*Discovery, error) {
	waitSec := int(s.Wait.Seconds())
	if waitSec < 1 {
		waitSec = 1
	}

	seen := make(map[string]bool)
	discoveries := make([]*Discovery, 0)

	for _, st := range []string{STInternetGatewayV1, STInternetGatewayV2} {
		if err := ctx.Err(); err != nil {
			return discoveries, err
		}

		services, err := s.search(st, waitSec, "")
		if err != nil {
			return nil, fmt.Errorf("ssdp search for %s failed: %w", st, err)
		}

		for _, svc := range services {
			if svc.USN != "" && seen[svc.USN] {
				continue
			}
			seen[svc.USN] = true

			d := s.discoveryFromService(svc, st)
			discoveries = append(discoveries, d)
			logging.Debug("Discovered device",
				zap.String("usn", d.USN),
				zap.String("st", d.ST),
				zap.String("location", d.Location),
			)
		}
	}

	return discoveries, nil
}

// discoveryFromService converts an SSDP search response to a Discovery,
// fetching the device description when enabled.
func (s *Scanner) discoveryFromService(svc gossdp.Service, st string) *Discovery {
	// Some routers answer with an empty ST header; fall back to the
	// search target we asked for.
	responseST := svc.Type
	if responseST == "" {
		responseST = st
	}

	d := &Discovery{
		USN:          svc.USN,
		ST:           responseST,
		Location:     svc.Location,
		UDN:          UDNFromUSN(svc.USN),
		DiscoveredAt: time.Now(),
	}
	if host, err := HostFromLocation(svc.Location); err == nil {
		d.Host = host
	}

	if s.FetchDescriptions {
		s.fillDescription(d)
	}

	return d
}

// fillDescription fetches the UPnP device description from the location
// URL and fills in vendor info. Failures are logged and otherwise
// ignored; the discovery stays usable for selection by USN.
func (s *Scanner) fillDescription(d *Discovery) {
	if d.Location == "" {
		return
	}

	loc, err := url.Parse(d.Location)
	if err != nil {
		logging.Warn("Invalid device location",
			zap.String("location", d.Location),
			zap.Error(err),
		)
		return
	}

	root, err := s.describe(loc)
	if err != nil {
		logging.Warn("Failed to fetch device description",
			zap.String("location", d.Location),
			zap.Error(err),
		)
		return
	}

	dev := &root.Device
	d.FriendlyName = dev.FriendlyName
	d.ModelName = dev.ModelName
	if dev.UDN != "" {
		d.UDN = dev.UDN
	}
}

// Search is a convenience function to scan for IGD routers with a
// custom response window.
func Search(ctx context.Context, wait time.Duration) ([]*Discovery, error) {
	scanner := NewScanner()
	scanner.Wait = wait
	return scanner.Search(ctx)
}
