package ssdp

import (
	"fmt"
	"sync"
	"time"

	gossdp "github.com/koron/go-ssdp"
	"go.uber.org/zap"

	"github.com/muurk/igd-setup/internal/logging"
)

// monitorBuffer is the channel depth for pending notifications.
// Notifications arriving while the buffer is full are dropped.
const monitorBuffer = 16

// Monitor listens passively for SSDP alive notifications from IGD
// routers and delivers them as Discovery records. Non-IGD device types
// are filtered out.
type Monitor struct {
	// FetchDescriptions controls whether device descriptions are
	// fetched for each notification before delivery
	FetchDescriptions bool

	scanner *Scanner
	mon     *gossdp.Monitor
	ch      chan *Discovery

	mu      sync.Mutex
	started bool
}

// NewMonitor creates a new passive SSDP monitor
func NewMonitor() *Monitor {
	return &Monitor{
		FetchDescriptions: true,
		scanner:           NewScanner(),
		ch:                make(chan *Discovery, monitorBuffer),
	}
}

// Start joins the SSDP multicast group and begins delivering alive
// notifications on the returned channel. The channel is closed by Close.
func (m *Monitor) Start() (<-chan *Discovery, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return nil, fmt.Errorf("monitor already started")
	}

	m.mon = &gossdp.Monitor{
		Alive: m.onAlive,
	}
	if err := m.mon.Start(); err != nil {
		return nil, fmt.Errorf("failed to start ssdp monitor: %w", err)
	}

	m.started = true
	return m.ch, nil
}

// Close stops the monitor and closes the notification channel
func (m *Monitor) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.started {
		return nil
	}
	m.started = false

	err := m.mon.Close()
	close(m.ch)
	return err
}

// onAlive handles an ssdp:alive notification
func (m *Monitor) onAlive(msg *gossdp.AliveMessage) {
	if msg.Type != STInternetGatewayV1 && msg.Type != STInternetGatewayV2 {
		return
	}

	d := &Discovery{
		USN:          msg.USN,
		ST:           msg.Type,
		Location:     msg.Location,
		UDN:          UDNFromUSN(msg.USN),
		DiscoveredAt: time.Now(),
	}
	if msg.From != nil {
		d.Host = hostFromAddr(msg.From.String())
	}
	if d.Host == "" {
		if host, err := HostFromLocation(msg.Location); err == nil {
			d.Host = host
		}
	}

	if m.FetchDescriptions {
		m.scanner.fillDescription(d)
	}

	// Hold the lock while sending so Close cannot close the channel
	// under a pending delivery.
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.started {
		return
	}

	select {
	case m.ch <- d:
	default:
		logging.Warn("Dropping SSDP notification, monitor buffer full",
			zap.String("usn", d.USN),
		)
	}
}
