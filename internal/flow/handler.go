package flow

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/muurk/igd-setup/internal/entries"
	"github.com/muurk/igd-setup/internal/logging"
	"github.com/muurk/igd-setup/internal/ssdp"
)

// Discoverer searches the network for IGD routers
type Discoverer interface {
	Search(ctx context.Context) ([]*ssdp.Discovery, error)
}

// MACResolver resolves the MAC address of a host on the local network
type MACResolver interface {
	Resolve(ctx context.Context, host string) (string, error)
}

// Reloader reloads a live config entry after its data changed. Hosts
// that do not keep entries loaded can use NopReloader.
type Reloader interface {
	Reload(ctx context.Context, entryID string) error
}

// NopReloader ignores reload requests
type NopReloader struct{}

func (NopReloader) Reload(context.Context, string) error { return nil }

// Handler runs one guided setup session. It is not safe for concurrent
// use; the host drives one step at a time.
type Handler struct {
	registry   *entries.Registry
	discoverer Discoverer
	mac        MACResolver
	reloader   Reloader

	// discoveries holds the scan results between the two user step
	// invocations; pending holds the discovery awaiting confirmation
	// on the ssdp path
	discoveries []*ssdp.Discovery
	pending     *ssdp.Discovery
	source      entries.Source
}

// NewHandler creates a flow handler for one setup session
func NewHandler(registry *entries.Registry, discoverer Discoverer, mac MACResolver, reloader Reloader) *Handler {
	if reloader == nil {
		reloader = NopReloader{}
	}
	return &Handler{
		registry:   registry,
		discoverer: discoverer,
		mac:        mac,
		reloader:   reloader,
	}
}

// StepUser handles the user-driven path. With an empty uniqueID it
// scans for routers, filters out incomplete discoveries and ones that
// are already configured, and returns a selection form (or aborts with
// no_devices_found). Called again with the selected unique ID it
// creates the entry.
func (h *Handler) StepUser(ctx context.Context, uniqueID string) (*Result, error) {
	logging.LogFlowStep(StepUser, zap.String("unique_id", uniqueID))
	h.source = entries.SourceUser

	if uniqueID != "" {
		discovery := h.discoveryByUSN(uniqueID)
		if discovery == nil {
			// The selection must come from the form we produced.
			return nil, fmt.Errorf("selected device %q was not discovered in this session", uniqueID)
		}
		return h.createEntry(ctx, discovery)
	}

	discoveries, err := h.discoverer.Search(ctx)
	if err != nil {
		return nil, fmt.Errorf("discovery failed: %w", err)
	}

	// Keep discoveries which are usable and not yet configured.
	configured := h.registry.UniqueIDs(false)
	h.discoveries = h.discoveries[:0]
	for _, d := range discoveries {
		if !d.Complete() || configured[d.USN] {
			continue
		}
		h.discoveries = append(h.discoveries, d)
	}

	if len(h.discoveries) == 0 {
		logging.LogFlowAbort(StepUser, string(AbortNoDevicesFound))
		return abortResult(AbortNoDevicesFound), nil
	}

	options := make([]FormOption, 0, len(h.discoveries))
	for _, d := range h.discoveries {
		options = append(options, FormOption{
			UniqueID: d.USN,
			Label:    d.FriendlyLabel(),
		})
	}
	return formResult(StepUser, options, ""), nil
}

// StepSSDP handles a pushed SSDP discovery. It validates the
// discovery, refreshes or rewrites existing entries for the same
// device, and otherwise returns the confirmation form.
func (h *Handler) StepSSDP(ctx context.Context, discovery *ssdp.Discovery) (*Result, error) {
	logging.LogFlowStep("ssdp", zap.String("usn", discovery.USN), zap.String("st", discovery.ST))
	h.source = entries.SourceSSDP

	if !discovery.Complete() {
		logging.LogFlowAbort("ssdp", string(AbortIncompleteDiscovery))
		return abortResult(AbortIncompleteDiscovery), nil
	}

	macAddress := h.resolveMAC(ctx, discovery)

	// Already configured under this unique ID: refresh the stored MAC
	// (older entries predate MAC tracking) and the location (routers
	// move), then stop.
	if existing := h.registry.ByUniqueID(discovery.USN); existing != nil {
		changed := false
		if macAddress != "" && existing.Data.MACAddress != macAddress {
			existing.Data.MACAddress = macAddress
			changed = true
		}
		if existing.Data.Location != discovery.Location {
			existing.Data.Location = discovery.Location
			changed = true
		}
		if changed && !existing.Ignored() {
			h.registry.Touch(existing)
			if err := h.registry.Save(); err != nil {
				return nil, err
			}

			// A loaded entry runs against the old location until it is
			// reloaded with the refreshed data.
			if existing.State == entries.StateLoaded {
				if err := h.reloader.Reload(ctx, existing.EntryID); err != nil {
					logging.Warn("Entry reload failed",
						zap.String("entry_id", existing.EntryID),
						zap.Error(err),
					)
				}
			}
		}
		logging.LogFlowAbort("ssdp", string(AbortAlreadyConfigured))
		return abortResult(AbortAlreadyConfigured), nil
	}

	// The router may have changed its UDN. Recognize it by MAC address,
	// matching the service type so a router never swaps between IGDv1
	// and IGDv2 entries.
	if macAddress != "" {
		for _, entry := range h.registry.All(true) {
			if entry.Data.MACAddress != macAddress || entry.Data.ST != discovery.ST {
				continue
			}

			if entry.Ignored() {
				logging.LogFlowAbort("ssdp", string(AbortDiscoveryIgnored))
				return abortResult(AbortDiscoveryIgnored), nil
			}

			logging.LogEntryUpdated(entry.EntryID, discovery.USN)
			entry.UniqueID = discovery.USN
			entry.Data.UDN = discovery.UDN
			h.registry.Touch(entry)
			if err := h.registry.Save(); err != nil {
				return nil, err
			}

			// Only reload entries that are actually loaded; an entry
			// mid-retry would otherwise be loaded twice.
			if entry.State == entries.StateLoaded {
				if err := h.reloader.Reload(ctx, entry.EntryID); err != nil {
					logging.Warn("Entry reload failed",
						zap.String("entry_id", entry.EntryID),
						zap.Error(err),
					)
				}
			}
			return abortResult(AbortEntryUpdated), nil
		}
	}

	h.pending = discovery
	return formResult(StepSSDPConfirm, nil, discovery.FriendlyLabel()), nil
}

// StepConfirm answers the confirmation form of the ssdp path
func (h *Handler) StepConfirm(ctx context.Context, confirmed bool) (*Result, error) {
	logging.LogFlowStep(StepSSDPConfirm, zap.Bool("confirmed", confirmed))

	if !confirmed {
		logging.LogFlowAbort(StepSSDPConfirm, string(AbortCancelled))
		return abortResult(AbortCancelled), nil
	}
	if h.pending == nil {
		return nil, fmt.Errorf("no discovery pending confirmation")
	}
	return h.createEntry(ctx, h.pending)
}

// createEntry builds and persists the config entry for a discovery
func (h *Handler) createEntry(ctx context.Context, discovery *ssdp.Discovery) (*Result, error) {
	entry := &entries.Entry{
		EntryID:  uuid.NewString(),
		UniqueID: discovery.USN,
		Title:    discovery.FriendlyLabel(),
		Source:   h.source,
		State:    entries.StateNotLoaded,
		Data: entries.Data{
			UDN:         discovery.UDN,
			ST:          discovery.ST,
			OriginalUDN: discovery.UDN,
			Location:    discovery.Location,
			MACAddress:  h.resolveMAC(ctx, discovery),
		},
	}

	h.registry.Add(entry)
	if err := h.registry.Save(); err != nil {
		return nil, fmt.Errorf("failed to persist entry: %w", err)
	}

	logging.Info("Created entry",
		zap.String("entry_id", entry.EntryID),
		zap.String("unique_id", entry.UniqueID),
		zap.String("title", entry.Title),
	)
	return createdResult(entry), nil
}

// resolveMAC resolves the discovery host's MAC address. Resolution
// failure is not fatal; the entry is created without a MAC.
func (h *Handler) resolveMAC(ctx context.Context, discovery *ssdp.Discovery) string {
	host := discovery.Host
	if host == "" {
		var err error
		if host, err = ssdp.HostFromLocation(discovery.Location); err != nil {
			return ""
		}
	}

	macAddress, err := h.mac.Resolve(ctx, host)
	if err != nil {
		logging.Debug("MAC resolution failed",
			zap.String("host", host),
			zap.Error(err),
		)
		return ""
	}
	return macAddress
}

// discoveryByUSN returns the stored discovery with the given USN
func (h *Handler) discoveryByUSN(usn string) *ssdp.Discovery {
	for _, d := range h.discoveries {
		if d.USN == usn {
			return d
		}
	}
	return nil
}
