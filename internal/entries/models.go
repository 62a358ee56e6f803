package entries

import "time"

// Source records how an entry was created
type Source string

const (
	// SourceUser marks entries created through the user-driven flow
	SourceUser Source = "user"
	// SourceSSDP marks entries created from a pushed SSDP discovery
	SourceSSDP Source = "ssdp"
	// SourceIgnore marks entries the user chose to ignore; ignored
	// entries suppress re-discovery of the same device and are never
	// updated
	SourceIgnore Source = "ignore"
)

// State records the runtime state of an entry in the host that loads it
type State string

const (
	StateLoaded    State = "loaded"
	StateNotLoaded State = "not_loaded"
)

// Data holds the connection parameters persisted for a configured router
type Data struct {
	// UDN is the current unique device name
	UDN string `yaml:"udn"`

	// ST is the service type the router was configured as; it pins the
	// IGD version so a router is never silently swapped between IGDv1
	// and IGDv2
	ST string `yaml:"st"`

	// OriginalUDN is the UDN the router had when first configured.
	// It never changes, even when the router announces a new UDN.
	OriginalUDN string `yaml:"original_udn"`

	// Location is the device description URL
	Location string `yaml:"location"`

	// MACAddress is the router's MAC address, used to recognize the
	// same physical device across UDN changes. May be empty when
	// resolution failed.
	MACAddress string `yaml:"mac_address,omitempty"`
}

// Entry represents one configured router in the registry
type Entry struct {
	// EntryID is a stable internal identifier, assigned at creation
	EntryID string `yaml:"entry_id"`

	// UniqueID is the SSDP USN the entry is deduplicated on
	UniqueID string `yaml:"unique_id"`

	// Title is the user-visible name, taken from the discovery
	Title string `yaml:"title,omitempty"`

	Source Source `yaml:"source"`
	State  State  `yaml:"state"`
	Data   Data   `yaml:"data"`

	CreatedAt time.Time `yaml:"created_at,omitempty"`
	UpdatedAt time.Time `yaml:"updated_at,omitempty"`
}

// Ignored reports whether the entry was ignored by the user
func (e *Entry) Ignored() bool {
	return e.Source == SourceIgnore
}
