// Package entries provides the persisted config-entry registry for
// configured IGD routers.
//
// The registry is a YAML file stored in the platform configuration
// directory. Each entry records one configured router, keyed by its
// SSDP unique service name (USN), together with the connection data
// needed to reach it again: UDN, service type, original UDN, location
// URL, and MAC address.
//
// # Configuration File Location
//
// The registry file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/igd-setup/entries.yaml or $HOME/.config/igd-setup/entries.yaml
//   - macOS: $HOME/.config/igd-setup/entries.yaml
//   - Windows: %LOCALAPPDATA%\igd-setup\entries.yaml
//
// # Usage Example
//
//	registry, err := entries.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, entry := range registry.All(false) {
//	    fmt.Printf("%s: %s\n", entry.Title, entry.Data.Location)
//	}
//
// # Thread Safety
//
// Registry methods are protected by an internal mutex. Saves are
// atomic: the file is written to a temporary path and renamed into
// place, so a crash mid-write never corrupts the registry.
package entries
