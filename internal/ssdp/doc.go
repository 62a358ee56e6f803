// Package ssdp provides SSDP-based discovery of UPnP Internet Gateway
// Devices (IGD routers) on the local network.
//
// Discovery runs in two modes:
//
//   - Active search: Scanner broadcasts M-SEARCH requests for both the
//     IGDv1 and IGDv2 device types and collects unicast responses.
//   - Passive monitoring: Monitor joins the SSDP multicast group and
//     delivers ssdp:alive notifications from IGD routers as they appear.
//
// For each responding device the location URL is fetched and the UPnP
// device description is parsed to obtain the UDN, friendly name, and
// model name. Responses that are missing fields are still returned;
// callers decide whether a partial discovery is usable (see
// Discovery.Complete).
//
// # Usage Example
//
//	scanner := ssdp.NewScanner()
//	discoveries, err := scanner.Search(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, d := range discoveries {
//	    fmt.Printf("Found: %s at %s\n", d.FriendlyLabel(), d.Location)
//	}
//
// # Network Requirements
//
//   - Requires multicast support on the network interface
//   - Routers must be on the same local network segment
//   - Firewall must allow SSDP (UDP port 1900)
package ssdp
