// Package arp resolves the MAC address of a host on the local network.
//
// The resolver primes the kernel neighbor table with a throwaway UDP
// datagram, then reads the table back: /proc/net/arp on Linux, the
// arp(8) utility elsewhere. Only hosts on the local segment can be
// resolved; anything behind a gateway resolves to the gateway's MAC
// or fails.
package arp
