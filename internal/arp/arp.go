package arp

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"os/exec"
	"regexp"
	"runtime"
	"strings"
	"time"
)

const (
	// probeWait gives the kernel time to complete the ARP exchange
	// after the priming datagram
	probeWait = 250 * time.Millisecond

	procNetARP = "/proc/net/arp"
)

var macPattern = regexp.MustCompile(`(?i)\b([0-9a-f]{2}(?::[0-9a-f]{2}){5})\b`)

// Resolve returns the MAC address of the given host, normalized to
// lowercase colon-separated form. The host may be an IP address or a
// resolvable name.
func Resolve(ctx context.Context, host string) (string, error) {
	ip := net.ParseIP(host)
	if ip == nil {
		addrs, err := net.DefaultResolver.LookupHost(ctx, host)
		if err != nil || len(addrs) == 0 {
			return "", fmt.Errorf("cannot resolve host %q: %w", host, err)
		}
		ip = net.ParseIP(addrs[0])
		if ip == nil {
			return "", fmt.Errorf("cannot resolve host %q", host)
		}
	}

	prime(ip)

	select {
	case <-time.After(probeWait):
	case <-ctx.Done():
		return "", ctx.Err()
	}

	if runtime.GOOS == "linux" {
		return resolveProc(ip)
	}
	return resolveExec(ctx, ip)
}

// prime sends a throwaway UDP datagram so the kernel performs the ARP
// exchange for us. The discard port is fine; nothing needs to answer.
func prime(ip net.IP) {
	conn, err := net.DialTimeout("udp", net.JoinHostPort(ip.String(), "9"), probeWait)
	if err != nil {
		return
	}
	_, _ = conn.Write([]byte{0})
	_ = conn.Close()
}

// resolveProc reads the neighbor table from /proc/net/arp
func resolveProc(ip net.IP) (string, error) {
	f, err := os.Open(procNetARP)
	if err != nil {
		return "", fmt.Errorf("cannot read arp table: %w", err)
	}
	defer f.Close()

	return parseProcNetARP(f, ip.String())
}

// parseProcNetARP scans /proc/net/arp content for the given IP.
// Columns: IP address, HW type, Flags, HW address, Mask, Device.
func parseProcNetARP(r io.Reader, ip string) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Scan() // header line

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 || fields[0] != ip {
			continue
		}
		// Flags 0x0 marks an incomplete neighbor
		if fields[2] == "0x0" {
			continue
		}
		mac := strings.ToLower(fields[3])
		if mac == "00:00:00:00:00:00" {
			continue
		}
		return mac, nil
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("cannot read arp table: %w", err)
	}
	return "", fmt.Errorf("no arp entry for %s", ip)
}

// resolveExec shells out to arp(8) on platforms without /proc/net/arp
func resolveExec(ctx context.Context, ip net.IP) (string, error) {
	out, err := exec.CommandContext(ctx, "arp", "-n", ip.String()).Output()
	if err != nil {
		return "", fmt.Errorf("arp lookup failed for %s: %w", ip, err)
	}

	match := macPattern.FindString(string(out))
	if match == "" {
		return "", fmt.Errorf("no arp entry for %s", ip)
	}
	return strings.ToLower(match), nil
}
