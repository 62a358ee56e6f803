package ssdp

import (
	"context"
	"fmt"
	"net/url"
	"testing"

	"github.com/huin/goupnp"
	gossdp "github.com/koron/go-ssdp"
)

func TestScannerSearchBothServiceTypes(t *testing.T) {
	var searched []string

	s := NewScanner()
	s.FetchDescriptions = false
	s.search = func(st string, waitSec int, localAddr string) ([]gossdp.Service, error) {
		searched = append(searched, st)
		return []gossdp.Service{{
			Type:     st,
			USN:      "uuid:igd-" + st,
			Location: "http://192.168.1.1:5000/desc.xml",
		}}, nil
	}

	discoveries, err := s.Search(context.Background())
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if len(searched) != 2 || searched[0] != STInternetGatewayV1 || searched[1] != STInternetGatewayV2 {
		t.Errorf("Search() searched %v, want both IGD service types", searched)
	}
	if len(discoveries) != 2 {
		t.Fatalf("Search() returned %d discoveries, want 2", len(discoveries))
	}
	if discoveries[0].Host != "192.168.1.1" {
		t.Errorf("discovery host = %v, want 192.168.1.1", discoveries[0].Host)
	}
}

func TestScannerSearchDeduplicatesByUSN(t *testing.T) {
	s := NewScanner()
	s.FetchDescriptions = false
	s.search = func(st string, waitSec int, localAddr string) ([]gossdp.Service, error) {
		// Same router answers for both search targets with one USN.
		return []gossdp.Service{{
			Type:     STInternetGatewayV2,
			USN:      "uuid:igd-1::" + STInternetGatewayV2,
			Location: "http://192.168.1.1:5000/desc.xml",
		}}, nil
	}

	discoveries, err := s.Search(context.Background())
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(discoveries) != 1 {
		t.Errorf("Search() returned %d discoveries, want 1 after deduplication", len(discoveries))
	}
}

func TestScannerSearchError(t *testing.T) {
	s := NewScanner()
	s.search = func(st string, waitSec int, localAddr string) ([]gossdp.Service, error) {
		return nil, fmt.Errorf("network down")
	}

	if _, err := s.Search(context.Background()); err == nil {
		t.Error("Search() expected error when ssdp search fails")
	}
}

func TestDiscoveryFromServiceSTFallback(t *testing.T) {
	s := NewScanner()
	s.FetchDescriptions = false

	d := s.discoveryFromService(gossdp.Service{
		USN:      "uuid:igd-1::" + STInternetGatewayV1,
		Location: "http://192.168.1.1:5000/desc.xml",
	}, STInternetGatewayV1)

	if d.ST != STInternetGatewayV1 {
		t.Errorf("ST = %v, want search target fallback %v", d.ST, STInternetGatewayV1)
	}
	if d.UDN != "uuid:igd-1" {
		t.Errorf("UDN = %v, want uuid:igd-1", d.UDN)
	}
}

func TestFillDescription(t *testing.T) {
	s := NewScanner()
	s.describe = func(loc *url.URL) (*goupnp.RootDevice, error) {
		return &goupnp.RootDevice{
			Device: goupnp.Device{
				UDN:          "uuid:from-description",
				FriendlyName: "Test Router",
				ModelName:    "TR-1000",
			},
		}, nil
	}

	d := &Discovery{
		USN:      "uuid:igd-1::" + STInternetGatewayV1,
		Location: "http://192.168.1.1:5000/desc.xml",
		UDN:      "uuid:igd-1",
	}
	s.fillDescription(d)

	if d.FriendlyName != "Test Router" {
		t.Errorf("FriendlyName = %v, want Test Router", d.FriendlyName)
	}
	if d.ModelName != "TR-1000" {
		t.Errorf("ModelName = %v, want TR-1000", d.ModelName)
	}
	if d.UDN != "uuid:from-description" {
		t.Errorf("UDN = %v, description UDN should win", d.UDN)
	}
}

func TestFillDescriptionFailureKeepsDiscovery(t *testing.T) {
	s := NewScanner()
	s.describe = func(loc *url.URL) (*goupnp.RootDevice, error) {
		return nil, fmt.Errorf("connection refused")
	}

	d := &Discovery{
		USN:      "uuid:igd-1::" + STInternetGatewayV1,
		Location: "http://192.168.1.1:5000/desc.xml",
		UDN:      "uuid:igd-1",
	}
	s.fillDescription(d)

	if d.UDN != "uuid:igd-1" {
		t.Errorf("UDN = %v, want USN-derived UDN preserved", d.UDN)
	}
	if d.FriendlyName != "" {
		t.Errorf("FriendlyName = %v, want empty", d.FriendlyName)
	}
}
