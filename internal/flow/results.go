package flow

import (
	"fmt"

	"github.com/muurk/igd-setup/internal/entries"
)

// Step identifiers for forms returned by the flow
const (
	StepUser        = "user"
	StepSSDPConfirm = "ssdp_confirm"
)

// AbortReason names why a flow ended without creating an entry
type AbortReason string

const (
	// AbortNoDevicesFound - the scan found no unconfigured routers
	AbortNoDevicesFound AbortReason = "no_devices_found"
	// AbortIncompleteDiscovery - the discovery is missing required fields
	AbortIncompleteDiscovery AbortReason = "incomplete_discovery"
	// AbortAlreadyConfigured - the unique ID already has an entry
	AbortAlreadyConfigured AbortReason = "already_configured"
	// AbortDiscoveryIgnored - the device matches an ignored entry
	AbortDiscoveryIgnored AbortReason = "discovery_ignored"
	// AbortEntryUpdated - an existing entry was rewritten for a UDN change
	AbortEntryUpdated AbortReason = "config_entry_updated"
	// AbortCancelled - the user declined the confirmation form
	AbortCancelled AbortReason = "flow_cancelled"
)

// Message returns a human-readable description of the abort reason
func (r AbortReason) Message() string {
	switch r {
	case AbortNoDevicesFound:
		return "No unconfigured IGD routers found on the network"
	case AbortIncompleteDiscovery:
		return "Discovery is incomplete and cannot be configured"
	case AbortAlreadyConfigured:
		return "Router is already configured"
	case AbortDiscoveryIgnored:
		return "Router was previously ignored"
	case AbortEntryUpdated:
		return "Existing entry was updated for the rediscovered router"
	case AbortCancelled:
		return "Setup cancelled"
	default:
		return string(r)
	}
}

// ResultType discriminates the Result union
type ResultType int

const (
	// ResultForm - the flow wants input; present the form and call the
	// step again with the user's answer
	ResultForm ResultType = iota
	// ResultCreated - an entry was created and persisted
	ResultCreated
	// ResultAborted - the flow ended with a named reason
	ResultAborted
)

// FormOption is one selectable device in the user step's form
type FormOption struct {
	// UniqueID is the value to submit back (the SSDP USN)
	UniqueID string
	// Label is the user-recognizable device name
	Label string
}

// Result is the outcome of a flow step
type Result struct {
	Type ResultType

	// StepID identifies the form to show when Type is ResultForm
	StepID string
	// Options holds the selection options for the user form
	Options []FormOption
	// Placeholder is the device label shown on the confirm form
	Placeholder string

	// Reason is set when Type is ResultAborted
	Reason AbortReason

	// Entry is set when Type is ResultCreated
	Entry *entries.Entry
}

// String returns a short description of the result, for logs
func (r *Result) String() string {
	switch r.Type {
	case ResultForm:
		return fmt.Sprintf("form(%s)", r.StepID)
	case ResultCreated:
		return fmt.Sprintf("created(%s)", r.Entry.UniqueID)
	case ResultAborted:
		return fmt.Sprintf("abort(%s)", r.Reason)
	default:
		return fmt.Sprintf("result(%d)", r.Type)
	}
}

func formResult(stepID string, options []FormOption, placeholder string) *Result {
	return &Result{Type: ResultForm, StepID: stepID, Options: options, Placeholder: placeholder}
}

func createdResult(entry *entries.Entry) *Result {
	return &Result{Type: ResultCreated, Entry: entry}
}

func abortResult(reason AbortReason) *Result {
	return &Result{Type: ResultAborted, Reason: reason}
}
