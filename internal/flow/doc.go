// Package flow implements the guided setup flow for IGD routers.
//
// A Handler is a small state machine driven by its caller: each step
// method returns a Result saying what to do next (show a form, entry
// created, or aborted with a reason). One Handler serves one setup
// session; create a fresh Handler per session.
//
// Two paths lead to a created entry:
//
//	user:  StepUser(nil) scans -> selection form -> StepUser(selection) -> created
//	ssdp:  StepSSDP(discovery) -> confirm form -> StepConfirm(true) -> created
//
// The ssdp path also handles re-discovery: a router already configured
// under the same USN refreshes the stored MAC and location, and a
// router that changed its UDN (same MAC, same service type) has its
// existing entry rewritten instead of a duplicate being created.
//
// All failure paths are aborts with a named reason, not errors. Errors
// are reserved for I/O failures and host-contract violations.
package flow
