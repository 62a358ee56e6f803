// Package tui implements the interactive setup wizard for igd-setup.
//
// The wizard is a bubbletea program with three screens: discovery
// (scan and pick a router), confirm (yes/no before the entry is
// created), and result (success or failure). Screen models own their
// own state; AppModel coordinates transitions between them and drives
// the flow handler that does the actual work.
package tui
