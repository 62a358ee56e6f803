// Package ui provides shared terminal styling for igd-setup command
// output: the color palette, status markers, and width helpers used by
// both the CLI commands and the setup wizard.
package ui
