// Package logging provides structured logging for igd-setup.
//
// Logging is silent by default so interactive commands and the wizard
// stay clean. Set the IGD_SETUP_LOG_LEVEL environment variable to
// "debug", "info", "warn" or "error" to enable console output.
package logging
