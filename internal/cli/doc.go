// Package cli defines the Cobra command tree for the edgegen CLI. The root
// command generates a project; each other file registers one subcommand
// (frameworks, doctor, check, config, version). Commands delegate to internal
// packages and only handle flag parsing, I/O formatting and user interaction.
package cli
