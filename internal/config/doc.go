// Package config manages user-level settings stored at ~/.edgegen/config.yaml.
// Values can be overridden with EDGEGEN_* environment variables, and command
// flags override both. Settings cover the package manager used for installs,
// the wrangler compatibility date and D1 database names, logging and the
// per-command timeout.
package config
