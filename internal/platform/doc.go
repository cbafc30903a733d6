// Package platform holds the permission defaults used when materializing a
// project and a chmod helper that works against any afero filesystem.
package platform
