// Package system serves the welcome and health endpoints.
package system
