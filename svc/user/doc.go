// Package user manages accounts: registration with duplicate detection,
// exact-match lookups used by login, and the superuser created at startup.
package user
