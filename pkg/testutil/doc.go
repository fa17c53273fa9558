// Package testutil provides shared helpers for safehold tests: quick
// file fixtures and a recorder for the notices the protection
// protocols emit.
package testutil
