// Package types defines the interfaces shared across safehold packages,
// most notably the FS filesystem abstraction that lets the guard
// protocol run against injectable filesystems in tests.
package types
