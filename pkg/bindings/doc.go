// Package bindings protects callers from silently losing variable
// bindings when they overwrite them.
//
// Each protected scope carries a Safehouse: a named registry of
// displaced values. Before Assign rebinds a name, the current value is
// deep-copied into a Refugee and housed, keyed by a unique ID and
// retrievable by ID or by name history (oldest first). The Safehouse
// lives as a binding inside the scope it protects, so clearing the
// scope clears its backups, and replacing the house itself goes
// through the same protection.
package bindings
