// Package fileguard protects callers from silently losing file content
// when they overwrite a file on disk.
//
// The protocol is snapshot-before-mutate, verify-after-mutate,
// recover-on-failure: an existing file is copied aside before the
// caller's write logic runs, the content is re-checksummed afterwards,
// and on any change the copy becomes a permanent sibling backup named
// {stem}_{8 hex digits}{ext}. The caller's own error always propagates
// unmodified in meaning; the guard only adds bookkeeping around it.
//
// The package provides no cross-process locking and assumes a single
// writer per path; callers needing concurrent protection must
// serialize externally.
package fileguard
