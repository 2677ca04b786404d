// Package runner defines the external command-execution capability the
// queue depends on but does not implement itself.
//
// The core treats subprocess execution as opaque: invoke a command,
// obtain an Outcome carrying exit status and stderr, within a hard
// wall-clock timeout. Runner is the seam between the queue's retry
// and DLQ machinery and whatever actually runs a command — a shell,
// an argv-array exec, or (in tests) a stub.
package runner
