// Package job defines the stateful representation of a unit of work
// tracked by the queue.
//
// A Job carries both the client-supplied command and the delivery
// state the queue maintains on top of it: Status, Attempts, retry
// scheduling, and the last error message.
//
// Job values are typically returned by Queue and Store methods and
// passed back to them for state transitions. Job is not intended to
// be constructed manually by user code outside of Queue.Enqueue; its
// fields otherwise reflect authoritative state held by the store.
package job
