// Package guard provides the process-wide exclusive permits that keep other
// parts of the program quiet while a batch rename is in flight.
//
// Two permits exist. UI is held while the external editor runs and while the
// confirmation and failure prompts own the terminal. Watch is held for the
// rename pass so the watch subsystem never reacts to intermediate states.
//
// A permit is taken with Acquire and given back with the returned Lease:
//
//	lease, err := guard.Watch.Acquire(ctx)
//	if err != nil {
//		return err
//	}
//	defer lease.Release()
package guard
