package retained

import "sync"

// ============================================================================
// Command Slice Pooling
// ============================================================================
//
// A command list is built from scratch every frame. Pooling the backing
// slices keeps steady-state frames from allocating.
//
// Usage:
//   cmds := acquireCommandSlice()
//   cmds = append(cmds, ...)
//   releaseCommandSlice(cmds)

var commandSlicePool = sync.Pool{
	New: func() interface{} {
		return make([]Command, 0, 64)
	},
}

// acquireCommandSlice gets an empty command slice from the pool.
func acquireCommandSlice() []Command {
	return commandSlicePool.Get().([]Command)[:0]
}

// releaseCommandSlice returns a command slice to the pool.
func releaseCommandSlice(slice []Command) {
	if slice == nil {
		return
	}

	// Clear to drop image references
	for i := range slice {
		slice[i] = Command{}
	}

	// Only pool slices up to a reasonable size to avoid memory bloat
	if cap(slice) <= 4096 {
		commandSlicePool.Put(slice[:0])
	}
}
