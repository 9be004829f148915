// internal/transfer/tally.go
package transfer

// Tally accumulates per-object success/failure for one operation invocation.
// It lives on the call stack of that invocation and is never shared. Failed
// keys are remembered so a strict finalize pass can skip their source copies.
type Tally struct {
	Succeeded int
	Failed    int

	failedKeys map[string]struct{}
}

func NewTally() *Tally {
	return &Tally{failedKeys: make(map[string]struct{})}
}

// Record counts one per-object outcome.
func (t *Tally) Record(key string, ok bool) {
	if ok {
		t.Succeeded++
		return
	}
	t.Failed++
	t.failedKeys[key] = struct{}{}
}

// HasFailed reports whether key's transfer was recorded as failed.
func (t *Tally) HasFailed(key string) bool {
	_, ok := t.failedKeys[key]
	return ok
}
