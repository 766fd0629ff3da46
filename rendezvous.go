package scanq

import (
	"strconv"
	"sync"

	"github.com/ygrebnov/errorc"
)

// Rendezvous is a one-shot barrier for a fixed number of parties. Every
// caller of Wait blocks until the last party arrives; all are then released
// together, and the last arriver is reported as the leader. The release
// establishes a happens-before edge from everything each party did before its
// Wait call to everything every party does after release.
type Rendezvous struct {
	mu      sync.Mutex
	cond    *sync.Cond
	parties int
	arrived int

	released bool
}

// NewRendezvous creates a barrier for the given number of parties.
func NewRendezvous(parties int) (*Rendezvous, error) {
	if parties < 1 {
		return nil, errorc.With(
			ErrInvalidParties,
			errorc.String("parties", strconv.Itoa(parties)),
		)
	}
	r := &Rendezvous{parties: parties}
	r.cond = sync.NewCond(&r.mu)
	return r, nil
}

// Wait blocks until all parties have arrived and reports whether the caller
// was elected leader. Exactly one caller per rendezvous is the leader.
// Calling Wait after the barrier has released, or from more goroutines than
// there are parties, returns ErrRendezvousBroken.
func (r *Rendezvous) Wait() (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return false, errorc.With(
			ErrRendezvousBroken,
			errorc.String("parties", strconv.Itoa(r.parties)),
		)
	}

	r.arrived++
	if r.arrived == r.parties {
		r.released = true
		r.cond.Broadcast()
		return true, nil
	}

	for !r.released {
		r.cond.Wait()
	}
	return false, nil
}
