package scanq

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewRendezvous_InvalidParties(t *testing.T) {
	for _, parties := range []int{0, -3} {
		r, err := NewRendezvous(parties)
		require.Nil(t, r)
		require.ErrorIs(t, err, ErrInvalidParties)
	}
}

func TestRendezvous_SingleParty(t *testing.T) {
	r, err := NewRendezvous(1)
	require.NoError(t, err)

	leader, err := r.Wait()
	require.NoError(t, err)
	require.True(t, leader)
}

func TestRendezvous_ExactlyOneLeader(t *testing.T) {
	for _, parties := range []int{2, 3, 8, 32} {
		r, err := NewRendezvous(parties)
		require.NoError(t, err)

		var (
			leaders atomic.Int32
			wg      sync.WaitGroup
		)
		for i := 0; i < parties; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				leader, err := r.Wait()
				require.NoError(t, err)
				if leader {
					leaders.Add(1)
				}
			}()
		}
		wg.Wait()
		require.Equal(t, int32(1), leaders.Load(), "parties=%d", parties)
	}
}

func TestRendezvous_BlocksUntilLastArrives(t *testing.T) {
	r, err := NewRendezvous(2)
	require.NoError(t, err)

	released := make(chan struct{})
	go func() {
		_, err := r.Wait()
		require.NoError(t, err)
		close(released)
	}()

	select {
	case <-released:
		t.Fatal("rendezvous released before all parties arrived")
	case <-time.After(50 * time.Millisecond):
	}

	leader, err := r.Wait()
	require.NoError(t, err)
	require.True(t, leader, "last arriver is elected leader")

	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatal("first party was not released")
	}
}

func TestRendezvous_OrdersCounterWrites(t *testing.T) {
	// Each party writes its exclusive slot before Wait; the leader must
	// observe every write after release.
	const parties = 16
	r, err := NewRendezvous(parties)
	require.NoError(t, err)

	counts := make([]int, parties)
	total := make(chan int, 1)

	var wg sync.WaitGroup
	for i := 0; i < parties; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			counts[id] = id + 1
			leader, err := r.Wait()
			require.NoError(t, err)
			if leader {
				sum := 0
				for _, n := range counts {
					sum += n
				}
				total <- sum
			}
		}(i)
	}
	wg.Wait()

	require.Equal(t, parties*(parties+1)/2, <-total)
}

func TestRendezvous_ExtraWaitFails(t *testing.T) {
	r, err := NewRendezvous(1)
	require.NoError(t, err)

	leader, err := r.Wait()
	require.NoError(t, err)
	require.True(t, leader)

	leader, err = r.Wait()
	require.ErrorIs(t, err, ErrRendezvousBroken)
	require.False(t, leader)
}
