package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionLockRepository_SameSessionSameLock(t *testing.T) {
	repo := NewSessionLockRepository()

	a := repo.Get("session-1")
	b := repo.Get("session-1")

	assert.Same(t, a, b)
}

func TestSessionLockRepository_DifferentSessionsDifferentLocks(t *testing.T) {
	repo := NewSessionLockRepository()

	a := repo.Get("session-1")
	b := repo.Get("session-2")

	assert.NotSame(t, a, b)
}

func TestSessionLockRepository_DeleteResetsLock(t *testing.T) {
	repo := NewSessionLockRepository()

	a := repo.Get("session-1")
	repo.Delete("session-1")
	b := repo.Get("session-1")

	assert.NotSame(t, a, b)
}

func TestSessionLockRepository_ConcurrentGet(t *testing.T) {
	repo := NewSessionLockRepository()

	const goroutines = 32
	locks := make([]*sync.Mutex, goroutines)

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func(i int) {
			defer wg.Done()
			locks[i] = repo.Get("shared")
		}(i)
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		assert.Same(t, locks[0], locks[i])
	}
}
