package mcp

import (
	"path/filepath"
	"sync"
)

type lockMode int

const (
	lockRead lockMode = iota
	lockWrite
)

// pathLocks serializes operations per repository path. The engine is
// not safe under concurrent mutating operations against the same
// working tree, so mutating calls take the write lock; read-only calls
// (status, diffs, log) share the read lock. Entries are refcounted and
// dropped once no caller holds them, so the map stays bounded by the
// number of in-flight calls rather than by every path ever named.
type pathLocks struct {
	mu    sync.Mutex
	locks map[string]*pathLock
}

type pathLock struct {
	mu   sync.RWMutex
	refs int
}

func newPathLocks() *pathLocks {
	return &pathLocks{locks: make(map[string]*pathLock)}
}

// acquire locks path in the requested mode and returns the release
// func. Paths are cleaned so trivial spelling variants share a lock.
func (p *pathLocks) acquire(path string, mode lockMode) (release func()) {
	key := filepath.Clean(path)

	p.mu.Lock()
	l, ok := p.locks[key]
	if !ok {
		l = &pathLock{}
		p.locks[key] = l
	}
	l.refs++
	p.mu.Unlock()

	if mode == lockRead {
		l.mu.RLock()
	} else {
		l.mu.Lock()
	}

	return func() {
		if mode == lockRead {
			l.mu.RUnlock()
		} else {
			l.mu.Unlock()
		}
		p.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(p.locks, key)
		}
		p.mu.Unlock()
	}
}

// held reports the number of live lock entries. Test hook.
func (p *pathLocks) held() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.locks)
}
