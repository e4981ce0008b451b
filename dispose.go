// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package webview

import "sync"

// disposeList keeps the refs registered by one WebView alive until teardown.
// It only grows while the instance lives, then drain releases everything at once.
type disposeList struct {
	mu      sync.Mutex
	refs    []stableRef
	seen    map[stableRef]struct{}
	drained bool
}

func newDisposeList() *disposeList {
	return &disposeList{seen: make(map[stableRef]struct{})}
}

// add registers ref unless it is already present. Once the list has been drained
// it refuses new refs with ErrClosed; the caller still owns ref in that case.
func (d *disposeList) add(ref stableRef) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.drained {
		return ErrClosed
	}
	if _, ok := d.seen[ref]; ok {
		return nil
	}
	d.seen[ref] = struct{}{}
	d.refs = append(d.refs, ref)
	return nil
}

// drain releases every registered ref in registration order and closes the list.
// It returns the number of refs released; later calls return 0.
func (d *disposeList) drain() int {
	d.mu.Lock()
	refs := d.refs
	d.refs = nil
	d.seen = nil
	d.drained = true
	d.mu.Unlock()

	released := 0
	for _, ref := range refs {
		if ref.release() {
			released++
		}
	}
	return released
}

func (d *disposeList) len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.refs)
}
