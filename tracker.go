// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package retain

import (
	"log/slog"
	"sync"
	"time"

	"cogentcore.org/retain/scene"
)

// leaf is the registry entry for one tracked renderable leaf.
type leaf struct {

	// at is the wall-clock time of first Track.
	at time.Time

	// cached exempts the leaf from leak reporting. It has no effect
	// on reference counting.
	cached bool
}

// Tracker manages the lifetime of the disposable GPU-backed resources
// owned by renderable leaves in a scenegraph. It keeps a reference count
// per resource and a registry of tracked leaves, releasing each resource
// exactly when its last owning leaf is untracked.
//
// Pass one Tracker instance to every spawner and the render loop for a
// given scene; there is deliberately no package-level instance. All
// methods are safe for concurrent use, for integrations that spawn
// subtrees from worker goroutines.
type Tracker struct {
	mu sync.Mutex

	// counts is the live reference count per resource. No zero-count
	// entries persist: a resource is released and removed in the same
	// operation that decrements it to zero.
	counts map[scene.Resource]int

	// leaves is the registry of tracked renderable leaves.
	leaves map[*scene.Solid]*leaf

	// settings are the diagnostic thresholds for leak checking.
	settings Settings

	logger *slog.Logger
	now    func() time.Time
}

// NewTracker returns a new [Tracker] with the given settings,
// or defaults if nil.
func NewTracker(set *Settings) *Tracker {
	tr := &Tracker{
		counts: map[scene.Resource]int{},
		leaves: map[*scene.Solid]*leaf{},
		logger: slog.Default(),
		now:    time.Now,
	}
	if set != nil {
		tr.settings = *set
	} else {
		tr.settings.Defaults()
	}
	return tr
}

// SetLogger sets the logger used for diagnostics. Pass nil to restore
// the default logger.
func (tr *Tracker) SetLogger(lg *slog.Logger) *Tracker {
	if lg == nil {
		lg = slog.Default()
	}
	tr.mu.Lock()
	tr.logger = lg
	tr.mu.Unlock()
	return tr
}

// SetClock sets the time source used for leaf timestamps and ages,
// for testing with a virtual clock. Pass nil to restore [time.Now].
func (tr *Tracker) SetClock(now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	tr.mu.Lock()
	tr.now = now
	tr.mu.Unlock()
	return tr
}

// Retain adds one reference to the given resource, creating its count
// entry on first sight. A nil resource is ignored.
func (tr *Tracker) Retain(rs scene.Resource) {
	if rs == nil {
		return
	}
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.retain(rs)
}

// Release removes one reference from the given resource, releasing it
// when the count reaches zero. Releasing a resource with no count entry
// indicates an accounting bug elsewhere: the resource is released
// immediately and a diagnostic is emitted, since leaving it live would
// be a confirmed leak. A nil resource is ignored.
func (tr *Tracker) Release(rs scene.Resource) {
	if rs == nil {
		return
	}
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.release(rs)
}

func (tr *Tracker) retain(rs scene.Resource) {
	tr.counts[rs]++
}

func (tr *Tracker) release(rs scene.Resource) {
	n, ok := tr.counts[rs]
	switch {
	case !ok:
		tr.logger.Warn("retain: release of untracked resource; releasing anyway",
			"kind", rs.Kind(), "name", scene.ResourceName(rs))
		tr.releaseResource(rs)
	case n > 1:
		tr.counts[rs] = n - 1
	default:
		delete(tr.counts, rs)
		tr.releaseResource(rs)
	}
}

// releaseResource invokes the resource's Release, containing any panic:
// a faulty resource must not prevent cleanup of others or abort the
// caller's frame.
func (tr *Tracker) releaseResource(rs scene.Resource) {
	defer func() {
		if r := recover(); r != nil {
			tr.logger.Error("retain: panic in resource Release",
				"kind", rs.Kind(), "name", scene.ResourceName(rs), "panic", r)
		}
	}()
	rs.Release()
}

// Track registers every renderable leaf in the subtree at the given node,
// retaining one reference to each resource the leaf owns. Leaves already
// registered are skipped without re-retaining, while traversal continues
// deep enough to pick up leaves added to the subtree since the last call,
// so repeated Track calls on the same root are idempotent per leaf.
func (tr *Tracker) Track(n scene.Node) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.track(n)
}

func (tr *Tracker) track(n scene.Node) {
	VisitTree(n, func(sld *scene.Solid) bool {
		if _, ok := tr.leaves[sld]; ok {
			return scene.Break
		}
		tr.leaves[sld] = &leaf{at: tr.now()}
		return scene.Continue
	}, func(rs scene.Resource) {
		tr.retain(rs)
	})
}

// Untrack unregisters every leaf in the subtree at the given node that
// was previously registered, releasing one reference to each resource
// the leaf owns. Leaves never registered are skipped entirely.
// Track and Untrack calls must be paired around a subtree's time in the
// live scene.
func (tr *Tracker) Untrack(n scene.Node) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	VisitTree(n, func(sld *scene.Solid) bool {
		if _, ok := tr.leaves[sld]; !ok {
			tr.logger.Debug("retain: untrack of unregistered leaf", "path", sld.Path())
			return scene.Break
		}
		delete(tr.leaves, sld)
		return scene.Continue
	}, func(rs scene.Resource) {
		tr.release(rs)
	})
}

// MarkAsCache tracks the subtree at the given node (if not already
// tracked) and flags every leaf in it as an intentionally long-lived,
// cached object, permanently exempt from leak reporting. Cached leaves
// remain subject to normal reference counting: caching affects only
// diagnostics, never lifetime.
func (tr *Tracker) MarkAsCache(n scene.Node) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.track(n)
	VisitTree(n, func(sld *scene.Solid) bool {
		if lf, ok := tr.leaves[sld]; ok {
			lf.cached = true
		}
		return scene.Break // registry flag only; no resource visits needed
	}, nil)
}

// Count returns the current reference count for the given resource,
// or 0 if it has no entry.
func (tr *Tracker) Count(rs scene.Resource) int {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return tr.counts[rs]
}

// NumTracked returns the number of currently registered leaves.
func (tr *Tracker) NumTracked() int {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return len(tr.leaves)
}

// NumCached returns the number of registered leaves flagged as cached.
func (tr *Tracker) NumCached() int {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	nc := 0
	for _, lf := range tr.leaves {
		if lf.cached {
			nc++
		}
	}
	return nc
}

// IsTracked returns whether the given leaf is currently registered.
func (tr *Tracker) IsTracked(sld *scene.Solid) bool {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	_, ok := tr.leaves[sld]
	return ok
}

// IsCached returns whether the given leaf is registered and flagged
// as cached.
func (tr *Tracker) IsCached(sld *scene.Solid) bool {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	lf, ok := tr.leaves[sld]
	return ok && lf.cached
}
