// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package retain tracks the lifetime of GPU-backed rendering resources
// (geometry buffers, materials, textures) shared across many renderable
// nodes in a continuously mutating scenegraph.
//
// A [Tracker] maintains a reference count per resource and a registry of
// tracked renderable leaves. Call [Tracker.Track] when a subtree enters the
// live scene and [Tracker.Untrack] when it leaves: each registered leaf
// contributes one reference to every resource it owns, and a resource is
// released exactly when its last reference goes away. Tracking is
// idempotent per leaf, so repeated Track calls on the same (possibly grown)
// subtree are safe.
//
// [Tracker.CheckLeaks] is a separate, read-only diagnostic pass that
// reports leaves older than a threshold that are neither reachable from
// the live scene root nor marked as intentionally long-lived via
// [Tracker.MarkAsCache], along with renderable nodes present in the scene
// that were never tracked at all. It never changes reference counts.
//
// The tracker only arbitrates disposal timing. It never owns nodes,
// renders anything, or inspects resource contents.
package retain
