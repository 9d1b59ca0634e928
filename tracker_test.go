// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package retain

import (
	"image"
	"testing"
	"time"

	"cogentcore.org/retain/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testGeometry counts its releases.
type testGeometry struct {
	scene.GeometryBase
	released int
}

func (tg *testGeometry) Release() { tg.released++ }

// testTexture counts its releases.
type testTexture struct {
	scene.TextureBase
	released int
}

func (tt *testTexture) Release() { tt.released++ }

// testMaterial counts its releases.
type testMaterial struct {
	scene.MaterialBase
	released int
}

func (tm *testMaterial) Release() { tm.released++ }

func newTestGeometry(name string) *testGeometry {
	tg := &testGeometry{}
	tg.Name = name
	tg.NumVertex = 8
	tg.NumIndex = 36
	return tg
}

func newTestTexture(name string) *testTexture {
	tt := &testTexture{}
	tt.Name = name
	tt.RGBA = image.NewRGBA(image.Rect(0, 0, 4, 4))
	return tt
}

func newTestMaterial(name string) *testMaterial {
	tm := &testMaterial{}
	tm.Name = name
	tm.MaterialBase.Defaults()
	return tm
}

// testClock is a virtual clock starting at a fixed time.
type testClock struct {
	t time.Time
}

func newTestClock() *testClock {
	return &testClock{t: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
}

func (tc *testClock) now() time.Time { return tc.t }

func (tc *testClock) advance(d time.Duration) { tc.t = tc.t.Add(d) }

func TestRetainRelease(t *testing.T) {
	tr := NewTracker(nil)
	ge := newTestGeometry("geom")

	tr.Retain(ge)
	tr.Retain(ge)
	assert.Equal(t, 2, tr.Count(ge))

	tr.Release(ge)
	assert.Equal(t, 1, tr.Count(ge))
	assert.Equal(t, 0, ge.released)

	tr.Release(ge)
	assert.Equal(t, 0, tr.Count(ge))
	assert.Equal(t, 1, ge.released)
}

func TestReleaseUntracked(t *testing.T) {
	tr := NewTracker(nil)
	ge := newTestGeometry("geom")

	// defensive path: released immediately, exactly once, no panic
	tr.Release(ge)
	assert.Equal(t, 1, ge.released)
	assert.Equal(t, 0, tr.Count(ge))
}

// panicGeometry panics on Release.
type panicGeometry struct {
	scene.GeometryBase
}

func (pg *panicGeometry) Release() { panic("device lost") }

func TestReleasePanic(t *testing.T) {
	tr := NewTracker(nil)
	pg := &panicGeometry{}
	pg.Name = "bad"
	tr.Retain(pg)
	assert.NotPanics(t, func() {
		tr.Release(pg)
	})
	assert.Equal(t, 0, tr.Count(pg))
}

func TestTrackUntrack(t *testing.T) {
	tr := NewTracker(nil)
	ge := newTestGeometry("geom")
	mt := newTestMaterial("mat")
	tx := newTestTexture("tex")
	mt.Diffuse = tx

	root := scene.NewGroup(nil, "root")
	sld := scene.NewSolid(root, "obj", scene.ClassMesh)
	sld.SetGeometry(ge).SetMaterial(mt)

	tr.Track(root)
	assert.True(t, tr.IsTracked(sld))
	assert.Equal(t, 1, tr.Count(ge))
	assert.Equal(t, 1, tr.Count(mt))
	assert.Equal(t, 1, tr.Count(tx))

	tr.Untrack(root)
	assert.False(t, tr.IsTracked(sld))
	assert.Equal(t, 0, tr.NumTracked())
	assert.Equal(t, 1, ge.released)
	assert.Equal(t, 1, mt.released)
	assert.Equal(t, 1, tx.released)
}

func TestTrackIdempotent(t *testing.T) {
	tr := NewTracker(nil)
	ge := newTestGeometry("geom")

	root := scene.NewGroup(nil, "root")
	sld := scene.NewSolid(root, "obj", scene.ClassMesh)
	sld.SetGeometry(ge)

	for range 5 {
		tr.Track(root)
	}
	assert.Equal(t, 1, tr.Count(ge))

	tr.Untrack(root)
	assert.Equal(t, 0, tr.Count(ge))
	assert.Equal(t, 1, ge.released)
}

func TestTrackGrownSubtree(t *testing.T) {
	tr := NewTracker(nil)
	ge1 := newTestGeometry("geom1")
	ge2 := newTestGeometry("geom2")

	root := scene.NewGroup(nil, "root")
	scene.NewSolid(root, "obj1", scene.ClassMesh).SetGeometry(ge1)
	tr.Track(root)

	// subtree grows between Track calls: only the new leaf is retained
	scene.NewSolid(root, "obj2", scene.ClassMesh).SetGeometry(ge2)
	tr.Track(root)

	assert.Equal(t, 1, tr.Count(ge1))
	assert.Equal(t, 1, tr.Count(ge2))
	assert.Equal(t, 2, tr.NumTracked())
}

func TestSharedResourceSurvival(t *testing.T) {
	tr := NewTracker(nil)
	mt := newTestMaterial("shared")

	a := scene.NewSolid(nil, "a", scene.ClassMesh)
	a.SetMaterial(mt)
	b := scene.NewSolid(nil, "b", scene.ClassMesh)
	b.SetMaterial(mt)

	tr.Track(a)
	tr.Track(b)
	assert.Equal(t, 2, tr.Count(mt))

	tr.Untrack(a)
	assert.Equal(t, 1, tr.Count(mt))
	assert.Equal(t, 0, mt.released)

	tr.Untrack(b)
	assert.Equal(t, 0, tr.Count(mt))
	assert.Equal(t, 1, mt.released)
}

// the geometry G / leaves L1, L2 scenario
func TestSharedGeometryScenario(t *testing.T) {
	tr := NewTracker(nil)
	ge := newTestGeometry("G")

	l1 := scene.NewSolid(nil, "L1", scene.ClassMesh)
	l1.SetGeometry(ge)
	l2 := scene.NewSolid(nil, "L2", scene.ClassMesh)
	l2.SetGeometry(ge)

	tr.Track(l1)
	tr.Track(l2)
	require.Equal(t, 2, tr.Count(ge))

	tr.Untrack(l1)
	assert.Equal(t, 1, tr.Count(ge), "G must still be live")
	assert.Equal(t, 0, ge.released)

	tr.Untrack(l2)
	assert.Equal(t, 0, tr.Count(ge))
	assert.Equal(t, 1, ge.released, "release invoked exactly once")
}

func TestSkinnedSolid(t *testing.T) {
	tr := NewTracker(nil)
	bones := newTestTexture("bones")
	sld := scene.NewSolid(nil, "skin", scene.ClassMesh)
	sld.SetGeometry(newTestGeometry("geom"))
	sld.Skeleton = &scene.Skeleton{NumBones: 32, BoneTexture: bones}

	tr.Track(sld)
	assert.Equal(t, 1, tr.Count(bones))

	tr.Untrack(sld)
	assert.Equal(t, 1, bones.released)
}

func TestMultiMaterial(t *testing.T) {
	tr := NewTracker(nil)
	m0 := newTestMaterial("m0")
	m1 := newTestMaterial("m1")
	sld := scene.NewSolid(nil, "multi", scene.ClassMesh)
	sld.AddMaterial(m0).AddMaterial(m1)

	tr.Track(sld)
	assert.Equal(t, 1, tr.Count(m0))
	assert.Equal(t, 1, tr.Count(m1))

	tr.Untrack(sld)
	assert.Equal(t, 1, m0.released)
	assert.Equal(t, 1, m1.released)
}

func TestUntrackReleasesSlotTextures(t *testing.T) {
	tr := NewTracker(nil)
	df := newTestTexture("diffuse")
	nm := newTestTexture("normal")
	mt := scene.NewMaterial("mat")
	mt.Diffuse = df
	mt.Normal = nm

	sld := scene.NewSolid(nil, "obj", scene.ClassMesh)
	sld.SetGeometry(newTestGeometry("geom")).SetMaterial(mt)

	tr.Track(sld)
	assert.Equal(t, 1, tr.Count(mt))
	assert.Equal(t, 1, tr.Count(df))
	assert.Equal(t, 1, tr.Count(nm))

	// the material's own Release nils its slots; the textures must
	// still be released through the counts they were retained under
	tr.Untrack(sld)
	assert.Equal(t, 0, tr.Count(df))
	assert.Equal(t, 0, tr.Count(nm))
	assert.Equal(t, 1, df.released)
	assert.Equal(t, 1, nm.released)
	assert.Nil(t, mt.Diffuse)
}

func TestUntrackReleasesShaderUniformTextures(t *testing.T) {
	tr := NewTracker(nil)
	df := newTestTexture("diffuse")
	noise := newTestTexture("noise")
	sm := scene.NewShaderMaterial("fx", "// wgsl")
	sm.Diffuse = df
	sm.SetUniform("noiseTex", scene.Texture(noise))

	sld := scene.NewSolid(nil, "fxobj", scene.ClassMesh)
	sld.SetMaterial(sm)

	tr.Track(sld)
	assert.Equal(t, 1, tr.Count(sm))
	assert.Equal(t, 1, tr.Count(df))
	assert.Equal(t, 1, tr.Count(noise))

	tr.Untrack(sld)
	assert.Equal(t, 0, tr.NumTracked())
	assert.Equal(t, 1, df.released)
	assert.Equal(t, 1, noise.released)
	assert.Nil(t, sm.TextureRefs())
}

func TestUntrackUnregisteredLeaf(t *testing.T) {
	tr := NewTracker(nil)
	ge := newTestGeometry("geom")
	sld := scene.NewSolid(nil, "never", scene.ClassMesh)
	sld.SetGeometry(ge)

	// untrack of a never-tracked subtree releases nothing:
	// its leaves were never registered
	tr.Untrack(sld)
	assert.Equal(t, 0, ge.released)
}

func TestMarkAsCache(t *testing.T) {
	tr := NewTracker(nil)
	ge := newTestGeometry("geom")
	sld := scene.NewSolid(nil, "template", scene.ClassMesh)
	sld.SetGeometry(ge)

	tr.MarkAsCache(sld)
	assert.True(t, tr.IsTracked(sld))
	assert.True(t, tr.IsCached(sld))
	assert.Equal(t, 1, tr.NumCached())

	// still subject to normal reference counting
	assert.Equal(t, 1, tr.Count(ge))
	tr.Untrack(sld)
	assert.Equal(t, 1, ge.released)
}

func TestMarkAsCacheAlreadyTracked(t *testing.T) {
	tr := NewTracker(nil)
	ge := newTestGeometry("geom")
	sld := scene.NewSolid(nil, "obj", scene.ClassMesh)
	sld.SetGeometry(ge)

	tr.Track(sld)
	tr.MarkAsCache(sld)
	assert.True(t, tr.IsCached(sld))
	assert.Equal(t, 1, tr.Count(ge), "cache marking must not double-retain")
}
