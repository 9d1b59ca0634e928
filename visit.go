// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package retain

import "cogentcore.org/retain/scene"

// LeafFunc is called once per renderable leaf encountered during a
// [VisitTree] walk, before any of that leaf's resources are visited.
// Returning [scene.Break] skips the leaf's resources (but not the rest
// of the subtree), which is how [Tracker.Track] avoids re-retaining
// resources of leaves it has already registered.
type LeafFunc func(sld *scene.Solid) bool

// ResourceFunc is called once per discovered resource.
type ResourceFunc func(rs scene.Resource)

// VisitTree does a pre-order walk of the subtree at the given node,
// calling leaf for every renderable [scene.Solid] and res for every
// resource owned by leaves that leaf approved. Transform-only nodes are
// walked but produce no callbacks. A nil leaf visits every leaf's
// resources. A nil node produces zero callbacks.
//
// A resource shared by two leaves in the subtree is reported once per
// owning leaf: per-leaf retention is exactly the reference-counting
// semantics the tracker wants, so VisitTree does not deduplicate
// across leaves.
func VisitTree(n scene.Node, leaf LeafFunc, res ResourceFunc) {
	if n == nil {
		return
	}
	n.AsNodeBase().WalkDown(func(k scene.Node) bool {
		sld := k.AsSolid()
		if sld == nil || !sld.Class.IsRenderable() {
			return scene.Continue
		}
		if leaf != nil && !leaf(sld) {
			return scene.Continue
		}
		visitSolid(sld, res)
		return scene.Continue
	})
}

// visitSolid visits the resources directly owned by one renderable leaf:
// its geometry buffer, each material (expanded), and for a skinned solid
// the skeleton's bone-data texture. Nil fields are skipped.
func visitSolid(sld *scene.Solid, res ResourceFunc) {
	if res == nil {
		return
	}
	if sld.Geometry != nil {
		res(sld.Geometry)
	}
	for _, mt := range sld.Materials {
		if mt != nil {
			visitMaterial(mt, res)
		}
	}
	if sld.Skeleton != nil && sld.Skeleton.BoneTexture != nil {
		res(sld.Skeleton.BoneTexture)
	}
}

// visitMaterial emits the material itself, then the textures in its fixed
// slots, then any explicit references from a [scene.TextureReferencer]
// shader material. The textures are gathered before the material is
// emitted: on the release path, visiting the material can drop its count
// to zero and invoke its Release, which nils the slots and references.
// The same texture appearing in multiple slots or references of one
// material is emitted only once per expansion.
func visitMaterial(mt scene.Material, res ResourceFunc) {
	var txs []scene.Texture
	var seen map[scene.Texture]bool
	gather := func(tx scene.Texture) {
		if tx == nil || seen[tx] {
			return
		}
		if seen == nil {
			seen = map[scene.Texture]bool{}
		}
		seen[tx] = true
		txs = append(txs, tx)
	}
	for _, tx := range mt.AsMaterialBase().Slots() {
		gather(tx)
	}
	if tr, ok := mt.(scene.TextureReferencer); ok {
		for _, tx := range tr.TextureRefs() {
			gather(tx)
		}
	}
	res(mt)
	for _, tx := range txs {
		res(tx)
	}
}

// VisitResource visits a single resource of any kind: a geometry buffer
// or texture is visited exactly once; a material is expanded to itself
// plus the textures it owns.
func VisitResource(rs scene.Resource, res ResourceFunc) {
	if rs == nil || res == nil {
		return
	}
	if mt, ok := rs.(scene.Material); ok {
		visitMaterial(mt, res)
		return
	}
	res(rs)
}
