// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"image"
	"image/color"
	"testing"

	"cogentcore.org/retain"
	"cogentcore.org/retain/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// interleaved unit quad: position, normal, texture coordinate per vertex
var quadVertex = []float32{
	0, 0, 0, 0, 0, 1, 0, 1,
	1, 0, 0, 0, 0, 1, 1, 1,
	1, 1, 0, 0, 0, 1, 1, 0,
	0, 1, 0, 0, 0, 1, 0, 0,
}

var quadIndex = []uint32{0, 1, 2, 0, 2, 3}

func TestGeometryLayout(t *testing.T) {
	// layout validation does not need a device
	dev := &Device{}
	_, err := NewGeometry(dev, "bad", quadVertex[:7], quadIndex, false)
	assert.Error(t, err)
}

func TestImageToRGBA(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 2, 2))
	gray.SetGray(0, 0, color.Gray{Y: 200})
	rimg := ImageToRGBA(gray)
	assert.Equal(t, image.Rect(0, 0, 2, 2), rimg.Rect)
	r, _, _, a := rimg.At(0, 0).RGBA()
	assert.Equal(t, uint32(200*257), r)
	assert.Equal(t, uint32(0xffff), a)

	// already RGBA: returned as is
	src := image.NewRGBA(image.Rect(0, 0, 3, 3))
	assert.Same(t, src, ImageToRGBA(src))
}

func TestGPUResources(t *testing.T) {
	t.Skip("Need software GPU on CI")
	dev, err := NoDisplayDevice()
	require.NoError(t, err)

	ge, err := NewGeometry(dev, "quad", quadVertex, quadIndex, false)
	require.NoError(t, err)
	assert.Equal(t, 4, ge.NumVertex)
	assert.Equal(t, 6, ge.NumIndex)
	assert.Equal(t, scene.V3(1, 1, 0), ge.BBox.Size())
	assert.NotNil(t, ge.VertexBuffer())

	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	tx, err := NewTexture(dev, "checker", img)
	require.NoError(t, err)
	assert.NotNil(t, tx.View())

	// tracked like any other resource: released at last untrack
	tr := retain.NewTracker(nil)
	sld := scene.NewSolid(nil, "quad", scene.ClassMesh)
	sld.SetGeometry(ge)
	mt := scene.NewMaterial("mat")
	mt.Diffuse = tx
	sld.SetMaterial(mt)

	tr.Track(sld)
	assert.Equal(t, 1, tr.Count(ge))
	tr.Untrack(sld)
	assert.Nil(t, ge.VertexBuffer())
	assert.Nil(t, tx.View())

	// second release is a no-op
	assert.NotPanics(t, func() { ge.Release(); tx.Release() })
}
