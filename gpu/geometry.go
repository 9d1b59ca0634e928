// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"

	"cogentcore.org/retain/scene"
	"github.com/cogentcore/webgpu/wgpu"
)

// Geometry is a geometry buffer in device memory: an interleaved vertex
// buffer (position, normal, texture coordinate, and optionally color per
// vertex) and a uint32 index buffer. Release frees both buffers.
type Geometry struct {
	scene.GeometryBase

	// vertex is the interleaved vertex buffer, in device memory.
	vertex *wgpu.Buffer

	// index is the uint32 index buffer, in device memory.
	index *wgpu.Buffer

	// keep track of device for buffer management
	device Device
}

// floats per vertex in the interleaved layout
const (
	vertexFloats      = 3 + 3 + 2
	vertexColorFloats = 4
)

// NewGeometry creates device buffers for the given interleaved vertex
// data and indexes, and returns the resulting [Geometry]. The vertex
// data length must be a multiple of the interleaved layout size
// (8 float32s per vertex, 12 with hasColor).
func NewGeometry(dev *Device, name string, vtx []float32, idx []uint32, hasColor bool) (*Geometry, error) {
	vf := vertexFloats
	if hasColor {
		vf += vertexColorFloats
	}
	if len(vtx)%vf != 0 {
		return nil, fmt.Errorf("gpu.NewGeometry %s: vertex data length %d is not a multiple of the %d-float vertex layout", name, len(vtx), vf)
	}
	ge := &Geometry{device: *dev}
	ge.Name = name
	ge.NumVertex = len(vtx) / vf
	ge.NumIndex = len(idx)
	ge.HasColor = hasColor
	ge.BBox.SetEmpty()
	for i := 0; i+2 < len(vtx); i += vf {
		ge.BBox.ExpandByPoint(scene.V3(vtx[i], vtx[i+1], vtx[i+2]))
	}

	vb, err := dev.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    name + ":vertex",
		Contents: wgpu.ToBytes(vtx),
		Usage:    wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	ge.vertex = vb
	ib, err := dev.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    name + ":index",
		Contents: wgpu.ToBytes(idx),
		Usage:    wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		ge.Release()
		return nil, err
	}
	ge.index = ib
	return ge, nil
}

// VertexBuffer returns the device vertex buffer, nil after Release.
func (ge *Geometry) VertexBuffer() *wgpu.Buffer { return ge.vertex }

// IndexBuffer returns the device index buffer, nil after Release.
func (ge *Geometry) IndexBuffer() *wgpu.Buffer { return ge.index }

// SetVertexData rewrites the vertex buffer contents in place, for
// dynamic geometry. The data size must match the existing buffer.
func (ge *Geometry) SetVertexData(vtx []float32) error {
	if ge.vertex == nil {
		return fmt.Errorf("gpu.Geometry %s: SetVertexData on released buffer", ge.Name)
	}
	return ge.device.Queue.WriteBuffer(ge.vertex, 0, wgpu.ToBytes(vtx))
}

// Release frees the device buffers. It is safe to call more than once.
func (ge *Geometry) Release() {
	if ge.vertex != nil {
		ge.vertex.Release()
		ge.vertex = nil
	}
	if ge.index != nil {
		ge.index.Release()
		ge.index = nil
	}
}

var _ scene.Geometry = &Geometry{}
