// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gpu provides WebGPU-backed implementations of the scene
// resource interfaces: geometry buffers and textures whose Release
// frees device memory. The renderer that consumes the buffers is
// outside the scope of this package; it only manages allocation
// and disposal.
package gpu

import (
	"errors"

	"github.com/cogentcore/webgpu/wgpu"
)

// Device bundles the WebGPU device and queue used to allocate and
// upload resources. It is typically obtained from the surface or
// compute initialization of the surrounding app.
type Device struct {

	// Device is the logical WebGPU device.
	Device *wgpu.Device

	// Queue is the default queue of the device, used for uploads.
	Queue *wgpu.Queue
}

// NewDevice returns a [Device] wrapping the given WebGPU device
// and its default queue.
func NewDevice(dev *wgpu.Device) *Device {
	return &Device{Device: dev, Queue: dev.GetQueue()}
}

// NoDisplayDevice creates a headless device with no display surface,
// for compute or offscreen use, including tests.
func NoDisplayDevice() (*Device, error) {
	inst := wgpu.CreateInstance(nil)
	if inst == nil {
		return nil, errors.New("gpu: failed to create WebGPU instance")
	}
	adapter, err := inst.RequestAdapter(&wgpu.RequestAdapterOptions{})
	if err != nil {
		return nil, err
	}
	dev, err := adapter.RequestDevice(nil)
	if err != nil {
		return nil, err
	}
	return NewDevice(dev), nil
}
