// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"image"
	"image/draw"

	"cogentcore.org/retain/scene"
	"github.com/cogentcore/webgpu/wgpu"
)

// Texture is a texture in device memory, with an associated view.
// Release frees the view and the texture.
type Texture struct {
	scene.TextureBase

	// WebGPU texture handle, in device memory
	texture *wgpu.Texture

	// WebGPU texture view
	view *wgpu.TextureView

	// keep track of device for destroying view
	device Device
}

// NewTexture creates a device texture of the given name from the given
// image, uploading the pixel data via the device queue.
func NewTexture(dev *Device, name string, img image.Image) (*Texture, error) {
	tx := &Texture{device: *dev}
	tx.Name = name
	if err := tx.SetFromGoImage(img); err != nil {
		return nil, err
	}
	return tx, nil
}

// SetFromGoImage sets the texture data from a standard Go image.
// This is most efficiently done from an [image.RGBA], but other formats
// are converted as necessary. It recreates the device texture at the
// image size and starts the full WriteTexture upload to the device.
func (tx *Texture) SetFromGoImage(img image.Image) error {
	rimg := ImageToRGBA(img)
	sz := rimg.Rect.Size()
	tx.RGBA = rimg

	err := tx.createTexture(sz, wgpu.TextureUsageTextureBinding|wgpu.TextureUsageCopyDst)
	if err != nil {
		return err
	}
	tx.device.Queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Aspect:   wgpu.TextureAspectAll,
			Texture:  tx.texture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{X: 0, Y: 0, Z: 0},
		},
		rimg.Pix,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  4 * uint32(sz.X),
			RowsPerImage: uint32(sz.Y),
		},
		&wgpu.Extent3D{
			Width:              uint32(sz.X),
			Height:             uint32(sz.Y),
			DepthOrArrayLayers: 1,
		},
	)
	return nil
}

// createTexture creates the device texture and a view of it at the
// given size, releasing any existing one first.
func (tx *Texture) createTexture(sz image.Point, usage wgpu.TextureUsage) error {
	tx.releaseTexture()

	t, err := tx.device.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label: tx.Name,
		Size: wgpu.Extent3D{
			Width:              uint32(sz.X),
			Height:             uint32(sz.Y),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		Usage:         usage,
	})
	if err != nil {
		return err
	}
	tx.texture = t
	vw, err := t.CreateView(nil)
	if err != nil {
		return err
	}
	tx.view = vw
	return nil
}

// View returns the device texture view, nil after Release.
func (tx *Texture) View() *wgpu.TextureView { return tx.view }

// releaseView destroys any existing view.
func (tx *Texture) releaseView() {
	if tx.view == nil {
		return
	}
	tx.view.Release()
	tx.view = nil
}

// releaseTexture frees the device memory version of the texture.
func (tx *Texture) releaseTexture() {
	tx.releaseView()
	if tx.texture == nil {
		return
	}
	tx.texture.Release()
	tx.texture = nil
}

// Release frees the view and device texture, and drops the cached
// image data. It is safe to call more than once.
func (tx *Texture) Release() {
	tx.releaseTexture()
	tx.TextureBase.Release()
}

// ImageToRGBA returns the given image as an [image.RGBA],
// converting if necessary.
func ImageToRGBA(img image.Image) *image.RGBA {
	if rimg, ok := img.(*image.RGBA); ok {
		return rimg
	}
	rimg := image.NewRGBA(img.Bounds())
	draw.Draw(rimg, rimg.Bounds(), img, img.Bounds().Min, draw.Src)
	return rimg
}

var _ scene.Texture = &Texture{}
