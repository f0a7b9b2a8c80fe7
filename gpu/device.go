// Copyright (c) 2024, Ash Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"github.com/ashforge/rendercore/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// QueueKind distinguishes the queue roles a Device can expose. rendercore's
// core (the render-graph and target hub) is single-queue only; additional
// kinds exist so a host application can request an async transfer or
// compute queue where the backend genuinely offers one, without forcing
// every caller through the graphics queue.
type QueueKind int32

const (
	QueueGraphics QueueKind = iota
	QueueCompute
	QueueTransfer
)

// QueueRequest asks a Device for one queue of the given kind.
type QueueRequest struct {
	Kind QueueKind
}

// FeatureSet is the set of optional wgpu features a Device should be
// created with, beyond whatever the adapter requires unconditionally.
type FeatureSet struct {
	Features []wgpu.FeatureName
}

// DeviceDesc configures device creation.
type DeviceDesc struct {
	// QueueFamilies lists the queues the caller wants available on the
	// resulting Device. rendercore only ever plans work against the first
	// entry; further entries are exposed for host applications that need
	// a dedicated transfer or compute queue.
	QueueFamilies []QueueRequest

	// Features requests optional backend features (e.g. timestamp
	// queries). They are passed to wgpu as required features, and
	// Device.Features records this set as requested.
	Features FeatureSet

	// Label is an optional debug label forwarded to wgpu.
	Label string
}

// Device is a logical connection to a [PhysicalDevice], through which
// buffers, images, shader libraries, pipelines and command encoders are
// created. RequestDevice creates one [Queue] per entry in
// DeviceDesc.QueueFamilies, or a single graphics Queue if that list is
// empty; the first Queue is the device's default.
type Device struct {
	Device   *wgpu.Device
	Instance *Instance
	Queues   []*Queue
	Features FeatureSet
	Label    string
}

// RequestDevice creates a logical Device on the instance's selected
// physical device, per desc.
func (in *Instance) RequestDevice(desc DeviceDesc) (*Device, error) {
	if in.Selected == nil {
		if err := in.Config(); err != nil {
			return nil, err
		}
	}
	wdev, err := in.Selected.Adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label:            desc.Label,
		RequiredFeatures: desc.Features.Features,
	})
	if err != nil {
		return nil, errors.Logf("gpu: request device", err)
	}
	dev := &Device{
		Device:   wdev,
		Instance: in,
		Features: desc.Features,
		Label:    desc.Label,
	}
	n := len(desc.QueueFamilies)
	if n == 0 {
		n = 1
	}
	dev.Queues = make([]*Queue, n)
	for i := range dev.Queues {
		kind := QueueGraphics
		if i < len(desc.QueueFamilies) {
			kind = desc.QueueFamilies[i].Kind
		}
		dev.Queues[i] = newQueue(dev, wdev.GetQueue(), kind)
	}
	return dev, nil
}

// Queue returns the device's default (first) queue.
func (d *Device) Queue() *Queue { return d.Queues[0] }

// WaitDone blocks the calling goroutine until all work submitted to every
// queue on this device has completed.
func (d *Device) WaitDone() {
	for _, q := range d.Queues {
		q.Idle()
	}
}

// Release releases the device and everything it owns.
func (d *Device) Release() {
	if d.Device == nil {
		return
	}
	d.Device.Release()
	d.Device = nil
}
