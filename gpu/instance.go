// Copyright (c) 2024, Ash Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gpu is a thin cross-API graphics abstraction over wgpu-native,
// selecting Vulkan on Windows and Linux and Metal on macOS. It exposes a
// single GENERAL-style synchronization model (see [PipelineStages]) instead
// of the image-layout transitions a raw Vulkan or Metal program would need,
// so that the render-graph executor in render/graph never has to reason
// about per-backend layout rules.
package gpu

import (
	"encoding/json"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ashforge/rendercore/base/logx"
	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// Debug enables verbose diagnostic output about adapter selection and
	// device configuration. Set with [SetDebug].
	Debug = false

	// DebugAdapter additionally prints full adapter info and limits when an
	// Instance is configured.
	DebugAdapter = false
)

// SetDebug sets [Debug] and adjusts the underlying wgpu log level to match.
func SetDebug(debug bool) {
	Debug = debug
	if Debug {
		wgpu.SetLogLevel(wgpu.LogLevelDebug)
	} else {
		wgpu.SetLogLevel(wgpu.LogLevelError)
	}
}

func init() { SetDebug(false) }

// PhysicalDevice is one GPU adapter visible to an Instance, along with the
// properties and limits of the hardware it represents.
type PhysicalDevice struct {
	// Name is the human-readable adapter name, e.g. "NVIDIA GeForce RTX 3080".
	Name string

	// Adapter is the underlying wgpu adapter handle.
	Adapter *wgpu.Adapter

	// Info is the raw adapter info reported by wgpu.
	Info wgpu.AdapterInfo

	// Limits is the set of resource limits this adapter supports.
	Limits wgpu.SupportedLimits

	// Discrete reports whether this is a discrete (non-integrated) GPU.
	Discrete bool
}

// Instance is the entry point into the GPU abstraction: it enumerates
// physical devices and creates logical [Device] connections to one of them.
// One Instance is created per process.
type Instance struct {
	// Instance is the underlying wgpu instance handle.
	Instance *wgpu.Instance

	// AppName is the name of the owning application, used for diagnostics.
	AppName string

	// Compute marks an Instance configured for compute-only workloads. Its
	// only effect is that adapter selection also honors the
	// VK_COMPUTE_DEVICE_SELECT environment variable.
	Compute bool

	// Selected is the physical device chosen by Config.
	Selected *PhysicalDevice
}

// NewInstance returns a new Instance configured for graphics and compute
// workloads. Config selects a physical device; RequestDevice calls it if
// it has not been called yet.
func NewInstance(appName string) *Instance {
	return &Instance{AppName: appName}
}

// NewComputeInstance returns a new Instance configured for compute-only use,
// whose adapter selection also honors VK_COMPUTE_DEVICE_SELECT.
func NewComputeInstance(appName string) *Instance {
	return &Instance{AppName: appName, Compute: true}
}

// Config enumerates available adapters, scores and selects one, and
// populates in.Selected. RequestDevice calls it if in.Selected is nil.
func (in *Instance) Config() error {
	in.Instance = wgpu.CreateInstance(nil)
	adapters := in.Instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		return ErrNoAdapter
	}
	idx := in.selectAdapter(adapters)
	ad := adapters[idx]
	info := ad.GetInfo()
	pd := &PhysicalDevice{
		Name:     info.Name,
		Adapter:  ad,
		Info:     info,
		Limits:   ad.GetLimits(),
		Discrete: info.AdapterType == wgpu.AdapterTypeDiscreteGPU,
	}
	in.Selected = pd
	if Debug || DebugAdapter {
		logx.PrintlnInfo("gpu: selected adapter:", pd.Name)
	}
	if DebugAdapter {
		logx.PrintlnDebug(in.PropertiesString())
	}
	return nil
}

// selectAdapter scores candidate adapters and returns the index of the best
// one, honoring the *_DEVICE_SELECT environment variables for manual
// override (by index or by substring of the adapter name).
func (in *Instance) selectAdapter(adapters []*wgpu.Adapter) int {
	n := len(adapters)
	if n == 1 {
		return 0
	}
	want := os.Getenv("VK_DEVICE_SELECT")
	if in.Compute {
		if ev := os.Getenv("VK_COMPUTE_DEVICE_SELECT"); ev != "" {
			want = ev
		}
	}
	if want != "" {
		if idx, err := strconv.Atoi(want); err == nil && idx >= 0 && idx < n {
			return idx
		}
		for i := range n {
			info := adapters[i].GetInfo()
			if isBadBackend(info.BackendType) {
				continue
			}
			if strings.Contains(info.Name, want) {
				if Debug {
					log.Printf("gpu: selected adapter %q by *_DEVICE_SELECT, index %d", info.Name, i)
				}
				return i
			}
		}
	}
	hiscore, best := -1, 0
	for i := range n {
		info := adapters[i].GetInfo()
		if isBadBackend(info.BackendType) {
			continue
		}
		score := 0
		if info.AdapterType == wgpu.AdapterTypeDiscreteGPU {
			score++
		}
		if !isGLBackend(info.BackendType) {
			score++
		}
		if score > hiscore {
			hiscore, best = score, i
		}
	}
	return best
}

func isGLBackend(bt wgpu.BackendType) bool {
	return bt == wgpu.BackendTypeOpenGL || bt == wgpu.BackendTypeOpenGLES
}

func isBadBackend(bt wgpu.BackendType) bool {
	return bt == wgpu.BackendTypeUndefined || bt == wgpu.BackendTypeNull
}

// PropertiesString returns a human-readable summary of the selected
// adapter's properties and limits, for diagnostics.
func (in *Instance) PropertiesString() string {
	if in.Selected == nil {
		return "gpu: no adapter selected"
	}
	info, _ := json.MarshalIndent(in.Selected.Info, "", "  ")
	lim, _ := json.MarshalIndent(in.Selected.Limits.Limits, "", "  ")
	return "######## adapter info\n" + string(info) + "\n######## adapter limits\n" + string(lim)
}

// Release releases the instance and its selected adapter.
func (in *Instance) Release() {
	if in.Selected != nil {
		in.Selected.Adapter.Release()
		in.Selected = nil
	}
	if in.Instance != nil {
		in.Instance.Release()
		in.Instance = nil
	}
}
