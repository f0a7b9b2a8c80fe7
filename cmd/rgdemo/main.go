// Copyright (c) 2024, Ash Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command rgdemo opens a window, builds a one-job work graph that clears
// the surface to a solid color and presents it, and runs it until the
// window is closed. It exists to exercise gpu, render/graph,
// render/builder, render/jobs and render/driver end to end; it does not
// handle keyboard or mouse input.
package main

import (
	"runtime"

	"github.com/ashforge/rendercore/base/appcfg"
	"github.com/ashforge/rendercore/base/errors"
	"github.com/ashforge/rendercore/base/logx"
	"github.com/ashforge/rendercore/gpu"
	"github.com/ashforge/rendercore/render/builder"
	"github.com/ashforge/rendercore/render/driver"
	"github.com/ashforge/rendercore/render/graph"
	"github.com/ashforge/rendercore/render/jobs"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() { runtime.LockOSThread() }

func main() {
	cfg, err := appcfg.Load("rgdemo.toml")
	if err != nil {
		return
	}
	logx.SetUserLevel(cfg.Log.Level)
	logx.UseColor = cfg.Log.Color
	gpu.SetDebug(cfg.Device.Debug)
	gpu.DebugAdapter = cfg.Device.DebugAdapter

	if errors.Log(glfw.Init()) != nil {
		return
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	win, err := glfw.CreateWindow(int(cfg.Device.Width), int(cfg.Device.Height), appName(cfg), nil, nil)
	if errors.Log(err) != nil {
		return
	}

	instance := gpu.NewInstance(appName(cfg))
	if errors.Log(instance.Config()) != nil {
		return
	}
	defer instance.Release()

	device, err := instance.RequestDevice(gpu.DeviceDesc{Label: appName(cfg)})
	if errors.Log(err) != nil {
		return
	}
	defer device.Release()

	wsurf, err := platformSurface(instance, win)
	if errors.Log(err) != nil {
		return
	}
	surface, err := device.NewSurface(wsurf, gpu.SurfaceDesc{
		Width: cfg.Device.Width, Height: cfg.Device.Height, Label: appName(cfg),
	})
	if errors.Log(err) != nil {
		return
	}
	defer surface.Release()

	wg, colorJob, colorPin := buildGraph(device, surface.Format())
	vp := driver.New(driver.WrapSurface(surface), wg, colorJob, colorPin)

	win.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		vp.Resize(uint32(width), uint32(height))
	})

	for !win.ShouldClose() {
		glfw.PollEvents()
		errors.Log(vp.RunFrame())
	}
}

func appName(cfg appcfg.Config) string {
	if cfg.App.Name != "" {
		return cfg.App.Name
	}
	return "rgdemo"
}

// buildGraph builds the one-job clear-and-present graph: "clear" creates
// the color target and clears it to a solid color, and jobs.PresentDesc
// reads it and records the present barrier. The clear job's create pin is
// left at a zero extent so the driver binds the swapchain frame's image as
// an external target each frame instead of an owned allocation.
func buildGraph(device *gpu.Device, format gpu.PixelFormat) (wg *graph.WorkGraph, colorJob graph.JobIdx, colorPin int) {
	wg = graph.New(device)
	b := builder.New(wg)

	b.CreateTarget("color", gpu.Extent3D{}, format, gpu.UsageColorTarget)
	clearJob := b.AddJob("clear", []string{"color"}, nil, nil, nil, clearExec)
	b.AddJob("present", nil, nil, []string{"color"}, nil, jobs.PresentDesc(gpu.UsageColorTarget).Exec)
	b.Sink("color")

	return wg, clearJob, 0
}

// clearExec clears the job's sole create pin (the color target) to a solid
// color. It runs every frame once the driver has bound the current
// swapchain frame as that target's backing image.
func clearExec(ctx *graph.ExecContext) error {
	img := ctx.OutputImage(0)
	view, err := img.View(gpu.ImageViewDesc{})
	if err != nil {
		return err
	}
	ctx.Encoder.InitImage(view, img.Desc.Format)
	return nil
}
