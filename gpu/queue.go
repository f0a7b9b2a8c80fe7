// Copyright (c) 2024, Ash Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"context"
	"sync/atomic"

	"github.com/ashforge/rendercore/gpu/epoch"
	"github.com/cogentcore/webgpu/wgpu"
)

// Queue submits command buffers built by a [CommandEncoder] to the
// hardware, and tracks their lifetime with [epoch.PendingEpochs] so that
// resources those command buffers reference are never released while the
// GPU might still be using them.
type Queue struct {
	Queue    *wgpu.Queue
	Device   *Device
	Kind     QueueKind
	pending  *epoch.PendingEpochs
	complete atomic.Uint64
}

func newQueue(dev *Device, wq *wgpu.Queue, kind QueueKind) *Queue {
	q := &Queue{Queue: wq, Device: dev, Kind: kind}
	q.pending = epoch.New(func(e epoch.Epoch) bool {
		return uint64(e) <= q.complete.Load()
	})
	return q
}

// Begin allocates the next submission epoch and a Refs to attach the
// resources that submission will touch. Call Submit once the command
// buffer has been recorded.
func (q *Queue) Begin() (epoch.Epoch, *epoch.Refs) {
	return q.pending.Begin()
}

// Submit submits cb to the hardware under epoch e (obtained from Begin),
// and arranges for q's OnSubmittedWorkDone callback to advance the
// queue's completion watermark once the backend confirms cb has finished.
func (q *Queue) Submit(e epoch.Epoch, cb *wgpu.CommandBuffer) {
	q.Queue.Submit(cb)
	q.pending.AttachCommandBuffers(e, releaseFunc(cb.Release))
	q.Queue.OnSubmittedWorkDone(func(status wgpu.QueueWorkDoneStatus) {
		q.advanceTo(e)
	})
}

// advanceTo bumps the completion watermark to at least e, then reclaims any
// epochs that are now retired. advanceTo never moves the watermark
// backwards: completion callbacks can arrive out of the order their
// epochs were issued relative to other queues, but never out of order
// within the same queue.
func (q *Queue) advanceTo(e epoch.Epoch) {
	for {
		cur := q.complete.Load()
		if uint64(e) <= cur {
			break
		}
		if q.complete.CompareAndSwap(cur, uint64(e)) {
			break
		}
	}
	q.pending.Reclaim()
}

// Idle blocks until every submission made on this queue has completed.
func (q *Queue) Idle() { _ = q.pending.Idle(context.Background()) }

// Stats reports the queue's current reclamation state.
func (q *Queue) Stats() epoch.Stats { return q.pending.Stats() }

// releaseFunc adapts a bare func() into an epoch.Releasable.
type releaseFunc func()

func (f releaseFunc) Release() { f() }
