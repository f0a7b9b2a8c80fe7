// Copyright (c) 2024, Ash Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package epoch_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/ashforge/rendercore/gpu/epoch"
)

type fakeRes struct{ released *int }

func (r fakeRes) Release() { *r.released++ }

func TestBeginAssignsIncreasingEpochs(t *testing.T) {
	p := New(func(Epoch) bool { return false })
	e1, _ := p.Begin()
	e2, _ := p.Begin()
	assert.Equal(t, Epoch(1), e1)
	assert.Equal(t, Epoch(2), e2)
}

func TestReclaimReleasesInOrderOnly(t *testing.T) {
	var released int
	signaledUpTo := Epoch(0)
	p := New(func(e Epoch) bool { return e <= signaledUpTo })

	e1, r1 := p.Begin()
	r1.Add(fakeRes{&released})
	e2, r2 := p.Begin()
	r2.Add(fakeRes{&released})
	_ = e1

	assert.Equal(t, 0, p.Reclaim(), "nothing signaled yet")
	assert.Equal(t, 0, released)

	signaledUpTo = e1
	assert.Equal(t, 1, p.Reclaim())
	assert.Equal(t, 1, released)

	signaledUpTo = e2
	assert.Equal(t, 1, p.Reclaim())
	assert.Equal(t, 2, released)
}

func TestAttachCommandBuffersAndFramesReleaseOnRetire(t *testing.T) {
	var cbReleased, frameReleased int
	signaled := false
	p := New(func(Epoch) bool { return signaled })

	e, _ := p.Begin()
	p.AttachCommandBuffers(e, fakeRes{&cbReleased})
	p.AttachFrames(e, fakeRes{&frameReleased})

	signaled = true
	require.Equal(t, 1, p.Reclaim())
	assert.Equal(t, 1, cbReleased)
	assert.Equal(t, 1, frameReleased)
}

func TestIdleReturnsOnceQueueDrains(t *testing.T) {
	signaled := false
	p := New(func(Epoch) bool { return signaled })
	p.Begin()

	done := make(chan error, 1)
	go func() { done <- p.Idle(context.Background()) }()

	time.Sleep(10 * time.Millisecond)
	signaled = true

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Idle did not return after epoch signaled")
	}
}

func TestIdleRespectsContextCancellation(t *testing.T) {
	p := New(func(Epoch) bool { return false })
	p.Begin()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := p.Idle(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestStatsReportsQueueDepth(t *testing.T) {
	p := New(func(Epoch) bool { return false })
	p.Begin()
	p.Begin()

	st := p.Stats()
	assert.Equal(t, 2, st.Pending)
	assert.Equal(t, Epoch(3), st.Next)
	assert.Equal(t, Epoch(0), st.Retired)
}

func TestRefsAddIgnoresNil(t *testing.T) {
	p := New(func(Epoch) bool { return false })
	_, r := p.Begin()
	r.Add(nil)
	assert.Equal(t, 0, r.Len())
}
