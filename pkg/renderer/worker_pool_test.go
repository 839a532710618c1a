package renderer

import (
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-raycaster/pkg/core"
	mathpkg "github.com/df07/go-raycaster/pkg/math"
)

func TestWorkerPool_RendersEveryRowOnce(t *testing.T) {
	camera := smallCamera(t, 6)
	rt := NewRaytracer(MockScene{
		camera:    camera,
		resolveFn: func(ray mathpkg.Ray) (core.Color, error) { return core.White, nil },
	}, DefaultConfig())
	rt.camera = camera

	frame := core.NewFrame(6, 6)
	pool := NewWorkerPool(rt, frame, 3)
	assert.Equal(t, 3, pool.GetNumWorkers())

	pool.Start()
	for row := 0; row < frame.Height; row++ {
		pool.SubmitTask(RowTask{Row: row})
	}

	var rows []int
	for i := 0; i < frame.Height; i++ {
		result, ok := pool.GetResult()
		require.True(t, ok)
		require.NoError(t, result.Error)
		rows = append(rows, result.Row)
	}
	pool.Stop()

	sort.Ints(rows)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, rows)
	for row := 0; row < frame.Height; row++ {
		for col := 0; col < frame.Width; col++ {
			assert.Equal(t, core.White, frame.At(row, col))
		}
	}

	_, ok := pool.GetResult()
	assert.False(t, ok, "result queue should be closed after Stop")
}

func TestWorkerPool_ReportsRowErrors(t *testing.T) {
	camera := smallCamera(t, 2)
	boom := errors.New("boom")
	rt := NewRaytracer(MockScene{
		camera:    camera,
		resolveFn: func(ray mathpkg.Ray) (core.Color, error) { return core.Black, boom },
	}, DefaultConfig())
	rt.camera = camera

	frame := core.NewFrame(2, 2)
	pool := NewWorkerPool(rt, frame, 0)
	assert.Equal(t, 1, pool.GetNumWorkers())

	pool.Start()
	pool.SubmitTask(RowTask{Row: 1})
	result, ok := pool.GetResult()
	pool.Stop()

	require.True(t, ok)
	assert.Equal(t, 1, result.Row)
	assert.ErrorIs(t, result.Error, boom)
}
