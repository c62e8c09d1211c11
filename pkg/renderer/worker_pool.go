package renderer

import (
	"runtime"
	"sync"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile          *Tile
	PassNumber    int
	TargetSamples int
	TaskID        int            // Index of the tile, for reassembly
	PixelStats    [][]PixelStats // Shared pixel stats array to write to
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TaskID int
	Stats  RenderStats
}

// WorkerPool manages parallel tile rendering
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
	stopOnce    sync.Once
}

// Worker renders tiles from the shared queue
type Worker struct {
	ID          int
	renderer    *TileRenderer
	taskQueue   <-chan TileTask
	resultQueue chan<- TileResult
}

// NewWorkerPool creates a worker pool for maxTiles tiles. numWorkers <= 0 uses every CPU.
func NewWorkerPool(scene Scene, config SamplingConfig, maxTiles, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan TileTask, maxTiles),
		resultQueue: make(chan TileResult, maxTiles),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			renderer:    NewTileRenderer(scene, config),
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}
	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop lets queued tasks finish, then shuts the workers down. It is safe to call twice.
func (wp *WorkerPool) Stop() {
	wp.stopOnce.Do(func() {
		close(wp.taskQueue)
		wp.wg.Wait()
		close(wp.resultQueue)
	})
}

// SubmitTask submits a tile task to the worker pool
func (wp *WorkerPool) SubmitTask(task TileTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed tile result
func (wp *WorkerPool) GetResult() (TileResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop. Tiles never overlap, so writing straight
// into the shared pixel stats needs no locking.
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		stats := w.renderer.RenderTileBounds(task.Tile.Bounds, task.PixelStats, task.Tile.Sampler, task.TargetSamples)
		w.resultQueue <- TileResult{TaskID: task.TaskID, Stats: stats}
	}
}
