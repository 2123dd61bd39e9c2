package pipeline

import "github.com/sanox-oy/obj-overlap-cleaner/mesh"

// loadTask is one Stage 1 unit of work: load a single NQ source file.
type loadTask struct {
	path string
}

// loadResult is a Stage 1 worker's report for one loadTask.
type loadResult struct {
	model *mesh.Model
	err   error
}
