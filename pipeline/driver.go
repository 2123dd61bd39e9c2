// Package pipeline runs the three sequential worker-pool stages that load
// NQ assets, detect HQ overlap, and carve and write the result: the same
// fixed-size pool is reused stage to stage, with a hard join between each.
package pipeline

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"

	"github.com/sanox-oy/obj-overlap-cleaner/carve"
	"github.com/sanox-oy/obj-overlap-cleaner/mesh"
	"github.com/sanox-oy/obj-overlap-cleaner/objio"
	"github.com/sanox-oy/obj-overlap-cleaner/overlap"
)

// Driver owns the fixed worker pool and runs the pipeline end to end.
type Driver struct {
	NormalAssetFolder string
	HQAssetFolders    []string
	OutFolder         string
	Workers           int
}

// NewDriver returns a Driver sized to the host's available parallelism.
func NewDriver(nqFolder string, hqFolders []string, outFolder string) *Driver {
	w := runtime.NumCPU()
	if w < 1 {
		w = 1
	}
	return &Driver{
		NormalAssetFolder: nqFolder,
		HQAssetFolders:    hqFolders,
		OutFolder:         outFolder,
		Workers:           w,
	}
}

// Run executes Stage 1 (load NQ), Stage 2 (overlap detection), and Stage 3
// (carve and write) in order, joining the worker pool between each.
func (d *Driver) Run() error {
	if err := os.MkdirAll(d.OutFolder, 0o755); err != nil {
		return errors.E(err, "creating output folder", d.OutFolder)
	}

	nqModels, hqPaths, err := d.loadNQ()
	if err != nil {
		return err
	}
	log.Printf("pipeline: loaded %d nq models, found %d hq assets", len(nqModels), len(hqPaths))

	pool := overlap.NewSharedPool(nqModels)
	hqRefs, err := d.detectOverlaps(pool, hqPaths)
	if err != nil {
		return err
	}
	drained := overlap.Drain(pool)

	outAssets := d.carveAll(drained)

	return d.write(outAssets, hqRefs)
}

// scanOBJDir lists the .obj files (case-insensitive extension match)
// directly inside dir.
func scanOBJDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.E(err, "scanning asset folder", dir)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".obj") {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	return out, nil
}

// loadNQ runs Stage 1: a fixed pool of workers loads every NQ source file
// (want_edge_len=true, want_index=false) off a buffered task channel; HQ
// paths across every HQ folder are only enumerated here, not loaded.
func (d *Driver) loadNQ() ([]*mesh.Model, []string, error) {
	nqPaths, err := scanOBJDir(d.NormalAssetFolder)
	if err != nil {
		return nil, nil, err
	}

	var hqPaths []string
	for _, dir := range d.HQAssetFolders {
		paths, err := scanOBJDir(dir)
		if err != nil {
			return nil, nil, err
		}
		hqPaths = append(hqPaths, paths...)
	}

	taskCh := make(chan loadTask, len(nqPaths))
	for _, p := range nqPaths {
		taskCh <- loadTask{path: p}
	}
	close(taskCh)

	resultCh := make(chan loadResult, len(nqPaths))
	var wg sync.WaitGroup
	for i := 0; i < d.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range taskCh {
				model, err := loadNQModel(task.path)
				resultCh <- loadResult{model: model, err: err}
			}
		}()
	}
	wg.Wait()
	close(resultCh)

	var models []*mesh.Model
	once := errors.Once{}
	for res := range resultCh {
		if res.err != nil {
			once.Set(res.err)
			continue
		}
		models = append(models, res.model)
	}
	if err := once.Err(); err != nil {
		return nil, nil, err
	}
	return models, hqPaths, nil
}

func loadNQModel(path string) (*mesh.Model, error) {
	raw, err := objio.LoadOBJ(path)
	if err != nil {
		return nil, err
	}
	model, err := mesh.LoadModel(raw.SourceFile, raw.Meshes, raw.Materials, true, false)
	if err != nil {
		return nil, err
	}
	log.Debug.Printf("pipeline: loaded nq model %s", path)
	return model, nil
}

func loadHQModel(path string) (*mesh.Model, error) {
	raw, err := objio.LoadOBJ(path)
	if err != nil {
		return nil, err
	}
	model, err := mesh.LoadModel(raw.SourceFile, raw.Meshes, raw.Materials, false, true)
	if err != nil {
		return nil, err
	}
	log.Debug.Printf("pipeline: loaded hq model %s", path)
	return model, nil
}

// detectOverlaps runs Stage 2: workers pop HQ paths off a mutex-guarded
// queue, load each HQ model, cross it against the shared NQ pool, and
// collect the HQ passthrough reference it produces. Workers exit when the
// queue is empty; the stage joins before Stage 3 begins.
func (d *Driver) detectOverlaps(pool []*overlap.SharedModel, hqPaths []string) ([]*carve.ModelReference, error) {
	var mu sync.Mutex
	queue := append([]string(nil), hqPaths...)

	pop := func() (string, bool) {
		mu.Lock()
		defer mu.Unlock()
		if len(queue) == 0 {
			return "", false
		}
		p := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		return p, true
	}

	var resultsMu sync.Mutex
	var refs []*carve.ModelReference
	once := errors.Once{}
	engine := overlap.NewEngine()

	var wg sync.WaitGroup
	for i := 0; i < d.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				path, ok := pop()
				if !ok {
					return
				}
				hq, err := loadHQModel(path)
				if err != nil {
					once.Set(err)
					continue
				}
				ref, err := engine.ProcessHQ(hq, pool)
				if err != nil {
					once.Set(err)
					continue
				}
				resultsMu.Lock()
				refs = append(refs, ref)
				resultsMu.Unlock()
			}
		}()
	}
	wg.Wait()

	if err := once.Err(); err != nil {
		return nil, err
	}
	return refs, nil
}

// carveAll runs Stage 3's carve half: a fixed pool of workers pops NQ
// models off a single-owner channel and classifies each via carve.Process.
func (d *Driver) carveAll(models []*mesh.Model) []*carve.OutAsset {
	taskCh := make(chan *mesh.Model, len(models))
	for _, m := range models {
		taskCh <- m
	}
	close(taskCh)

	resultCh := make(chan *carve.OutAsset, len(models))
	var wg sync.WaitGroup
	for i := 0; i < d.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for m := range taskCh {
				resultCh <- carve.Process(m)
			}
		}()
	}
	wg.Wait()
	close(resultCh)

	out := make([]*carve.OutAsset, 0, len(models))
	for asset := range resultCh {
		out = append(out, asset)
	}
	log.Debug.Printf("pipeline: carved %d nq models", len(out))
	return out
}

// write runs Stage 3's write half: the same pool emits every carved/
// passthrough NQ asset plus every HQ passthrough reference into the output
// folder.
func (d *Driver) write(outAssets []*carve.OutAsset, hqRefs []*carve.ModelReference) error {
	type job struct {
		asset *carve.OutAsset
		hqRef *carve.ModelReference
	}

	jobs := make(chan job, len(outAssets)+len(hqRefs))
	for _, a := range outAssets {
		jobs <- job{asset: a}
	}
	for _, r := range hqRefs {
		jobs <- job{hqRef: r}
	}
	close(jobs)

	once := errors.Once{}
	var wg sync.WaitGroup
	for i := 0; i < d.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				if j.hqRef != nil {
					once.Set(objio.WritePassthrough(d.OutFolder, j.hqRef.SourceFile, j.hqRef.Materials, j.hqRef.TextureDownscaleFactor))
					continue
				}
				once.Set(writeOne(d.OutFolder, j.asset))
			}
		}()
	}
	wg.Wait()

	return once.Err()
}

func writeOne(outDir string, asset *carve.OutAsset) error {
	switch {
	case asset.Carved != nil:
		log.Printf("pipeline: writing carved model %s", asset.Carved.SourceFile)
		return objio.WriteCarved(outDir, asset.Carved)
	case asset.Passthrough != nil:
		ref := asset.Passthrough
		log.Printf("pipeline: writing passthrough model %s", ref.SourceFile)
		return objio.WritePassthrough(outDir, ref.SourceFile, ref.Materials, ref.TextureDownscaleFactor)
	default:
		return nil // dropped: fully covered, nothing to emit
	}
}
