package main

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-rig/engine"
	"github.com/Carmen-Shannon/oxy-rig/engine/config"
	"github.com/Carmen-Shannon/oxy-rig/engine/preset"
	"github.com/Carmen-Shannon/oxy-rig/engine/rig"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// runSweep converges a fresh rig, built from cfg, toward every preset file in dir. Rigs run in
// parallel on a worker pool; each task owns its rig. Results are sorted by file name, and a preset
// that fails to load or apply is reported with its error rather than failing the sweep.
//
// Parameters:
//   - ctx: cancels runs between ticks
//   - cfg: the base configuration every rig starts from
//   - dir: directory holding *.yaml or *.yml preset files
//   - workers: maximum parallel rigs
//   - ticks: ticks to run each rig
//
// Returns:
//   - []report: one converged pose per preset file
//   - error: error if dir cannot be listed
func runSweep(ctx context.Context, cfg *config.Config, dir string, workers int, ticks uint64) ([]report, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "list presets in %s", dir)
	}

	var paths []string
	for _, entry := range entries {
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}

	logger := logrus.WithField("component", "sweep")
	pool := worker.NewDynamicWorkerPool(max(workers, 1), 256, 1*time.Second)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results = make([]report, 0, len(paths))
	)
	for i, path := range paths {
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				res := convergePreset(ctx, cfg, path, ticks)
				if res.Error != "" {
					logger.WithField("preset", res.Name).Warn(res.Error)
				}
				mu.Lock()
				results = append(results, res)
				mu.Unlock()
				return nil, nil
			},
		})
	}
	wg.Wait()

	slices.SortFunc(results, func(a, b report) int { return strings.Compare(a.Name, b.Name) })
	logger.WithField("presets", len(results)).Info("sweep complete")
	return results, ctx.Err()
}

// convergePreset runs one rig toward one preset.
func convergePreset(ctx context.Context, cfg *config.Config, path string, ticks uint64) report {
	name := filepath.Base(path)
	failed := func(err error) report {
		return report{Name: name, Error: err.Error()}
	}

	f, err := preset.Load(path)
	if err != nil {
		return failed(err)
	}

	quiet := logrus.New()
	quiet.SetLevel(logrus.WarnLevel)
	e, err := newEngine(cfg, nil, engine.WithLogger(quiet))
	if err != nil {
		return failed(err)
	}
	e.Do(func(r rig.Rig) { err = preset.Apply(r, f) })
	if err != nil {
		return failed(err)
	}

	var last engine.Pose
	e.Subscribe(func(p engine.Pose) { last = p })
	if err := e.RunFor(ctx, ticks); err != nil {
		return failed(err)
	}
	return newReport(name, last)
}
