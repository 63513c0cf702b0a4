// Package driver orchestrates a full run of the translator: parse every
// input file, collect them into one frozen intention graph, run the
// §4.6 expression-pass pipeline per translation unit over a bounded
// worker pool (§5), then emit Swift for each file.
package driver

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/occ2swift/occ/internal/config"
	"github.com/occ2swift/occ/internal/diagnostics"
	"github.com/occ2swift/occ/internal/emit"
	"github.com/occ2swift/occ/internal/intentions"
	"github.com/occ2swift/occ/internal/metrics"
	"github.com/occ2swift/occ/internal/objcparse"
	"github.com/occ2swift/occ/internal/overload"
	"github.com/occ2swift/occ/internal/passes"
	"github.com/occ2swift/occ/internal/tracing"
	"github.com/occ2swift/occ/internal/transform"
	"github.com/occ2swift/occ/internal/typesys"
)

// Driver holds the state one run shares across every translation unit:
// the frozen intention graph (built before any pass runs, §5), the type
// system and overload resolver it consults, and the transformer
// registry loaded from config.
type Driver struct {
	cfg        *config.Config
	graph      *intentions.Graph
	typeSystem typesys.TypeSystem
	overload   *overload.Resolver
	transforms *transform.Registry
}

// Result is one Run's output: the Swift source text for every processed
// file, plus every diagnostic raised across every stage.
type Result struct {
	Outputs     map[string]string
	Diagnostics []*diagnostics.Error
}

// HasErrors reports whether any diagnostic in the result is error
// severity.
func (r *Result) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == diagnostics.SeverityError {
			return true
		}
	}
	return false
}

// New builds a Driver from a loaded config, compiling its transformer
// registry (builtins plus any TOML extension, §4.7.2).
func New(cfg *config.Config) (*Driver, error) {
	reg, err := cfg.LoadTransformRegistry()
	if err != nil {
		return nil, fmt.Errorf("driver: loading transform registry: %w", err)
	}
	return &Driver{
		cfg:        cfg,
		graph:      intentions.NewGraph(),
		transforms: reg,
	}, nil
}

// maxWorkersDefault bounds the translation-unit worker pool when the
// caller doesn't name one explicitly.
const maxWorkersDefault = 8

// Run parses and emits every file in files. Parsing and intention
// collection happen sequentially and in order (the graph is a shared,
// cross-file structure — a method's body can reference a class declared
// in a file collected after it), then the pass pipeline and emission run
// concurrently across a pool bounded to maxWorkers, each worker wrapped
// in an otel span per §4.7.3.
func (d *Driver) Run(ctx context.Context, files []string, maxWorkers int) (*Result, error) {
	if maxWorkers <= 0 {
		maxWorkers = maxWorkersDefault
	}

	result := &Result{Outputs: make(map[string]string, len(files))}

	for _, file := range files {
		diags, err := d.parseAndCollect(ctx, file)
		if err != nil {
			return nil, fmt.Errorf("driver: %s: %w", file, err)
		}
		result.Diagnostics = append(result.Diagnostics, diags...)
	}

	d.typeSystem = typesys.New(d.graph)
	d.overload = overload.New(d.typeSystem)

	// sem is what actually bounds concurrency; limiter paces how fast new
	// workers are admitted into the pool (a rate.Limiter has no
	// release-on-completion signal to act as a concurrency cap on its
	// own), smoothing a burst of many files changing at once under watch
	// mode (§4.7.3).
	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		sem     = make(chan struct{}, maxWorkers)
		limiter = rate.NewLimiter(rate.Limit(maxWorkers*4), maxWorkers)
	)

	for _, file := range files {
		file := file
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := limiter.Wait(ctx); err != nil {
				return
			}
			sem <- struct{}{}
			defer func() { <-sem }()

			metrics.WorkerPoolInFlight.Inc()
			defer metrics.WorkerPoolInFlight.Dec()

			workerCtx, span := tracing.StartWorker(ctx, file)
			defer span.End()

			diags, swift := d.processFile(workerCtx, file)

			mu.Lock()
			result.Diagnostics = append(result.Diagnostics, diags...)
			result.Outputs[file] = swift
			mu.Unlock()

			metrics.FilesProcessedTotal.Inc()
		}()
	}
	wg.Wait()

	for _, diag := range result.Diagnostics {
		metrics.DiagnosticsTotal.WithLabelValues(diag.Severity.String()).Inc()
	}

	return result, nil
}

// parseAndCollect scans+parses one file and merges its declarations into
// the shared graph. Parse errors are collected, not fatal — the §4.7.1
// "continue on errors to collect diagnostics from all stages" rule.
func (d *Driver) parseAndCollect(ctx context.Context, file string) ([]*diagnostics.Error, error) {
	src, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	_, parseSpan := tracing.StartStage(ctx, metrics.StageParse, file)
	start := time.Now()
	pf, rawDiags := objcparse.ParseFile(string(src))
	metrics.ObserveStage(metrics.StageParse, time.Since(start).Seconds())
	parseSpan.End()

	diags := make([]*diagnostics.Error, len(rawDiags))
	for i, e := range rawDiags {
		diags[i] = e.WithFile(file)
	}

	_, collectSpan := tracing.StartStage(ctx, metrics.StageCollectIntentions, file)
	start = time.Now()
	intentions.CollectFile(d.graph, pf, file)
	metrics.ObserveStage(metrics.StageCollectIntentions, time.Since(start).Seconds())
	collectSpan.End()

	return diags, nil
}

// processFile runs the pass pipeline to a fixpoint over every method,
// initializer, and free function body the graph attributes to file, then
// emits the file's Swift source.
func (d *Driver) processFile(ctx context.Context, file string) ([]*diagnostics.Error, string) {
	var diags []*diagnostics.Error

	_, resolveSpan := tracing.StartStage(ctx, metrics.StageResolveTypes, file)
	start := time.Now()
	for _, kind := range []intentions.Kind{intentions.KindMethod, intentions.KindInit, intentions.KindGlobalFunc} {
		for _, in := range d.graph.All(kind) {
			if in.File != file || in.Body == nil {
				continue
			}
			diags = append(diags, d.runBody(in)...)
		}
	}
	metrics.ObserveStage(metrics.StageResolveTypes, time.Since(start).Seconds())
	resolveSpan.End()

	_, emitSpan := tracing.StartStage(ctx, metrics.StageEmit, file)
	start = time.Now()
	swift := emit.EmitFile(d.graph, file)
	metrics.ObserveStage(metrics.StageEmit, time.Since(start).Seconds())
	emitSpan.End()

	return diags, swift
}

// runBody drives one function/method body through the §4.6 pass
// pipeline to a fixpoint, binding its parameters as locals first.
func (d *Driver) runBody(in *intentions.Intention) []*diagnostics.Error {
	pctx := passes.NewContext(d.graph, d.typeSystem, d.overload, d.transforms, in.File, in.ParentName)
	for _, param := range in.Signature.Parameters {
		pctx.BindParameter(param.Name, param.Type)
	}

	pipeline := passes.NewPipeline(d.cfg.MaxFixpointIterations, passes.DefaultPasses()...)
	pipeline.Run(pctx, in.Body)

	tagged := make([]*diagnostics.Error, len(pctx.Diagnostics.Errors))
	for i, e := range pctx.Diagnostics.Errors {
		tagged[i] = e.WithFile(in.File)
	}
	return tagged
}
