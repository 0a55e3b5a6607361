package batch

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/jsphweid/diatonicpad/chord"
	"github.com/jsphweid/diatonicpad/config"
	"github.com/jsphweid/diatonicpad/constants"
	"github.com/jsphweid/diatonicpad/library"
	"github.com/jsphweid/diatonicpad/model"
	"github.com/jsphweid/diatonicpad/synth"
	"github.com/jsphweid/diatonicpad/theory"
	"github.com/jsphweid/diatonicpad/util"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Options describes a sweep over keys x modes x degrees x octaves x voicings
// x inversions x tension sets.
type Options struct {
	Keys        []string
	Modes       []string
	Octaves     []int
	Voicings    []string
	Inversions  []string
	TensionSets []model.Tensions
	Duration    float64
	Workers     int
	Overwrite   bool

	// Progress, when set, is called after every finished job. It may be
	// called from several goroutines.
	Progress func(done, total int)
}

func FromConfig(cfg config.GenerateConfig) Options {
	sets := make([]model.Tensions, len(cfg.TensionSets))
	for i, ts := range cfg.TensionSets {
		sets[i] = model.NewTensions(ts...)
	}
	return Options{
		Keys:        theory.Keys,
		Modes:       theory.Modes,
		Octaves:     cfg.Octaves,
		Voicings:    cfg.Voicings,
		Inversions:  cfg.Inversions,
		TensionSets: sets,
		Duration:    cfg.Duration,
		Workers:     cfg.Workers,
		Overwrite:   cfg.Overwrite,
	}
}

// Job is one sample to render.
type Job struct {
	Context model.MusicalContext
	Degree  int
}

func (j Job) Resolve() (chord.Resolved, string, error) {
	r, err := chord.Resolve(j.Context, j.Degree)
	if err != nil {
		return r, "", err
	}
	return r, chord.AssetPath(j.Context, r), nil
}

// Total is the number of jobs Jobs(opts) yields.
func Total(opts Options) int {
	return util.Product(len(opts.Keys), len(opts.Modes), theory.NumDegrees, len(opts.Octaves),
		len(opts.Voicings), len(opts.Inversions), len(opts.TensionSets))
}

func Jobs(opts Options) []Job {
	jobs := make([]Job, 0, Total(opts))
	for _, key := range opts.Keys {
		for _, mode := range opts.Modes {
			for degree := 0; degree < theory.NumDegrees; degree++ {
				for _, octave := range opts.Octaves {
					for _, voicing := range opts.Voicings {
						for _, inversion := range opts.Inversions {
							for _, tensions := range opts.TensionSets {
								ctx := model.DefaultContext()
								ctx.Tonic = key
								ctx.Mode = mode
								ctx.OctaveBase = octave
								ctx.Voicing = voicing
								ctx.Inversion = inversion
								ctx.Tensions = model.NewTensions(tensions...)
								jobs = append(jobs, Job{Context: ctx, Degree: degree})
							}
						}
					}
				}
			}
		}
	}
	return jobs
}

// StarterJobs is the small set that makes the pad playable before a full
// sweep: I, V, vi and IV of C Ionian. The first job renders the default asset.
func StarterJobs() []Job {
	var jobs []Job
	for _, degree := range []int{0, 4, 5, 3} {
		jobs = append(jobs, Job{Context: model.DefaultContext(), Degree: degree})
	}
	return jobs
}

type Report struct {
	Total   int
	Written int
	Skipped int
}

// Run renders every job into lib using opts.Workers goroutines. Asset names
// are unique per job so workers never write the same file.
func Run(ctx context.Context, lib *library.Library, jobs []Job, opts Options) (Report, error) {
	for _, job := range jobs {
		if err := chord.Validate(job.Context); err != nil {
			return Report{}, err
		}
	}

	duration := opts.Duration
	if duration <= 0 {
		duration = synth.DefaultDuration
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var written, skipped, done int64
	total := len(jobs)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, job := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, assetPath, err := job.Resolve()
			if err != nil {
				return err
			}
			if !opts.Overwrite && lib.Exists(assetPath) {
				atomic.AddInt64(&skipped, 1)
			} else {
				buf, err := synth.Synthesize(r.Pitches, duration)
				if err != nil {
					return errors.Wrapf(err, "synthesizing %v", assetPath)
				}
				ok, err := lib.Write(assetPath, buf, opts.Overwrite)
				if err != nil {
					return err
				}
				if ok {
					atomic.AddInt64(&written, 1)
				} else {
					atomic.AddInt64(&skipped, 1)
				}
			}
			n := atomic.AddInt64(&done, 1)
			if opts.Progress != nil {
				opts.Progress(int(n), total)
			}
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	return Report{
		Total:   total,
		Written: int(atomic.LoadInt64(&written)),
		Skipped: int(atomic.LoadInt64(&skipped)),
	}, err
}

// PrintProgress logs a line every constants.ProgressEvery samples.
func PrintProgress(done, total int) {
	if done%constants.ProgressEvery == 0 || done == total {
		fmt.Printf("Generated %v of %v samples...\n", done, total)
	}
}
