package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"clark/internal/trace"
)

// SourceExts are the extensions picked up by ListFiles.
var SourceExts = []string{".star", ".bzl"}

// ListFiles возвращает отсортированный список исходников в каталоге.
func ListFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && slices.Contains(SourceExts, filepath.Ext(path)) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}

type fileFunc func(ctx context.Context, name string, src []byte, opts Options) (*Result, error)

// TokenizeDir lexes every source under dir in parallel. Results follow the
// order of ListFiles; a file that fails to load has only Path and Err set.
func TokenizeDir(ctx context.Context, dir string, opts Options) ([]*Result, error) {
	return runDir(ctx, dir, opts, StageLex, TokenizeSource)
}

// ParseDir parses every source under dir in parallel.
func ParseDir(ctx context.Context, dir string, opts Options) ([]*Result, error) {
	return runDir(ctx, dir, opts, StageParse, ParseSource)
}

func (o Options) jobs() int {
	switch {
	case o.Jobs > 0:
		return o.Jobs
	case o.Config.CLI.Jobs > 0:
		return o.Config.CLI.Jobs
	}
	return runtime.GOMAXPROCS(0)
}

func runDir(ctx context.Context, dir string, opts Options, stage Stage, run fileFunc) ([]*Result, error) {
	files, err := ListFiles(dir)
	if err != nil {
		return nil, err
	}
	ctx, sp := trace.Start(ctx, trace.ScopeDriver, "dir")
	defer sp.WithExtra("files", strconv.Itoa(len(files))).End(dir)

	for _, f := range files {
		emit(opts.Progress, Event{File: f, Stage: StageRead, Status: StatusQueued})
	}
	if len(files) == 0 {
		return nil, nil
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]*Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(opts.jobs(), len(files)))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fctx, fsp := trace.Start(gctx, trace.ScopeFile, "file:"+path)
			defer fsp.End("")
			started := time.Now()

			emit(opts.Progress, Event{File: path, Stage: StageRead, Status: StatusWorking})
			name, src, err := readTimed(path, opts)
			if err != nil {
				results[i] = &Result{Path: path, Err: err}
				emit(opts.Progress, Event{File: path, Stage: StageRead, Status: StatusError, Err: err})
				return nil
			}

			emit(opts.Progress, Event{File: path, Stage: stage, Status: StatusWorking})
			res, err := run(fctx, name, src, opts)
			if err != nil {
				// сбой сессии касается только этого файла
				res = &Result{Path: path, Err: err}
			}
			results[i] = res

			status := StatusDone
			if res.Failed() {
				status = StatusError
			}
			emit(opts.Progress, Event{File: path, Stage: stage, Status: status, Err: res.Err, Elapsed: time.Since(started)})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		closeAll(results)
		return nil, err
	}
	return results, nil
}

func closeAll(results []*Result) {
	for _, r := range results {
		r.Close()
	}
}
