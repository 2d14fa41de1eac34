// Package driver runs the front-end over files and directories: reading,
// lexing (optionally through the disk cache), parsing, tracing and timing.
package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"clark/internal/ast"
	"clark/internal/config"
	"clark/internal/lexer"
	"clark/internal/observ"
	"clark/internal/parser"
	"clark/internal/session"
	"clark/internal/source"
	"clark/internal/token"
	"clark/internal/trace"
)

// StdinName is the display name used for "-".
const StdinName = "<stdin>"

// Options configures one driver call.
type Options struct {
	Config   config.Config
	Cache    *DiskCache    // nil: без кэша
	Timer    *observ.Timer // nil: без замеров
	Progress ProgressSink  // только для *Dir
	Jobs     int           // 0: Config.CLI.Jobs, затем GOMAXPROCS
}

// Result is the outcome for one source. Close releases the session.
type Result struct {
	Path    string
	Session *session.Context
	Stream  *token.Stream
	Tree    *ast.Tree // nil для Tokenize и при ошибке
	Cached  bool      // токены взяты из DiskCache
	Err     error     // I/O, unsupported construct или fault
}

// Failed reports whether the run produced diagnostics or an error.
func (r *Result) Failed() bool {
	if r == nil {
		return false
	}
	return r.Err != nil || (r.Session != nil && r.Session.Diags.Len() > 0)
}

func (r *Result) Close() {
	if r == nil {
		return
	}
	if r.Tree != nil {
		r.Tree.Release()
		r.Tree = nil
	}
	if r.Session != nil {
		r.Session.Close()
	}
}

// ReadSource reads path, or stdin for "-". A leading UTF-8 BOM is dropped.
func ReadSource(path string) (name string, src []byte, err error) {
	if path == "-" {
		src, err = io.ReadAll(os.Stdin)
		src, _ = source.TrimBOM(src)
		return StdinName, src, err
	}
	src, err = source.ReadFile(path)
	return path, src, err
}

func (o Options) newSession() (*session.Context, error) {
	ctx := session.New(session.Options{})
	if err := config.Apply(o.Config, ctx); err != nil {
		ctx.Close()
		return nil, err
	}
	return ctx, nil
}

func (o Options) begin(name string) func(string) {
	return o.Timer.Begin(name)
}

// Tokenize reads and lexes path.
func Tokenize(ctx context.Context, path string, opts Options) (*Result, error) {
	name, src, err := readTimed(path, opts)
	if err != nil {
		return nil, err
	}
	return TokenizeSource(ctx, name, src, opts)
}

// TokenizeSource lexes src under name.
func TokenizeSource(ctx context.Context, name string, src []byte, opts Options) (*Result, error) {
	ctx, sp := trace.Start(ctx, trace.ScopeDriver, "tokenize")
	defer sp.End(name)

	res, err := start(name, opts)
	if err != nil {
		return nil, err
	}
	if err := lex(ctx, res, src, opts); err != nil {
		res.Close()
		return nil, err
	}
	return res, nil
}

// Parse reads, lexes and parses path. An unsupported construct is not a
// call failure: the result comes back with Err set and no tree.
func Parse(ctx context.Context, path string, opts Options) (*Result, error) {
	name, src, err := readTimed(path, opts)
	if err != nil {
		return nil, err
	}
	return ParseSource(ctx, name, src, opts)
}

// ParseSource is Parse over bytes already in memory.
func ParseSource(ctx context.Context, name string, src []byte, opts Options) (*Result, error) {
	ctx, sp := trace.Start(ctx, trace.ScopeDriver, "parse")
	defer sp.End(name)

	res, err := start(name, opts)
	if err != nil {
		return nil, err
	}
	if err := lex(ctx, res, src, opts); err != nil {
		res.Close()
		return nil, err
	}

	_, psp := trace.Start(ctx, trace.ScopePass, "parse-tokens")
	done := opts.begin("parse")
	tree, err := parser.ParseTokens(res.Session, res.Stream)
	note := ""
	if tree != nil {
		bad := tree.Counts()[ast.TagError]
		psp.WithExtra("nodes", strconv.Itoa(tree.Len())).WithExtra("error_nodes", strconv.Itoa(bad))
		note = fmt.Sprintf("%d nodes, %d errors", tree.Len(), bad)
	}
	done(note)
	psp.End("")

	var unsupported *parser.UnsupportedError
	switch {
	case err == nil:
		res.Tree = tree
	case errors.As(err, &unsupported):
		res.Err = err
	default:
		res.Close()
		return nil, err
	}
	return res, nil
}

func start(name string, opts Options) (*Result, error) {
	sctx, err := opts.newSession()
	if err != nil {
		return nil, err
	}
	return &Result{Path: name, Session: sctx}, nil
}

func readTimed(path string, opts Options) (string, []byte, error) {
	done := opts.begin("read")
	name, src, err := ReadSource(path)
	done("")
	if err != nil {
		return "", nil, fmt.Errorf("read %s: %w", path, err)
	}
	return name, src, nil
}

// lex fills res.Stream, from the cache when possible.
func lex(ctx context.Context, res *Result, src []byte, opts Options) error {
	_, sp := trace.Start(ctx, trace.ScopePass, "lex")
	done := opts.begin("lex")
	defer func() {
		if res.Stream != nil {
			sp.WithExtra("tokens", strconv.Itoa(res.Stream.Len()))
		}
		sp.WithExtra("cached", strconv.FormatBool(res.Cached)).
			WithExtra("pool_strings", strconv.Itoa(res.Session.Pool.Len())).
			WithExtra("pool_bytes", strconv.Itoa(res.Session.Pool.Size()))
		done("")
		sp.End("")
	}()

	sctx := res.Session
	if opts.Cache == nil {
		stream, err := lexer.Lex(sctx, res.Path, src)
		res.Stream = stream
		return err
	}

	key, err := ContentDigest(src, sctx.Diags.Limit())
	if err != nil {
		return err
	}
	file, err := sctx.Bind(res.Path, src)
	if err != nil {
		return err
	}
	var payload TokenPayload
	if ok, err := opts.Cache.Get(key, &payload); err == nil && ok {
		if stream, err := payload.restore(sctx, file); err == nil {
			res.Stream, res.Cached = stream, true
			return nil
		}
		// битая запись: лексим заново с чистым списком
		sctx.Diags.Truncate(0)
		if err := sctx.Fault(); err != nil {
			return err
		}
	}

	stream, err := lexer.New(sctx, file).Run()
	if err != nil {
		return err
	}
	res.Stream = stream
	if err := opts.Cache.Put(key, payloadFrom(stream, sctx)); err != nil {
		trace.Point(trace.FromContext(ctx), trace.ScopePass, "cache-put", err.Error())
	}
	return nil
}
