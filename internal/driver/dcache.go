package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"clark/internal/diag"
	"clark/internal/session"
	"clark/internal/source"
	"clark/internal/token"
)

// Current schema version - increment when TokenPayload format changes.
const diskCacheSchemaVersion uint16 = 1

// ErrBadPayload is returned when a cache entry does not fit its source.
var ErrBadPayload = errors.New("driver: cached payload does not match source")

// DiskCache хранит результаты лексера по ContentDigest на диске.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// TokenPayload is the msgpack form of a lexed file: the token columns and
// the lexer diagnostics in recording order.
type TokenPayload struct {
	Schema uint16

	Kinds  []uint8
	Starts []uint32
	Ends   []uint32

	DiagCodes  []uint16
	DiagStarts []uint32
	DiagMsgs   []string
}

// OpenDiskCache opens $XDG_CACHE_HOME/<app> (or ~/.cache/<app>).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens a cache rooted at dir.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "tokens", hexKey[:2], hexKey+".mp")
}

// Put writes payload atomically (temp file + rename).
func (c *DiskCache) Put(key Digest, payload *TokenPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*.mp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads the payload for key. A missing entry is (false, nil).
func (c *DiskCache) Get(key Digest, out *TokenPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() { _ = f.Close() }()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

// payloadFrom exports a stream and the diagnostics recorded in ctx.
func payloadFrom(stream *token.Stream, ctx *session.Context) *TokenPayload {
	kinds, starts, ends := stream.Columns()
	p := &TokenPayload{
		Schema: diskCacheSchemaVersion,
		Kinds:  make([]uint8, len(kinds)),
		Starts: append([]uint32(nil), starts...),
		Ends:   append([]uint32(nil), ends...),
	}
	for i, k := range kinds {
		p.Kinds[i] = uint8(k)
	}
	codes := ctx.Diags.Codes()
	p.DiagStarts = append([]uint32(nil), ctx.Diags.Starts()...)
	p.DiagCodes = make([]uint16, len(codes))
	p.DiagMsgs = make([]string, len(codes))
	for i, c := range codes {
		p.DiagCodes[i] = uint16(c)
		p.DiagMsgs[i] = ctx.Diags.Message(i)
	}
	return p
}

// restore validates p against file and replays it into ctx.
func (p *TokenPayload) restore(ctx *session.Context, file *source.File) (*token.Stream, error) {
	n := len(p.Kinds)
	if len(p.Starts) != n || len(p.Ends) != n ||
		len(p.DiagStarts) != len(p.DiagCodes) || len(p.DiagMsgs) != len(p.DiagCodes) {
		return nil, fmt.Errorf("%w: column lengths", ErrBadPayload)
	}
	size, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadPayload, err)
	}
	kinds := make([]token.Kind, n)
	for i, k := range p.Kinds {
		kinds[i] = token.Kind(k)
		if !kinds[i].Valid() || p.Starts[i] > p.Ends[i] || p.Ends[i] > size {
			return nil, fmt.Errorf("%w: token %d", ErrBadPayload, i)
		}
	}
	for i, c := range p.DiagCodes {
		if !diag.Code(c).Known() || p.DiagStarts[i] > size {
			return nil, fmt.Errorf("%w: diagnostic %d", ErrBadPayload, i)
		}
	}

	for i, c := range p.DiagCodes {
		ctx.Report(diag.Code(c), p.DiagStarts[i], p.DiagMsgs[i])
	}
	if err := ctx.Fault(); err != nil {
		return nil, err
	}
	return token.FromColumns(file, kinds, p.Starts, p.Ends), nil
}
