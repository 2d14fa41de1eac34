package source

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/fnv"

	"fortio.org/safecast"
)

// Handle refers to a string stored in a Pool.
// It is the byte offset of the entry inside the pool buffer, so handles
// stay valid while the buffer grows and are never reused.
type Handle uint32

// NoHandle always resolves to the empty string.
const NoHandle Handle = 0

// ErrPoolExhausted reports that the pool buffer cannot address another entry.
var ErrPoolExhausted = errors.New("string pool exhausted")

// HashFunc hashes pool entries; the default is FNV-1a 64.
type HashFunc func([]byte) uint64

const (
	poolInitialCap = 100
	lenPrefix      = 4
)

// Pool interns byte strings and hands out stable handles.
//
// Layout: buf[0] is a sentinel (handle 0 = ""), every entry is a 4-byte
// little-endian length followed by the content and a trailing NUL.
type Pool struct {
	buf     []byte
	buckets map[uint64][]Handle // hash -> handles с этим хэшем
	hash    HashFunc
	count   int
	limit   uint64
}

// NewPool returns an empty pool using FNV-1a 64.
func NewPool() *Pool {
	return NewPoolWithHash(fnv1a)
}

// NewPoolWithHash returns an empty pool with a custom hash function.
// Equal content must produce equal hashes; collisions are resolved by comparing bytes.
func NewPoolWithHash(h HashFunc) *Pool {
	buf := make([]byte, 1, poolInitialCap)
	return &Pool{
		buf:     buf,
		buckets: make(map[uint64][]Handle),
		hash:    h,
		limit:   1<<32 - 1,
	}
}

func fnv1a(b []byte) uint64 {
	h := fnv.New64a()
	_, _ = h.Write(b) //nolint:errcheck // hash.Hash never fails
	return h.Sum64()
}

// Intern returns the handle of b, storing a copy if it is not in the pool yet.
func (p *Pool) Intern(b []byte) (Handle, error) {
	if len(b) == 0 {
		return NoHandle, nil
	}
	sum := p.hash(b)
	for _, h := range p.buckets[sum] {
		if bytes.Equal(p.entry(h), b) {
			return h, nil
		}
	}

	size, err := safecast.Conv[uint32](len(b))
	if err != nil {
		return NoHandle, fmt.Errorf("%w: entry of %d bytes", ErrPoolExhausted, len(b))
	}
	start := uint64(len(p.buf))
	if start+lenPrefix+uint64(size)+1 > p.limit {
		return NoHandle, ErrPoolExhausted
	}
	h, err := safecast.Conv[Handle](start)
	if err != nil {
		return NoHandle, ErrPoolExhausted
	}

	p.buf = binary.LittleEndian.AppendUint32(p.buf, size)
	p.buf = append(p.buf, b...)
	p.buf = append(p.buf, 0)
	p.buckets[sum] = append(p.buckets[sum], h)
	p.count++
	return h, nil
}

// InternString is Intern for strings.
func (p *Pool) InternString(s string) (Handle, error) {
	return p.Intern([]byte(s))
}

// Lookup returns the string for h and whether h was issued by this pool.
func (p *Pool) Lookup(h Handle) (string, bool) {
	if h == NoHandle {
		return "", true
	}
	if !p.valid(h) {
		return "", false
	}
	return string(p.entry(h)), true
}

// Resolve returns the string for h. Unknown handles are a contract violation.
func (p *Pool) Resolve(h Handle) string {
	s, ok := p.Lookup(h)
	if !ok {
		panic(fmt.Sprintf("source: invalid pool handle %d", h))
	}
	return s
}

// Len returns the number of distinct non-empty strings in the pool.
func (p *Pool) Len() int {
	return p.count
}

// Size returns the number of bytes used by the pool buffer.
func (p *Pool) Size() int {
	return len(p.buf)
}

// Reset drops every entry; previously issued handles become invalid.
func (p *Pool) Reset() {
	p.buf = p.buf[:1]
	clear(p.buckets)
	p.count = 0
}

func (p *Pool) entry(h Handle) []byte {
	off := int(h)
	n := int(binary.LittleEndian.Uint32(p.buf[off : off+lenPrefix]))
	return p.buf[off+lenPrefix : off+lenPrefix+n]
}

func (p *Pool) valid(h Handle) bool {
	off := int(h)
	if off+lenPrefix > len(p.buf) {
		return false
	}
	n := int(binary.LittleEndian.Uint32(p.buf[off : off+lenPrefix]))
	if off+lenPrefix+n+1 > len(p.buf) {
		return false
	}
	body := p.buf[off+lenPrefix : off+lenPrefix+n]
	for _, known := range p.buckets[p.hash(body)] {
		if known == h {
			return true
		}
	}
	return false
}
