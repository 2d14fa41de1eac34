package source

import (
	"errors"
	"testing"
)

func TestPoolEmptyString(t *testing.T) {
	p := NewPool()
	h, err := p.InternString("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h != NoHandle {
		t.Fatalf("expected NoHandle for empty string, got %d", h)
	}
	if got := p.Resolve(NoHandle); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
	if p.Len() != 0 {
		t.Fatalf("empty string must not be stored, Len=%d", p.Len())
	}
}

func TestPoolInternDedup(t *testing.T) {
	p := NewPool()
	words := []string{"foo", "bar", "foo", "baz", "bar", "foo"}
	seen := make(map[string]Handle)
	for _, w := range words {
		h, err := p.InternString(w)
		if err != nil {
			t.Fatalf("intern %q: %v", w, err)
		}
		if h == NoHandle {
			t.Fatalf("non-empty %q got NoHandle", w)
		}
		if prev, ok := seen[w]; ok && prev != h {
			t.Fatalf("%q interned twice with different handles: %d vs %d", w, prev, h)
		}
		seen[w] = h
	}
	if p.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", p.Len())
	}
	for w, h := range seen {
		if got := p.Resolve(h); got != w {
			t.Errorf("Resolve(%d) = %q, want %q", h, got, w)
		}
	}
}

func TestPoolHandlesSurviveGrowth(t *testing.T) {
	p := NewPool()
	first, err := p.InternString("first")
	if err != nil {
		t.Fatal(err)
	}
	// заполняем пул так, чтобы буфер несколько раз перевыделился
	for i := 0; i < 1000; i++ {
		if _, err := p.Intern([]byte{byte(i), byte(i >> 8), 'x'}); err != nil {
			t.Fatal(err)
		}
	}
	if got := p.Resolve(first); got != "first" {
		t.Fatalf("handle invalidated by growth: got %q", got)
	}
}

func TestPoolForcedCollision(t *testing.T) {
	// все строки попадают в одну корзину
	p := NewPoolWithHash(func([]byte) uint64 { return 42 })

	a, err := p.InternString("alpha")
	if err != nil {
		t.Fatal(err)
	}
	b, err := p.InternString("omega")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatalf("colliding distinct strings share handle %d", a)
	}
	if p.Resolve(a) != "alpha" || p.Resolve(b) != "omega" {
		t.Fatalf("resolve mismatch: %q %q", p.Resolve(a), p.Resolve(b))
	}
	again, err := p.InternString("omega")
	if err != nil {
		t.Fatal(err)
	}
	if again != b {
		t.Fatalf("re-intern after collision returned %d, want %d", again, b)
	}
}

func TestPoolBinaryContent(t *testing.T) {
	p := NewPool()
	raw := []byte{0, 'a', 0, 0xff}
	h, err := p.Intern(raw)
	if err != nil {
		t.Fatal(err)
	}
	if got := p.Resolve(h); got != string(raw) {
		t.Fatalf("got %q, want %q", got, raw)
	}
}

func TestPoolLookupUnknown(t *testing.T) {
	p := NewPool()
	h, _ := p.InternString("value")
	if _, ok := p.Lookup(h + 1); ok {
		t.Fatal("Lookup accepted a handle that was never issued")
	}
	if _, ok := p.Lookup(Handle(1 << 20)); ok {
		t.Fatal("Lookup accepted an out-of-range handle")
	}
	defer func() {
		if recover() == nil {
			t.Fatal("Resolve of an unknown handle must panic")
		}
	}()
	p.Resolve(h + 1)
}

func TestPoolExhausted(t *testing.T) {
	p := NewPool()
	p.limit = 16
	if _, err := p.InternString("ok"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := p.InternString("this entry does not fit")
	if !errors.Is(err, ErrPoolExhausted) {
		t.Fatalf("expected ErrPoolExhausted, got %v", err)
	}
}

func TestPoolReset(t *testing.T) {
	p := NewPool()
	h, _ := p.InternString("gone")
	p.Reset()
	if p.Len() != 0 {
		t.Fatalf("Len after Reset = %d", p.Len())
	}
	if _, ok := p.Lookup(h); ok {
		t.Fatal("handle survived Reset")
	}
}
