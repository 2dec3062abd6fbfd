package driver

import (
	"errors"
	"os"
	"testing"

	"docfmt/internal/printer"
)

func TestSnippetCacheRoundTrip(t *testing.T) {
	cache, err := OpenSnippetCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	key := SnippetKey("int x = 1;", printer.Options{IndentWidth: 4})
	if _, ok := cache.Get(key); ok {
		t.Fatal("empty cache reported a hit")
	}
	if err := cache.Put(key, "int x = 1;"); err != nil {
		t.Fatal(err)
	}
	got, ok := cache.Get(key)
	if !ok || got != "int x = 1;" {
		t.Fatalf("Get = (%q, %v), want cached text", got, ok)
	}
}

func TestSnippetCacheCorruptEntryIsMiss(t *testing.T) {
	cache, err := OpenSnippetCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := SnippetKey("x", printer.Options{})
	if err := os.WriteFile(cache.entryPath(key), []byte("not msgpack"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok := cache.Get(key); ok {
		t.Fatal("corrupt entry reported as a hit")
	}
}

func TestSnippetKeyDependsOnOptions(t *testing.T) {
	a := SnippetKey("x", printer.Options{IndentWidth: 4})
	b := SnippetKey("x", printer.Options{IndentWidth: 2})
	c := SnippetKey("x", printer.Options{IndentWidth: 4, UseTabs: true})
	if a == b || a == c {
		t.Fatal("keys must differ when printer options differ")
	}
	if a != SnippetKey("x", printer.Options{IndentWidth: 4}) {
		t.Fatal("key is not deterministic")
	}
}

type countingPrinter struct {
	calls int
	err   error
}

func (p *countingPrinter) Format(src string, opt printer.Options) (string, error) {
	p.calls++
	if p.err != nil {
		return "", p.err
	}
	return src, nil
}

func TestCachingPrinterHitsCache(t *testing.T) {
	cache, err := OpenSnippetCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	inner := &countingPrinter{}
	cp := CachingPrinter{Printer: inner, Cache: cache}

	for i := 0; i < 3; i++ {
		got, err := cp.Format("int x;", printer.Options{IndentWidth: 4})
		if err != nil || got != "int x;" {
			t.Fatalf("Format = (%q, %v)", got, err)
		}
	}
	if inner.calls != 1 {
		t.Fatalf("inner printer called %d times, want 1", inner.calls)
	}
}

func TestCachingPrinterNeverCachesErrors(t *testing.T) {
	cache, err := OpenSnippetCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	boom := errors.New("boom")
	inner := &countingPrinter{err: boom}
	cp := CachingPrinter{Printer: inner, Cache: cache}

	for i := 0; i < 2; i++ {
		if _, err := cp.Format("bad", printer.Options{}); !errors.Is(err, boom) {
			t.Fatalf("err = %v, want boom", err)
		}
	}
	if inner.calls != 2 {
		t.Fatalf("inner printer called %d times, want 2 (errors are not cached)", inner.calls)
	}
}

func TestOpenSnippetCacheEmptyDir(t *testing.T) {
	if _, err := OpenSnippetCache(""); err == nil {
		t.Fatal("empty directory must be rejected")
	}
}
