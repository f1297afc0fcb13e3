package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

const testIndex = `P:curl
D:libcurl zlib

P:libcurl
D:zlib

P:zlib
`

func writeIndexFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "APKINDEX")
	if err := os.WriteFile(path, []byte(testIndex), 0o644); err != nil {
		t.Fatalf("write index: %v", err)
	}
	return path
}

func quietContext() context.Context {
	return withLogger(context.Background(), log.New(io.Discard))
}

func TestNewSourceMutuallyExclusive(t *testing.T) {
	opts := &resolveOpts{live: true, index: "APKINDEX"}
	if _, _, err := newSource(quietContext(), opts); err == nil {
		t.Error("--index with --live should be an error")
	}
}

func TestNewSourceMissing(t *testing.T) {
	if _, _, err := newSource(quietContext(), &resolveOpts{}); err == nil {
		t.Error("neither --index nor --live should be an error")
	}
}

func TestNewSourceIndexFlag(t *testing.T) {
	opts := &resolveOpts{index: writeIndexFile(t)}

	src, closeSrc, err := newSource(quietContext(), opts)
	if err != nil {
		t.Fatalf("newSource() error: %v", err)
	}
	defer closeSrc()

	specs, err := src.Lookup(context.Background(), "curl")
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	if len(specs) != 2 {
		t.Errorf("Lookup(curl) = %v, want 2 specifiers", specs)
	}
}

func TestNewSourceIndexFromConfig(t *testing.T) {
	ctx := withConfig(quietContext(), Config{Index: IndexConfig{Path: writeIndexFile(t)}})

	src, closeSrc, err := newSource(ctx, &resolveOpts{})
	if err != nil {
		t.Fatalf("newSource() with config path error: %v", err)
	}
	defer closeSrc()

	if _, err := src.Lookup(context.Background(), "zlib"); err != nil {
		t.Errorf("Lookup(zlib) error: %v", err)
	}
}

func TestRunResolveWritesGraph(t *testing.T) {
	opts := &resolveOpts{index: writeIndexFile(t)}
	opts.output = filepath.Join(t.TempDir(), "curl.json")

	src, closeSrc, err := newSource(quietContext(), opts)
	if err != nil {
		t.Fatalf("newSource() error: %v", err)
	}
	defer closeSrc()

	if err := runResolve(quietContext(), src, "curl", opts); err != nil {
		t.Fatalf("runResolve() error: %v", err)
	}

	data, err := os.ReadFile(opts.output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	var doc struct {
		Nodes []struct {
			ID string `json:"id"`
		} `json:"nodes"`
		Edges []struct {
			From string `json:"from"`
			To   string `json:"to"`
		} `json:"edges"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(doc.Nodes) != 3 {
		t.Errorf("nodes = %d, want 3", len(doc.Nodes))
	}
	if len(doc.Edges) != 3 {
		t.Errorf("edges = %d, want 3", len(doc.Edges))
	}
	if doc.Nodes[0].ID != "curl" {
		t.Errorf("first node = %q, want root first", doc.Nodes[0].ID)
	}
}

func TestRunResolveUnknownPackage(t *testing.T) {
	opts := &resolveOpts{index: writeIndexFile(t)}

	src, closeSrc, err := newSource(quietContext(), opts)
	if err != nil {
		t.Fatalf("newSource() error: %v", err)
	}
	defer closeSrc()

	if err := runResolve(quietContext(), src, "no-such-package", opts); err == nil {
		t.Error("unknown root package should be an error")
	}
}

func TestRunResolvePartialWarns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "APKINDEX")
	if err := os.WriteFile(path, []byte("P:app\nD:ghost\n"), 0o644); err != nil {
		t.Fatalf("write index: %v", err)
	}
	opts := &resolveOpts{index: path, output: filepath.Join(t.TempDir(), "app.json")}

	src, closeSrc, err := newSource(quietContext(), opts)
	if err != nil {
		t.Fatalf("newSource() error: %v", err)
	}
	defer closeSrc()

	var buf bytes.Buffer
	ctx := withLogger(context.Background(), newLogger(&buf, log.WarnLevel))

	if err := runResolve(ctx, src, "app", opts); err != nil {
		t.Fatalf("runResolve() with dangling dep error: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("ghost")) {
		t.Error("dangling dependency should be warned about")
	}
}
