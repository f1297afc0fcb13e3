package apkcmd

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/apkgraph/apkgraph/pkg/cache"
	"github.com/apkgraph/apkgraph/pkg/deps"
	"github.com/apkgraph/apkgraph/pkg/errors"
)

// DefaultCommand is the apk invocation used to list the direct dependencies
// of a package, one specifier per line.
var DefaultCommand = []string{"apk", "info", "--depends"}

const defaultTTL = 24 * time.Hour

// runFunc executes the query command and returns its combined stdout.
// It exists so tests can substitute the external process.
type runFunc func(ctx context.Context, name string, arg ...string) ([]byte, error)

// Tool is a live dependency source that shells out to the apk command-line
// tool. Responses are cached so repeated resolutions of overlapping
// dependency trees do not re-query the package manager.
type Tool struct {
	command []string
	cache   cache.Cache
	ttl     time.Duration
	run     runFunc
}

// Option configures a Tool.
type Option func(*Tool)

// WithCommand overrides the apk invocation. The package name is appended as
// the final argument.
func WithCommand(command []string) Option {
	return func(t *Tool) {
		if len(command) > 0 {
			t.command = command
		}
	}
}

// WithCache stores query results in c with the given TTL.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(t *Tool) {
		if c != nil {
			t.cache = c
		}
		if ttl > 0 {
			t.ttl = ttl
		}
	}
}

// New creates a live source using [DefaultCommand] and no caching unless
// configured otherwise.
func New(opts ...Option) *Tool {
	t := &Tool{
		command: DefaultCommand,
		cache:   cache.NewNullCache(),
		ttl:     defaultTTL,
		run:     execRun,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Lookup queries apk for the direct dependencies of name and returns one
// specifier per output line. It implements [deps.Source]. A non-zero exit
// status answers with LOOKUP_FAILED for that package.
func (t *Tool) Lookup(ctx context.Context, name string) ([]string, error) {
	if err := errors.ValidateApkPackageName(name); err != nil {
		return nil, err
	}

	key := t.cacheKey(name)
	if data, ok, err := t.cache.Get(ctx, key); err == nil && ok {
		return parseOutput(data), nil
	}

	out, err := t.run(ctx, t.command[0], append(t.command[1:], name)...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLookupFailed, err, "%s %s", strings.Join(t.command, " "), name)
	}

	_ = t.cache.Set(ctx, key, out, t.ttl)
	return parseOutput(out), nil
}

func (t *Tool) cacheKey(name string) string {
	return "apkcmd:" + cache.Hash([]byte(strings.Join(t.command, " ")+"\x00"+name))
}

// parseOutput extracts dependency specifiers from apk output. Blank lines
// and header lines ("foo-1.0 depends on:") are skipped.
func parseOutput(out []byte) []string {
	var specs []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasSuffix(line, ":") {
			continue
		}
		specs = append(specs, line)
	}
	return specs
}

// execRun runs the external command and returns stdout. Stderr is captured
// and folded into the error on failure so operators can diagnose which
// invocation broke without re-running it.
func execRun(ctx context.Context, name string, arg ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, arg...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, errors.Wrap(errors.ErrCodeExternalTool, err, "%s", msg)
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}

// Ensure Tool implements deps.Source.
var _ deps.Source = (*Tool)(nil)
