package plantuml

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/apkgraph/apkgraph/pkg/errors"
)

// runFunc executes the renderer process. It exists so tests can substitute
// the external JVM invocation.
type runFunc func(ctx context.Context, name string, arg ...string) error

// Runner invokes an external PlantUML renderer over generated markup and
// relocates the produced image to the caller's requested path.
type Runner struct {
	java string // java binary (default "java")
	jar  string // path to plantuml.jar
	run  runFunc
}

// Option configures a Runner.
type Option func(*Runner)

// WithJava overrides the java binary used to launch the renderer.
func WithJava(path string) Option {
	return func(r *Runner) {
		if path != "" {
			r.java = path
		}
	}
}

// NewRunner creates a Runner for the PlantUML jar at jarPath.
func NewRunner(jarPath string, opts ...Option) *Runner {
	r := &Runner{java: "java", jar: jarPath, run: execRun}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render writes markup to a scratch file, invokes the renderer, and moves
// the single PNG it produced to outputPath.
//
// The scratch directory is removed on every exit path, including renderer
// failure. A renderer that exits non-zero or produces no PNG surfaces as an
// EXTERNAL_TOOL error with the invocation in the message.
func (r *Runner) Render(ctx context.Context, markup, outputPath string) error {
	if _, err := os.Stat(r.jar); err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "renderer %s", r.jar)
	}

	scratch := filepath.Join(os.TempDir(), "apkgraph-"+uuid.NewString())
	if err := os.MkdirAll(scratch, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create scratch dir")
	}
	defer os.RemoveAll(scratch)

	markupPath := filepath.Join(scratch, "graph.puml")
	if err := os.WriteFile(markupPath, []byte(markup), 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write markup")
	}

	outDir := filepath.Join(scratch, "out")
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create output dir")
	}

	if err := r.run(ctx, r.java, "-jar", r.jar, markupPath, "-o", outDir); err != nil {
		return errors.Wrap(errors.ErrCodeExternalTool, err, "plantuml %s", r.jar)
	}

	artifact, err := findArtifact(outDir, ".png")
	if err != nil {
		return err
	}

	if err := moveFile(artifact, outputPath); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "relocate %s", outputPath)
	}
	return nil
}

// findArtifact locates the image the renderer dropped into dir. PlantUML
// names the output after the diagram, not the input file, so the artifact is
// discovered by extension rather than by a fixed name.
func findArtifact(dir, ext string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "read output dir")
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ext) {
			return filepath.Join(dir, entry.Name()), nil
		}
	}
	return "", errors.New(errors.ErrCodeExternalTool, "renderer produced no %s file in %s", ext, dir)
}

// moveFile renames src to dst, falling back to copy-and-remove when the
// scratch directory and destination live on different filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}

func execRun(ctx context.Context, name string, arg ...string) error {
	cmd := exec.CommandContext(ctx, name, arg...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return errors.Wrap(errors.ErrCodeExternalTool, err, "%s", msg)
		}
		return err
	}
	return nil
}
