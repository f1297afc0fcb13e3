package plantuml

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/apkgraph/apkgraph/pkg/errors"
)

// writeJar creates a placeholder jar file so the Runner's existence check
// passes.
func writeJar(t *testing.T) string {
	t.Helper()
	jar := filepath.Join(t.TempDir(), "plantuml.jar")
	if err := os.WriteFile(jar, []byte("jar"), 0644); err != nil {
		t.Fatal(err)
	}
	return jar
}

// fakeRenderer simulates a PlantUML process. The -o argument is the
// directory the artifact must be dropped into.
func fakeRenderer(t *testing.T, artifactName string, fail bool, scratch *string) runFunc {
	t.Helper()
	return func(ctx context.Context, name string, arg ...string) error {
		var outDir string
		for i, a := range arg {
			if a == "-o" && i+1 < len(arg) {
				outDir = arg[i+1]
			}
		}
		if outDir == "" {
			t.Fatal("renderer invoked without -o")
		}
		*scratch = filepath.Dir(outDir)
		if fail {
			return errors.New(errors.ErrCodeExternalTool, "exit status 1")
		}
		if artifactName != "" {
			return os.WriteFile(filepath.Join(outDir, artifactName), []byte("png"), 0644)
		}
		return nil
	}
}

func TestRenderSuccess(t *testing.T) {
	jar := writeJar(t)
	output := filepath.Join(t.TempDir(), "graph.png")

	var scratch string
	r := NewRunner(jar)
	// PlantUML names the artifact after the diagram, not the requested output.
	r.run = fakeRenderer(t, "something_else.png", false, &scratch)

	if err := r.Render(context.Background(), "@startuml\n@enduml\n", output); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("output not relocated: %v", err)
	}
	if string(data) != "png" {
		t.Errorf("output content = %q", data)
	}

	if _, err := os.Stat(scratch); !os.IsNotExist(err) {
		t.Error("scratch directory not cleaned up after success")
	}
}

func TestRenderRendererFailure(t *testing.T) {
	jar := writeJar(t)
	var scratch string
	r := NewRunner(jar)
	r.run = fakeRenderer(t, "", true, &scratch)

	err := r.Render(context.Background(), "@startuml\n@enduml\n", filepath.Join(t.TempDir(), "out.png"))
	if !errors.Is(err, errors.ErrCodeExternalTool) {
		t.Errorf("error code = %v, want EXTERNAL_TOOL", errors.GetCode(err))
	}

	if _, statErr := os.Stat(scratch); !os.IsNotExist(statErr) {
		t.Error("scratch directory not cleaned up after failure")
	}
}

func TestRenderMissingArtifact(t *testing.T) {
	jar := writeJar(t)
	var scratch string
	r := NewRunner(jar)
	r.run = fakeRenderer(t, "", false, &scratch) // renderer succeeds but writes nothing

	err := r.Render(context.Background(), "@startuml\n@enduml\n", filepath.Join(t.TempDir(), "out.png"))
	if !errors.Is(err, errors.ErrCodeExternalTool) {
		t.Errorf("error code = %v, want EXTERNAL_TOOL", errors.GetCode(err))
	}
}

func TestRenderMissingJar(t *testing.T) {
	r := NewRunner(filepath.Join(t.TempDir(), "nope.jar"))

	err := r.Render(context.Background(), "@startuml\n@enduml\n", filepath.Join(t.TempDir(), "out.png"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error code = %v, want FILE_NOT_FOUND", errors.GetCode(err))
	}
}

func TestWithJava(t *testing.T) {
	jar := writeJar(t)
	var gotBinary string
	r := NewRunner(jar, WithJava("/opt/java/bin/java"))
	r.run = func(ctx context.Context, name string, arg ...string) error {
		gotBinary = name
		var outDir string
		for i, a := range arg {
			if a == "-o" && i+1 < len(arg) {
				outDir = arg[i+1]
			}
		}
		return os.WriteFile(filepath.Join(outDir, "g.png"), []byte("png"), 0644)
	}

	if err := r.Render(context.Background(), "@startuml\n@enduml\n", filepath.Join(t.TempDir(), "out.png")); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if gotBinary != "/opt/java/bin/java" {
		t.Errorf("java binary = %q", gotBinary)
	}
}
