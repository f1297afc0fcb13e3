package cli

import (
	"strings"
	"testing"

	"github.com/apkgraph/apkgraph/pkg/graph"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to puml", "", []string{"puml"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "puml,dot,png", []string{"puml", "dot", "png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if len(got) != len(tt.want) {
				t.Errorf("parseFormats(%q) length = %d, want %d", tt.input, len(got), len(tt.want))
				return
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
				}
			}
		})
	}
}

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		wantErr bool
	}{
		{"valid puml", []string{"puml"}, false},
		{"valid dot", []string{"dot"}, false},
		{"valid multiple", []string{"puml", "svg", "png"}, false},
		{"invalid format", []string{"pdf"}, true},
		{"mixed valid invalid", []string{"svg", "bogus"}, true},
		{"empty slice", []string{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFormats(tt.formats)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateFormats(%v) error = %v, wantErr %v", tt.formats, err, tt.wantErr)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"empty output strips input extension", "", "curl.json", "curl"},
		{"output with format extension", "out.svg", "curl.json", "out"},
		{"output without extension", "out", "curl.json", "out"},
		{"output with unrelated extension", "out.dat", "curl.json", "out.dat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestRenderGraphMarkup(t *testing.T) {
	g := graph.New(graph.Metadata{"root": "a"})
	g.AddEdge(graph.Edge{From: "a", To: "b"})

	puml, err := renderGraph(g, formatPUML, &renderOpts{})
	if err != nil {
		t.Fatalf("renderGraph(puml) error: %v", err)
	}
	if !strings.Contains(string(puml), "@startuml") {
		t.Error("puml output should contain @startuml")
	}
	if !strings.Contains(string(puml), `"a" --> "b"`) {
		t.Error("puml output should contain the edge")
	}

	dot, err := renderGraph(g, formatDOT, &renderOpts{})
	if err != nil {
		t.Fatalf("renderGraph(dot) error: %v", err)
	}
	if !strings.Contains(string(dot), "digraph") {
		t.Error("dot output should contain digraph")
	}

	if _, err := renderGraph(g, "bogus", &renderOpts{}); err == nil {
		t.Error("unknown format should be an error")
	}
}
