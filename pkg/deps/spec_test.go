package deps

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want string
	}{
		{"bare name", "musl", "musl"},
		{"exact pin", "musl=1.2.4-r1", "musl"},
		{"greater equal", "b>=1.2.3", "b"},
		{"less than", "zlib<2", "zlib"},
		{"fuzzy", "busybox~1.36", "busybox"},
		{"conflict marker", "!uclibc", "uclibc"},
		{"shared object provider", "so:libc.musl-x86_64.so.1", "so:libc.musl-x86_64.so.1"},
		{"surrounding whitespace", "  alpine-baselayout  ", "alpine-baselayout"},
		{"trailing constraint token", "musl >=1.2", "musl"},
		{"operator only", ">=1.2", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.spec); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.spec, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	specs := []string{"musl>=1.2", "busybox", "so:libssl.so.3", "!conflict=1"}
	for _, s := range specs {
		once := Normalize(s)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q != %q", s, once, twice)
		}
	}
}

func TestNormalizeAll(t *testing.T) {
	in := []string{"a=1", "b>=2", "", ">=3", "c"}
	want := []string{"a", "b", "c"}
	if got := NormalizeAll(in); !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeAll(%v) = %v, want %v", in, got, want)
	}
}
