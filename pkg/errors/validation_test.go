package errors

import "testing"

func TestValidatePackageName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "musl", false},
		{"valid with dash", "ca-certificates", false},
		{"valid with dot", "libcrypto3", false},
		{"empty", "", true},
		{"control char", "foo\x01bar", true},
		{"traversal", "../etc/passwd", true},
		{"double slash", "foo//bar", true},
		{"backslash", "foo\\bar", true},
		{"leading dash", "-rf", true},
		{"too long", string(make([]byte, 300)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePackageName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePackageName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateApkPackageName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain package", "busybox", false},
		{"versioned suffix name", "libssl3", false},
		{"shared object provider", "so:libc.musl-x86_64.so.1", false},
		{"command provider", "cmd:sh", false},
		{"plus in name", "libstdc++", false},
		{"spaces rejected", "foo bar", true},
		{"shell metachar rejected", "foo;rm", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateApkPackageName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateApkPackageName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	if err := ValidatePath("graphs/out.png"); err != nil {
		t.Errorf("ValidatePath() unexpected error: %v", err)
	}
	if err := ValidatePath(""); err == nil {
		t.Error("ValidatePath(\"\") expected error")
	}
	if err := ValidatePath("a\x00b"); err == nil {
		t.Error("ValidatePath with null byte expected error")
	}
}
