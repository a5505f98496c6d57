package util

import "testing"

func TestSanitizeFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "plain", in: "a.txt", want: "a.txt"},
		{name: "trims whitespace", in: "  a.txt  ", want: "a.txt"},
		{name: "replaces slashes", in: "dir/a.txt", want: "dir_a.txt"},
		{name: "replaces backslashes", in: `dir\a.txt`, want: "dir_a.txt"},
		{name: "rejects traversal", in: "../a.txt", wantErr: true},
		{name: "rejects empty", in: "   ", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := SanitizeFileName(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("SanitizeFileName(%q) expected error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("SanitizeFileName(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("SanitizeFileName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
