package cmd

import "testing"

func TestDisplayHost(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"https://www.example.com/a/b", "example.com"},
		{"http://news.ycombinator.com", "news.ycombinator.com"},
		{"example.com/path", "example.com"},
		{"www.example.com", "example.com"},
	}

	for _, tt := range tests {
		if got := displayHost(tt.input); got != tt.want {
			t.Errorf("displayHost(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
