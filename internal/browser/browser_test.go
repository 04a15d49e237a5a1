package browser

import "testing"

func TestOpenRejectsBadURLs(t *testing.T) {
	tests := []string{
		"javascript:alert(1)",
		"file:///etc/passwd",
		"ftp://example.com",
		"://broken",
	}

	for _, url := range tests {
		if err := Open(url); err == nil {
			t.Errorf("Open(%q): expected error", url)
		}
	}
}
