package fetch

import "testing"

func TestVideoFormat(t *testing.T) {
	tests := []struct {
		quality  string
		expected string
	}{
		{"best", "bestvideo+bestaudio/best"},
		{"", "bestvideo+bestaudio/best"},
		{"720", "bestvideo[height<=720]+bestaudio/best"},
		{"1080", "bestvideo[height<=1080]+bestaudio/best"},
	}

	for _, test := range tests {
		result := videoFormat(test.quality)
		if result != test.expected {
			t.Errorf("videoFormat(%q) = %q, expected %q", test.quality, result, test.expected)
		}
	}
}

func TestDeref(t *testing.T) {
	if deref(nil) != "" {
		t.Error("Expected empty string for nil")
	}

	s := "value"
	if deref(&s) != "value" {
		t.Errorf("Expected 'value', got '%s'", deref(&s))
	}
}
