package htmlsanitize_test

import (
	"strings"
	"testing"

	"github.com/dalemusser/vocaguia/internal/app/system/htmlsanitize"
)

func TestSanitize_Empty(t *testing.T) {
	if got := htmlsanitize.Sanitize(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestSanitize_SafeHTML(t *testing.T) {
	input := "<p><strong>Bold</strong> and <em>italic</em></p>"
	if got := htmlsanitize.Sanitize(input); got != input {
		t.Errorf("expected safe HTML preserved, got %q", got)
	}
}

func TestSanitize_RemovesScript(t *testing.T) {
	input := "<p>Hello</p><script>alert('xss')</script>"
	if got := htmlsanitize.Sanitize(input); got != "<p>Hello</p>" {
		t.Errorf("expected script removed, got %q", got)
	}
}

func TestSanitize_RemovesOnclick(t *testing.T) {
	got := htmlsanitize.Sanitize(`<button onclick="alert('xss')">Click</button>`)
	if strings.Contains(got, "onclick") {
		t.Errorf("expected onclick removed, got %q", got)
	}
}

func TestSanitize_RemovesIframe(t *testing.T) {
	got := htmlsanitize.Sanitize(`<p>Content</p><iframe src="https://evil.com"></iframe>`)
	if strings.Contains(got, "iframe") {
		t.Error("expected iframe to be removed")
	}
	if !strings.Contains(got, "Content") {
		t.Error("expected safe content to be preserved")
	}
}

func TestIsPlainText(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"Hello, World!", true},
		{"Ciencias & Artes", true},
		{"<p>Hello</p>", false},
		{"a < b", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := htmlsanitize.IsPlainText(tt.in); got != tt.want {
				t.Errorf("IsPlainText(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestClean_PlainTextUntouched(t *testing.T) {
	in := `Derecho "constitucional" & penal`
	if got := htmlsanitize.Clean(in); got != in {
		t.Errorf("Clean(%q) = %q", in, got)
	}
}

func TestClean_StripsUnsafeMarkup(t *testing.T) {
	got := htmlsanitize.Clean("<b>Medicina</b><script>steal()</script>")
	if got != "<b>Medicina</b>" {
		t.Errorf("got %q", got)
	}
}
