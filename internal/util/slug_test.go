package util

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"The Future of Web Development", "the-future-of-web-development"},
		{"Mindful Living Guide", "mindful-living-guide"},
		{"Café  Culture!", "cafe-culture"},
		{"  hello -- world  ", "hello-world"},
		{"", ""},
		{"日本語", ""},
	}

	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsValidSlug(t *testing.T) {
	valid := []string{"a", "web-development", "post-42"}
	for _, s := range valid {
		if !IsValidSlug(s) {
			t.Errorf("IsValidSlug(%q) = false, want true", s)
		}
	}

	invalid := []string{"", "-leading", "trailing-", "double--hyphen", "UpperCase", "with space", "unicode-é"}
	for _, s := range invalid {
		if IsValidSlug(s) {
			t.Errorf("IsValidSlug(%q) = true, want false", s)
		}
	}
}
