package extract

import (
	"strings"
	"testing"
)

func TestIsRecognizedPostURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "post with scheme", input: "https://www.instagram.com/p/ABC123/", want: true},
		{name: "reel", input: "https://www.instagram.com/reel/Cx9_-z/", want: true},
		{name: "tv", input: "https://instagram.com/tv/XYZ", want: true},
		{name: "no scheme", input: "instagram.com/p/ABC123/", want: true},
		{name: "short domain", input: "https://instagr.am/p/ABC123/", want: true},
		{name: "uppercase", input: "HTTPS://WWW.INSTAGRAM.COM/P/ABC123/", want: true},
		{name: "embedded in share text", input: "Check this out https://www.instagram.com/p/ABC/ yum", want: true},
		{name: "empty", input: "", want: false},
		{name: "profile", input: "https://www.instagram.com/chef_mike/", want: false},
		{name: "profile no scheme", input: "instagram.com/chef_mike", want: false},
		{name: "other host", input: "https://example.com/p/ABC123/", want: false},
		{name: "plain text", input: "best soup ever", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRecognizedPostURL(tt.input); got != tt.want {
				t.Errorf("IsRecognizedPostURL(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsRecognizedPostURL_CasePermutations(t *testing.T) {
	base := "https://www.instagram.com/reel/abc/"
	variants := []string{
		base,
		strings.ToUpper(base),
		"https://www.Instagram.Com/Reel/abc/",
		"hTTps://wWw.iNsTaGrAm.cOm/rEeL/abc/",
	}
	for _, v := range variants {
		if !IsRecognizedPostURL(v) {
			t.Errorf("IsRecognizedPostURL(%q) = false, want true", v)
		}
	}
}

func TestExtractPostIdentifier_Forms(t *testing.T) {
	ids := []string{"ABC123", "a_b-C9", "Cx9-_z0", "1"}
	forms := []string{
		"https://www.instagram.com/p/%s/",
		"https://instagram.com/p/%s",
		"http://www.instagram.com/p/%s/",
		"instagram.com/p/%s/",
	}

	for _, id := range ids {
		for _, form := range forms {
			url := strings.Replace(form, "%s", id, 1)
			got, ok := ExtractPostIdentifier(url)
			if !ok {
				t.Errorf("ExtractPostIdentifier(%q) not found, want %q", url, id)
				continue
			}
			if got != id {
				t.Errorf("ExtractPostIdentifier(%q) = %q, want %q", url, got, id)
			}
		}
	}
}

func TestExtractPostIdentifier(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{name: "reel", input: "https://www.instagram.com/reel/REEL42/", want: "REEL42", wantOK: true},
		{name: "tv", input: "https://www.instagram.com/tv/TV7", want: "TV7", wantOK: true},
		{name: "query after slash", input: "https://www.instagram.com/p/ABC123/?utm_source=ig_web", want: "ABC123", wantOK: true},
		{name: "query without slash kept", input: "https://www.instagram.com/p/ABC123?utm_source=ig_web", want: "ABC123?utm_source=ig_web", wantOK: true},
		{name: "p before reel", input: "https://www.instagram.com/reel/R1/p/P1/", want: "P1", wantOK: true},
		{name: "empty", input: "", wantOK: false},
		{name: "profile", input: "https://www.instagram.com/chef_mike/", wantOK: false},
		{name: "marker at end", input: "https://www.instagram.com/p/", wantOK: false},
		{name: "no marker", input: "just some words", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractPostIdentifier(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ExtractPostIdentifier(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ExtractPostIdentifier(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExtractPostIdentifier_MultiByteBeforeMarker(t *testing.T) {
	got, ok := ExtractPostIdentifier("🍲 Ünïcode instagram.com/P/ÅBC/")
	if !ok {
		t.Fatal("ExtractPostIdentifier() not found, want found")
	}
	if got != "ÅBC" {
		t.Errorf("ExtractPostIdentifier() = %q, want %q", got, "ÅBC")
	}
}
