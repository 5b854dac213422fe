package service

import (
	"testing"

	"github.com/octobees/lead-discovery/internal/entity"
)

func TestIsSocialWebsite(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"https://facebook.com/cafelua", true},
		{"https://www.facebook.com/cafelua", true},
		{"m.facebook.com/cafelua", true},
		{"http://instagram.com/lua.porto", true},
		{"https://linktr.ee/lua", true},
		{"https://wa.me/351912345678", true},
		{"https://www.tripadvisor.pt/Restaurant_Review", true},
		{"https://lua.business.site", true},
		{"HTTPS://WWW.INSTAGRAM.COM/LUA", true},
		{"https://cafelua.pt", false},
		{"https://notfacebook.com", false},
		{"https://padaria-são-bento.pt", false},
		{"", false},
		{"   ", false},
	}

	for _, tc := range cases {
		if got := IsSocialWebsite(tc.input); got != tc.want {
			t.Fatalf("IsSocialWebsite(%q)=%v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestClearSocialWebsites(t *testing.T) {
	original := []entity.Lead{
		{ID: "a", Website: strPtr("https://instagram.com/a")},
		{ID: "b", Website: strPtr("https://b.pt")},
		{ID: "c"},
	}

	got := ClearSocialWebsites(original)

	if got[0].Website != nil {
		t.Fatalf("expected social website cleared")
	}
	if got[1].Website == nil || *got[1].Website != "https://b.pt" {
		t.Fatalf("expected real website kept")
	}
	if got[2].Website != nil {
		t.Fatalf("expected nil website untouched")
	}
	if original[0].Website == nil {
		t.Fatalf("expected input slice to be left unchanged")
	}
	for i := range original {
		if got[i].ID != original[i].ID {
			t.Fatalf("expected order preserved")
		}
	}
}

func TestWebsiteHost(t *testing.T) {
	cases := map[string]string{
		"https://www.Example.PT/path": "example.pt",
		"example.pt":                  "example.pt",
		"https://café.pt":             "xn--caf-dma.pt",
		"https://example.pt.":         "example.pt",
		"":                            "",
	}
	for input, want := range cases {
		if got := websiteHost(input); got != want {
			t.Fatalf("websiteHost(%q)=%q, want %q", input, got, want)
		}
	}
}
