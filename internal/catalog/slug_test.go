package catalog

import "testing"

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Brow Lamination":        "brow-lamination",
		"Déjà Vu Façade":         "deja-vu-facade",
		"  Lashes & Brows!  ":    "lashes-brows",
		"Already-Slugged":        "already-slugged",
		"Multiple   Spaces Here": "multiple-spaces-here",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
