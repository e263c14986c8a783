package slug

import "testing"

func TestBlog(t *testing.T) {
	cases := map[string]string{
		"Hello World!!":               "hello-world",
		"  Growth -- Hacking  2024 ": "growth-hacking-2024",
		"SEO & SEM: a guide":          "seo-sem-a-guide",
		"already-a-slug":              "already-a-slug",
		"---":                         "",
	}
	for title, want := range cases {
		if got := Blog(title); got != want {
			t.Fatalf("Blog(%q) = %q, want %q", title, got, want)
		}
	}
}

func TestBlogIdempotent(t *testing.T) {
	titles := []string{"Hello World!!", "Ten Tips for Better Email Campaigns", "A -- B"}
	for _, title := range titles {
		once := Blog(title)
		if Blog(once) != once {
			t.Fatalf("Blog not idempotent for %q: %q -> %q", title, once, Blog(once))
		}
		if Blog(title) != once {
			t.Fatalf("Blog not deterministic for %q", title)
		}
	}
}

func TestCaseStudyKeepsEdgeAndRepeatedSeparators(t *testing.T) {
	cases := map[string]string{
		"Acme Rebrand":         "acme-rebrand",
		"Acme - Rebrand":       "acme-rebrand",
		"Trailing space ":      "trailing-space-",
		" Leading space":       "-leading-space",
		"E-commerce Growth 3x": "ecommerce-growth-3x",
	}
	for title, want := range cases {
		if got := CaseStudy(title); got != want {
			t.Fatalf("CaseStudy(%q) = %q, want %q", title, got, want)
		}
	}
}
