package dedup

import "testing"

func TestNormalizeURLYouTube(t *testing.T) {
	want := "youtube:abc123"
	urls := []string{
		"https://www.youtube.com/watch?v=ABC123",
		"http://youtube.com/watch?v=abc123&t=42s",
		"https://youtu.be/abc123",
		"https://youtu.be/abc123?si=tracking",
		"youtube.com/watch?v=ABC123",
		"https://m.youtube.com/watch?v=abc123",
		"https://www.youtube.com/shorts/abc123",
		"https://www.youtube.com/embed/abc123",
		"https://www.youtube.com/live/abc123/",
	}

	for _, u := range urls {
		got, err := NormalizeURL(u)
		if err != nil {
			t.Fatalf("NormalizeURL(%q) unexpected error: %v", u, err)
		}
		if got != want {
			t.Fatalf("NormalizeURL(%q) = %q, want %q", u, got, want)
		}
	}
}

func TestNormalizeURLPlatforms(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://twitter.com/someuser/status/1234567890", "twitter:1234567890"},
		{"https://x.com/someuser/status/1234567890?s=20", "twitter:1234567890"},
		{"https://mobile.twitter.com/u/status/1234567890", "twitter:1234567890"},
		{"https://www.tiktok.com/@creator/video/7012345678901234567", "tiktok:7012345678901234567"},
		{"https://vm.tiktok.com/ZMabcdef/", "tiktok:zmabcdef"},
		{"https://www.instagram.com/p/Cxyz123/", "instagram:cxyz123"},
		{"https://www.instagram.com/reel/Cxyz123", "instagram:cxyz123"},
		{"https://www.instagram.com/tv/Cxyz123/?igshid=x", "instagram:cxyz123"},
	}

	for _, tt := range tests {
		got, err := NormalizeURL(tt.in)
		if err != nil {
			t.Fatalf("NormalizeURL(%q) unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("NormalizeURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeURLFallback(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://example.com/videos/42?utm_source=mail", "https//example.com/videos/42"},
		{"HTTP://WWW.Example.COM/Videos/42/", "http//example.com/videos/42"},
		{"example.com/watch", "https//example.com/watch"},
	}

	for _, tt := range tests {
		got, err := NormalizeURL(tt.in)
		if err != nil {
			t.Fatalf("NormalizeURL(%q) unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("NormalizeURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeURLInvalid(t *testing.T) {
	for _, u := range []string{"", "   ", "https://"} {
		if _, err := NormalizeURL(u); err == nil {
			t.Fatalf("NormalizeURL(%q) expected error", u)
		}
	}
}

func TestHashURLStable(t *testing.T) {
	a, err := HashURL("https://www.youtube.com/watch?v=ABC123")
	if err != nil {
		t.Fatalf("HashURL: %v", err)
	}
	b, err := HashURL("https://youtu.be/abc123?si=share")
	if err != nil {
		t.Fatalf("HashURL: %v", err)
	}
	if a != b {
		t.Fatalf("equivalent URLs hashed differently: %q vs %q", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}

	c, err := HashURL("https://youtu.be/xyz789")
	if err != nil {
		t.Fatalf("HashURL: %v", err)
	}
	if a == c {
		t.Fatalf("different videos produced the same hash")
	}
}
