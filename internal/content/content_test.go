package content

import (
	"testing"
	"time"

	"portal/pkg/carousel"
)

func TestLoadBanner(t *testing.T) {
	b, err := LoadBanner()
	if err != nil {
		t.Fatalf("LoadBanner: %v", err)
	}
	if len(b.Slides) == 0 {
		t.Fatal("embedded banner has no slides")
	}
	if b.Interval != 5*time.Second {
		t.Errorf("Interval %v, want 5s", b.Interval)
	}
	for i, s := range b.Slides {
		if s.Image == "" || s.Alt == "" {
			t.Errorf("slide %d missing image or alt: %+v", i, s)
		}
	}
}

func TestParseBanner_DefaultInterval(t *testing.T) {
	b, err := ParseBanner([]byte("slides:\n  - image: a.jpg\n"))
	if err != nil {
		t.Fatalf("ParseBanner: %v", err)
	}
	if b.Interval != carousel.DefaultInterval {
		t.Errorf("Interval %v, want %v", b.Interval, carousel.DefaultInterval)
	}
	if len(b.Slides) != 1 || b.Slides[0].Image != "a.jpg" {
		t.Errorf("Slides %+v", b.Slides)
	}
}

func TestParseBanner_Invalid(t *testing.T) {
	if _, err := ParseBanner([]byte("slides: [")); err == nil {
		t.Error("expected decode error")
	}
}
