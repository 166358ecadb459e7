// Package content loads the static fixtures shown by the portal pages.
package content

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"portal/pkg/carousel"
)

//go:embed banner.yaml
var bannerYAML []byte

// Banner is the home page carousel fixture.
type Banner struct {
	Interval time.Duration    `yaml:"interval"`
	Slides   []carousel.Slide `yaml:"slides"`
}

// LoadBanner returns the embedded banner fixture.
func LoadBanner() (Banner, error) {
	return ParseBanner(bannerYAML)
}

// ParseBanner decodes a banner document. It does not validate slide count;
// carousel.New rejects an empty list.
func ParseBanner(data []byte) (Banner, error) {
	var b Banner
	if err := yaml.Unmarshal(data, &b); err != nil {
		return Banner{}, fmt.Errorf("decode banner: %w", err)
	}
	if b.Interval <= 0 {
		b.Interval = carousel.DefaultInterval
	}
	return b, nil
}
