package models

// SiteConfig describes the club details shown in the navigation and footer.
type SiteConfig struct {
	Name        string   `yaml:"name" toml:"name" json:"name"`
	Tagline     string   `yaml:"tagline" toml:"tagline" json:"tagline"`
	Description string   `yaml:"description" toml:"description" json:"description"`
	Founded     string   `yaml:"founded" toml:"founded" json:"founded"`
	Email       string   `yaml:"email" toml:"email" json:"email"`
	About       []string `yaml:"about" toml:"about" json:"about"`
	Nav         []Link   `yaml:"nav" toml:"nav" json:"nav"`
	QuickLinks  []Link   `yaml:"quick_links" toml:"quick_links" json:"quick_links"`
	Social      []Link   `yaml:"social" toml:"social" json:"social"`
	Legal       []Link   `yaml:"legal" toml:"legal" json:"legal"`
}

type Link struct {
	Label string `yaml:"label" toml:"label" json:"label"`
	URL   string `yaml:"url" toml:"url" json:"url"`
}
