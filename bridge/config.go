package bridge

// Config holds bridge configuration loaded from the environment.
type Config struct {
	// Version is the deployed asset version. When empty, ManifestPath is hashed.
	Version string `env:"BRIDGE_VERSION" envDefault:""`

	// ManifestPath points at the client build manifest used to derive Version.
	ManifestPath string `env:"BRIDGE_MANIFEST_PATH" envDefault:""`

	// TrackComponent stores the last rendered component in the session.
	TrackComponent bool `env:"BRIDGE_TRACK_COMPONENT" envDefault:"false"`

	// RootID is the id of the element the client app mounts on.
	RootID string `env:"BRIDGE_ROOT_ID" envDefault:"app"`

	// Title is the default document title of the root template.
	Title string `env:"BRIDGE_TITLE" envDefault:""`

	// Concurrency enables concurrent lazy-prop resolution when > 0.
	Concurrency int `env:"BRIDGE_CONCURRENCY" envDefault:"0"`
}

// NewFromConfig creates a Bridge from cfg. Options are applied after the
// config-derived ones, so they take precedence.
func NewFromConfig(cfg Config, opts ...Option) (*Bridge, error) {
	version := cfg.Version
	if version == "" && cfg.ManifestPath != "" {
		v, err := VersionFromManifest(cfg.ManifestPath)
		if err != nil {
			return nil, err
		}
		version = v
	}

	configOpts := []Option{
		WithVersion(version),
		WithComponentTracking(cfg.TrackComponent),
		WithTemplate(RootTemplate(RootOptions{ID: cfg.RootID, Title: cfg.Title})),
	}
	if cfg.Concurrency > 0 {
		configOpts = append(configOpts, WithConcurrentResolution(cfg.Concurrency))
	}
	configOpts = append(configOpts, opts...)

	return New(configOpts...), nil
}
