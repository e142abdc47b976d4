package local

import (
	"github.com/rs/zerolog"

	"github.com/SilverFire/flysystem/pkg/flysystem"
	"github.com/SilverFire/flysystem/pkg/flysystem/core"
	"github.com/SilverFire/flysystem/pkg/flysystem/filesystem"
	"github.com/SilverFire/flysystem/pkg/flysystem/metrics"
	"github.com/SilverFire/flysystem/pkg/flysystem/mimedetect"
	"github.com/SilverFire/flysystem/pkg/flysystem/visibility"
)

// options holds construction settings
type options struct {
	lock       core.LockMode
	links      core.LinkHandling
	table      visibility.Table
	unknown    core.Visibility
	defaultVis core.Visibility
	fsys       filesystem.FileSystem
	logger     zerolog.Logger
	metrics    *metrics.Recorder
	detector   mimedetect.Detector
}

func defaultOptions() options {
	return options{
		lock:       core.LockExclusive,
		links:      core.LinksDisallow,
		table:      visibility.DefaultTable(),
		unknown:    core.VisibilityPublic,
		defaultVis: core.VisibilityPublic,
		fsys:       filesystem.NewOSFileSystem(),
		logger:     flysystem.DefaultLogger(),
		detector:   mimedetect.New(),
	}
}

// Option configures an Adapter
type Option func(*options)

// WithLockMode sets whether write handles are locked exclusively (default: exclusive).
func WithLockMode(mode core.LockMode) Option {
	return func(o *options) {
		o.lock = mode
	}
}

// WithLinkHandling sets the symbolic link policy (default: disallow).
func WithLinkHandling(links core.LinkHandling) Option {
	return func(o *options) {
		o.links = links
	}
}

// WithPermissions overrides the visibility permission table. Zero entries
// keep their defaults.
func WithPermissions(table visibility.Table) Option {
	return func(o *options) {
		o.table = table
	}
}

// WithUnknownVisibility sets the visibility reported for permission bits
// that match no table entry (default: public).
func WithUnknownVisibility(v core.Visibility) Option {
	return func(o *options) {
		o.unknown = v
	}
}

// WithDefaultVisibility sets the visibility used when a call's Config does
// not name one (default: public).
func WithDefaultVisibility(v core.Visibility) Option {
	return func(o *options) {
		o.defaultVis = v
	}
}

// WithFileSystem replaces the OS capability, mostly to inject failures.
func WithFileSystem(fsys filesystem.FileSystem) Option {
	return func(o *options) {
		o.fsys = fsys
	}
}

// WithLogger sets the adapter's logger
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics records every operation on r
func WithMetrics(r *metrics.Recorder) Option {
	return func(o *options) {
		o.metrics = r
	}
}

// WithMimeDetector replaces the MIME detection capability
func WithMimeDetector(d mimedetect.Detector) Option {
	return func(o *options) {
		o.detector = d
	}
}
