package release

import (
	"context"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/mod/semver"

	"autoscroll/pkg/config"
	"autoscroll/pkg/errors"
	"autoscroll/pkg/logger"
)

// Source returns the latest version for a package
type Source interface {
	Latest(ctx context.Context, pkg string) (string, error)
}

// Result is the outcome of one update check
type Result struct {
	Current   string
	Latest    string
	Available bool
}

// Checker compares the running version against a release source and caches
// the latest version it saw.
type Checker struct {
	source Source
	pkg    string
	cache  *cache.Cache
	logger logger.Logger
}

// NewChecker creates a checker. Lookups are cached for ttl.
func NewChecker(source Source, pkg string, ttl time.Duration, log logger.Logger) *Checker {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Checker{
		source: source,
		pkg:    pkg,
		cache:  cache.New(ttl, 2*ttl),
		logger: log,
	}
}

// New creates a checker from the updates configuration
func New(cfg *config.UpdatesConfig, log logger.Logger) *Checker {
	client := NewClient(cfg.FeedURL, cfg.Timeout, log)
	ttl := cfg.Interval / 2
	if ttl <= 0 {
		ttl = time.Hour
	}
	return NewChecker(client, cfg.Package, ttl, log)
}

// Check looks up the latest version and reports whether it is newer than
// current. Failures are returned as update_check errors.
func (c *Checker) Check(ctx context.Context, current string) (Result, error) {
	result := Result{Current: current}

	latest, err := c.latest(ctx)
	if err != nil {
		return result, errors.Wrap(errors.ErrorTypeUpdateCheck, err, "could not determine latest version")
	}
	result.Latest = latest

	if !semver.IsValid(Canonical(latest)) {
		return result, errors.New(errors.ErrorTypeUpdateCheck, "feed returned invalid version "+latest)
	}
	result.Available = Newer(latest, current)
	return result, nil
}

// Invalidate drops the cached lookup so the next check hits the feed
func (c *Checker) Invalidate() {
	c.cache.Delete(c.pkg)
}

func (c *Checker) latest(ctx context.Context) (string, error) {
	if cached, ok := c.cache.Get(c.pkg); ok {
		return cached.(string), nil
	}

	latest, err := c.source.Latest(ctx, c.pkg)
	if err != nil {
		return "", err
	}
	c.cache.Set(c.pkg, latest, cache.DefaultExpiration)
	return latest, nil
}

// Run checks immediately and then every interval until ctx is done. Results
// are delivered to onResult; failures are only logged.
func (c *Checker) Run(ctx context.Context, interval time.Duration, current string, onResult func(Result)) {
	check := func() {
		result, err := c.Check(ctx, current)
		if err != nil {
			if ctx.Err() == nil {
				c.logger.WithError(err).Debug("Background update check failed")
			}
			return
		}
		onResult(result)
	}

	check()
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check()
		}
	}
}

// Canonical normalises a version to the "vMAJOR.MINOR.PATCH" form
func Canonical(version string) string {
	version = strings.TrimSpace(version)
	if version != "" && !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	if c := semver.Canonical(version); c != "" {
		return c
	}
	return version
}

// Newer reports whether latest is a higher version than current. An
// unparseable current version (such as a dev build) never has updates.
func Newer(latest, current string) bool {
	l, c := Canonical(latest), Canonical(current)
	if !semver.IsValid(l) || !semver.IsValid(c) {
		return false
	}
	return semver.Compare(l, c) > 0
}

// ShouldOffer reports whether an update should be shown, given the version
// the user dismissed earlier.
func ShouldOffer(result Result, dismissed string) bool {
	if !result.Available {
		return false
	}
	return dismissed == "" || Canonical(dismissed) != Canonical(result.Latest)
}
