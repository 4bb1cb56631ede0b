// Package validate implements the domain-rule validation of a decoded
// configuration: username and repository naming conventions, path
// writability, metric flags and timeout bounds. All functions are pure in
// the sense that they keep no state; the only side effect is creating a
// missing parent directory during path validation.
package validate

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/repofetch/repofetch/internal/domain"
)

var (
	// GitHub usernames start and end with an alphanumeric character and may
	// contain single, non-adjacent hyphens in between. Length is checked
	// separately so the error message can name the bound.
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9](?:[a-zA-Z0-9]|-[a-zA-Z0-9])*$`)
	repoNameRe = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
)

// MetricKeys is the fixed set of metric flags the configuration may toggle.
var MetricKeys = []string{"forks", "branches", "commits", "stars"}

// Username checks a GitHub username against GitHub's naming requirements.
func Username(u string) error {
	if len(u) < 4 || len(u) > 39 {
		return domain.E(domain.KindDomainViolation, "username must be between 4 and 39 characters")
	}
	if !usernameRe.MatchString(u) {
		return domain.E(domain.KindDomainViolation,
			"invalid username %q: use only alphanumeric characters and single hyphens (not at start/end)", u)
	}
	return nil
}

// RepositoryName checks a repository name against GitHub's naming conventions.
func RepositoryName(r string) error {
	if len(r) < 1 || len(r) > 100 {
		return domain.E(domain.KindDomainViolation, "repository name must be between 1 and 100 characters")
	}
	if r[len(r)-1] == '.' {
		return domain.E(domain.KindDomainViolation, "repository name %q cannot end with a dot", r)
	}
	if !repoNameRe.MatchString(r) {
		return domain.E(domain.KindDomainViolation,
			"invalid repository name %q: use only alphanumeric characters, hyphens, underscores, and dots", r)
	}
	return nil
}

// RepositoryList checks the repository list size and every name in it.
func RepositoryList(rs []string) error {
	if len(rs) < 1 || len(rs) > 10 {
		return domain.E(domain.KindDomainViolation, "number of repositories must be between 1 and 10, got %d", len(rs))
	}
	for _, r := range rs {
		if err := RepositoryName(r); err != nil {
			return err
		}
	}
	return nil
}

// Path resolves p to an absolute path and verifies it is usable as an output
// location. A missing parent directory is created. With checkWritable set,
// the path itself (or its parent, when the path does not exist yet) must be
// writable.
func Path(p string, checkWritable bool) error {
	if p == "" {
		return domain.E(domain.KindDomainViolation, "path must not be empty")
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return domain.WrapE(domain.KindDomainViolation, err, "cannot resolve path %q", p)
	}
	dir := filepath.Dir(abs)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return domain.WrapE(domain.KindDomainViolation, err, "cannot create directory for path %q", p)
		}
	}
	if !checkWritable {
		return nil
	}
	target := abs
	if _, err := os.Stat(abs); err != nil {
		target = dir
	}
	if err := probeWritable(target); err != nil {
		return domain.WrapE(domain.KindDomainViolation, err, "path %q is not writable", p)
	}
	return nil
}

// probeWritable verifies write access by actually touching the filesystem:
// permission bits alone lie on some mounts.
func probeWritable(target string) error {
	info, err := os.Stat(target)
	if err != nil {
		return err
	}
	if info.IsDir() {
		probe := filepath.Join(target, ".write_probe")
		f, err := os.Create(probe)
		if err != nil {
			return err
		}
		f.Close()
		return os.Remove(probe)
	}
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return err
	}
	return f.Close()
}

// Metrics checks the metric flags: only known keys are accepted and at least
// one metric must be enabled.
func Metrics(m map[string]bool) error {
	known := make(map[string]struct{}, len(MetricKeys))
	for _, k := range MetricKeys {
		known[k] = struct{}{}
	}
	anyEnabled := false
	for k, v := range m {
		if _, ok := known[k]; !ok {
			return domain.E(domain.KindDomainViolation, "unknown metric %q: allowed metrics are %v", k, MetricKeys)
		}
		if v {
			anyEnabled = true
		}
	}
	if !anyEnabled {
		return domain.E(domain.KindDomainViolation, "at least one metric must be enabled")
	}
	return nil
}

// Timeout checks the timeout value, in seconds, against its inclusive bounds.
func Timeout(t int) error {
	if t < 10 || t > 60 {
		return domain.E(domain.KindDomainViolation, "timeout must be between 10 and 60 seconds, got %d", t)
	}
	return nil
}

// Config runs all domain validations over a decoded configuration in a fixed
// order (username, repositories, paths, metrics, timeout) and stops at the
// first failure. Optional fields are only validated when present.
func Config(cfg *domain.Config) error {
	fail := func(err error) error {
		return domain.WrapE(domain.KindDomainViolation, err, "configuration validation failed")
	}
	if err := Username(cfg.Username); err != nil {
		return fail(err)
	}
	if err := RepositoryList(cfg.Repositories); err != nil {
		return fail(err)
	}
	if cfg.Path != nil {
		if cfg.Path.OutputPath != "" {
			if err := Path(cfg.Path.OutputPath, true); err != nil {
				return fail(err)
			}
		}
		if cfg.Path.LogPath != "" {
			if err := Path(cfg.Path.LogPath, true); err != nil {
				return fail(err)
			}
		}
	}
	if cfg.Metrics != nil {
		if err := Metrics(cfg.Metrics); err != nil {
			return fail(err)
		}
	}
	if cfg.Timeout != nil {
		if err := Timeout(*cfg.Timeout); err != nil {
			return fail(err)
		}
	}
	return nil
}
