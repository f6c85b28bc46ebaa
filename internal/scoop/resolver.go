// Package scoop locates the Scoop executable and, with the user's consent,
// installs Scoop when it cannot be found.
package scoop

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gopak/scoopx/internal/config"
	"github.com/gopak/scoopx/internal/executil"
	"github.com/gopak/scoopx/internal/logging"
	"github.com/gopak/scoopx/internal/report"
	"go.uber.org/zap"
)

var (
	// ErrDeclined means the user refused to install Scoop.
	ErrDeclined = errors.New("scoop not installed")
	// ErrNotInstalled means installation ran but Scoop is still not discoverable.
	ErrNotInstalled = errors.New("scoop still not found after installation")
)

// Handle identifies the Scoop executable for one invocation.
type Handle struct {
	ExecutablePath string
}

// Prompter asks the user a yes/no question.
type Prompter interface {
	Confirm(message string, def bool) (bool, error)
}

type Resolver struct {
	exec      executil.Runner
	prompt    Prompter
	reporter  report.Reporter
	cfg       config.Scoop
	assumeYes bool
}

type Option func(*Resolver)

// WithAssumeYes skips the install confirmation.
func WithAssumeYes(v bool) Option { return func(r *Resolver) { r.assumeYes = v } }

func WithReporter(rep report.Reporter) Option { return func(r *Resolver) { r.reporter = rep } }

func NewResolver(cfg config.Scoop, exec executil.Runner, prompt Prompter, opts ...Option) *Resolver {
	r := &Resolver{exec: exec, prompt: prompt, reporter: report.Nop(), cfg: cfg}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *Resolver) maxAttempts() int {
	if r.cfg.MaxInstallAttempts < 1 {
		return 1
	}
	return r.cfg.MaxInstallAttempts
}

// Resolve returns the Scoop executable path. When Scoop is missing it asks
// before every install attempt and gives up after max_install_attempts.
func (r *Resolver) Resolve(ctx context.Context) (Handle, error) {
	for attempt := 0; ; attempt++ {
		path, err := r.locate(ctx)
		if err != nil {
			return Handle{}, err
		}
		if path != "" {
			logging.L().Debug("scoop located", zap.String("path", path), zap.Int("attempt", attempt))
			return Handle{ExecutablePath: path}, nil
		}
		if attempt >= r.maxAttempts() {
			r.reporter.Fail("scoop not installed", fmt.Sprintf("not found after %d install attempt(s)", attempt))
			return Handle{}, ErrNotInstalled
		}
		ok, err := r.confirm()
		if err != nil {
			return Handle{}, err
		}
		if !ok {
			r.reporter.Fail("scoop not installed", "")
			return Handle{}, ErrDeclined
		}
		if err := r.install(ctx); err != nil {
			return Handle{}, err
		}
	}
}

func (r *Resolver) locate(ctx context.Context) (string, error) {
	logging.Debug("locate scoop: " + r.cfg.Locate)
	res := r.exec.Capture(ctx, r.cfg.Locate)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return trailingToken(res.Stdout), nil
}

func (r *Resolver) confirm() (bool, error) {
	if r.assumeYes {
		return true, nil
	}
	if r.prompt == nil {
		return false, nil
	}
	return r.prompt.Confirm("Scoop not found. Do you want to install it?", true)
}

func (r *Resolver) install(ctx context.Context) error {
	for _, step := range []struct{ name, script string }{
		{"policy", r.cfg.Policy},
		{"bootstrap", r.cfg.Bootstrap},
	} {
		if step.script == "" {
			continue
		}
		logging.Debug(fmt.Sprintf("scoop [%s]: %s", step.name, step.script))
		code, err := r.exec.Stream(ctx, step.script)
		if err != nil {
			return fmt.Errorf("scoop install [%s]: %w", step.name, err)
		}
		if code != 0 {
			// the next locate decides whether the install worked
			logging.L().Warn("scoop install step exited non-zero", zap.String("step", step.name), zap.Int("code", code))
		}
	}
	return nil
}

func trailingToken(out string) string {
	fields := strings.Fields(out)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
