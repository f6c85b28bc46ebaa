package manager

import (
	"context"
	"fmt"

	"github.com/gopak/scoopx/internal/executil"
	"github.com/gopak/scoopx/internal/logging"
	"go.uber.org/zap"
)

// Runner hands the terminal to a scoop command and reports its exit status.
type Runner interface {
	Run(ctx context.Context, step, script string) (int, error)
}

type ShellRunner struct {
	exec executil.Runner
}

func NewShellRunner(exec executil.Runner) *ShellRunner { return &ShellRunner{exec: exec} }

func (r *ShellRunner) Run(ctx context.Context, step, script string) (int, error) {
	logging.Debug(fmt.Sprintf("scoop [%s]: %s", step, script))
	code, err := r.exec.Stream(ctx, script)
	if err != nil {
		return code, fmt.Errorf("command failed for scoop [%s]: %w", step, err)
	}
	logging.L().Info("scoop command finished", zap.String("step", step), zap.Int("code", code))
	return code, nil
}
