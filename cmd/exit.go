package cmd

import (
	"errors"

	"github.com/gopak/scoopx/internal/logging"
	"github.com/gopak/scoopx/internal/manager"
	"github.com/gopak/scoopx/internal/scoop"
	"github.com/gopak/scoopx/internal/search"
)

// ExitCode reports err and returns the process exit status for it. A scoop
// child that exited non-zero passes its own status through.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *manager.ExitError
	switch {
	case errors.As(err, &exitErr):
		logging.L().Warn(exitErr.Error())
		return exitErr.Code
	case errors.Is(err, scoop.ErrDeclined):
		return -1
	case errors.Is(err, search.ErrNoEndpoint):
		logging.Error(err.Error())
	case errors.Is(err, search.ErrService):
		logging.Error("could not reach the Scoop catalog: " + err.Error())
	default:
		logging.Error(err.Error())
	}
	return 1
}
