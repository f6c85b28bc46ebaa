package manager

import "fmt"

// ExitError carries the exit status of a forwarded scoop command.
type ExitError struct {
	Step string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("scoop %s exited with status %d", e.Step, e.Code)
}
