// Package console renders scoopx results and progress for a terminal.
package console

import (
	"io"
	"os"
	"time"

	"github.com/gopak/scoopx/internal/manager"
)

type ConsoleUI struct {
	m   *manager.Manager
	out io.Writer
	now func() time.Time
}

func NewConsoleUI(m *manager.Manager) *ConsoleUI {
	return &ConsoleUI{m: m, out: os.Stdout, now: time.Now}
}
