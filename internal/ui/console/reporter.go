package console

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/gopak/scoopx/internal/logging"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const (
	glyphSuccess = "✔"
	glyphFail    = "✖"

	clearLine = "\r\033[K"
)

// Spinner is a report.Reporter that keeps one animated status line while a
// step runs and replaces it with a ✔ or ✖ line when the step ends. On a
// non-terminal writer only the final lines are printed. Writes to w are
// serialized and each final line clears the status line first, so parallel
// steps print one clean line each.
type Spinner struct {
	w       io.Writer
	animate bool
	every   time.Duration

	wmu sync.Mutex

	mu      sync.Mutex
	message string
	done    chan struct{}
	stopped chan struct{}
}

func NewSpinner(w io.Writer) *Spinner {
	s := &Spinner{w: w, every: 100 * time.Millisecond}
	if f, ok := w.(*os.File); ok {
		s.animate = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return s
}

func (s *Spinner) Start(msg string) {
	logging.L().Debug(text.StripEscape(msg))
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = msg
	if !s.animate || s.done != nil {
		return
	}
	s.done = make(chan struct{})
	s.stopped = make(chan struct{})
	go s.loop(s.done, s.stopped)
}

func (s *Spinner) Success(msg string) {
	s.stop()
	logging.L().Info(text.StripEscape(msg))
	s.line(fmt.Sprintf("%s %s\n", text.FgGreen.Sprint(glyphSuccess), msg))
}

func (s *Spinner) Fail(msg, detail string) {
	s.stop()
	logging.L().Error(text.StripEscape(msg))
	out := fmt.Sprintf("%s %s\n", text.FgRed.Sprint(glyphFail), msg)
	if detail != "" {
		out += text.FgHiBlack.Sprint(detail) + "\n"
	}
	s.line(out)
}

// line prints a final line, first clearing whatever status line a concurrent
// step has drawn since.
func (s *Spinner) line(out string) {
	s.wmu.Lock()
	defer s.wmu.Unlock()
	if s.animate {
		out = clearLine + out
	}
	fmt.Fprint(s.w, out)
}

// stop halts the animation; the next line written clears the status line.
func (s *Spinner) stop() {
	s.mu.Lock()
	done, stopped := s.done, s.stopped
	s.done, s.stopped = nil, nil
	s.mu.Unlock()
	if done == nil {
		return
	}
	close(done)
	<-stopped
}

func (s *Spinner) loop(done, stopped chan struct{}) {
	defer close(stopped)
	tick := 0
	ticker := time.NewTicker(s.every)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			s.mu.Lock()
			msg := s.message
			s.mu.Unlock()
			frame := spinnerFrames[tick%len(spinnerFrames)]
			tick++
			s.wmu.Lock()
			fmt.Fprintf(s.w, "%s%s %s", clearLine, text.FgCyan.Sprint(frame), msg)
			s.wmu.Unlock()
		}
	}
}
