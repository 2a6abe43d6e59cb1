package cli

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/m-mizutani/deploystat/pkg/domain/interfaces"
	"github.com/mattn/go-isatty"
)

type SpinnerProgress struct {
	spinner *spinner.Spinner
}

// NewProgress returns a spinner on w when w is a terminal, nil otherwise
func NewProgress(w io.Writer) interfaces.Progress {
	f, ok := w.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return nil
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Prefix = "⏳ "
	s.Suffix = " Listing repositories..."

	return &SpinnerProgress{spinner: s}
}

func (p *SpinnerProgress) Start() {
	p.spinner.Start()
}

func (p *SpinnerProgress) Update(repoName string) {
	p.spinner.Lock()
	p.spinner.Suffix = " Scanning " + repoName
	p.spinner.Unlock()
}

func (p *SpinnerProgress) Stop() {
	p.spinner.Stop()
}
