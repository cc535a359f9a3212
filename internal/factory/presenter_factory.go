package factory

import (
	"io"

	"github.com/mikey/email-sentiment/internal/adapters/cli"
	"github.com/mikey/email-sentiment/internal/ports"
)

// PresenterFactory creates presenters for the selected output format
type PresenterFactory struct {
	out        io.Writer
	jsonOutput bool
}

// NewPresenterFactory creates a new presenter factory
func NewPresenterFactory(out io.Writer, jsonOutput bool) *PresenterFactory {
	return &PresenterFactory{
		out:        out,
		jsonOutput: jsonOutput,
	}
}

// CreatePresenter creates a JSON or a styled text presenter
func (f *PresenterFactory) CreatePresenter() ports.Presenter {
	if f.jsonOutput {
		return cli.NewJSONPresenter(f.out)
	}
	return cli.NewTextPresenter(f.out)
}
