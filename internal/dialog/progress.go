package dialog

import (
	"fmt"

	"github.com/ncruces/zenity"
)

// Progress shows export progress in a native progress dialog.
type Progress struct {
	dlg   zenity.ProgressDialog
	total int
}

// NewProgress opens a progress dialog for total frames.
func NewProgress(total int) (*Progress, error) {
	dlg, err := zenity.Progress(
		zenity.Title("Saving animation"),
		zenity.MaxValue(total),
	)
	if err != nil {
		return nil, fmt.Errorf("error opening progress dialog: %w", err)
	}
	return &Progress{dlg: dlg, total: total}, nil
}

// Update reports that done frames have been saved.
func (p *Progress) Update(done int) error {
	if err := p.dlg.Text(FrameMessage(done, p.total)); err != nil {
		return err
	}
	return p.dlg.Value(done)
}

// Canceled is closed when the user dismisses the dialog.
func (p *Progress) Canceled() <-chan struct{} {
	return p.dlg.Done()
}

// Close completes and closes the dialog.
func (p *Progress) Close() error {
	if err := p.dlg.Complete(); err != nil {
		return err
	}
	return p.dlg.Close()
}

// FrameMessage is the progress line for frame done of total.
func FrameMessage(done, total int) string {
	return fmt.Sprintf("Saving frame %d of %d", done, total)
}
