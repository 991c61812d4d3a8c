// Package popup shows the arrival confirmation on the workstation desktop.
package popup

import "github.com/gen2brain/beeep"

// Desktop raises a native alert dialog.
type Desktop struct{}

func (Desktop) Show(title, message string) error {
	return beeep.Alert(title, message, "")
}
