package timer

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sadopc/pomo/internal/clock"
)

// TextDisplay is the plain countdown used when stdout is not a terminal:
// one "\rMM:SS" frame per second.
type TextDisplay struct {
	Out   io.Writer
	Clock clock.Clock
}

func (d *TextDisplay) Countdown(ctx context.Context, total time.Duration, label string) error {
	fmt.Fprintf(d.Out, "Starting %s session for %d minutes...\n", label, int(total/time.Minute))

	for remaining := total; remaining > 0; remaining -= time.Second {
		if err := ctx.Err(); err != nil {
			fmt.Fprintln(d.Out)
			return fmt.Errorf("%w: %w", ErrAborted, err)
		}
		fmt.Fprintf(d.Out, "\r%s", FormatRemaining(remaining))
		d.Clock.Sleep(time.Second)
	}

	fmt.Fprintf(d.Out, "\n%s session finished!\n", label)
	return nil
}

// FormatRemaining renders d as MM:SS, clamping negatives to zero.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// BellNotifier rings the terminal bell.
type BellNotifier struct {
	Out io.Writer
}

func (n BellNotifier) Notify() error {
	_, err := io.WriteString(n.Out, "\a")
	return err
}
