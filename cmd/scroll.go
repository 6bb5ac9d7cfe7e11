package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/consultorvarela/portfolio/internal/navigator"
)

// frameInterval approximates a 60 Hz display.
const frameInterval = 16 * time.Millisecond

var (
	scrollFrom   float64
	scrollHeight float64
)

var scrollCmd = &cobra.Command{
	Use:   "scroll <section>",
	Short: "Replay the landing page scroll to a section",
	Long: `Lays the landing page sections out one after another, animates a
scroll to the given section frame by frame and prints the position and
active section after every frame.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if scrollHeight <= 0 {
			return fmt.Errorf("section height must be positive, got %v", scrollHeight)
		}
		return replayScroll(cmd.OutOrStdout(), args[0], scrollFrom, scrollHeight)
	},
}

// tracedPage reports every scroll write along with the active section.
type tracedPage struct {
	*navigator.Page
	tracker *navigator.Tracker
	w       io.Writer
}

func (p *tracedPage) ScrollTo(y float64) {
	p.Page.ScrollTo(y)
	fmt.Fprintf(p.w, "%4d %9.1f  %s\n", len(p.Writes), y, p.tracker.OnScroll(y))
}

func replayScroll(w io.Writer, section string, from, height float64) error {
	page := navigator.StackedPage(navigator.DefaultSections, height)
	page.Scroll = from
	tracker := navigator.NewTracker(page, navigator.DefaultSections)
	tracker.OnScroll(from)

	var frames navigator.FrameQueue
	scroller := navigator.NewScroller(&tracedPage{Page: page, tracker: tracker, w: w}, &frames)
	if !scroller.ScrollToSection(section) {
		return fmt.Errorf("unknown section %q", section)
	}

	fmt.Fprintf(w, "%4s %9s  %s\n", "#", "Y", "ACTIVE")
	n := frames.Run(0, frameInterval, 1000)
	fmt.Fprintf(w, "%s at %.1f after %d frames\n", tracker.Active(), page.ScrollY(), n)
	return nil
}

func init() {
	scrollCmd.Flags().Float64Var(&scrollFrom, "from", 0, "starting scroll position in pixels")
	scrollCmd.Flags().Float64Var(&scrollHeight, "height", 1000, "height of every section in pixels")
	rootCmd.AddCommand(scrollCmd)
}
