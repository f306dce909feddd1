package keywords

import (
	"context"
	"fmt"
)

// SelectFrame switches to the frame matching the locator
func (l *Library) SelectFrame(ctx context.Context, loc string) error {
	return l.do(ctx, "select_frame", "Switched to "+loc, loc,
		func() error { return l.browser.SelectFrame(ctx, loc) })
}

// UnselectFrame returns to the top level document
func (l *Library) UnselectFrame(ctx context.Context) error {
	return l.do(ctx, "unselect_frame", "Returned to main frame", "",
		func() error { return l.browser.UnselectFrame(ctx) })
}

// CurrentFrameShouldContain verifies the current frame contains the text
func (l *Library) CurrentFrameShouldContain(ctx context.Context, text, loglevel string) error {
	return l.do(ctx, "current_frame_should_contain", "Current frame contains "+text, text,
		l.logSourceOnFailure(ctx, loglevel, func() error {
			return l.browser.CurrentFrameShouldContain(ctx, text)
		}))
}

// CurrentFrameShouldNotContain verifies the current frame does not contain the text
func (l *Library) CurrentFrameShouldNotContain(ctx context.Context, text, loglevel string) error {
	return l.do(ctx, "current_frame_should_not_contain", "Current frame does not contain "+text, text,
		l.logSourceOnFailure(ctx, loglevel, func() error {
			return l.browser.CurrentFrameShouldNotContain(ctx, text)
		}))
}

// FrameShouldContain verifies the frame matching the locator contains the text
func (l *Library) FrameShouldContain(ctx context.Context, loc, text, loglevel string) error {
	return l.do(ctx, "frame_should_contain",
		fmt.Sprintf("%v contains %v", loc, text), fmt.Sprintf("Frame: %v, Text: %v", loc, text),
		l.logSourceOnFailure(ctx, loglevel, func() error {
			return l.browser.FrameShouldContain(ctx, loc, text)
		}))
}
