package browser

import (
	"context"

	"github.com/gravitational/trace"
)

// SelectFrame switches to the frame or iframe matching locator
func (l *Library) SelectFrame(ctx context.Context, loc string) error {
	l.Infof("Selecting frame '%v'.", loc)
	frame, err := l.element(ctx, loc, anyTag)
	if err != nil {
		return trace.Wrap(err)
	}
	wd, err := l.current(ctx)
	if err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(wd.SwitchFrame(frame))
}

// UnselectFrame switches back to the top level document
func (l *Library) UnselectFrame(ctx context.Context) error {
	wd, err := l.current(ctx)
	if err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(wd.SwitchFrame(nil))
}

// CurrentFrameShouldContain verifies that the current frame contains text
func (l *Library) CurrentFrameShouldContain(ctx context.Context, text string) error {
	found, err := l.currentFrameContains(ctx, text)
	if err != nil {
		return trace.Wrap(err)
	}
	if !found {
		return trace.CompareFailed("Frame should have contained text '%v' but did not.", text)
	}
	l.Infof("Current frame contains text '%v'.", text)
	return nil
}

// CurrentFrameShouldNotContain verifies that the current frame does not contain text
func (l *Library) CurrentFrameShouldNotContain(ctx context.Context, text string) error {
	found, err := l.currentFrameContains(ctx, text)
	if err != nil {
		return trace.Wrap(err)
	}
	if found {
		return trace.CompareFailed("Frame should not have contained text '%v' but it did.", text)
	}
	l.Infof("Current frame did not contain text '%v'.", text)
	return nil
}

func (l *Library) currentFrameContains(ctx context.Context, text string) (bool, error) {
	wd, err := l.current(ctx)
	if err != nil {
		return false, trace.Wrap(err)
	}
	return textPresent(wd, text)
}

// FrameShouldContain verifies that the frame matching locator contains text.
// The driver is switched back to the top level document.
func (l *Library) FrameShouldContain(ctx context.Context, loc, text string) error {
	if err := l.SelectFrame(ctx, loc); err != nil {
		return trace.Wrap(err)
	}
	found, err := l.currentFrameContains(ctx, text)
	if unselectErr := l.UnselectFrame(ctx); unselectErr != nil && err == nil {
		err = unselectErr
	}
	if err != nil {
		return trace.Wrap(err)
	}
	if !found {
		return trace.CompareFailed("Frame '%v' should have contained text '%v' but did not.", loc, text)
	}
	l.Infof("Frame '%v' contains text '%v'.", loc, text)
	return nil
}
