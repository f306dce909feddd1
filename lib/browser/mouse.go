package browser

import (
	"context"

	"github.com/gravitational/trace"
	"github.com/tebeka/selenium"
)

// moveToCenter moves the mouse to an offset from the center of the element
func moveToCenter(elem selenium.WebElement, xOffset, yOffset int) error {
	size, err := elem.Size()
	if err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(elem.MoveTo(size.Width/2+xOffset, size.Height/2+yOffset))
}

// DragAndDrop drags the source element onto the target element
func (l *Library) DragAndDrop(ctx context.Context, source, target string) error {
	src, err := l.element(ctx, source, anyTag)
	if err != nil {
		return trace.Wrap(err)
	}
	dst, err := l.element(ctx, target, anyTag)
	if err != nil {
		return trace.Wrap(err)
	}
	wd, err := l.current(ctx)
	if err != nil {
		return trace.Wrap(err)
	}
	if err := moveToCenter(src, 0, 0); err != nil {
		return trace.Wrap(err)
	}
	if err := wd.ButtonDown(); err != nil {
		return trace.Wrap(err)
	}
	if err := moveToCenter(dst, 0, 0); err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(wd.ButtonUp())
}

// DragAndDropByOffset drags the element by the given offset
func (l *Library) DragAndDropByOffset(ctx context.Context, loc string, xOffset, yOffset int) error {
	elem, err := l.element(ctx, loc, anyTag)
	if err != nil {
		return trace.Wrap(err)
	}
	wd, err := l.current(ctx)
	if err != nil {
		return trace.Wrap(err)
	}
	if err := moveToCenter(elem, 0, 0); err != nil {
		return trace.Wrap(err)
	}
	if err := wd.ButtonDown(); err != nil {
		return trace.Wrap(err)
	}
	if err := moveToCenter(elem, xOffset, yOffset); err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(wd.ButtonUp())
}

// MouseDown presses the left mouse button on the element without releasing it
func (l *Library) MouseDown(ctx context.Context, loc string) error {
	return l.mouseDown(ctx, loc, anyTag)
}

// MouseDownOnLink presses the left mouse button on the link
func (l *Library) MouseDownOnLink(ctx context.Context, loc string) error {
	return l.mouseDown(ctx, loc, linkTag)
}

// MouseDownOnImage presses the left mouse button on the image
func (l *Library) MouseDownOnImage(ctx context.Context, loc string) error {
	return l.mouseDown(ctx, loc, imageTag)
}

func (l *Library) mouseDown(ctx context.Context, loc string, spec tagSpec) error {
	elem, err := l.element(ctx, loc, spec)
	if err != nil {
		return trace.Wrap(err)
	}
	wd, err := l.current(ctx)
	if err != nil {
		return trace.Wrap(err)
	}
	if err := moveToCenter(elem, 0, 0); err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(wd.ButtonDown())
}

// MouseUp releases the left mouse button on the element
func (l *Library) MouseUp(ctx context.Context, loc string) error {
	elem, err := l.element(ctx, loc, anyTag)
	if err != nil {
		return trace.Wrap(err)
	}
	wd, err := l.current(ctx)
	if err != nil {
		return trace.Wrap(err)
	}
	if err := moveToCenter(elem, 0, 0); err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(wd.ButtonUp())
}

// MouseOver moves the mouse over the element
func (l *Library) MouseOver(ctx context.Context, loc string) error {
	elem, err := l.element(ctx, loc, anyTag)
	if err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(moveToCenter(elem, 0, 0))
}

// MouseOut moves the mouse just past the bottom right corner of the element
func (l *Library) MouseOut(ctx context.Context, loc string) error {
	elem, err := l.element(ctx, loc, anyTag)
	if err != nil {
		return trace.Wrap(err)
	}
	size, err := elem.Size()
	if err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(elem.MoveTo(size.Width+1, size.Height+1))
}

// OpenContextMenu right clicks the element
func (l *Library) OpenContextMenu(ctx context.Context, loc string) error {
	elem, err := l.element(ctx, loc, anyTag)
	if err != nil {
		return trace.Wrap(err)
	}
	wd, err := l.current(ctx)
	if err != nil {
		return trace.Wrap(err)
	}
	if err := moveToCenter(elem, 0, 0); err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(wd.Click(selenium.RightButton))
}

const simulateEventScript = `
var element = arguments[0];
var name = arguments[1];
if (document.createEventObject) {
	element.fireEvent('on' + name, document.createEventObject());
} else {
	var evt = document.createEvent('HTMLEvents');
	evt.initEvent(name, true, true);
	element.dispatchEvent(evt);
}
`

// SimulateEvent dispatches a DOM event of the given type on the element
func (l *Library) SimulateEvent(ctx context.Context, loc, event string) error {
	elem, err := l.element(ctx, loc, anyTag)
	if err != nil {
		return trace.Wrap(err)
	}
	_, err = l.executeScript(ctx, simulateEventScript, elem, event)
	return trace.Wrap(err)
}
