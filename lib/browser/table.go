package browser

import (
	"context"

	"github.com/gravitational/trace"
	"github.com/tebeka/selenium"
)

const (
	tableRowsXPath  = "./thead/tr|./tbody/tr|./tfoot/tr|./tr"
	tableCellsXPath = "./th|./td"
)

// GetTableCell returns the text of the cell at row and column, both 1-based.
// Negative indexes count from the end.
func (l *Library) GetTableCell(ctx context.Context, loc string, row, column int) (string, error) {
	if row == 0 || column == 0 {
		return "", trace.BadParameter("Both row and column must be non-zero, got row %v and column %v.", row, column)
	}
	cell, err := l.tableCell(ctx, loc, row, column)
	if err != nil {
		return "", trace.Wrap(err)
	}
	text, err := cell.Text()
	return text, trace.Wrap(err)
}

func (l *Library) tableCell(ctx context.Context, loc string, row, column int) (selenium.WebElement, error) {
	table, err := l.element(ctx, loc, anyTag)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	rows, err := table.FindElements(selenium.ByXPATH, tableRowsXPath)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	r, ok := resolveIndex(row, len(rows))
	if !ok {
		return nil, trace.NotFound("Table '%v' should have had at least %v rows but had only %v.", loc, abs(row), len(rows))
	}
	cells, err := rows[r].FindElements(selenium.ByXPATH, tableCellsXPath)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	c, ok := resolveIndex(column, len(cells))
	if !ok {
		return nil, trace.NotFound("Table '%v' row %v should have had at least %v columns but had only %v.", loc, row, abs(column), len(cells))
	}
	return cells[c], nil
}

// resolveIndex converts a 1-based or negative index into a slice index
func resolveIndex(index, length int) (int, bool) {
	if index > 0 && index <= length {
		return index - 1, true
	}
	if index < 0 && -index <= length {
		return length + index, true
	}
	return 0, false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// TableCellShouldContain verifies that the cell at row and column contains expected
func (l *Library) TableCellShouldContain(ctx context.Context, loc string, row, column int, expected string) error {
	text, err := l.GetTableCell(ctx, loc, row, column)
	if err != nil {
		return trace.Wrap(err)
	}
	if !contains(text, expected, false) {
		return trace.CompareFailed("Table '%v' cell on row %v and column %v should have contained text '%v' but it has '%v'.",
			loc, row, column, expected, text)
	}
	l.Infof("Table cell contains '%v'.", text)
	return nil
}

// TableColumnShouldContain verifies that a cell of the column contains expected
func (l *Library) TableColumnShouldContain(ctx context.Context, loc string, column int, expected string) error {
	if column == 0 {
		return trace.BadParameter("column must be non-zero")
	}
	table, err := l.element(ctx, loc, anyTag)
	if err != nil {
		return trace.Wrap(err)
	}
	rows, err := table.FindElements(selenium.ByXPATH, tableRowsXPath)
	if err != nil {
		return trace.Wrap(err)
	}
	for _, row := range rows {
		cells, err := row.FindElements(selenium.ByXPATH, tableCellsXPath)
		if err != nil {
			return trace.Wrap(err)
		}
		c, ok := resolveIndex(column, len(cells))
		if !ok {
			continue
		}
		found, err := textContains(cells[c], expected)
		if err != nil {
			return trace.Wrap(err)
		}
		if found {
			return nil
		}
	}
	return trace.CompareFailed("Table '%v' column %v did not contain text '%v'.", loc, column, expected)
}

// TableRowShouldContain verifies that a cell of the row contains expected
func (l *Library) TableRowShouldContain(ctx context.Context, loc string, row int, expected string) error {
	if row == 0 {
		return trace.BadParameter("row must be non-zero")
	}
	table, err := l.element(ctx, loc, anyTag)
	if err != nil {
		return trace.Wrap(err)
	}
	rows, err := table.FindElements(selenium.ByXPATH, tableRowsXPath)
	if err != nil {
		return trace.Wrap(err)
	}
	if r, ok := resolveIndex(row, len(rows)); ok {
		found, err := anyContains(rows[r], tableCellsXPath, expected)
		if err != nil || found {
			return trace.Wrap(err)
		}
	}
	return trace.CompareFailed("Table '%v' row %v did not contain text '%v'.", loc, row, expected)
}

// TableHeaderShouldContain verifies that a header cell of the table contains expected
func (l *Library) TableHeaderShouldContain(ctx context.Context, loc, expected string) error {
	return l.tablePartShouldContain(ctx, loc, ".//th", "header", expected)
}

// TableFooterShouldContain verifies that a footer cell of the table contains expected
func (l *Library) TableFooterShouldContain(ctx context.Context, loc, expected string) error {
	return l.tablePartShouldContain(ctx, loc, ".//tfoot//td", "footer", expected)
}

// TableShouldContain verifies that any cell of the table contains expected
func (l *Library) TableShouldContain(ctx context.Context, loc, expected string) error {
	return l.tablePartShouldContain(ctx, loc, ".//th|.//td|.//caption", "", expected)
}

func (l *Library) tablePartShouldContain(ctx context.Context, loc, xpath, part, expected string) error {
	table, err := l.element(ctx, loc, anyTag)
	if err != nil {
		return trace.Wrap(err)
	}
	found, err := anyContains(table, xpath, expected)
	if err != nil {
		return trace.Wrap(err)
	}
	if !found {
		if part == "" {
			return trace.CompareFailed("Table '%v' did not contain text '%v'.", loc, expected)
		}
		return trace.CompareFailed("Table '%v' %v did not contain text '%v'.", loc, part, expected)
	}
	return nil
}

func anyContains(parent selenium.WebElement, xpath, expected string) (bool, error) {
	cells, err := parent.FindElements(selenium.ByXPATH, xpath)
	if err != nil {
		return false, trace.Wrap(err)
	}
	for _, cell := range cells {
		found, err := textContains(cell, expected)
		if err != nil || found {
			return found, trace.Wrap(err)
		}
	}
	return false, nil
}

func textContains(elem selenium.WebElement, expected string) (bool, error) {
	text, err := elem.Text()
	if err != nil {
		return false, trace.Wrap(err)
	}
	return contains(text, expected, false), nil
}
