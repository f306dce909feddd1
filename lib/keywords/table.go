package keywords

import (
	"context"
	"fmt"
)

// GetTableCell returns the text of the cell at 1-based row and column.
// Negative indexes count from the end.
func (l *Library) GetTableCell(ctx context.Context, loc string, row, column int, loglevel string) (string, error) {
	return l.getString(ctx, "get_table_cell", "Cell text", fmt.Sprintf("%v at Row: %v, Col: %v", loc, row, column),
		func() (string, error) {
			var text string
			err := l.logSourceOnFailure(ctx, loglevel, func() (err error) {
				text, err = l.browser.GetTableCell(ctx, loc, row, column)
				return err
			})()
			return text, err
		})
}

// TableCellShouldContain verifies the cell at row and column contains expected
func (l *Library) TableCellShouldContain(ctx context.Context, loc string, row, column int, expected, loglevel string) error {
	return l.do(ctx, "table_cell_should_contain",
		fmt.Sprintf("Cell at row: %v and column %v contained %v", row, column, expected),
		fmt.Sprintf("%v at Row: %v, Col: %v", loc, row, column),
		l.logSourceOnFailure(ctx, loglevel, func() error {
			return l.browser.TableCellShouldContain(ctx, loc, row, column, expected)
		}))
}

// TableColumnShouldContain verifies a cell of the column contains expected
func (l *Library) TableColumnShouldContain(ctx context.Context, loc string, column int, expected, loglevel string) error {
	return l.do(ctx, "table_column_should_contain",
		fmt.Sprintf("Column %v contained %v", column, expected), fmt.Sprintf("%v Col: %v", loc, column),
		l.logSourceOnFailure(ctx, loglevel, func() error {
			return l.browser.TableColumnShouldContain(ctx, loc, column, expected)
		}))
}

// TableFooterShouldContain verifies a footer cell contains expected
func (l *Library) TableFooterShouldContain(ctx context.Context, loc, expected, loglevel string) error {
	return l.do(ctx, "table_footer_should_contain",
		fmt.Sprintf("Footer contained %v", expected), fmt.Sprintf("Footer: %v, Expected: %v", loc, expected),
		l.logSourceOnFailure(ctx, loglevel, func() error {
			return l.browser.TableFooterShouldContain(ctx, loc, expected)
		}))
}

// TableHeaderShouldContain verifies a header cell contains expected
func (l *Library) TableHeaderShouldContain(ctx context.Context, loc, expected, loglevel string) error {
	return l.do(ctx, "table_header_should_contain",
		fmt.Sprintf("Header contained %v", expected), fmt.Sprintf("Header: %v, Expected: %v", loc, expected),
		l.logSourceOnFailure(ctx, loglevel, func() error {
			return l.browser.TableHeaderShouldContain(ctx, loc, expected)
		}))
}

// TableRowShouldContain verifies a cell of the row contains expected
func (l *Library) TableRowShouldContain(ctx context.Context, loc string, row int, expected, loglevel string) error {
	return l.do(ctx, "table_row_should_contain",
		fmt.Sprintf("Row %v contained %v", row, expected), fmt.Sprintf("%v Row: %v", loc, row),
		l.logSourceOnFailure(ctx, loglevel, func() error {
			return l.browser.TableRowShouldContain(ctx, loc, row, expected)
		}))
}

// TableShouldContain verifies a cell of the table contains expected
func (l *Library) TableShouldContain(ctx context.Context, loc, expected, loglevel string) error {
	return l.do(ctx, "table_should_contain",
		fmt.Sprintf("Table contained %v", expected), fmt.Sprintf("Table: %v, Expected: %v", loc, expected),
		l.logSourceOnFailure(ctx, loglevel, func() error {
			return l.browser.TableShouldContain(ctx, loc, expected)
		}))
}
