package assignment

import (
	"strconv"
	"time"

	"github.com/spf13/cast"
)

// DecodeTable turns the raw query result into typed events. It fails with a
// SchemaError when a required column is absent and with a DataFormatError
// naming the column when a timestamp cannot be parsed.
func DecodeTable(t Table) ([]Event, error) {
	idx := make(map[string]int, len(RequiredColumns))
	for _, c := range RequiredColumns {
		i := t.index(c)
		if i < 0 {
			return nil, &SchemaError{Column: c}
		}
		idx[c] = i
	}
	idCol := t.index(ColumnPullRequestID)
	repoCol := t.index(ColumnRepoID)
	assigneeCol := t.index(ColumnAssignee)

	events := make([]Event, 0, len(t.Rows))
	for n, row := range t.Rows {
		created, err := requiredTime(row, idx[ColumnCreated], ColumnCreated, n)
		if err != nil {
			return nil, err
		}
		assignDate, err := requiredTime(row, idx[ColumnAssignDate], ColumnAssignDate, n)
		if err != nil {
			return nil, err
		}

		e := Event{
			Created:    created,
			AssignDate: assignDate,
			Action:     Action(cell(row, idx[ColumnAction])),
		}

		if raw := cell(row, idx[ColumnClosed]); raw != "" {
			closed, err := parseTime(raw)
			if err != nil {
				return nil, &DataFormatError{Column: ColumnClosed, Row: n, Value: raw, Err: err}
			}
			e.Closed = &closed
		}

		e.PullRequestID = cell(row, idCol)
		e.Assignee = cell(row, assigneeCol)
		if raw := cell(row, repoCol); raw != "" {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
				e.RepoID = id
			}
		}

		events = append(events, e)
	}
	return events, nil
}

func requiredTime(row []*string, i int, column string, n int) (time.Time, error) {
	raw := cell(row, i)
	ts, err := parseTime(raw)
	if err != nil {
		return time.Time{}, &DataFormatError{Column: column, Row: n, Value: raw, Err: err}
	}
	return ts, nil
}

// pgOffsetLayouts cover timestamptz text output, whose offset is written as
// a bare hour (+00, -05) that cast does not recognise.
var pgOffsetLayouts = []string{
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02T15:04:05.999999999Z07",
}

func parseTime(raw string) (time.Time, error) {
	ts, err := cast.ToTimeInDefaultLocationE(raw, time.UTC)
	if err == nil {
		return ts.UTC(), nil
	}
	for _, layout := range pgOffsetLayouts {
		if pts, perr := time.Parse(layout, raw); perr == nil {
			return pts.UTC(), nil
		}
	}
	return time.Time{}, err
}

func cell(row []*string, i int) string {
	if i < 0 || i >= len(row) || row[i] == nil {
		return ""
	}
	return *row[i]
}
