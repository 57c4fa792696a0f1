package assignment

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	ColumnPullRequestID = "id"
	ColumnRepoID        = "repo_id"
	ColumnAssignee      = "assignee"
	ColumnCreated       = "created"
	ColumnClosed        = "closed"
	ColumnAssignDate    = "assign_date"
	ColumnAction        = "assignment_action"
)

// RequiredColumns must be present in every table handed to DecodeTable.
var RequiredColumns = []string{ColumnCreated, ColumnClosed, ColumnAssignDate, ColumnAction}

// Table is the raw result of the assignee query as stored in the cache. A nil
// cell is a SQL NULL.
type Table struct {
	Columns []string    `json:"columns"`
	Rows    [][]*string `json:"rows"`
}

func NewTable(columns ...string) Table {
	return Table{Columns: append([]string(nil), columns...)}
}

// Append adds a row. Empty strings are stored as NULL.
func (t *Table) Append(values ...string) {
	row := make([]*string, len(t.Columns))
	for i := 0; i < len(row) && i < len(values); i++ {
		if values[i] == "" {
			continue
		}
		v := values[i]
		row[i] = &v
	}
	t.Rows = append(t.Rows, row)
}

func (t Table) Len() int {
	return len(t.Rows)
}

func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

func (t Table) index(column string) int {
	for i, c := range t.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

// Concat stacks tables row-wise. Columns are unioned in first-seen order and
// cells missing from a table are NULL.
func Concat(tables ...Table) Table {
	var out Table
	for _, t := range tables {
		for _, c := range t.Columns {
			if out.index(c) < 0 {
				out.Columns = append(out.Columns, c)
			}
		}
	}
	for _, t := range tables {
		pos := make([]int, len(t.Columns))
		for i, c := range t.Columns {
			pos[i] = out.index(c)
		}
		for _, r := range t.Rows {
			row := make([]*string, len(out.Columns))
			for i, cell := range r {
				if i < len(pos) {
					row[pos[i]] = cell
				}
			}
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// CacheKey identifies one cached query result for one repository.
type CacheKey struct {
	Query  string
	RepoID int64
}

func (k CacheKey) String() string {
	return fmt.Sprintf("%s:%d", k.Query, k.RepoID)
}

// RepoSetKey renders a repository list in a stable order, used to name a
// multi-repo lookup in logs.
func RepoSetKey(query string, repos []int64) string {
	ids := append([]int64(nil), repos...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return query + ":" + strings.Join(parts, ",")
}
