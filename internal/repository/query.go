package repository

import (
	"fmt"
	"strings"

	"github.com/benx421/points-exchange/internal/models"
)

type rowScanner interface {
	Scan(dest ...any) error
}

// whereClause accumulates positional predicates for listing queries
type whereClause struct {
	conditions []string
	args       []any
}

func (w *whereClause) add(condition string, arg any) {
	w.args = append(w.args, arg)
	w.conditions = append(w.conditions, fmt.Sprintf(condition, len(w.args)))
}

func (w *whereClause) addRaw(condition string) {
	w.conditions = append(w.conditions, condition)
}

func (w *whereClause) String() string {
	if len(w.conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conditions, " AND ")
}

// paginate appends LIMIT and OFFSET placeholders and returns the full
// argument list
func (w *whereClause) paginate(page models.Page) (string, []any) {
	args := append([]any{}, w.args...)
	args = append(args, page.Limit(), page.Offset())
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args)), args
}
