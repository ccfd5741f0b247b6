// Package psqlbuilder wraps squirrel with the PostgreSQL placeholder format.
package psqlbuilder

import (
	"strings"

	"github.com/Masterminds/squirrel"
)

var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Select начинает SELECT запрос
func Select(columns ...string) squirrel.SelectBuilder {
	return builder.Select(columns...)
}

// Insert начинает INSERT запрос
func Insert(into string) squirrel.InsertBuilder {
	return builder.Insert(into)
}

// Update начинает UPDATE запрос
func Update(table string) squirrel.UpdateBuilder {
	return builder.Update(table)
}

// Delete начинает DELETE запрос
func Delete(from string) squirrel.DeleteBuilder {
	return builder.Delete(from)
}

// UpsertSuffix строит суффикс ON CONFLICT (key) DO UPDATE для всех колонок кроме ключа
func UpsertSuffix(key string, columns []string) string {
	sets := make([]string, 0, len(columns))
	for _, c := range columns {
		if c == key {
			continue
		}
		sets = append(sets, c+" = EXCLUDED."+c)
	}
	if len(sets) == 0 {
		return "ON CONFLICT (" + key + ") DO NOTHING"
	}
	return "ON CONFLICT (" + key + ") DO UPDATE SET " + strings.Join(sets, ", ")
}
