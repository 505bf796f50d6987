package postgres

import (
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kailas-cloud/booksearch/internal/domain"
)

// CollectMaps drains rows into name-keyed maps so handlers can serialize
// result sets without knowing the column layout. Rows are always closed,
// including on decode failure. The result is never nil: an empty result
// set encodes as a JSON array, not null.
func CollectMaps(rows pgx.Rows) ([]domain.Row, error) {
	defer rows.Close()

	fields := rows.FieldDescriptions()
	out := make([]domain.Row, 0)

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("postgres: decode row: %w", err)
		}

		row := make(domain.Row, len(fields))
		for i, fd := range fields {
			row[fd.Name] = values[i]
		}
		out = append(out, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: read rows: %w", err)
	}
	return out, nil
}
