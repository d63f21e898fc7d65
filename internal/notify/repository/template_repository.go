package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// MySQLTemplateRepository reads the message fragment sets maintained through
// the dashboard's template editor. This core only ever reads them.
type MySQLTemplateRepository struct {
	db *sql.DB
}

func NewMySQLTemplateRepository(db *sql.DB) *MySQLTemplateRepository {
	return &MySQLTemplateRepository{db: db}
}

// GetAll returns every fragment grouped by category, ordered within each
// category by its editor position.
func (r *MySQLTemplateRepository) GetAll(ctx context.Context) (map[string][]string, error) {
	query := `
		SELECT category, fragment
		FROM message_templates
		ORDER BY category, position
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying message templates: %w", err)
	}
	defer rows.Close()

	templates := make(map[string][]string)
	for rows.Next() {
		var category, fragment string
		if err := rows.Scan(&category, &fragment); err != nil {
			return nil, fmt.Errorf("scanning message template: %w", err)
		}
		templates[category] = append(templates[category], fragment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating message templates: %w", err)
	}

	return templates, nil
}
