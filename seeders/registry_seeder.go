package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

func seedFieldDefinitions(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - seeding field_definitions...")

	query := `INSERT INTO field_definitions (field_key, field_label, field_type, category, is_active)
			  VALUES ($1, $2, $3, $4, TRUE)
			  ON CONFLICT (field_key) DO NOTHING;`

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, d := range fieldDefinitionsData {
		if _, err := tx.Exec(ctx, query, d.Key, d.Label, d.Type, d.Category); err != nil {
			log.Printf("failed to insert field definition %q: %v", d.Key, err)
			return err
		}
	}
	return tx.Commit(ctx)
}

func seedTemplates(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - seeding equipment_templates...")

	query := `INSERT INTO equipment_templates (name, display_name, fields_config, is_active)
			  VALUES ($1, $2, $3, TRUE)
			  ON CONFLICT (name) DO NOTHING;`

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, t := range templatesData {
		if _, err := tx.Exec(ctx, query, t.Name, t.DisplayName, t.FieldsConfig); err != nil {
			log.Printf("failed to insert template %q: %v", t.Name, err)
			return err
		}
	}
	return tx.Commit(ctx)
}
