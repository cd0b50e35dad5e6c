package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Starter reference data. Sentences store the result kind name as a
// plain string, so these rows are a convention for the UI dropdowns,
// not an enforced domain.
var (
	seedCategorias = []string{
		"Cível",
		"Consumidor",
		"Família",
		"Fazenda Pública",
		"Criminal",
	}

	seedTiposResultado = []string{
		"Procedente",
		"Parcialmente Procedente",
		"Improcedente",
		"Extinta sem Resolução do Mérito",
		"Acordo Homologado",
	}
)

// Seed inserts the starter categories and result kinds. Idempotent:
// rows already present are left untouched, so it is safe to run on
// every start, after RunMigrations.
func Seed(db *sqlx.DB) error {
	for _, nome := range seedCategorias {
		if _, err := db.Exec(`INSERT OR IGNORE INTO categorias (nome) VALUES ($1)`, nome); err != nil {
			return fmt.Errorf("failed to seed categoria %q: %w", nome, err)
		}
	}

	for _, nome := range seedTiposResultado {
		if _, err := db.Exec(`INSERT OR IGNORE INTO tipos_resultado (nome) VALUES ($1)`, nome); err != nil {
			return fmt.Errorf("failed to seed tipo de resultado %q: %w", nome, err)
		}
	}

	return nil
}
