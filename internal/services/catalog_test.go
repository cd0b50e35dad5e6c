package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/lfmorais/acervo-digital/internal/utils"
)

func TestSearchMateriasQueryFloor(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	categoria, err := env.catalog.CreateCategoria(ctx, "Cível")
	if err != nil {
		t.Fatalf("CreateCategoria: %v", err)
	}
	if _, err := env.catalog.CreateMateria(ctx, "Arrendamento", categoria.ID); err != nil {
		t.Fatalf("CreateMateria: %v", err)
	}

	results, err := env.catalog.SearchMaterias(ctx, "a")
	if err != nil {
		t.Fatalf("SearchMaterias: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("single-character query returned %d results, want 0", len(results))
	}

	results, err = env.catalog.SearchMaterias(ctx, "  ")
	if err != nil {
		t.Fatalf("SearchMaterias: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("whitespace query returned %d results, want 0", len(results))
	}
}

func TestSearchMateriasCaseInsensitiveSubstring(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	categoria, err := env.catalog.CreateCategoria(ctx, "Cível")
	if err != nil {
		t.Fatalf("CreateCategoria: %v", err)
	}
	for _, nome := range []string{"Direito de Herança", "Cheque sem Fundo", "Alimentos"} {
		if _, err := env.catalog.CreateMateria(ctx, nome, categoria.ID); err != nil {
			t.Fatalf("CreateMateria: %v", err)
		}
	}

	results, err := env.catalog.SearchMaterias(ctx, "HE")
	if err != nil {
		t.Fatalf("SearchMaterias: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2 (Herança, Cheque)", len(results))
	}
}

func TestSearchMateriasFoldsAccentedLetters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	categoria, err := env.catalog.CreateCategoria(ctx, "Consumidor")
	if err != nil {
		t.Fatalf("CreateCategoria: %v", err)
	}
	if _, err := env.catalog.CreateMateria(ctx, "SAÚDE SUPLEMENTAR", categoria.ID); err != nil {
		t.Fatalf("CreateMateria: %v", err)
	}

	results, err := env.catalog.SearchMaterias(ctx, "saúde")
	if err != nil {
		t.Fatalf("SearchMaterias: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want accented uppercase subject", len(results))
	}
	if results[0].Nome != "SAÚDE SUPLEMENTAR" {
		t.Errorf("got %q, want stored subject", results[0].Nome)
	}
}

func TestSearchMateriasCappedAtTen(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	categoria, err := env.catalog.CreateCategoria(ctx, "Cível")
	if err != nil {
		t.Fatalf("CreateCategoria: %v", err)
	}
	for i := 0; i < 14; i++ {
		nome := fmt.Sprintf("Tema Repetitivo %02d", i)
		if _, err := env.catalog.CreateMateria(ctx, nome, categoria.ID); err != nil {
			t.Fatalf("CreateMateria: %v", err)
		}
	}

	results, err := env.catalog.SearchMaterias(ctx, "repetitivo")
	if err != nil {
		t.Fatalf("SearchMaterias: %v", err)
	}
	if len(results) != 10 {
		t.Errorf("got %d results, want cap of 10", len(results))
	}
}

func TestSearchMateriasMultiTokenUnion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	categoria, err := env.catalog.CreateCategoria(ctx, "Cível")
	if err != nil {
		t.Fatalf("CreateCategoria: %v", err)
	}
	for _, nome := range []string{"Registro Civil", "Plano de Saúde", "Usucapião"} {
		if _, err := env.catalog.CreateMateria(ctx, nome, categoria.ID); err != nil {
			t.Fatalf("CreateMateria: %v", err)
		}
	}

	results, err := env.catalog.SearchMaterias(ctx, "registro saúde")
	if err != nil {
		t.Fatalf("SearchMaterias: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want union of both tokens", len(results))
	}

	seen := map[string]bool{}
	for _, m := range results {
		seen[m.Nome] = true
	}
	if !seen["Registro Civil"] || !seen["Plano de Saúde"] {
		t.Errorf("union missing expected subjects: %v", seen)
	}
}

func TestSearchMateriasMultiTokenDeduplicates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	categoria, err := env.catalog.CreateCategoria(ctx, "Cível")
	if err != nil {
		t.Fatalf("CreateCategoria: %v", err)
	}
	if _, err := env.catalog.CreateMateria(ctx, "Plano de Saúde", categoria.ID); err != nil {
		t.Fatalf("CreateMateria: %v", err)
	}

	// Both tokens match the same subject
	results, err := env.catalog.SearchMaterias(ctx, "plano saúde")
	if err != nil {
		t.Fatalf("SearchMaterias: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("got %d results, want deduplicated 1", len(results))
	}
}

func TestCreateCategoriaRejectsDuplicateName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.catalog.CreateCategoria(ctx, "Consumidor"); err != nil {
		t.Fatalf("CreateCategoria: %v", err)
	}

	_, err := env.catalog.CreateCategoria(ctx, "consumidor")
	if !utils.IsValidation(err) {
		t.Errorf("expected ValidationError for duplicate category, got %v", err)
	}
}

func TestCreateMateriaRequiresExistingCategory(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.catalog.CreateMateria(context.Background(), "Qualquer", 999)
	if !utils.IsValidation(err) {
		t.Errorf("expected ValidationError for unknown category, got %v", err)
	}
}
