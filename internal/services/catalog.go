package services

import (
	"context"
	"strings"

	"github.com/lfmorais/acervo-digital/internal/models"
	"github.com/lfmorais/acervo-digital/internal/repository"
	"github.com/lfmorais/acervo-digital/internal/utils"
)

// Autocomplete never returns more than this many subjects, and queries
// under two characters return nothing rather than scanning the corpus.
const (
	maxSubjectResults = 10
	minQueryLength    = 2
)

type CatalogService interface {
	ListCategorias(ctx context.Context) ([]models.Categoria, error)
	CreateCategoria(ctx context.Context, nome string) (*models.Categoria, error)
	ListMaterias(ctx context.Context) ([]models.Materia, error)
	CreateMateria(ctx context.Context, nome string, categoriaID int64) (*models.Materia, error)
	SearchMaterias(ctx context.Context, query string) ([]models.Materia, error)
	ListTiposResultado(ctx context.Context) ([]models.TipoResultado, error)
}

type catalogService struct {
	repo   repository.Repository
	logger *utils.Logger
}

func NewCatalogService(repo repository.Repository, logger *utils.Logger) CatalogService {
	return &catalogService{repo: repo, logger: logger}
}

func (s *catalogService) ListCategorias(ctx context.Context) ([]models.Categoria, error) {
	categorias, err := s.repo.ListCategorias(ctx)
	if err != nil {
		s.logger.Error("Failed to list categories", "error", err)
		return nil, utils.NewStorageError("Erro ao consultar categorias")
	}
	if categorias == nil {
		categorias = []models.Categoria{}
	}
	return categorias, nil
}

func (s *catalogService) CreateCategoria(ctx context.Context, nome string) (*models.Categoria, error) {
	nome = strings.TrimSpace(nome)
	if nome == "" {
		return nil, utils.NewValidationError("Campos obrigatórios faltando: nome")
	}

	existing, err := s.repo.FindCategoriaByNome(ctx, nome)
	if err != nil {
		s.logger.Error("Failed to look up category", "error", err, "nome", nome)
		return nil, utils.NewStorageError("Erro ao consultar categorias")
	}
	if existing != nil {
		return nil, utils.NewValidationError("Categoria já existe")
	}

	categoria, err := s.repo.CreateCategoria(ctx, nome)
	if err != nil {
		s.logger.Error("Failed to create category", "error", err, "nome", nome)
		return nil, utils.NewStorageError("Erro ao criar categoria")
	}

	s.logger.Info("Category created", "id", categoria.ID, "nome", nome)
	return categoria, nil
}

func (s *catalogService) ListMaterias(ctx context.Context) ([]models.Materia, error) {
	materias, err := s.repo.ListMaterias(ctx)
	if err != nil {
		s.logger.Error("Failed to list subjects", "error", err)
		return nil, utils.NewStorageError("Erro ao consultar matérias")
	}
	if materias == nil {
		materias = []models.Materia{}
	}
	return materias, nil
}

func (s *catalogService) CreateMateria(ctx context.Context, nome string, categoriaID int64) (*models.Materia, error) {
	nome = strings.TrimSpace(nome)

	var missing []string
	if nome == "" {
		missing = append(missing, "nome")
	}
	if categoriaID == 0 {
		missing = append(missing, "categoria_id")
	}
	if len(missing) > 0 {
		return nil, utils.NewValidationError("Campos obrigatórios faltando: " + strings.Join(missing, ", "))
	}

	categoria, err := s.repo.GetCategoriaByID(ctx, categoriaID)
	if err != nil {
		s.logger.Error("Failed to look up category", "error", err, "categoria_id", categoriaID)
		return nil, utils.NewStorageError("Erro ao consultar categorias")
	}
	if categoria == nil {
		return nil, utils.NewValidationError("Categoria não encontrada")
	}

	existing, err := s.repo.FindMateriaByNome(ctx, nome)
	if err != nil {
		s.logger.Error("Failed to look up subject", "error", err, "nome", nome)
		return nil, utils.NewStorageError("Erro ao consultar matérias")
	}
	if existing != nil {
		return nil, utils.NewValidationError("Matéria já existe")
	}

	materia, err := s.repo.CreateMateria(ctx, nome, categoriaID)
	if err != nil {
		s.logger.Error("Failed to create subject", "error", err, "nome", nome)
		return nil, utils.NewStorageError("Erro ao criar matéria")
	}

	s.logger.Info("Subject created", "id", materia.ID, "nome", nome, "categoria_id", categoriaID)
	return materia, nil
}

// SearchMaterias is the data-entry autocomplete. A multi-word query
// unions the per-token substring matches, so "direito consumidor" also
// surfaces subjects matching either word alone; duplicates collapse
// and the cap still applies.
func (s *catalogService) SearchMaterias(ctx context.Context, query string) ([]models.Materia, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < minQueryLength {
		return []models.Materia{}, nil
	}

	tokens := strings.Fields(query)

	seen := make(map[int64]bool)
	results := make([]models.Materia, 0, maxSubjectResults)

	for _, token := range tokens {
		matches, err := s.repo.SearchMaterias(ctx, token, maxSubjectResults)
		if err != nil {
			s.logger.Error("Subject search failed", "error", err, "token", token)
			return nil, utils.NewStorageError("Erro ao buscar matérias")
		}

		for _, m := range matches {
			if seen[m.ID] {
				continue
			}
			seen[m.ID] = true
			results = append(results, m)
			if len(results) == maxSubjectResults {
				return results, nil
			}
		}
	}

	return results, nil
}

func (s *catalogService) ListTiposResultado(ctx context.Context) ([]models.TipoResultado, error) {
	tipos, err := s.repo.ListTiposResultado(ctx)
	if err != nil {
		s.logger.Error("Failed to list result kinds", "error", err)
		return nil, utils.NewStorageError("Erro ao consultar tipos de resultado")
	}
	if tipos == nil {
		tipos = []models.TipoResultado{}
	}
	return tipos, nil
}
