package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lfmorais/acervo-digital/internal/services"
	"github.com/lfmorais/acervo-digital/internal/utils"
)

type CatalogHandler struct {
	service services.CatalogService
	logger  *utils.Logger
}

func NewCatalogHandler(service services.CatalogService, logger *utils.Logger) *CatalogHandler {
	return &CatalogHandler{service: service, logger: logger}
}

func (h *CatalogHandler) ListCategorias(w http.ResponseWriter, r *http.Request) {
	categorias, err := h.service.ListCategorias(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, categorias)
}

func (h *CatalogHandler) CreateCategoria(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Nome string `json:"nome"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, h.logger, utils.NewValidationError("Corpo da requisição inválido"))
		return
	}

	categoria, err := h.service.CreateCategoria(r.Context(), body.Nome)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, map[string]interface{}{
		"success": true,
		"id":      categoria.ID,
		"nome":    categoria.Nome,
	})
}

func (h *CatalogHandler) ListMaterias(w http.ResponseWriter, r *http.Request) {
	materias, err := h.service.ListMaterias(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, materias)
}

func (h *CatalogHandler) CreateMateria(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Nome        string `json:"nome"`
		CategoriaID int64  `json:"categoria_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, h.logger, utils.NewValidationError("Corpo da requisição inválido"))
		return
	}

	materia, err := h.service.CreateMateria(r.Context(), body.Nome, body.CategoriaID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, map[string]interface{}{
		"success":      true,
		"id":           materia.ID,
		"nome":         materia.Nome,
		"categoria_id": materia.CategoriaID,
	})
}

// SearchMaterias serves the autocomplete box on the data-entry form.
func (h *CatalogHandler) SearchMaterias(w http.ResponseWriter, r *http.Request) {
	materias, err := h.service.SearchMaterias(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, materias)
}

func (h *CatalogHandler) ListTiposResultado(w http.ResponseWriter, r *http.Request) {
	tipos, err := h.service.ListTiposResultado(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, tipos)
}
