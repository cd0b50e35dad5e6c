package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/lfmorais/acervo-digital/internal/models"
	"github.com/lfmorais/acervo-digital/internal/services"
	"github.com/lfmorais/acervo-digital/internal/utils"
)

type SentenceHandler struct {
	service       services.SentenceService
	logger        *utils.Logger
	maxUploadSize int64
}

func NewSentenceHandler(service services.SentenceService, maxUploadSize int64, logger *utils.Logger) *SentenceHandler {
	return &SentenceHandler{
		service:       service,
		logger:        logger,
		maxUploadSize: maxUploadSize,
	}
}

// Ingest handles POST /api/sentencas. The size cap is enforced here at
// the transport layer; an oversized body never reaches the pipeline.
func (h *SentenceHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > h.maxUploadSize {
		respondError(w, h.logger, utils.NewValidationError("Arquivo excede o limite de 16MB"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		if strings.Contains(err.Error(), "request body too large") {
			respondError(w, h.logger, utils.NewValidationError("Arquivo excede o limite de 16MB"))
			return
		}
		respondError(w, h.logger, utils.NewValidationError("Formulário inválido"))
		return
	}

	req := &models.IngestRequest{
		NumeroProcesso: strings.TrimSpace(r.FormValue("processo")),
		Data:           strings.TrimSpace(r.FormValue("data")),
		MateriaNome:    r.FormValue("materia_nome"),
		CategoriaNome:  r.FormValue("categoria_nome"),
		Resultado:      strings.TrimSpace(r.FormValue("resultado")),
		Observacoes:    strings.TrimSpace(r.FormValue("observacoes")),
	}

	if raw := r.FormValue("materia_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(w, h.logger, utils.NewValidationError("materia_id inválido"))
			return
		}
		req.MateriaID = id
	}

	if raw := r.FormValue("categoria_id"); raw != "" && raw != "nova" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(w, h.logger, utils.NewValidationError("categoria_id inválido"))
			return
		}
		req.CategoriaID = id
	}

	if raw := r.FormValue("foi_corrigido"); raw != "" {
		corrigida, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(w, h.logger, utils.NewValidationError("foi_corrigido deve ser true ou false"))
			return
		}
		req.FoiCorrigida = corrigida
	}

	if file, header, err := r.FormFile("arquivo"); err == nil {
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			respondError(w, h.logger, utils.NewStorageError("Erro ao ler o arquivo"))
			return
		}
		req.Arquivo = data
		req.ArquivoNome = header.Filename
	}

	id, err := h.service.Ingest(r.Context(), req)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, models.IngestResponse{Success: true, ID: id})
}

// Search handles GET /api/sentencas. All three filters are optional
// and conjunctive.
func (h *SentenceHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := models.SearchQuery{
		Texto:     strings.TrimSpace(r.URL.Query().Get("q")),
		Resultado: strings.TrimSpace(r.URL.Query().Get("resultado")),
	}

	if raw := r.URL.Query().Get("categoria"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(w, h.logger, utils.NewValidationError("categoria inválida"))
			return
		}
		q.CategoriaID = id
	}

	summaries, err := h.service.Search(r.Context(), q)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, summaries)
}

func (h *SentenceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, h.logger, utils.NewNotFoundError("Sentença não encontrada"))
		return
	}

	detail, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, detail)
}

func (h *SentenceHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, h.logger, utils.NewNotFoundError("Sentença não encontrada"))
		return
	}

	reader, filename, err := h.service.Download(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Error("Failed to stream file", "error", err, "id", id)
	}
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

func respondJSON(w http.ResponseWriter, logger *utils.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode JSON response", "error", err)
	}
}

// respondError converts any error into the {"success":false,"error":…}
// failure body. Unknown error types never leak their message.
func respondError(w http.ResponseWriter, logger *utils.Logger, err error) {
	status := http.StatusInternalServerError
	message := "Erro interno do servidor"

	if appErr, ok := err.(*utils.AppError); ok {
		status = appErr.StatusCode
		message = appErr.Message
	}

	logger.Error("Request error", "status", status, "error", err.Error())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   message,
	})
}
