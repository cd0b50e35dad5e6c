package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/lfmorais/acervo-digital/internal/handlers"
	"github.com/lfmorais/acervo-digital/internal/middleware"
	"github.com/lfmorais/acervo-digital/internal/services"
	"github.com/lfmorais/acervo-digital/internal/utils"
)

func NewRouter(
	sentences services.SentenceService,
	catalog services.CatalogService,
	maxUploadSize int64,
	logger *utils.Logger,
) http.Handler {
	r := mux.NewRouter()

	// Middlewares
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Recovery(logger))

	sentenceHandler := handlers.NewSentenceHandler(sentences, maxUploadSize, logger)
	catalogHandler := handlers.NewCatalogHandler(catalog, logger)

	api := r.PathPrefix("/api").Subrouter()

	// Health check
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods(http.MethodGet)

	// Sentenças
	api.HandleFunc("/sentencas", sentenceHandler.Ingest).Methods(http.MethodPost)
	api.HandleFunc("/sentencas", sentenceHandler.Search).Methods(http.MethodGet)
	api.HandleFunc("/sentencas/{id:[0-9]+}", sentenceHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/sentencas/{id:[0-9]+}/download", sentenceHandler.Download).Methods(http.MethodGet)

	// Catálogo
	api.HandleFunc("/categorias", catalogHandler.ListCategorias).Methods(http.MethodGet)
	api.HandleFunc("/categorias", catalogHandler.CreateCategoria).Methods(http.MethodPost)
	api.HandleFunc("/materias", catalogHandler.ListMaterias).Methods(http.MethodGet)
	api.HandleFunc("/materias", catalogHandler.CreateMateria).Methods(http.MethodPost)
	api.HandleFunc("/materias/buscar", catalogHandler.SearchMaterias).Methods(http.MethodGet)
	api.HandleFunc("/tipos-resultado", catalogHandler.ListTiposResultado).Methods(http.MethodGet)

	return r
}
