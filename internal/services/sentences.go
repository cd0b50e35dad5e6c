package services

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/lfmorais/acervo-digital/internal/extractor"
	"github.com/lfmorais/acervo-digital/internal/models"
	"github.com/lfmorais/acervo-digital/internal/repository"
	"github.com/lfmorais/acervo-digital/internal/storage"
	"github.com/lfmorais/acervo-digital/internal/utils"
)

type SentenceService interface {
	Ingest(ctx context.Context, req *models.IngestRequest) (int64, error)
	Search(ctx context.Context, q models.SearchQuery) ([]*models.SentencaSummary, error)
	Get(ctx context.Context, id int64) (*models.SentencaDetail, error)
	Download(ctx context.Context, id int64) (io.ReadCloser, string, error)
}

type sentenceService struct {
	repo   repository.Repository
	store  storage.FileStore
	logger *utils.Logger
}

func NewSentenceService(repo repository.Repository, store storage.FileStore, logger *utils.Logger) SentenceService {
	return &sentenceService{
		repo:   repo,
		store:  store,
		logger: logger,
	}
}

// Ingest runs the upload pipeline: validate, resolve the subject, save
// the file, extract text, hash, check for a duplicate, persist. The
// file write and the record insert are not transactionally linked; a
// duplicate abort after step three leaves an orphaned file behind,
// which is accepted.
func (s *sentenceService) Ingest(ctx context.Context, req *models.IngestRequest) (int64, error) {
	if err := validateIngest(req); err != nil {
		return 0, err
	}

	materia, err := s.resolveMateria(ctx, req)
	if err != nil {
		return 0, err
	}

	var (
		conteudo    string
		arquivoNome string
		arquivoPath string
		hashArquivo string
	)

	if len(req.Arquivo) > 0 {
		ext := strings.ToLower(filepath.Ext(req.ArquivoNome))
		if ext != ".pdf" && ext != ".docx" {
			return 0, utils.NewValidationError("Apenas arquivos PDF e DOCX são aceitos")
		}

		arquivoNome = storage.SanitizeFilename(req.ArquivoNome)

		arquivoPath, err = s.store.Save(ctx, req.ArquivoNome, req.Arquivo)
		if err != nil {
			s.logger.Error("Failed to save uploaded file", "error", err, "filename", arquivoNome)
			return 0, utils.NewStorageError("Erro ao salvar o arquivo")
		}

		conteudo = s.extractText(ext, req.Arquivo, arquivoNome)
		hashArquivo = utils.HashBytes(req.Arquivo)

		existing, err := s.repo.GetSentencaByHash(ctx, hashArquivo)
		if err != nil {
			s.logger.Error("Failed to check for duplicate", "error", err, "hash", hashArquivo)
			return 0, utils.NewStorageError("Erro ao consultar o acervo")
		}
		if existing != nil {
			s.logger.Info("Duplicate upload rejected",
				"hash", hashArquivo, "existing_id", existing.ID, "filename", arquivoNome)
			return 0, utils.NewDuplicateError("Documento já existe no sistema")
		}
	}

	sentenca := &models.Sentenca{
		NumeroProcesso: req.NumeroProcesso,
		DataSentenca:   req.Data,
		MateriaID:      materia.ID,
		Resultado:      req.Resultado,
		FoiCorrigida:   req.FoiCorrigida,
		Observacoes:    req.Observacoes,
		Conteudo:       conteudo,
		ArquivoNome:    arquivoNome,
		ArquivoPath:    arquivoPath,
		HashArquivo:    hashArquivo,
		CriadoEm:       time.Now().UTC(),
	}

	if err := s.repo.CreateSentenca(ctx, sentenca); err != nil {
		s.logger.Error("Failed to save sentence", "error", err, "processo", req.NumeroProcesso)
		return 0, utils.NewStorageError("Erro ao salvar a sentença")
	}

	s.logger.Info("Sentence ingested",
		"id", sentenca.ID,
		"processo", sentenca.NumeroProcesso,
		"materia_id", materia.ID,
		"has_file", arquivoNome != "",
		"content_length", len(conteudo))

	return sentenca.ID, nil
}

func validateIngest(req *models.IngestRequest) error {
	var missing []string
	if strings.TrimSpace(req.NumeroProcesso) == "" {
		missing = append(missing, "processo")
	}
	if strings.TrimSpace(req.Data) == "" {
		missing = append(missing, "data")
	}
	if strings.TrimSpace(req.Resultado) == "" {
		missing = append(missing, "resultado")
	}
	if req.MateriaID == 0 && strings.TrimSpace(req.MateriaNome) == "" {
		missing = append(missing, "materia")
	}
	if req.MateriaID == 0 && strings.TrimSpace(req.MateriaNome) != "" &&
		req.CategoriaID == 0 && strings.TrimSpace(req.CategoriaNome) == "" {
		missing = append(missing, "categoria")
	}
	if len(missing) > 0 {
		return utils.NewValidationError("Campos obrigatórios faltando: " + strings.Join(missing, ", "))
	}

	if _, err := time.Parse(models.ISODate, req.Data); err != nil {
		return utils.NewValidationError("Data inválida, use o formato AAAA-MM-DD")
	}

	return nil
}

// resolveMateria maps the request's subject reference to a row,
// creating the subject (and, when asked, its category) on demand. Name
// matching is case-insensitive. Not atomic with the sentence insert;
// two concurrent uploads naming the same new subject can both create
// it, a known race inherited from the design.
func (s *sentenceService) resolveMateria(ctx context.Context, req *models.IngestRequest) (*models.Materia, error) {
	if req.MateriaID != 0 {
		materia, err := s.repo.GetMateriaByID(ctx, req.MateriaID)
		if err != nil {
			s.logger.Error("Failed to look up subject", "error", err, "materia_id", req.MateriaID)
			return nil, utils.NewStorageError("Erro ao consultar matérias")
		}
		if materia == nil {
			return nil, utils.NewValidationError("Matéria não encontrada")
		}
		return materia, nil
	}

	nome := strings.TrimSpace(req.MateriaNome)

	materia, err := s.repo.FindMateriaByNome(ctx, nome)
	if err != nil {
		s.logger.Error("Failed to look up subject by name", "error", err, "nome", nome)
		return nil, utils.NewStorageError("Erro ao consultar matérias")
	}
	if materia != nil {
		return materia, nil
	}

	categoria, err := s.resolveCategoria(ctx, req)
	if err != nil {
		return nil, err
	}

	materia, err = s.repo.CreateMateria(ctx, nome, categoria.ID)
	if err != nil {
		s.logger.Error("Failed to create subject", "error", err, "nome", nome)
		return nil, utils.NewStorageError("Erro ao criar matéria")
	}

	s.logger.Info("Subject created during ingestion",
		"materia_id", materia.ID, "nome", nome, "categoria_id", categoria.ID)

	return materia, nil
}

func (s *sentenceService) resolveCategoria(ctx context.Context, req *models.IngestRequest) (*models.Categoria, error) {
	if req.CategoriaID != 0 {
		categoria, err := s.repo.GetCategoriaByID(ctx, req.CategoriaID)
		if err != nil {
			s.logger.Error("Failed to look up category", "error", err, "categoria_id", req.CategoriaID)
			return nil, utils.NewStorageError("Erro ao consultar categorias")
		}
		if categoria == nil {
			return nil, utils.NewValidationError("Categoria não encontrada")
		}
		return categoria, nil
	}

	nome := strings.TrimSpace(req.CategoriaNome)

	categoria, err := s.repo.FindCategoriaByNome(ctx, nome)
	if err != nil {
		s.logger.Error("Failed to look up category by name", "error", err, "nome", nome)
		return nil, utils.NewStorageError("Erro ao consultar categorias")
	}
	if categoria != nil {
		return categoria, nil
	}

	categoria, err = s.repo.CreateCategoria(ctx, nome)
	if err != nil {
		s.logger.Error("Failed to create category", "error", err, "nome", nome)
		return nil, utils.NewStorageError("Erro ao criar categoria")
	}

	return categoria, nil
}

// extractText is best-effort: a document the extractor cannot parse
// degrades to empty content and the sentence is stored anyway.
func (s *sentenceService) extractText(ext string, data []byte, filename string) string {
	var (
		text string
		err  error
	)

	switch ext {
	case ".pdf":
		text, err = extractor.ExtractPDF(data)
	case ".docx":
		text, err = extractor.ExtractDOCX(data)
	}

	if err != nil {
		s.logger.Warn("Text extraction failed, storing empty content",
			"error", err, "filename", filename)
		return ""
	}

	return text
}

func (s *sentenceService) Search(ctx context.Context, q models.SearchQuery) ([]*models.SentencaSummary, error) {
	sentencas, err := s.repo.SearchSentencas(ctx, q)
	if err != nil {
		s.logger.Error("Search failed", "error", err, "q", q.Texto)
		return nil, utils.NewStorageError("Erro ao buscar sentenças")
	}

	summaries := make([]*models.SentencaSummary, 0, len(sentencas))
	for _, sentenca := range sentencas {
		summaries = append(summaries, sentenca.ToSummary())
	}
	return summaries, nil
}

func (s *sentenceService) Get(ctx context.Context, id int64) (*models.SentencaDetail, error) {
	sentenca, err := s.repo.GetSentencaByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get sentence", "error", err, "id", id)
		return nil, utils.NewStorageError("Erro ao consultar a sentença")
	}
	if sentenca == nil {
		return nil, utils.NewNotFoundError("Sentença não encontrada")
	}
	return sentenca.ToDetail(), nil
}

// Download returns the stored file bytes and the name the attachment
// should carry. A record without a file, or one whose file has gone
// missing from disk, is a not-found.
func (s *sentenceService) Download(ctx context.Context, id int64) (io.ReadCloser, string, error) {
	sentenca, err := s.repo.GetSentencaByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get sentence", "error", err, "id", id)
		return nil, "", utils.NewStorageError("Erro ao consultar a sentença")
	}
	if sentenca == nil {
		return nil, "", utils.NewNotFoundError("Sentença não encontrada")
	}
	if sentenca.ArquivoPath == "" {
		return nil, "", utils.NewNotFoundError("Arquivo não encontrado")
	}

	reader, err := s.store.Open(ctx, sentenca.ArquivoPath)
	if err != nil {
		s.logger.Warn("Stored file missing", "error", err, "id", id, "path", sentenca.ArquivoPath)
		return nil, "", utils.NewNotFoundError("Arquivo não encontrado")
	}

	return reader, sentenca.ArquivoNome, nil
}
