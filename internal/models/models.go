package models

import (
	"strings"
	"time"
)

const (
	// ISODate is the wire format accepted for sentence dates.
	ISODate = "2006-01-02"
	// DisplayDate is the Brazilian format used in responses.
	DisplayDate     = "02/01/2006"
	DisplayDateTime = "02/01/2006 15:04"

	// Summary content is cut to this many runes.
	summaryContentLen = 200
)

type Categoria struct {
	ID   int64  `json:"id" db:"id"`
	Nome string `json:"nome" db:"nome"`
}

type Materia struct {
	ID          int64  `json:"id" db:"id"`
	Nome        string `json:"nome" db:"nome"`
	CategoriaID int64  `json:"categoria_id" db:"categoria_id"`
	// Categoria name, filled on joined reads.
	CategoriaNome string `json:"categoria_nome,omitempty" db:"categoria_nome"`
}

type TipoResultado struct {
	ID   int64  `json:"id" db:"id"`
	Nome string `json:"nome" db:"nome"`
}

// Sentenca is an ingested court ruling record. Rows are immutable once
// created; there are no update or delete paths.
type Sentenca struct {
	ID             int64
	NumeroProcesso string
	// DataSentenca holds the ISO date (lexicographic order matches
	// chronological order, which the search ordering relies on).
	DataSentenca  string
	MateriaID     int64
	MateriaNome   string
	CategoriaID   int64
	CategoriaNome string
	Resultado     string
	FoiCorrigida  bool
	Observacoes   string
	Conteudo      string
	ArquivoNome   string
	ArquivoPath   string
	HashArquivo   string
	CriadoEm      time.Time
}

// SentencaDetail is the full JSON view served by GET /api/sentencas/{id}.
type SentencaDetail struct {
	ID             int64  `json:"id"`
	NumeroProcesso string `json:"numero_processo"`
	DataSentenca   string `json:"data_sentenca"`
	Materia        string `json:"materia"`
	MateriaID      int64  `json:"materia_id"`
	Categoria      string `json:"categoria"`
	CategoriaID    int64  `json:"categoria_id"`
	Resultado      string `json:"resultado"`
	FoiCorrigida   bool   `json:"foi_corrigida"`
	Observacoes    string `json:"observacoes,omitempty"`
	Conteudo       string `json:"conteudo"`
	ArquivoNome    string `json:"arquivo_nome,omitempty"`
	CriadoEm       string `json:"criado_em"`
}

// SentencaSummary is the truncated JSON view returned by search.
type SentencaSummary struct {
	ID             int64  `json:"id"`
	NumeroProcesso string `json:"numero_processo"`
	DataSentenca   string `json:"data_sentenca"`
	Materia        string `json:"materia"`
	Categoria      string `json:"categoria"`
	Resultado      string `json:"resultado"`
	FoiCorrigida   bool   `json:"foi_corrigida"`
	Conteudo       string `json:"conteudo"`
	ArquivoNome    string `json:"arquivo_nome,omitempty"`
	CriadoEm       string `json:"criado_em"`
}

func (s *Sentenca) ToDetail() *SentencaDetail {
	return &SentencaDetail{
		ID:             s.ID,
		NumeroProcesso: s.NumeroProcesso,
		DataSentenca:   formatISODate(s.DataSentenca),
		Materia:        s.MateriaNome,
		MateriaID:      s.MateriaID,
		Categoria:      s.CategoriaNome,
		CategoriaID:    s.CategoriaID,
		Resultado:      s.Resultado,
		FoiCorrigida:   s.FoiCorrigida,
		Observacoes:    s.Observacoes,
		Conteudo:       s.Conteudo,
		ArquivoNome:    s.ArquivoNome,
		CriadoEm:       s.CriadoEm.Format(DisplayDateTime),
	}
}

func (s *Sentenca) ToSummary() *SentencaSummary {
	return &SentencaSummary{
		ID:             s.ID,
		NumeroProcesso: s.NumeroProcesso,
		DataSentenca:   formatISODate(s.DataSentenca),
		Materia:        s.MateriaNome,
		Categoria:      s.CategoriaNome,
		Resultado:      s.Resultado,
		FoiCorrigida:   s.FoiCorrigida,
		Conteudo:       truncateContent(s.Conteudo),
		ArquivoNome:    s.ArquivoNome,
		CriadoEm:       s.CriadoEm.Format(DisplayDateTime),
	}
}

func formatISODate(iso string) string {
	t, err := time.Parse(ISODate, iso)
	if err != nil {
		return iso
	}
	return t.Format(DisplayDate)
}

// truncateContent cuts the stored text to a short prefix for search
// results. Non-empty content always carries the trailing ellipsis
// marker, truncated or not.
func truncateContent(content string) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}
	runes := []rune(content)
	if len(runes) > summaryContentLen {
		runes = runes[:summaryContentLen]
	}
	return string(runes) + "..."
}

// IngestRequest is the validated form of POST /api/sentencas. The
// handler parses the multipart body into this before the coordinator
// runs; the zero values mark absent optional fields.
type IngestRequest struct {
	NumeroProcesso string
	Data           string // ISO date
	MateriaID      int64  // 0 when the subject comes as raw text
	MateriaNome    string
	CategoriaID    int64 // 0 when a new category name is given
	CategoriaNome  string
	Resultado      string
	FoiCorrigida   bool
	Observacoes    string
	ArquivoNome    string
	Arquivo        []byte // nil when no file was attached
}

type IngestResponse struct {
	Success bool  `json:"success"`
	ID      int64 `json:"id"`
}

type SearchQuery struct {
	Texto       string
	CategoriaID int64 // 0 = no category filter
	Resultado   string
}
