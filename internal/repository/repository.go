package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lfmorais/acervo-digital/internal/models"
)

type Repository interface {
	// Categorias
	ListCategorias(ctx context.Context) ([]models.Categoria, error)
	FindCategoriaByNome(ctx context.Context, nome string) (*models.Categoria, error)
	GetCategoriaByID(ctx context.Context, id int64) (*models.Categoria, error)
	CreateCategoria(ctx context.Context, nome string) (*models.Categoria, error)

	// Materias
	ListMaterias(ctx context.Context) ([]models.Materia, error)
	GetMateriaByID(ctx context.Context, id int64) (*models.Materia, error)
	FindMateriaByNome(ctx context.Context, nome string) (*models.Materia, error)
	SearchMaterias(ctx context.Context, token string, limit int) ([]models.Materia, error)
	CreateMateria(ctx context.Context, nome string, categoriaID int64) (*models.Materia, error)

	// Tipos de resultado
	ListTiposResultado(ctx context.Context) ([]models.TipoResultado, error)

	// Sentencas
	CreateSentenca(ctx context.Context, s *models.Sentenca) error
	GetSentencaByID(ctx context.Context, id int64) (*models.Sentenca, error)
	GetSentencaByHash(ctx context.Context, hash string) (*models.Sentenca, error)
	SearchSentencas(ctx context.Context, q models.SearchQuery) ([]*models.Sentenca, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListCategorias(ctx context.Context) ([]models.Categoria, error) {
	var categorias []models.Categoria
	err := r.db.SelectContext(ctx, &categorias,
		`SELECT id, nome FROM categorias ORDER BY nome`)
	if err != nil {
		return nil, err
	}
	return categorias, nil
}

// FindCategoriaByNome matches the name case-insensitively. SQLite's
// LOWER() folds ASCII only, so the comparison happens here instead,
// over the full Unicode alphabet ("FAMÍLIA" matches "Família").
func (r *repository) FindCategoriaByNome(ctx context.Context, nome string) (*models.Categoria, error) {
	categorias, err := r.ListCategorias(ctx)
	if err != nil {
		return nil, err
	}
	for i := range categorias {
		if strings.EqualFold(categorias[i].Nome, nome) {
			return &categorias[i], nil
		}
	}
	return nil, nil
}

func (r *repository) GetCategoriaByID(ctx context.Context, id int64) (*models.Categoria, error) {
	var c models.Categoria
	err := r.db.GetContext(ctx, &c,
		`SELECT id, nome FROM categorias WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) CreateCategoria(ctx context.Context, nome string) (*models.Categoria, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO categorias (nome) VALUES ($1)`, nome)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.Categoria{ID: id, Nome: nome}, nil
}

func (r *repository) ListMaterias(ctx context.Context) ([]models.Materia, error) {
	var materias []models.Materia
	err := r.db.SelectContext(ctx, &materias, `
		SELECT m.id, m.nome, m.categoria_id, c.nome AS categoria_nome
		FROM materias m
		JOIN categorias c ON c.id = m.categoria_id
		ORDER BY m.nome`)
	if err != nil {
		return nil, err
	}
	return materias, nil
}

func (r *repository) GetMateriaByID(ctx context.Context, id int64) (*models.Materia, error) {
	var m models.Materia
	err := r.db.GetContext(ctx, &m, `
		SELECT m.id, m.nome, m.categoria_id, c.nome AS categoria_nome
		FROM materias m
		JOIN categorias c ON c.id = m.categoria_id
		WHERE m.id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindMateriaByNome matches the name case-insensitively in Go, same
// reasoning as FindCategoriaByNome.
func (r *repository) FindMateriaByNome(ctx context.Context, nome string) (*models.Materia, error) {
	materias, err := r.ListMaterias(ctx)
	if err != nil {
		return nil, err
	}
	for i := range materias {
		if strings.EqualFold(materias[i].Nome, nome) {
			return &materias[i], nil
		}
	}
	return nil, nil
}

// SearchMaterias returns subjects whose name contains the token,
// case-insensitively. The substring check runs in Go because SQLite's
// LOWER() leaves accented letters untouched, which would make "saúde"
// miss "SAÚDE". The subject table is autocomplete-sized, so scanning
// it is fine.
func (r *repository) SearchMaterias(ctx context.Context, token string, limit int) ([]models.Materia, error) {
	all, err := r.ListMaterias(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(token)
	materias := []models.Materia{}
	for _, m := range all {
		if !strings.Contains(strings.ToLower(m.Nome), needle) {
			continue
		}
		materias = append(materias, m)
		if len(materias) == limit {
			break
		}
	}
	return materias, nil
}

func (r *repository) CreateMateria(ctx context.Context, nome string, categoriaID int64) (*models.Materia, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO materias (nome, categoria_id) VALUES ($1, $2)`, nome, categoriaID)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.Materia{ID: id, Nome: nome, CategoriaID: categoriaID}, nil
}

func (r *repository) ListTiposResultado(ctx context.Context) ([]models.TipoResultado, error) {
	var tipos []models.TipoResultado
	err := r.db.SelectContext(ctx, &tipos,
		`SELECT id, nome FROM tipos_resultado ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return tipos, nil
}

// CreateSentenca persists the record in a single transaction and fills
// in the assigned id. Callers run duplicate detection beforehand; the
// store itself carries no uniqueness constraint on hash_arquivo.
func (r *repository) CreateSentenca(ctx context.Context, s *models.Sentenca) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO sentencas
			(numero_processo, data_sentenca, materia_id, resultado, foi_corrigida,
			 observacoes, conteudo, arquivo_nome, arquivo_path, hash_arquivo, criado_em)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		s.NumeroProcesso,
		s.DataSentenca,
		s.MateriaID,
		s.Resultado,
		s.FoiCorrigida,
		nullable(s.Observacoes),
		nullable(s.Conteudo),
		nullable(s.ArquivoNome),
		nullable(s.ArquivoPath),
		nullable(s.HashArquivo),
		s.CriadoEm.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.ID = id
	return nil
}

const sentencaColumns = `
	s.id, s.numero_processo, s.data_sentenca, s.materia_id, m.nome,
	m.categoria_id, c.nome, s.resultado, s.foi_corrigida, s.observacoes,
	s.conteudo, s.arquivo_nome, s.arquivo_path, s.hash_arquivo, s.criado_em`

const sentencaJoins = `
	FROM sentencas s
	JOIN materias m ON m.id = s.materia_id
	JOIN categorias c ON c.id = m.categoria_id`

func (r *repository) GetSentencaByID(ctx context.Context, id int64) (*models.Sentenca, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT`+sentencaColumns+sentencaJoins+` WHERE s.id = $1`, id)
	return scanSentencaRow(row)
}

func (r *repository) GetSentencaByHash(ctx context.Context, hash string) (*models.Sentenca, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT`+sentencaColumns+sentencaJoins+` WHERE s.hash_arquivo = $1 LIMIT 1`, hash)
	return scanSentencaRow(row)
}

// SearchSentencas applies the optional filters conjunctively. The free
// text matches as a case-insensitive substring of the process number,
// the subject name or the notes; results come back newest ruling first.
func (r *repository) SearchSentencas(ctx context.Context, q models.SearchQuery) ([]*models.Sentenca, error) {
	var (
		conds []string
		args  []interface{}
	)

	if q.Texto != "" {
		pattern := "%" + strings.ToLower(q.Texto) + "%"
		conds = append(conds, `(LOWER(s.numero_processo) LIKE ?
			OR LOWER(m.nome) LIKE ?
			OR LOWER(COALESCE(s.observacoes, '')) LIKE ?)`)
		args = append(args, pattern, pattern, pattern)
	}
	if q.CategoriaID != 0 {
		conds = append(conds, `m.categoria_id = ?`)
		args = append(args, q.CategoriaID)
	}
	if q.Resultado != "" {
		conds = append(conds, `s.resultado = ?`)
		args = append(args, q.Resultado)
	}

	query := `SELECT` + sentencaColumns + sentencaJoins
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY s.data_sentenca DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sentencas []*models.Sentenca
	for rows.Next() {
		s, err := scanSentenca(rows)
		if err != nil {
			return nil, err
		}
		sentencas = append(sentencas, s)
	}
	return sentencas, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSentenca(scanner rowScanner) (*models.Sentenca, error) {
	var (
		s           models.Sentenca
		observacoes sql.NullString
		conteudo    sql.NullString
		arquivoNome sql.NullString
		arquivoPath sql.NullString
		hashArquivo sql.NullString
		criadoEm    string
	)

	err := scanner.Scan(
		&s.ID,
		&s.NumeroProcesso,
		&s.DataSentenca,
		&s.MateriaID,
		&s.MateriaNome,
		&s.CategoriaID,
		&s.CategoriaNome,
		&s.Resultado,
		&s.FoiCorrigida,
		&observacoes,
		&conteudo,
		&arquivoNome,
		&arquivoPath,
		&hashArquivo,
		&criadoEm,
	)
	if err != nil {
		return nil, err
	}

	s.Observacoes = observacoes.String
	s.Conteudo = conteudo.String
	s.ArquivoNome = arquivoNome.String
	s.ArquivoPath = arquivoPath.String
	s.HashArquivo = hashArquivo.String

	s.CriadoEm, err = time.Parse(time.RFC3339, criadoEm)
	if err != nil {
		return nil, fmt.Errorf("failed to parse criado_em %q: %w", criadoEm, err)
	}

	return &s, nil
}

func scanSentencaRow(row *sql.Row) (*models.Sentenca, error) {
	s, err := scanSentenca(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return s, err
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
