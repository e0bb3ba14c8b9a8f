package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"ouvidoria-ativa/internal/domain"
)

type ManifestationRepository interface {
	Create(ctx context.Context, m *domain.Manifestation) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Manifestation, error)
	GetByProtocol(ctx context.Context, protocol string) (*domain.Manifestation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status) error
	UpdateResponse(ctx context.Context, id uuid.UUID, response, notes *string, status domain.Status) error
	MarkResponded(ctx context.Context, id uuid.UUID, response string) error
	SetInternalNotes(ctx context.Context, id uuid.UUID, notes string) error
	SetSatisfaction(ctx context.Context, id uuid.UUID, rating domain.Satisfaction) error
	List(ctx context.Context, filter domain.ManifestationFilter, params domain.PaginationParams) ([]domain.ManifestationListItem, int64, error)
	Departments(ctx context.Context) ([]string, error)

	ResolutionStats(ctx context.Context, since *time.Time) (domain.ResolutionStats, error)
	CountByCategory(ctx context.Context, since *time.Time) ([]domain.CategoryCount, error)
	CountByDepartment(ctx context.Context, since *time.Time, limit int) ([]domain.DepartmentCount, error)
	SatisfactionCounts(ctx context.Context, since *time.Time) ([]domain.SatisfactionCount, error)
	TimeSeries(ctx context.Context, since *time.Time, bucket string) ([]domain.TimeBucket, error)
}

type manifestationRepository struct {
	db *sqlx.DB
}

func NewManifestationRepository(db *sqlx.DB) ManifestationRepository {
	return &manifestationRepository{db: db}
}

func (r *manifestationRepository) Create(ctx context.Context, m *domain.Manifestation) error {
	query := `
		INSERT INTO manifestations (id, protocol, category, department, address,
			narrative, citizen_name, citizen_contact, status, created_by_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		m.ID, m.Protocol, m.Category, m.Department, m.Address,
		m.Narrative, m.CitizenName, m.CitizenContact, m.Status, m.CreatedByID,
	).Scan(&m.CreatedAt, &m.UpdatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return domain.ErrProtocolTaken
	}
	return err
}

func (r *manifestationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Manifestation, error) {
	var m domain.Manifestation
	query := `SELECT * FROM manifestations WHERE id = $1`

	err := r.db.GetContext(ctx, &m, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *manifestationRepository) GetByProtocol(ctx context.Context, protocol string) (*domain.Manifestation, error) {
	var m domain.Manifestation
	query := `SELECT * FROM manifestations WHERE protocol = $1`

	err := r.db.GetContext(ctx, &m, query, strings.ToUpper(strings.TrimSpace(protocol)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *manifestationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status) error {
	query := `UPDATE manifestations SET status = $2, updated_at = NOW() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *manifestationRepository) UpdateResponse(ctx context.Context, id uuid.UUID, response, notes *string, status domain.Status) error {
	query := `
		UPDATE manifestations
		SET official_response = COALESCE($2, official_response),
			internal_notes = COALESCE($3, internal_notes),
			status = $4,
			updated_at = NOW()
		WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, response, notes, status)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *manifestationRepository) MarkResponded(ctx context.Context, id uuid.UUID, response string) error {
	query := `
		UPDATE manifestations
		SET responded = TRUE, responded_at = NOW(), official_response = $2, updated_at = NOW()
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, response)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *manifestationRepository) SetInternalNotes(ctx context.Context, id uuid.UUID, notes string) error {
	query := `UPDATE manifestations SET internal_notes = $2, updated_at = NOW() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, notes)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *manifestationRepository) SetSatisfaction(ctx context.Context, id uuid.UUID, rating domain.Satisfaction) error {
	query := `UPDATE manifestations SET satisfaction = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, rating)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *manifestationRepository) List(ctx context.Context, filter domain.ManifestationFilter, params domain.PaginationParams) ([]domain.ManifestationListItem, int64, error) {
	params.Validate()

	conds := []string{"1=1"}
	var args []any

	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+escapeLike(search)+"%")
		n := strconv.Itoa(len(args))
		conds = append(conds, "(protocol ILIKE $"+n+" OR citizen_name ILIKE $"+n+" OR citizen_contact ILIKE $"+n+")")
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conds = append(conds, "category = $"+strconv.Itoa(len(args)))
	}
	if filter.Department != "" {
		args = append(args, filter.Department)
		conds = append(conds, "department = $"+strconv.Itoa(len(args)))
	}
	switch filter.Identity {
	case domain.IdentityAnonymous:
		conds = append(conds, "citizen_name IS NULL")
	case domain.IdentityIdentified:
		conds = append(conds, "citizen_name IS NOT NULL")
	}
	if since := filter.Period.StartDate(time.Now()); since != nil {
		args = append(args, *since)
		conds = append(conds, "created_at >= $"+strconv.Itoa(len(args)))
	}

	where := strings.Join(conds, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM manifestations WHERE ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	args = append(args, params.PageSize, params.Offset())
	query := `
		SELECT id, protocol, category, department, citizen_name, status, created_at
		FROM manifestations
		WHERE ` + where + `
		ORDER BY created_at DESC
		LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	var items []domain.ManifestationListItem
	err := r.db.SelectContext(ctx, &items, query, args...)
	return items, total, err
}

func (r *manifestationRepository) Departments(ctx context.Context) ([]string, error) {
	var departments []string
	query := `SELECT DISTINCT department FROM manifestations WHERE department <> '' ORDER BY department`
	err := r.db.SelectContext(ctx, &departments, query)
	return departments, err
}

func (r *manifestationRepository) ResolutionStats(ctx context.Context, since *time.Time) (domain.ResolutionStats, error) {
	var stats domain.ResolutionStats
	query := `
		SELECT COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'COMPLETED') AS completed,
			COALESCE(AVG(EXTRACT(EPOCH FROM updated_at - created_at) / 86400)
				FILTER (WHERE status = 'COMPLETED'), 0) AS avg_resolution_days
		FROM manifestations
		WHERE ($1::timestamptz IS NULL OR created_at >= $1)`

	err := r.db.GetContext(ctx, &stats, query, since)
	return stats, err
}

func (r *manifestationRepository) CountByCategory(ctx context.Context, since *time.Time) ([]domain.CategoryCount, error) {
	var counts []domain.CategoryCount
	query := `
		SELECT category, COUNT(*) AS count
		FROM manifestations
		WHERE ($1::timestamptz IS NULL OR created_at >= $1)
		GROUP BY category
		ORDER BY count DESC`

	err := r.db.SelectContext(ctx, &counts, query, since)
	return counts, err
}

func (r *manifestationRepository) CountByDepartment(ctx context.Context, since *time.Time, limit int) ([]domain.DepartmentCount, error) {
	if limit <= 0 {
		limit = 5
	}

	var counts []domain.DepartmentCount
	query := `
		SELECT department, COUNT(*) AS count
		FROM manifestations
		WHERE ($1::timestamptz IS NULL OR created_at >= $1)
		GROUP BY department
		ORDER BY count DESC
		LIMIT $2`

	err := r.db.SelectContext(ctx, &counts, query, since, limit)
	return counts, err
}

func (r *manifestationRepository) SatisfactionCounts(ctx context.Context, since *time.Time) ([]domain.SatisfactionCount, error) {
	var counts []domain.SatisfactionCount
	query := `
		SELECT satisfaction AS rating, COUNT(*) AS count
		FROM manifestations
		WHERE satisfaction IS NOT NULL
			AND status = 'COMPLETED'
			AND ($1::timestamptz IS NULL OR created_at >= $1)
		GROUP BY satisfaction`

	err := r.db.SelectContext(ctx, &counts, query, since)
	return counts, err
}

func (r *manifestationRepository) TimeSeries(ctx context.Context, since *time.Time, bucket string) ([]domain.TimeBucket, error) {
	format := "YYYY-MM"
	if bucket == "day" {
		format = "YYYY-MM-DD"
	}

	var series []domain.TimeBucket
	query := `
		SELECT to_char(date_trunc($2, created_at), $3) AS bucket, COUNT(*) AS count
		FROM manifestations
		WHERE ($1::timestamptz IS NULL OR created_at >= $1)
		GROUP BY 1
		ORDER BY 1`

	err := r.db.SelectContext(ctx, &series, query, since, bucket, format)
	return series, err
}

// escapeLike neutralizes LIKE metacharacters in a user-supplied search term
// so they match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
