package repository

import (
	"context"
	"database/sql"
	"errors"

	"eqwip/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrJobNotFound = errors.New("job not found")

// JobFeatureInputs is the raw material the matching layer normalizes into a
// job feature set.
type JobFeatureInputs struct {
	JobID           uuid.UUID
	Title           string
	EmployerName    string
	Skills          []string
	ExperienceLevel string
	Location        string
	SalaryMin       *int
	SalaryMax       *int
	Industry        string
	IsPromoted      bool
}

type JobRepository interface {
	// FindFeatureInputs returns nil, nil when the job does not exist.
	FindFeatureInputs(ctx context.Context, jobID uuid.UUID) (*JobFeatureInputs, error)
	ListActiveJobs(ctx context.Context, excludeIDs []uuid.UUID, limit int) ([]JobFeatureInputs, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobFeatureColumns = `j.id, j.title, COALESCE(ep.company_name, ''), COALESCE(ep.industry, ''),
	COALESCE(j.experience_level, ''), COALESCE(j.location, ''), j.salary_min, j.salary_max, j.is_promoted`

func (r *PostgresJobRepository) FindFeatureInputs(ctx context.Context, jobID uuid.UUID) (*JobFeatureInputs, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+jobFeatureColumns+`
		 FROM jobs j
		 JOIN employer_profiles ep ON ep.id = j.employer_id
		 WHERE j.id = $1`,
		jobID,
	)

	in, err := scanJobFeatureInputs(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	skills, err := r.skillsByJobIDs(ctx, []uuid.UUID{in.JobID})
	if err != nil {
		return nil, err
	}
	in.Skills = skills[in.JobID]

	return &in, nil
}

func (r *PostgresJobRepository) ListActiveJobs(ctx context.Context, excludeIDs []uuid.UUID, limit int) ([]JobFeatureInputs, error) {
	if limit <= 0 {
		limit = 200
	}
	if excludeIDs == nil {
		excludeIDs = []uuid.UUID{}
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+jobFeatureColumns+`
		 FROM jobs j
		 JOIN employer_profiles ep ON ep.id = j.employer_id
		 WHERE j.is_active AND j.id <> ALL($1)
		 ORDER BY j.is_promoted DESC, j.created_at DESC
		 LIMIT $2`,
		excludeIDs, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]JobFeatureInputs, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		in, err := scanJobFeatureInputs(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
		ids = append(ids, in.JobID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	skills, err := r.skillsByJobIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Skills = skills[out[i].JobID]
	}

	return out, nil
}

func (r *PostgresJobRepository) skillsByJobIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]string, error) {
	out := make(map[uuid.UUID][]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT js.job_id, s.name
		 FROM job_skills js
		 JOIN skills s ON s.id = js.skill_id
		 WHERE js.job_id = ANY($1)
		 ORDER BY s.name ASC`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		out[id] = append(out[id], name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanJobFeatureInputs(row rowScanner) (JobFeatureInputs, error) {
	var in JobFeatureInputs
	var salaryMin, salaryMax sql.NullInt64
	if err := row.Scan(&in.JobID, &in.Title, &in.EmployerName, &in.Industry,
		&in.ExperienceLevel, &in.Location, &salaryMin, &salaryMax, &in.IsPromoted); err != nil {
		return JobFeatureInputs{}, err
	}
	in.SalaryMin = nullableInt(salaryMin)
	in.SalaryMax = nullableInt(salaryMax)
	return in, nil
}
