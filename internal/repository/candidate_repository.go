package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"eqwip/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrCandidateNotFound = errors.New("candidate profile not found")

type CandidateSkill struct {
	Name  string
	Level int
}

// CandidateFeatureInputs is the raw material the matching layer normalizes
// into a candidate feature set.
type CandidateFeatureInputs struct {
	CandidateID     uuid.UUID
	UserID          uuid.UUID
	Name            string
	Skills          []CandidateSkill
	ExperienceYears *int
	Location        string
	SalaryMin       *int
	SalaryMax       *int
}

// CandidateGoalInputs is what the career goal tracker reads and writes: the
// preference blob plus the current skill levels.
type CandidateGoalInputs struct {
	CandidateID uuid.UUID
	Preferences []byte
	Skills      []CandidateSkill
}

type CandidateRepository interface {
	// FindFeatureInputs returns nil, nil when the user has no candidate profile.
	FindFeatureInputs(ctx context.Context, userID uuid.UUID) (*CandidateFeatureInputs, error)
	RecentApplicationIndustries(ctx context.Context, candidateID uuid.UUID, limit int) ([]string, error)
	ExcludedJobIDs(ctx context.Context, userID, candidateID uuid.UUID) ([]uuid.UUID, error)
	ListMatchingSkillsOrExperience(ctx context.Context, skillNames []string, limit int) ([]CandidateFeatureInputs, error)
	FindGoalInputs(ctx context.Context, userID uuid.UUID) (CandidateGoalInputs, error)
	WritePreferences(ctx context.Context, candidateID uuid.UUID, preferences []byte) error
}

type PostgresCandidateRepository struct {
	db database.DB
}

func NewPostgresCandidateRepository(db database.DB) *PostgresCandidateRepository {
	return &PostgresCandidateRepository{db: db}
}

func (r *PostgresCandidateRepository) FindFeatureInputs(ctx context.Context, userID uuid.UUID) (*CandidateFeatureInputs, error) {
	row := r.db.QueryRow(ctx,
		`SELECT cp.id, cp.user_id, COALESCE(u.name, ''), cp.experience, COALESCE(cp.location, ''), cp.salary_min, cp.salary_max
		 FROM candidate_profiles cp
		 JOIN users u ON u.id = cp.user_id
		 WHERE cp.user_id = $1`,
		userID,
	)

	in, err := scanCandidateFeatureInputs(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	skills, err := r.skillsByCandidateIDs(ctx, []uuid.UUID{in.CandidateID})
	if err != nil {
		return nil, err
	}
	in.Skills = skills[in.CandidateID]

	return &in, nil
}

func (r *PostgresCandidateRepository) RecentApplicationIndustries(ctx context.Context, candidateID uuid.UUID, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.Query(ctx,
		`SELECT COALESCE(ep.industry, '')
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 JOIN employer_profiles ep ON ep.id = j.employer_id
		 WHERE a.candidate_id = $1
		 ORDER BY a.created_at DESC
		 LIMIT $2`,
		candidateID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var industry string
		if err := rows.Scan(&industry); err != nil {
			return nil, err
		}
		if industry != "" {
			out = append(out, industry)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCandidateRepository) ExcludedJobIDs(ctx context.Context, userID, candidateID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		`SELECT job_id FROM applications WHERE candidate_id = $1
		 UNION
		 SELECT job_id FROM saved_jobs WHERE user_id = $2`,
		candidateID, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCandidateRepository) ListMatchingSkillsOrExperience(ctx context.Context, skillNames []string, limit int) ([]CandidateFeatureInputs, error) {
	if limit <= 0 {
		limit = 50
	}

	lowered := make([]string, 0, len(skillNames))
	for _, n := range skillNames {
		n = strings.ToLower(strings.TrimSpace(n))
		if n != "" {
			lowered = append(lowered, n)
		}
	}

	rows, err := r.db.Query(ctx,
		`SELECT cp.id, cp.user_id, COALESCE(u.name, ''), cp.experience, COALESCE(cp.location, ''), cp.salary_min, cp.salary_max
		 FROM candidate_profiles cp
		 JOIN users u ON u.id = cp.user_id
		 WHERE cp.experience IS NOT NULL
		    OR EXISTS (
		        SELECT 1 FROM candidate_skills cs
		        JOIN skills s ON s.id = cs.skill_id
		        WHERE cs.candidate_id = cp.id AND lower(s.name) = ANY($1)
		    )
		 ORDER BY cp.created_at DESC
		 LIMIT $2`,
		lowered, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CandidateFeatureInputs, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		in, err := scanCandidateFeatureInputs(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
		ids = append(ids, in.CandidateID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	skills, err := r.skillsByCandidateIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Skills = skills[out[i].CandidateID]
	}

	return out, nil
}

func (r *PostgresCandidateRepository) FindGoalInputs(ctx context.Context, userID uuid.UUID) (CandidateGoalInputs, error) {
	row := r.db.QueryRow(ctx,
		`SELECT cp.id, cp.preferences FROM candidate_profiles cp WHERE cp.user_id = $1`,
		userID,
	)

	var in CandidateGoalInputs
	if err := row.Scan(&in.CandidateID, &in.Preferences); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return CandidateGoalInputs{}, ErrCandidateNotFound
		}
		return CandidateGoalInputs{}, err
	}

	skills, err := r.skillsByCandidateIDs(ctx, []uuid.UUID{in.CandidateID})
	if err != nil {
		return CandidateGoalInputs{}, err
	}
	in.Skills = skills[in.CandidateID]

	return in, nil
}

func (r *PostgresCandidateRepository) WritePreferences(ctx context.Context, candidateID uuid.UUID, preferences []byte) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE candidate_profiles SET preferences = $2, updated_at = now() WHERE id = $1`,
		candidateID, preferences,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCandidateNotFound
	}
	return nil
}

func (r *PostgresCandidateRepository) skillsByCandidateIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]CandidateSkill, error) {
	out := make(map[uuid.UUID][]CandidateSkill, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT cs.candidate_id, s.name, COALESCE(cs.level, 0)
		 FROM candidate_skills cs
		 JOIN skills s ON s.id = cs.skill_id
		 WHERE cs.candidate_id = ANY($1)
		 ORDER BY s.name ASC`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var cs CandidateSkill
		if err := rows.Scan(&id, &cs.Name, &cs.Level); err != nil {
			return nil, err
		}
		out[id] = append(out[id], cs)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCandidateFeatureInputs(row rowScanner) (CandidateFeatureInputs, error) {
	var in CandidateFeatureInputs
	var years, salaryMin, salaryMax sql.NullInt64
	if err := row.Scan(&in.CandidateID, &in.UserID, &in.Name, &years, &in.Location, &salaryMin, &salaryMax); err != nil {
		return CandidateFeatureInputs{}, err
	}
	in.ExperienceYears = nullableInt(years)
	in.SalaryMin = nullableInt(salaryMin)
	in.SalaryMax = nullableInt(salaryMax)
	return in, nil
}

func nullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
