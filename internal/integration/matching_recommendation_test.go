package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"eqwip/internal/config"
	"eqwip/internal/database"
	"eqwip/internal/database/migration"
	dbpostgres "eqwip/internal/database/postgres"
	"eqwip/internal/delivery/http/handler"
	"eqwip/internal/delivery/http/middleware"
	"eqwip/internal/delivery/http/routes"
	"eqwip/internal/pkg/jwt"
	"eqwip/internal/repository"
	"eqwip/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type jobRecommendationItem struct {
	JobID       uuid.UUID `json:"jobId"`
	Title       string    `json:"title"`
	CompanyName string    `json:"companyName"`
	Score       float64   `json:"score"`
	Reasons     []string  `json:"reasons"`
}

type candidateRecommendationItem struct {
	CandidateID uuid.UUID `json:"candidateId"`
	Name        string    `json:"name"`
	Score       float64   `json:"score"`
	Reasons     []string  `json:"reasons"`
}

func TestIntegration_RecommendationFlow(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	defer func() { _ = db.Close() }()

	runMigrations(t, ctx, db)

	seed := seedMarketplace(t, ctx, db)
	defer cleanupSeed(t, ctx, db, seed)

	app := newTestFiberApp(t, seed.cfg, db)

	candidateTok := loginAndGetJWT(t, app, "candidate@example.com", "password123")
	employerTok := loginAndGetJWT(t, app, "employer@example.com", "password123")

	recs := callJobRecommendations(t, app, candidateTok)
	if len(recs) == 0 {
		t.Fatalf("recommendations: expected non-empty array")
	}
	assertNoDuplicateJobs(t, recs)
	assertSortedByScoreDesc(t, recs)

	foundMatch := false
	for _, it := range recs {
		if it.JobID == seed.appliedJobID {
			t.Fatalf("recommendations: applied job must be excluded")
		}
		if it.JobID == seed.inactiveJobID {
			t.Fatalf("recommendations: inactive job must be excluded")
		}
		if it.JobID == seed.matchJobID {
			foundMatch = true
			if it.Score <= 0 || it.Score > 1 {
				t.Fatalf("recommendations: score out of range: %v", it.Score)
			}
		}
	}
	if !foundMatch {
		t.Fatalf("recommendations: expected the seeded matching job to appear")
	}

	candRecs := callCandidateRecommendations(t, app, employerTok, seed.matchJobID)
	if len(candRecs) == 0 {
		t.Fatalf("candidate recommendations: expected non-empty array")
	}
	foundCandidate := false
	for _, it := range candRecs {
		if it.CandidateID == seed.candidateID {
			foundCandidate = true
		}
	}
	if !foundCandidate {
		t.Fatalf("candidate recommendations: expected the seeded candidate to appear")
	}

	// candidate tokens must not reach the employer surface
	req := httptest.NewRequest("GET", "/api/v1/jobs/"+seed.matchJobID.String()+"/candidate-recommendations", nil)
	req.Header.Set("Authorization", "Bearer "+candidateTok)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("role check request error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("role check: expected 403, got %d", resp.StatusCode)
	}

	checkCareerGoalsRoundTrip(t, app, candidateTok)
}

func checkCareerGoalsRoundTrip(t *testing.T, app *fiber.App, tok string) {
	t.Helper()

	body := map[string]any{
		"goals": []map[string]any{{
			"id":             "g1",
			"title":          "Become a senior backend engineer",
			"targetLevel":    "SENIOR",
			"requiredSkills": []string{"Go", "PostgreSQL"},
			"milestones": []map[string]any{
				{"id": "m1", "title": "Ship a production service", "done": true},
				{"id": "m2", "title": "Mentor a junior", "done": false},
			},
		}},
	}
	b, _ := json.Marshal(body)

	req := httptest.NewRequest("PUT", "/api/v1/career/goals", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tok)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("save goals request error: %v", err)
	}
	defer resp.Body.Close()

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("save goals decode error: %v", err)
	}
	if sr.Status != 200 {
		t.Fatalf("save goals: expected 200, got %d (%s)", sr.Status, sr.Message)
	}

	req = httptest.NewRequest("GET", "/api/v1/career/goals", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("list goals request error: %v", err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("list goals decode error: %v", err)
	}
	if sr.Status != 200 {
		t.Fatalf("list goals: expected 200, got %d (%s)", sr.Status, sr.Message)
	}

	var goals []struct {
		ID       string `json:"id"`
		Progress int    `json:"progress"`
	}
	if err := json.Unmarshal(sr.Data, &goals); err != nil {
		t.Fatalf("list goals unmarshal error: %v", err)
	}
	if len(goals) != 1 || goals[0].ID != "g1" {
		t.Fatalf("list goals: expected the saved goal back, got %+v", goals)
	}
	// both required skills held at level >= 3, one of two milestones done
	if goals[0].Progress != 80 {
		t.Fatalf("list goals: expected progress 80, got %d", goals[0].Progress)
	}
}

func connectTestDB(t *testing.T, ctx context.Context) database.DB {
	t.Helper()

	host := stringsOrDefault(os.Getenv("EQWIP_TEST_DB_HOST"), os.Getenv("DB_HOST"))
	port := stringsOrDefault(os.Getenv("EQWIP_TEST_DB_PORT"), os.Getenv("DB_PORT"))
	name := stringsOrDefault(os.Getenv("EQWIP_TEST_DB_NAME"), os.Getenv("DB_NAME"))
	user := stringsOrDefault(os.Getenv("EQWIP_TEST_DB_USER"), os.Getenv("DB_USER"))
	pass := stringsOrDefault(os.Getenv("EQWIP_TEST_DB_PASSWORD"), os.Getenv("DB_PASSWORD"))
	ssl := stringsOrDefault(os.Getenv("EQWIP_TEST_DB_SSL_MODE"), os.Getenv("DB_SSL_MODE"))

	if host == "" || port == "" || name == "" || user == "" {
		t.Skip("missing test DB env vars: set EQWIP_TEST_DB_HOST/PORT/NAME/USER/PASSWORD (or DB_HOST/DB_PORT/DB_NAME/DB_USER/DB_PASSWORD)")
	}
	if ssl == "" {
		ssl = "disable"
	}

	dbcfg := config.DatabaseConfig{
		DBHost:     host,
		DBPort:     port,
		DBName:     name,
		DBUser:     user,
		DBPassword: pass,
		DBSSLMode:  ssl,
	}

	db, err := dbpostgres.Connect(ctx, dbcfg)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return db
}

func runMigrations(t *testing.T, ctx context.Context, db database.DB) {
	t.Helper()

	migDir := resolveMigrationsDir(t)
	r := migration.Runner{Dir: migDir}
	if err := r.Run(ctx, db.SQLDB()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
}

func resolveMigrationsDir(t *testing.T) string {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("resolve migrations dir: runtime.Caller failed")
	}

	root := filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
	migDir := filepath.Join(root, "migrations")

	if st, err := os.Stat(migDir); err != nil || !st.IsDir() {
		t.Fatalf("resolve migrations dir: not found or not a dir: %s", migDir)
	}
	files, _ := filepath.Glob(filepath.Join(migDir, "V*__*.sql"))
	if len(files) == 0 {
		t.Fatalf("resolve migrations dir: no migration files found in %s", migDir)
	}

	return migDir
}

type seededIDs struct {
	cfg config.Config

	candidateUserID uuid.UUID
	candidateID     uuid.UUID
	employerUserID  uuid.UUID
	employerID      uuid.UUID

	matchJobID    uuid.UUID
	appliedJobID  uuid.UUID
	inactiveJobID uuid.UUID

	skillIDs map[string]uuid.UUID
}

func seedMarketplace(t *testing.T, ctx context.Context, db database.DB) seededIDs {
	t.Helper()

	out := seededIDs{
		cfg: config.Config{
			App: config.AppConfig{AppName: "eqwip", Environment: "test", HTTPPort: "0"},
			JWT: config.JWTConfig{
				AccessSecret:     stringsOrDefault(os.Getenv("EQWIP_TEST_JWT_ACCESS_SECRET"), "test-access-secret"),
				RefreshSecret:    stringsOrDefault(os.Getenv("EQWIP_TEST_JWT_REFRESH_SECRET"), "test-refresh-secret"),
				AccessExpiresIn:  15 * time.Minute,
				RefreshExpiresIn: 24 * time.Hour,
			},
		},
		skillIDs: map[string]uuid.UUID{},
	}

	out.candidateUserID = ensureUser(t, ctx, db, "candidate@example.com", "password123", "Dana Candidate", "CANDIDATE")
	out.employerUserID = ensureUser(t, ctx, db, "employer@example.com", "password123", "Acme HR", "EMPLOYER")

	out.candidateID = ensureCandidateProfile(t, ctx, db, out.candidateUserID, 3, "Berlin")
	out.employerID = ensureEmployerProfile(t, ctx, db, out.employerUserID, "Acme", "FinTech", "Berlin")

	for _, s := range []string{"Go", "PostgreSQL", "React"} {
		out.skillIDs[s] = ensureSkill(t, ctx, db, s)
	}
	ensureCandidateSkill(t, ctx, db, out.candidateID, out.skillIDs["Go"], 4)
	ensureCandidateSkill(t, ctx, db, out.candidateID, out.skillIDs["PostgreSQL"], 3)

	out.matchJobID = ensureJob(t, ctx, db, out.employerID, "Backend Engineer (Go)", "Berlin", "MIDDLE", true, true)
	out.appliedJobID = ensureJob(t, ctx, db, out.employerID, "Backend Engineer (Applied)", "Berlin", "MIDDLE", true, false)
	out.inactiveJobID = ensureJob(t, ctx, db, out.employerID, "Backend Engineer (Closed)", "Berlin", "MIDDLE", false, false)

	for _, jobID := range []uuid.UUID{out.matchJobID, out.appliedJobID, out.inactiveJobID} {
		ensureJobSkill(t, ctx, db, jobID, out.skillIDs["Go"])
		ensureJobSkill(t, ctx, db, jobID, out.skillIDs["PostgreSQL"])
	}

	ensureApplication(t, ctx, db, out.candidateID, out.appliedJobID)

	return out
}

func cleanupSeed(t *testing.T, ctx context.Context, db database.DB, seed seededIDs) {
	t.Helper()

	_, _ = db.Exec(ctx, `DELETE FROM applications WHERE candidate_id = $1`, seed.candidateID)
	_, _ = db.Exec(ctx, `DELETE FROM jobs WHERE employer_id = $1`, seed.employerID)
	_, _ = db.Exec(ctx, `DELETE FROM users WHERE id = $1 OR id = $2`, seed.candidateUserID, seed.employerUserID)
	for _, id := range seed.skillIDs {
		_, _ = db.Exec(ctx, `DELETE FROM skills WHERE id = $1`, id)
	}
}

func newTestFiberApp(t *testing.T, cfg config.Config, db database.DB) *fiber.App {
	t.Helper()

	app := fiber.New(fiber.Config{})
	errMw := middleware.NewErrorMiddleware(nil)
	app.Use(errMw.Middleware())

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := repository.NewPostgresUserRepository(db)
	candidateRepo := repository.NewPostgresCandidateRepository(db)
	jobRepo := repository.NewPostgresJobRepository(db)

	registry := &routes.Registry{
		Auth:                     handler.NewAuthHandler(usecase.NewAuthUsecase(userRepo, jwtSvc)),
		JobRecommendations:       handler.NewJobRecommendationHandler(usecase.NewJobRecommendationUsecase(candidateRepo, jobRepo, nil)),
		CandidateRecommendations: handler.NewCandidateRecommendationHandler(usecase.NewCandidateRecommendationUsecase(nil, candidateRepo, jobRepo, nil, nil, nil)),
		CareerGoals:              handler.NewCareerGoalHandler(usecase.NewCareerGoalUsecase(candidateRepo, nil, nil)),
		AuthMw:                   authMw,
	}
	registry.Register(app)
	return app
}

func loginAndGetJWT(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()

	body := map[string]string{"email": email, "password": password}
	b, _ := json.Marshal(body)

	req := httptest.NewRequest("POST", "/api/v1/auth/login", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("login request error: %v", err)
	}
	defer resp.Body.Close()

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("login decode error: %v", err)
	}
	if sr.Status != 200 {
		t.Fatalf("login %s: expected status=200, got %d (message=%s)", email, sr.Status, sr.Message)
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal(sr.Data, &m); err != nil {
		t.Fatalf("login: data unmarshal error: %v", err)
	}
	var tok string
	if raw, ok := m["access_token"]; ok {
		_ = json.Unmarshal(raw, &tok)
	}
	if tok == "" {
		t.Fatalf("login: missing access_token")
	}
	return tok
}

func callJobRecommendations(t *testing.T, app *fiber.App, jwt string) []jobRecommendationItem {
	t.Helper()

	req := httptest.NewRequest("GET", "/api/v1/jobs/recommendations?limit=10", nil)
	req.Header.Set("Authorization", "Bearer "+jwt)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("recommendations request error: %v", err)
	}
	defer resp.Body.Close()

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("recommendations decode error: %v", err)
	}
	if sr.Status != 200 {
		t.Fatalf("recommendations: expected status=200, got %d (message=%s)", sr.Status, sr.Message)
	}

	var items []jobRecommendationItem
	if err := json.Unmarshal(sr.Data, &items); err != nil {
		t.Fatalf("recommendations: data unmarshal error: %v", err)
	}
	return items
}

func callCandidateRecommendations(t *testing.T, app *fiber.App, jwt string, jobID uuid.UUID) []candidateRecommendationItem {
	t.Helper()

	req := httptest.NewRequest("GET", "/api/v1/jobs/"+jobID.String()+"/candidate-recommendations?limit=10", nil)
	req.Header.Set("Authorization", "Bearer "+jwt)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("candidate recommendations request error: %v", err)
	}
	defer resp.Body.Close()

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("candidate recommendations decode error: %v", err)
	}
	if sr.Status != 200 {
		t.Fatalf("candidate recommendations: expected status=200, got %d (message=%s)", sr.Status, sr.Message)
	}

	var items []candidateRecommendationItem
	if err := json.Unmarshal(sr.Data, &items); err != nil {
		t.Fatalf("candidate recommendations: data unmarshal error: %v", err)
	}
	return items
}

func assertSortedByScoreDesc(t *testing.T, items []jobRecommendationItem) {
	t.Helper()

	for i := 1; i < len(items); i++ {
		if items[i].Score > items[i-1].Score {
			t.Fatalf("recommendations: expected score descending at idx=%d: prev=%v cur=%v", i, items[i-1].Score, items[i].Score)
		}
	}
}

func assertNoDuplicateJobs(t *testing.T, items []jobRecommendationItem) {
	t.Helper()

	seen := map[uuid.UUID]struct{}{}
	for i, it := range items {
		if it.JobID == uuid.Nil {
			t.Fatalf("recommendations: idx=%d has nil job id", i)
		}
		if _, ok := seen[it.JobID]; ok {
			t.Fatalf("recommendations: duplicate job id=%s", it.JobID)
		}
		seen[it.JobID] = struct{}{}
	}
}

func ensureUser(t *testing.T, ctx context.Context, db database.DB, email, password, name, role string) uuid.UUID {
	t.Helper()

	pwHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("seed user: bcrypt error: %v", err)
	}

	id := uuid.New()
	_, err = db.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, name, role) VALUES ($1,$2,$3,$4,$5)
		 ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash, name = EXCLUDED.name, role = EXCLUDED.role`,
		id, email, string(pwHash), name, role,
	)
	if err != nil {
		t.Fatalf("seed user insert: %v", err)
	}

	row := db.QueryRow(ctx, `SELECT id FROM users WHERE email = $1 LIMIT 1`, email)
	var got uuid.UUID
	if err := row.Scan(&got); err != nil {
		t.Fatalf("seed user select: %v", err)
	}
	return got
}

func ensureCandidateProfile(t *testing.T, ctx context.Context, db database.DB, userID uuid.UUID, experience int, location string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(ctx,
		`INSERT INTO candidate_profiles (id, user_id, experience, location) VALUES ($1,$2,$3,$4)
		 ON CONFLICT (user_id) DO UPDATE SET experience = EXCLUDED.experience, location = EXCLUDED.location`,
		id, userID, experience, location,
	)
	if err != nil {
		t.Fatalf("seed candidate profile: %v", err)
	}

	row := db.QueryRow(ctx, `SELECT id FROM candidate_profiles WHERE user_id = $1`, userID)
	var got uuid.UUID
	if err := row.Scan(&got); err != nil {
		t.Fatalf("seed candidate profile select: %v", err)
	}
	return got
}

func ensureEmployerProfile(t *testing.T, ctx context.Context, db database.DB, userID uuid.UUID, company, industry, location string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(ctx,
		`INSERT INTO employer_profiles (id, user_id, company_name, industry, location) VALUES ($1,$2,$3,$4,$5)
		 ON CONFLICT (user_id) DO UPDATE SET company_name = EXCLUDED.company_name, industry = EXCLUDED.industry`,
		id, userID, company, industry, location,
	)
	if err != nil {
		t.Fatalf("seed employer profile: %v", err)
	}

	row := db.QueryRow(ctx, `SELECT id FROM employer_profiles WHERE user_id = $1`, userID)
	var got uuid.UUID
	if err := row.Scan(&got); err != nil {
		t.Fatalf("seed employer profile select: %v", err)
	}
	return got
}

func ensureSkill(t *testing.T, ctx context.Context, db database.DB, name string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(ctx,
		`INSERT INTO skills (id, name) VALUES ($1,$2) ON CONFLICT (name) DO NOTHING`,
		id, name,
	)
	if err != nil {
		t.Fatalf("seed skill %s: %v", name, err)
	}

	row := db.QueryRow(ctx, `SELECT id FROM skills WHERE name = $1 LIMIT 1`, name)
	var got uuid.UUID
	if err := row.Scan(&got); err != nil {
		t.Fatalf("seed skill select %s: %v", name, err)
	}
	return got
}

func ensureCandidateSkill(t *testing.T, ctx context.Context, db database.DB, candidateID, skillID uuid.UUID, level int) {
	t.Helper()

	_, err := db.Exec(ctx,
		`INSERT INTO candidate_skills (candidate_id, skill_id, level) VALUES ($1,$2,$3)
		 ON CONFLICT (candidate_id, skill_id) DO UPDATE SET level = EXCLUDED.level`,
		candidateID, skillID, level,
	)
	if err != nil {
		t.Fatalf("seed candidate skill: %v", err)
	}
}

func ensureJob(t *testing.T, ctx context.Context, db database.DB, employerID uuid.UUID, title, location, level string, active, promoted bool) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(ctx,
		`INSERT INTO jobs (id, employer_id, title, location, experience_level, is_active, is_promoted)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		id, employerID, title, location, level, active, promoted,
	)
	if err != nil {
		t.Fatalf("seed job %s: %v", title, err)
	}
	return id
}

func ensureJobSkill(t *testing.T, ctx context.Context, db database.DB, jobID, skillID uuid.UUID) {
	t.Helper()

	_, err := db.Exec(ctx,
		`INSERT INTO job_skills (job_id, skill_id) VALUES ($1,$2) ON CONFLICT DO NOTHING`,
		jobID, skillID,
	)
	if err != nil {
		t.Fatalf("seed job skill: %v", err)
	}
}

func ensureApplication(t *testing.T, ctx context.Context, db database.DB, candidateID, jobID uuid.UUID) {
	t.Helper()

	_, err := db.Exec(ctx,
		`INSERT INTO applications (id, candidate_id, job_id) VALUES ($1,$2,$3)
		 ON CONFLICT (candidate_id, job_id) DO NOTHING`,
		uuid.New(), candidateID, jobID,
	)
	if err != nil {
		t.Fatalf("seed application: %v", err)
	}
}

func stringsOrDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
