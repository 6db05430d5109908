package app

import (
	"context"
	"time"

	"eqwip/internal/config"
	"eqwip/internal/database"
	"eqwip/internal/database/migration"
	dbpostgres "eqwip/internal/database/postgres"
	"eqwip/internal/delivery/http/handler"
	"eqwip/internal/delivery/http/middleware"
	"eqwip/internal/delivery/http/routes"
	"eqwip/internal/infrastructure/cache"
	"eqwip/internal/pkg/jwt"
	"eqwip/internal/repository"
	"eqwip/internal/usecase"
	useruc "eqwip/internal/usecase/user"
	"eqwip/internal/ws"

	"go.uber.org/zap"
)

type Container struct {
	Config   config.Config
	Logger   *zap.Logger
	DB       database.DB
	Cache    *cache.Redis
	Hub      *ws.Hub
	Registry *routes.Registry
}

func NewContainer(cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	runner := migration.Runner{Dir: "migrations", Logger: logger}
	if err := runner.Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, err
	}

	redisCache := cache.NewRedis(logger)
	hub := ws.NewHub(logger)

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

	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc)
	userUC := useruc.NewService(userRepo)
	jobRecUC := usecase.NewJobRecommendationUsecase(candidateRepo, jobRepo, logger)
	candRecUC := usecase.NewCandidateRecommendationUsecase(nil, candidateRepo, jobRepo, redisCache, ws.NewMatchNotifier(hub), logger)
	careerUC := usecase.NewCareerGoalUsecase(candidateRepo, redisCache, logger)

	registry := &routes.Registry{
		Health:                   handler.NewHealthHandler(db, redisCache),
		Auth:                     handler.NewAuthHandler(authUC),
		JobRecommendations:       handler.NewJobRecommendationHandler(jobRecUC),
		CandidateRecommendations: handler.NewCandidateRecommendationHandler(candRecUC),
		CareerGoals:              handler.NewCareerGoalHandler(careerUC),
		Users:                    handler.NewUserHandler(userUC),
		WS:                       ws.NewHandler(hub, logger),
		AuthMw:                   authMw,
	}

	return &Container{
		Config:   cfg,
		Logger:   logger,
		DB:       db,
		Cache:    redisCache,
		Hub:      hub,
		Registry: registry,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
