package container

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/moviebazar/account-service/config"
	"github.com/moviebazar/account-service/internal/domain/repository"
	"github.com/moviebazar/account-service/internal/infrastructure/snapshot"
	"github.com/moviebazar/account-service/pkg/helpers"
)

// app-level container to share constructed components across packages.
// Router modules auto-wire from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client

	jwtManager *helpers.JWTManager

	userRepo     repository.UserRepository
	activityRepo repository.ActivityRepository

	saver *snapshot.Saver
)

func SetConfig(c *config.Config)   { cfg = c }
func GetConfig() *config.Config    { return cfg }
func SetLogger(l *logrus.Logger)   { logger = l }
func GetLogger() *logrus.Logger    { return logger }
func SetPGPool(p *pgxpool.Pool)    { pgPool = p }
func GetPGPool() *pgxpool.Pool     { return pgPool }
func SetRedis(r *redis.Client)     { redisClient = r }
func GetRedis() *redis.Client      { return redisClient }
func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager  { return jwtManager }

func SetUserRepo(r repository.UserRepository)         { userRepo = r }
func GetUserRepo() repository.UserRepository          { return userRepo }
func SetActivityRepo(r repository.ActivityRepository) { activityRepo = r }
func GetActivityRepo() repository.ActivityRepository  { return activityRepo }

func SetSaver(s *snapshot.Saver) { saver = s }
func GetSaver() *snapshot.Saver  { return saver }
