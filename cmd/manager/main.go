package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/tendant/chi-demo/app"
	dbutils "github.com/tendant/db-utils/db"
	"github.com/tendant/simple-mall/pkg/auth"
	"github.com/tendant/simple-mall/pkg/captcha"
	"github.com/tendant/simple-mall/pkg/login"
	"github.com/tendant/simple-mall/pkg/session"
	"github.com/tendant/simple-mall/pkg/sysrole"
	"github.com/tendant/simple-mall/pkg/sysuser"
)

type MallDbConfig struct {
	Host     string `env:"MALL_PG_HOST" env-default:"localhost"`
	Port     uint16 `env:"MALL_PG_PORT" env-default:"5432"`
	Database string `env:"MALL_PG_DATABASE" env-default:"mall_db"`
	User     string `env:"MALL_PG_USER" env-default:"mall"`
	Password string `env:"MALL_PG_PASSWORD" env-default:"pwd"`
}

func (d MallDbConfig) toDbConfig() dbutils.DbConfig {
	return dbutils.DbConfig{
		Host:     d.Host,
		Port:     d.Port,
		Database: d.Database,
		User:     d.User,
		Password: d.Password,
	}
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD" env-default:""`
	Db       int    `env:"REDIS_DB" env-default:"0"`
}

type AuthConfig struct {
	// how long a fresh login grant lives before its first authenticated request
	LoginInitialTTL time.Duration `env:"LOGIN_INITIAL_TTL" env-default:"168h"`
	// idle window renewed on every authenticated request
	SessionSlidingTTL time.Duration `env:"SESSION_SLIDING_TTL" env-default:"30m"`
}

type Config struct {
	MallDbConfig MallDbConfig
	RedisConfig  RedisConfig
	AuthConfig   AuthConfig
	AppConfig    app.AppConfig
}

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file, relying on environment")
	}

	config := Config{}
	cleanenv.ReadEnv(&config)

	server := app.DefaultApp()

	app.RoutesHealthz(server.R)
	app.RoutesHealthzReady(server.R)

	dbConfig := config.MallDbConfig.toDbConfig()
	pool, err := dbutils.NewDbPool(context.Background(), dbConfig)
	if err != nil {
		slog.Error("Failed creating dbpool", "db", dbConfig.Database, "host", dbConfig.Host, "port", dbConfig.Port, "user", dbConfig.User)
		os.Exit(-1)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     config.RedisConfig.Addr,
		Password: config.RedisConfig.Password,
		DB:       config.RedisConfig.Db,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		slog.Error("Failed connecting to redis", "addr", config.RedisConfig.Addr, "err", err)
		os.Exit(-1)
	}

	userService := sysuser.NewUserService(sysuser.NewPostgresUserRepository(pool))
	roleService := sysrole.NewRoleService(sysrole.NewPostgresRoleRepository(pool))
	codes := captcha.NewService(redisClient)
	sessions := session.NewStore(redisClient)
	loginService := login.NewLoginService(userService, codes, sessions, config.AuthConfig.LoginInitialTTL)

	loginHandle := login.NewHandle(loginService, codes)
	sysUserHandle := sysuser.NewHandle(userService)
	sysRoleHandle := sysrole.NewHandle(roleService)

	authenticator := auth.Authenticator(sessions, config.AuthConfig.SessionSlidingTTL)

	server.R.Route("/admin/system", func(r chi.Router) {
		r.Route("/index", func(r chi.Router) {
			loginHandle.RegisterPublicRoutes(r)
			r.Group(func(r chi.Router) {
				r.Use(authenticator)
				loginHandle.RegisterProtectedRoutes(r)
			})
		})
		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			sysUserHandle.RegisterRoutes(r)
			sysRoleHandle.RegisterRoutes(r)
		})
	})

	server.Run()
}
