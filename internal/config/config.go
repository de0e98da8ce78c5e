// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"study_cards/internal/service"
	"study_cards/internal/sm2"
)

type DatabaseConfig struct {
	URL           string        `mapstructure:"url"`
	MaxOpenConns  int           `mapstructure:"max_open_conns"`
	MaxIdleConns  int           `mapstructure:"max_idle_conns"`
	SlowThreshold time.Duration `mapstructure:"slow_threshold"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type AppConfig struct {
	ReviewLimit          int           `mapstructure:"review_limit"`
	RecommendationLimit  int           `mapstructure:"recommendation_limit"`
	AnswerRetryLimit     int           `mapstructure:"answer_retry_limit"`
	SessionIdleTimeout   time.Duration `mapstructure:"session_idle_timeout"`
	SessionSweepInterval time.Duration `mapstructure:"session_sweep_interval"`
}

// SchedulingConfig は SM-2 計算の設定
type SchedulingConfig struct {
	MinEase          float64 `mapstructure:"min_ease"`
	MaxEase          float64 `mapstructure:"max_ease"`
	FirstInterval    int     `mapstructure:"first_interval"`
	SecondInterval   int     `mapstructure:"second_interval"`
	MaxIntervalDays  int     `mapstructure:"max_interval_days"`
	CorrectQuality   int     `mapstructure:"correct_quality"`
	IncorrectQuality int     `mapstructure:"incorrect_quality"`
	MasteryThreshold int     `mapstructure:"mastery_threshold"`
}

// PriorityConfig はおすすめ順スコアの重みと閾値
type PriorityConfig struct {
	RepeatedMistakeScore     int     `mapstructure:"repeated_mistake_score"`
	OverdueScore             int     `mapstructure:"overdue_score"`
	RecentlyWrongScore       int     `mapstructure:"recently_wrong_score"`
	EaseScoreMax             int     `mapstructure:"ease_score_max"`
	EaseCeiling              float64 `mapstructure:"ease_ceiling"`
	RepeatedMistakeThreshold int     `mapstructure:"repeated_mistake_threshold"`
	OverdueDays              int     `mapstructure:"overdue_days"`
	RecentWrongLimit         int     `mapstructure:"recent_wrong_limit"`
}

type Config struct {
	Database   DatabaseConfig   `mapstructure:"database"`
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	CORS       CORSConfig       `mapstructure:"cors"`
	App        AppConfig        `mapstructure:"app"`
	Scheduling SchedulingConfig `mapstructure:"scheduling"`
	Priority   PriorityConfig   `mapstructure:"priority"`
}

var Cfg Config

// SM2Params は設定値を sm2.Params に変換する
func (c SchedulingConfig) SM2Params() sm2.Params {
	return sm2.Params{
		MinEase:          c.MinEase,
		MaxEase:          c.MaxEase,
		FirstInterval:    c.FirstInterval,
		SecondInterval:   c.SecondInterval,
		MaxIntervalDays:  c.MaxIntervalDays,
		CorrectQuality:   c.CorrectQuality,
		IncorrectQuality: c.IncorrectQuality,
	}
}

// Weights は設定値を service.PriorityWeights に変換する。MinEase はスケジューリング設定と共有する
func (c Config) Weights() service.PriorityWeights {
	return service.PriorityWeights{
		RepeatedMistake:          c.Priority.RepeatedMistakeScore,
		Overdue:                  c.Priority.OverdueScore,
		RecentlyWrong:            c.Priority.RecentlyWrongScore,
		EaseMax:                  c.Priority.EaseScoreMax,
		EaseCeiling:              c.Priority.EaseCeiling,
		MinEase:                  c.Scheduling.MinEase,
		RepeatedMistakeThreshold: c.Priority.RepeatedMistakeThreshold,
		OverdueDays:              c.Priority.OverdueDays,
		RecentWrongLimit:         c.Priority.RecentWrongLimit,
	}
}

// Validate は起動前に設定の整合性を確認する
func (c Config) Validate() error {
	if err := c.Scheduling.SM2Params().Validate(); err != nil {
		return fmt.Errorf("scheduling: %w", err)
	}
	if c.Scheduling.MasteryThreshold < 1 {
		return errors.New("scheduling: mastery_threshold must be >= 1")
	}
	if err := c.Weights().Validate(); err != nil {
		return fmt.Errorf("priority: %w", err)
	}
	if c.App.AnswerRetryLimit < 1 {
		return errors.New("app: answer_retry_limit must be >= 1")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	p := sm2.DefaultParams()
	w := service.DefaultPriorityWeights()

	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.slow_threshold", DefaultDBSlowThreshold)
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Content-Type", "X-User-ID"})
	v.SetDefault("cors.max_age", 300)

	v.SetDefault("app.review_limit", DefaultAppReviewLimit)
	v.SetDefault("app.recommendation_limit", DefaultRecommendationLimit)
	v.SetDefault("app.answer_retry_limit", DefaultAnswerRetryLimit)
	v.SetDefault("app.session_idle_timeout", DefaultSessionIdleTimeout)
	v.SetDefault("app.session_sweep_interval", DefaultSessionSweepInterval)

	v.SetDefault("scheduling.min_ease", p.MinEase)
	v.SetDefault("scheduling.max_ease", p.MaxEase)
	v.SetDefault("scheduling.first_interval", p.FirstInterval)
	v.SetDefault("scheduling.second_interval", p.SecondInterval)
	v.SetDefault("scheduling.max_interval_days", p.MaxIntervalDays)
	v.SetDefault("scheduling.correct_quality", p.CorrectQuality)
	v.SetDefault("scheduling.incorrect_quality", p.IncorrectQuality)
	v.SetDefault("scheduling.mastery_threshold", DefaultMasteryThreshold)

	v.SetDefault("priority.repeated_mistake_score", w.RepeatedMistake)
	v.SetDefault("priority.overdue_score", w.Overdue)
	v.SetDefault("priority.recently_wrong_score", w.RecentlyWrong)
	v.SetDefault("priority.ease_score_max", w.EaseMax)
	v.SetDefault("priority.ease_ceiling", w.EaseCeiling)
	v.SetDefault("priority.repeated_mistake_threshold", w.RepeatedMistakeThreshold)
	v.SetDefault("priority.overdue_days", w.OverdueDays)
	v.SetDefault("priority.recent_wrong_limit", w.RecentWrongLimit)
}

// Load は path 配下の config.yaml と環境変数 (APP_ 接頭辞) から設定を読み込む
func Load(path string) (Config, error) {
	var cfg Config

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.AddConfigPath(".")

	// 例: APP_DATABASE_URL → database.url
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()
	// DATABASE_URL だけは接頭辞なしでも受け付ける
	_ = v.BindEnv("database.url", "APP_DATABASE_URL", "DATABASE_URL")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("reading config file: %w", err)
		}
		log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("unmarshalling config: %w", err)
	}
	if cfg.Database.URL == "" {
		log.Println("Warning: Database URL is not set in config.")
	}
	return cfg, cfg.Validate()
}

// LoadConfig は .env を読み込んだ上で設定を Cfg に格納する
func LoadConfig(path string) error {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, relying on environment variables")
	}

	cfg, err := Load(path)
	if err != nil {
		log.Printf("Error loading config: %s\n", err)
		return err
	}
	Cfg = cfg

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Review Limit: %d", Cfg.App.ReviewLimit)
	return nil
}

var envKeyReplacer = strings.NewReplacer(".", "_")
