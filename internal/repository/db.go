package repository

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	slogGorm "github.com/orandin/slog-gorm"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"study_cards/internal/model"
)

// DBOptions はコネクションプールとログの設定
type DBOptions struct {
	MaxOpenConns  int
	MaxIdleConns  int
	SlowThreshold time.Duration
}

// NewDB は PostgreSQL に接続し、slog 経由でSQLログを出す *gorm.DB を返す
func NewDB(databaseURL string, opts DBOptions, appLogger *slog.Logger) (*gorm.DB, error) {
	// APP_ENV=dev のときだけ全クエリを出す
	gormLogLevel := gormlogger.Warn
	if strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		gormLogLevel = gormlogger.Info
	}

	slowThreshold := opts.SlowThreshold
	if slowThreshold <= 0 {
		slowThreshold = 500 * time.Millisecond
	}
	gormLogger := slogGorm.New(
		slogGorm.WithHandler(appLogger.Handler()),
		slogGorm.WithTraceAll(),
		slogGorm.WithSlowThreshold(slowThreshold),
	).LogMode(gormLogLevel)

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: gormLogger,
		// 一意制約違反を gorm.ErrDuplicatedKey に変換させる
		TranslateError: true,
	})
	if err != nil {
		appLogger.Error("Failed to connect to database with GORM", slog.Any("error", err))
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		appLogger.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		return nil, err
	}
	if err = sqlDB.Ping(); err != nil {
		appLogger.Error("Error pinging database", slog.Any("error", err))
		sqlDB.Close()
		return nil, err
	}

	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	appLogger.Info("Database connection established with GORM")
	return db, nil
}

// Migrate はテーブルを作成・更新する。PostgreSQL と SQLite の両方で動く
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.Category{},
		&model.CatalogItem{},
		&model.PersonalItem{},
		&model.StudySession{},
		&model.ReviewRecord{},
		&model.ReviewLog{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	// ReviewLog と埋め込み型を共有しているため、タグではなくここで作成する
	err = db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS uq_review_records_user_item
		ON review_records (user_id, item_kind, item_id)`).Error
	if err != nil {
		return fmt.Errorf("create review record unique index: %w", err)
	}

	// 未終了のセッションはユーザーごとに1つ
	err = db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS uq_study_sessions_open_user
		ON study_sessions (user_id) WHERE ended_at IS NULL`).Error
	if err != nil {
		return fmt.Errorf("create open session unique index: %w", err)
	}
	return nil
}
