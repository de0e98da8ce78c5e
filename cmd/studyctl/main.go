// studyctl はデータベースの準備とアイテム取り込みのための管理コマンド
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"study_cards/internal/config"
	"study_cards/internal/importer"
	"study_cards/internal/repository"
)

type rootOptions struct {
	configPath string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "studyctl",
		Short:         "study_cards の管理コマンド",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "configs", "config.yaml のあるディレクトリ")

	root.AddCommand(newMigrateCmd(opts), newSeedCmd(opts), newImportCmd(opts))
	return root
}

// connect は設定を読み込みDBに接続する
func connect(opts *rootOptions) (*gorm.DB, *slog.Logger, func(), error) {
	if err := config.LoadConfig(opts.configPath); err != nil {
		return nil, nil, nil, err
	}
	logger := config.NewLogger(config.Cfg.Log)
	slog.SetDefault(logger)

	db, err := repository.NewDB(config.Cfg.Database.URL, repository.DBOptions{
		MaxOpenConns:  config.Cfg.Database.MaxOpenConns,
		MaxIdleConns:  config.Cfg.Database.MaxIdleConns,
		SlowThreshold: config.Cfg.Database.SlowThreshold,
	}, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	closeFn := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, logger, closeFn, nil
}

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "テーブルとユニークインデックスを作成する",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, logger, closeFn, err := connect(opts)
			if err != nil {
				return err
			}
			defer closeFn()

			if err := repository.Migrate(db); err != nil {
				return err
			}
			logger.Info("Migration finished")
			return nil
		},
	}
}

func newSeedCmd(opts *rootOptions) *cobra.Command {
	var parent string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "サンプルのカテゴリとアイテムを登録する",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, logger, closeFn, err := connect(opts)
			if err != nil {
				return err
			}
			defer closeFn()

			if err := repository.Migrate(db); err != nil {
				return err
			}
			im := importer.NewImporter(db, repository.NewGormItemRepository(), repository.NewGormCategoryRepository(), logger)
			result, err := im.Seed(cmd.Context(), parent)
			if err != nil {
				return err
			}
			return printResult(cmd, result)
		},
	}
	cmd.Flags().StringVar(&parent, "parent", "", "作成するカテゴリの親カテゴリコード")
	return cmd
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	var (
		file       string
		importOpts importer.Options
	)
	cmd := &cobra.Command{
		Use:   "import",
		Short: "xlsx ファイルからカタログアイテムを取り込む",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, logger, closeFn, err := connect(opts)
			if err != nil {
				return err
			}
			defer closeFn()

			im := importer.NewImporter(db, repository.NewGormItemRepository(), repository.NewGormCategoryRepository(), logger)
			result, err := im.ImportFile(cmd.Context(), file, importOpts)
			if err != nil {
				return err
			}
			return printResult(cmd, result)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "取り込む .xlsx ファイル")
	cmd.Flags().StringVar(&importOpts.Sheet, "sheet", "", "シート名 (省略時は先頭のシート)")
	cmd.Flags().StringVar(&importOpts.ParentCode, "parent", "", "作成するカテゴリの親カテゴリコード")
	cmd.Flags().BoolVar(&importOpts.SkipHeader, "skip-header", true, "1行目を見出しとして読み飛ばす")
	cmd.Flags().Float64Var(&importOpts.MinEase, "min-ease", 1.3, "これ未満のイーズファクターの行は取り込まない")
	cmd.Flags().Float64Var(&importOpts.MaxEase, "max-ease", 3.0, "これを超えるイーズファクターの行は取り込まない (0 で上限なし)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func printResult(cmd *cobra.Command, result *importer.Result) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("print result: %w", err)
	}
	return nil
}
