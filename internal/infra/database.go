package infra

import (
	"fmt"

	"github.com/AyushManoj111/Engen/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies any idempotent SQL patches that GORM
// cannot express (partial indexes, extensions).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations creates the schema. Also used by integration tests against a
// throwaway container database.
func RunMigrations(db *gorm.DB) error {
	// gen_random_uuid() lives in pgcrypto on PostgreSQL < 13
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return fmt.Errorf("create extension pgcrypto: %w", err)
	}

	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Empresa{},
		&model.Funcionario{},
		&model.Cliente{},
		&model.Fecho{},
		&model.RequisicaoSenhas{},
		&model.Senha{},
		&model.RequisicaoSaldo{},
		&model.Movimento{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}

	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that GORM AutoMigrate cannot express.
// Each statement is guarded so re-running on an already-patched DB is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// Redemption looks up unused codes by exact match; a partial index
		// keeps that lookup cheap as redeemed senhas accumulate.
		{"partial index on unused senha codes", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_senhas_codigo_nao_usadas') THEN
    CREATE INDEX idx_senhas_codigo_nao_usadas ON senhas (codigo) WHERE usada = false;
  END IF;
END $$`},
		// The fecho sweep and every "abertos" aggregate filter on fecho_id IS NULL.
		{"partial index on open senha batches", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_requisicao_senhas_abertas') THEN
    CREATE INDEX idx_requisicao_senhas_abertas ON requisicao_senhas (empresa_id) WHERE fecho_id IS NULL;
  END IF;
END $$`},
		{"partial index on open saldo requisitions", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_requisicao_saldos_abertas') THEN
    CREATE INDEX idx_requisicao_saldos_abertas ON requisicao_saldos (empresa_id) WHERE fecho_id IS NULL;
  END IF;
END $$`},
		{"partial index on open movimentos", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_movimentos_abertos') THEN
    CREATE INDEX idx_movimentos_abertos ON movimentos (requisicao_saldo_id) WHERE fecho_id IS NULL;
  END IF;
END $$`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
