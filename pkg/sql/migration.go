package sql

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/klwxsrx/go-auth-session/pkg/log"
)

const (
	migrationLock  = "perform_migration_lock"
	querySeparator = ";\n"

	migrationTableDDL = `
		create table if not exists migration (
			id text primary key
		)
	`
)

type (
	MigrationSource struct {
		files fs.ReadDirFS
	}

	Migrator struct {
		db     TxClient
		logger log.Logger
	}
)

func FSMigrations(files fs.ReadDirFS) MigrationSource {
	return MigrationSource{files: files}
}

func NewMigrator(db TxClient, logger log.Logger) *Migrator {
	return &Migrator{db: db, logger: logger}
}

// Execute applies every not yet performed migration file, each one in its own transaction.
func (m *Migrator) Execute(ctx context.Context, sources ...MigrationSource) error {
	_, err := m.db.ExecContext(ctx, migrationTableDDL)
	if err != nil {
		return fmt.Errorf("create migration table: %w", err)
	}

	for _, source := range sources {
		fileNames, err := source.fileNames()
		if err != nil {
			return fmt.Errorf("get migration file names: %w", err)
		}

		for _, fileName := range fileNames {
			err = m.performMigration(ctx, source, fileName)
			if err != nil {
				return fmt.Errorf("migration %s: %w", fileName, err)
			}
		}
	}

	return nil
}

func (m *Migrator) performMigration(ctx context.Context, source MigrationSource, migrationID string) error {
	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("start tx: %w", err)
	}

	performed, err := m.processMigration(ctx, tx, source, migrationID)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	if performed {
		m.logger.WithField("migrationID", migrationID).Info(ctx, "migration executed successfully")
	}
	return nil
}

func (m *Migrator) processMigration(ctx context.Context, tx ClientTx, source MigrationSource, migrationID string) (bool, error) {
	err := lockTx(ctx, tx, migrationLock)
	if err != nil {
		return false, err
	}

	var alreadyPerformed bool
	err = tx.GetContext(ctx, &alreadyPerformed, `select exists(select 1 from migration where id = $1)`, migrationID)
	if err != nil {
		return false, fmt.Errorf("check migration record: %w", err)
	}
	if alreadyPerformed {
		return false, nil
	}

	content, err := fs.ReadFile(source.files, migrationID)
	if err != nil {
		return false, fmt.Errorf("read migration file: %w", err)
	}
	if strings.TrimSpace(string(content)) == "" {
		return false, errors.New("empty migration")
	}

	for _, query := range strings.Split(string(content), querySeparator) {
		if strings.TrimSpace(query) == "" {
			continue
		}

		_, err = tx.ExecContext(ctx, query)
		if err != nil {
			return false, err
		}
	}

	_, err = tx.ExecContext(ctx, `insert into migration values ($1)`, migrationID)
	if err != nil {
		return false, fmt.Errorf("create migration record: %w", err)
	}

	return true, nil
}

func (s MigrationSource) fileNames() ([]string, error) {
	entries, err := s.files.ReadDir(".")
	if err != nil {
		return nil, err
	}

	result := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		result = append(result, entry.Name())
	}
	sort.Strings(result)

	return result, nil
}
