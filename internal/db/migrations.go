package db

import (
	"cmp"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

var (
	migrationName   = regexp.MustCompile(`^(\d+)_[A-Za-z0-9_]+\.sql$`)
	addColumnClause = regexp.MustCompile(`(?i)^ALTER\s+TABLE\s+(\S+)\s+ADD\s+COLUMN\s+(\S+)`)
)

// schemaMigration is one row of the applied-migrations ledger.
type schemaMigration struct {
	Version   int       `gorm:"column:version;primaryKey;autoIncrement:false"`
	Name      string    `gorm:"column:name;not null"`
	Checksum  string    `gorm:"column:checksum;not null"`
	AppliedAt time.Time `gorm:"column:applied_at;not null"`
}

func (schemaMigration) TableName() string {
	return "schema_migrations"
}

type sqlMigration struct {
	version  int
	name     string
	checksum string
	body     string
}

// applyMigrations runs every *.sql file of source that is not yet recorded,
// in version order, one transaction per file. An applied file whose content
// changed is an error; migrations are forward-only.
func applyMigrations(database *gorm.DB, source fs.FS) error {
	if err := database.AutoMigrate(&schemaMigration{}); err != nil {
		return fmt.Errorf("prepare schema_migrations: %w", err)
	}

	pending, err := loadMigrations(source)
	if err != nil {
		return err
	}

	var ledger []schemaMigration
	if err := database.Find(&ledger).Error; err != nil {
		return fmt.Errorf("load applied migrations: %w", err)
	}
	applied := make(map[int]schemaMigration, len(ledger))
	for _, row := range ledger {
		applied[row.Version] = row
	}

	for _, migration := range pending {
		if row, ok := applied[migration.version]; ok {
			if row.Checksum != migration.checksum {
				return fmt.Errorf("migration %s was modified after it was applied", migration.name)
			}
			continue
		}
		if err := runMigration(database, migration); err != nil {
			return err
		}
	}
	return nil
}

func loadMigrations(source fs.FS) ([]sqlMigration, error) {
	names, err := fs.Glob(source, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}

	migrations := make([]sqlMigration, 0, len(names))
	byVersion := make(map[int]string, len(names))
	for _, name := range names {
		matches := migrationName.FindStringSubmatch(path.Base(name))
		if matches == nil {
			return nil, fmt.Errorf("migration %s: name must look like 0001_description.sql", name)
		}
		version, err := strconv.Atoi(matches[1])
		if err != nil {
			return nil, fmt.Errorf("migration %s: %w", name, err)
		}
		if other, dup := byVersion[version]; dup {
			return nil, fmt.Errorf("duplicate migration version %d in %s and %s", version, other, name)
		}
		byVersion[version] = name

		body, err := fs.ReadFile(source, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		sum := sha256.Sum256(body)
		migrations = append(migrations, sqlMigration{
			version:  version,
			name:     name,
			checksum: hex.EncodeToString(sum[:]),
			body:     string(body),
		})
	}

	slices.SortFunc(migrations, func(a, b sqlMigration) int {
		return cmp.Compare(a.version, b.version)
	})
	return migrations, nil
}

func runMigration(database *gorm.DB, migration sqlMigration) error {
	statements := splitSQLStatements(migration.body)
	if len(statements) == 0 {
		return fmt.Errorf("migration %s has no statements", migration.name)
	}

	return database.Transaction(func(tx *gorm.DB) error {
		for _, statement := range statements {
			if columnAlreadyAdded(tx, statement) {
				continue
			}
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("migration %s: %w", migration.name, err)
			}
		}
		return tx.Create(&schemaMigration{
			Version:   migration.version,
			Name:      migration.name,
			Checksum:  migration.checksum,
			AppliedAt: time.Now().UTC(),
		}).Error
	})
}

func splitSQLStatements(body string) []string {
	statements := make([]string, 0)
	for part := range strings.SplitSeq(body, ";") {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}

// SQLite has no ADD COLUMN IF NOT EXISTS.
func columnAlreadyAdded(database *gorm.DB, statement string) bool {
	matches := addColumnClause.FindStringSubmatch(statement)
	if matches == nil {
		return false
	}
	return tableColumnExists(database, unquoteIdentifier(matches[1]), unquoteIdentifier(matches[2]))
}

func tableColumnExists(database *gorm.DB, table string, column string) bool {
	return database.Migrator().HasColumn(table, column)
}

func unquoteIdentifier(identifier string) string {
	return strings.Trim(identifier, "\"`[]")
}
