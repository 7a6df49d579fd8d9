package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Scaffold kinds accepted by CreateSQLMigration.
const (
	KindSchema = "schema"
	KindSeed   = "seed"
)

var nameSanitizeRe = regexp.MustCompile(`[^a-z0-9_]+`)

const schemaTemplate = `-- +goose Up
-- +goose StatementBegin
-- %[1]s
-- +goose StatementEnd

-- +goose Down
-- +goose StatementBegin
-- rollback %[1]s
-- +goose StatementEnd
`

// seedTemplate follows the column order of the products table.
const seedTemplate = `-- +goose Up
-- +goose StatementBegin
-- %[1]s
-- INSERT INTO products (id, name, category, price, image) VALUES
--     (<id>, '<name>', '<category>', <whole rubles>, '<image url>');
-- +goose StatementEnd

-- +goose Down
-- +goose StatementBegin
-- DELETE FROM products WHERE id IN (<id>);
-- +goose StatementEnd
`

// CreateSQLMigration writes <dir>/<YYYYMMDDHHMMSS>_<name>.sql. An empty dir
// means DefaultDir, the directory compiled into the binaries; an empty kind
// means KindSchema.
func CreateSQLMigration(dir, name, kind string) (string, error) {
	if strings.TrimSpace(dir) == "" {
		dir = DefaultDir
	}
	safe := sanitizeName(name)
	if safe == "" {
		return "", fmt.Errorf("name %q results in empty sanitized filename", name)
	}

	var body string
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", KindSchema:
		body = fmt.Sprintf(schemaTemplate, safe)
	case KindSeed:
		body = fmt.Sprintf(seedTemplate, safe)
	default:
		return "", fmt.Errorf("unknown migration kind %q", kind)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %q: %w", dir, err)
	}
	version := time.Now().UTC().Format("20060102150405")
	fullpath := filepath.Join(dir, fmt.Sprintf("%s_%s.sql", version, safe))
	if _, err := os.Stat(fullpath); err == nil {
		return "", fmt.Errorf("migration already exists: %s", fullpath)
	}
	if err := os.WriteFile(fullpath, []byte(body), 0o644); err != nil {
		return "", fmt.Errorf("write migration %q: %w", fullpath, err)
	}
	return fullpath, nil
}

func sanitizeName(name string) string {
	safe := strings.ToLower(strings.TrimSpace(name))
	safe = nameSanitizeRe.ReplaceAllString(safe, "_")
	return strings.Trim(safe, "_")
}
