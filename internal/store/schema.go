package store

import (
	"fmt"

	"github.com/jackc/pgx/v5"
)

const entryColumns = `media_id, path, checksum, source, record, prompt, prompt_hash, tags, fingerprint, extracted_at`

func schemaStatements(table pgx.Identifier) []string {
	name := table.Sanitize()
	base := table[len(table)-1]
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	media_id     uuid PRIMARY KEY,
	path         text NOT NULL,
	checksum     text NOT NULL,
	source       text NOT NULL,
	record       jsonb NOT NULL,
	prompt       text,
	prompt_hash  text,
	tags         text[] NOT NULL DEFAULT '{}',
	fingerprint  text NOT NULL,
	extracted_at timestamptz NOT NULL DEFAULT now()
)`, name),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (fingerprint)`,
			pgx.Identifier{base + "_fingerprint_idx"}.Sanitize(), name),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (checksum)`,
			pgx.Identifier{base + "_checksum_idx"}.Sanitize(), name),
	}
}

func upsertSQL(table pgx.Identifier) string {
	return fmt.Sprintf(`INSERT INTO %s (media_id, path, checksum, source, record, prompt, prompt_hash, tags, fingerprint, extracted_at)
VALUES ($1::uuid, $2, $3, $4, $5::jsonb, $6, $7, $8, $9, now())
ON CONFLICT (media_id) DO UPDATE SET
	path = EXCLUDED.path,
	checksum = EXCLUDED.checksum,
	source = EXCLUDED.source,
	record = EXCLUDED.record,
	prompt = EXCLUDED.prompt,
	prompt_hash = EXCLUDED.prompt_hash,
	tags = EXCLUDED.tags,
	fingerprint = EXCLUDED.fingerprint,
	extracted_at = EXCLUDED.extracted_at`, table.Sanitize())
}

func selectSQL(table pgx.Identifier) string {
	return fmt.Sprintf(`SELECT media_id::text, %s FROM %s WHERE media_id = $1::uuid`,
		columnsAfterID(), table.Sanitize())
}

func duplicatesSQL(table pgx.Identifier) string {
	name := table.Sanitize()
	return fmt.Sprintf(`SELECT media_id::text, %s FROM %s
WHERE fingerprint = (SELECT fingerprint FROM %s WHERE media_id = $1::uuid)
  AND media_id <> $1::uuid
ORDER BY path`, columnsAfterID(), name, name)
}

func columnsAfterID() string {
	return entryColumns[len("media_id, "):]
}
