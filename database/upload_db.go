package database

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// UploadRef is the minimal (id, url) projection the prune sweep works on.
type UploadRef struct {
	UploadID uint
	URL      string
}

// GetUploadRefs returns the id/url pair of every stored upload, newest
// first, in a single read. Used by the prune sweep to snapshot the table.
func GetUploadRefs(db *sql.DB) ([]UploadRef, error) {
	queryBuilder := psql.Select("upload_id", "url").
		From("uploaded_images").
		OrderBy("upload_id DESC")

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL query for GetUploadRefs: %w", err)
	}

	rows, err := db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query upload refs: %w", err)
	}
	defer rows.Close()

	var refs []UploadRef
	for rows.Next() {
		var ref UploadRef
		if err := rows.Scan(&ref.UploadID, &ref.URL); err != nil {
			return nil, fmt.Errorf("failed to scan upload ref: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading upload refs: %w", err)
	}
	return refs, nil
}

// DeleteUploadsByID removes the given uploads in one batch statement.
// Ids that no longer exist are ignored; deletion is keyed on the immutable
// primary key, so rows re-uploaded under a new id are unaffected.
func DeleteUploadsByID(db *sql.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}

	queryBuilder := psql.Delete("uploaded_images").
		Where(sq.Eq{"upload_id": ids})

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build SQL query for DeleteUploadsByID: %w", err)
	}

	if _, err := db.Exec(sqlStr, args...); err != nil {
		return fmt.Errorf("failed to delete uploads: %w", err)
	}
	return nil
}
