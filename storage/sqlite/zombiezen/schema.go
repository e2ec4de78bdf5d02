package zombiezen

import (
	"context"
	_ "embed"
	"fmt"

	"zombiezen.com/go/sqlite/sqlitex"
)

// docsSchema holds the docs and sentences tables and the index on the
// normalized sentence text.
//
//go:embed sql/docs.sql
var docsSchema string

// CreateSchema creates the parsed-sentence tables if they do not exist.
func CreateSchema(pool *sqlitex.Pool) error {
	conn, err := pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer pool.Put(conn)

	if err := sqlitex.ExecuteScript(conn, docsSchema, nil); err != nil {
		return fmt.Errorf("failed to create the sentence schema: %w", err)
	}

	return nil
}
