package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sent "github.com/revelaction/svograph/sentence"
	"github.com/revelaction/svograph/storage"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

type DocStore struct {
	pool *sqlitex.Pool
}

var _ storage.DocRepository = (*DocStore)(nil)

func NewDocStore(pool *sqlitex.Pool) *DocStore {
	return &DocStore{pool: pool}
}

func (h *DocStore) List(labelMatch string) ([]sent.Doc, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	query := "SELECT id, title, labels FROM docs ORDER BY id"
	var args []interface{}
	if labelMatch != "" {
		query = "SELECT id, title, labels FROM docs WHERE labels LIKE ? ORDER BY id"
		args = append(args, "%"+labelMatch+"%")
	}

	docs := []sent.Doc{}
	err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		Args: args,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			doc := sent.Doc{
				Id:    stmt.ColumnInt(0),
				Title: stmt.ColumnText(1),
			}
			labelsStr := stmt.ColumnText(2)
			if labelsStr != "" {
				doc.Labels = strings.Split(labelsStr, ",")
			}

			// LIKE also matches across the label separator
			if labelMatch != "" && !hasLabel(doc.Labels, labelMatch) {
				return nil
			}

			docs = append(docs, doc)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func hasLabel(labels []string, match string) bool {
	for _, l := range labels {
		if strings.Contains(l, match) {
			return true
		}
	}
	return false
}

func (h *DocStore) Read(id int) (sent.Doc, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return sent.Doc{}, err
	}
	defer h.pool.Put(conn)

	doc := sent.Doc{Id: id}
	found := false

	err = sqlitex.Execute(conn, "SELECT title, labels FROM docs WHERE id = ?", &sqlitex.ExecOptions{
		Args: []interface{}{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found = true
			doc.Title = stmt.ColumnText(0)
			if labels := stmt.ColumnText(1); labels != "" {
				doc.Labels = strings.Split(labels, ",")
			}
			return nil
		},
	})
	if err != nil {
		return sent.Doc{}, err
	}
	if !found {
		return sent.Doc{}, fmt.Errorf("doc %d: %w", id, storage.ErrNotFound)
	}

	err = sqlitex.Execute(conn, "SELECT data FROM sentences WHERE doc_id = ? ORDER BY sent_id", &sqlitex.ExecOptions{
		Args: []interface{}{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			s, err := decodeSentence(stmt.ColumnText(0))
			if err != nil {
				return err
			}
			doc.Sentences = append(doc.Sentences, s)
			return nil
		},
	})
	if err != nil {
		return sent.Doc{}, err
	}

	return doc, nil
}

func (h *DocStore) FindByText(norm string) (sent.Sentence, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return sent.Sentence{}, err
	}
	defer h.pool.Put(conn)

	var s sent.Sentence
	found := false
	err = sqlitex.Execute(conn, "SELECT data FROM sentences WHERE norm = ? ORDER BY rowid LIMIT 1", &sqlitex.ExecOptions{
		Args: []interface{}{norm},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			var err error
			s, err = decodeSentence(stmt.ColumnText(0))
			found = err == nil
			return err
		},
	})
	if err != nil {
		return sent.Sentence{}, err
	}

	if !found {
		return sent.Sentence{}, storage.ErrNotFound
	}

	return s, nil
}

func (h *DocStore) Walk(fn func(sent.Sentence) error) error {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	return sqlitex.Execute(conn, "SELECT data FROM sentences ORDER BY rowid", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			s, err := decodeSentence(stmt.ColumnText(0))
			if err != nil {
				return err
			}
			return fn(s)
		},
	})
}

func (h *DocStore) Write(doc sent.Doc) (id int, err error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return 0, err
	}
	defer h.pool.Put(conn)

	// Start Transaction
	defer sqlitex.Save(conn)(&err)

	labels := strings.Join(doc.Labels, ",")
	err = sqlitex.Execute(conn, "INSERT INTO docs (title, labels) VALUES (?, ?)", &sqlitex.ExecOptions{
		Args: []interface{}{doc.Title, labels},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to insert doc %s: %w", doc.Title, err)
	}
	id = int(conn.LastInsertRowID())

	for i, s := range doc.Sentences {
		s.Id = i
		s.DocId = id

		data, marshalErr := json.Marshal(s)
		if marshalErr != nil {
			return 0, marshalErr
		}

		err = sqlitex.Execute(conn, "INSERT INTO sentences (doc_id, sent_id, norm, data) VALUES (?, ?, ?, ?)", &sqlitex.ExecOptions{
			Args: []interface{}{id, i, sent.Normalize(s.SentenceText()), string(data)},
		})
		if err != nil {
			return 0, fmt.Errorf("failed to insert sentence: %w", err)
		}
	}

	return id, nil
}

func decodeSentence(data string) (sent.Sentence, error) {
	var s sent.Sentence
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return sent.Sentence{}, fmt.Errorf("decoding sentence: %w", err)
	}
	return s, nil
}
