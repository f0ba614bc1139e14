package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"noteful/internal/database/dto"
	"noteful/internal/database/models"
)

type NoteRepository interface {
	Find(ctx context.Context, filter dto.NoteFilter) ([]models.Note, error)
	GetByID(ctx context.Context, id int64) (*models.Note, error)
	Create(ctx context.Context, in dto.NoteCreate) (*models.Note, error)
	Update(ctx context.Context, id int64, patch dto.NotePatch) (*models.Note, error)
	Delete(ctx context.Context, id int64) error
}

type noteRepository struct {
	db *sql.DB
}

func NewNoteRepository(db *sql.DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Find(ctx context.Context, filter dto.NoteFilter) ([]models.Note, error) {
	query, args := buildFindQuery(filter)
	return r.query(ctx, query, args...)
}

func (r *noteRepository) GetByID(ctx context.Context, id int64) (*models.Note, error) {
	notes, err := r.query(ctx, noteSelect+` WHERE n.id = $1`+noteOrder, id)
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return nil, ErrNotFound
	}
	return &notes[0], nil
}

func (r *noteRepository) query(ctx context.Context, query string, args ...any) ([]models.Note, error) {
	result, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying notes: %w", err)
	}
	defer result.Close()

	var rows []models.NoteRow
	for result.Next() {
		var row models.NoteRow
		err := result.Scan(
			&row.NoteID,
			&row.Title,
			&row.Content,
			&row.FolderID,
			&row.FolderName,
			&row.TagID,
			&row.TagName,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning note: %w", err)
		}
		rows = append(rows, row)
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notes: %w", err)
	}
	return models.HydrateNotes(rows), nil
}

func (r *noteRepository) Create(ctx context.Context, in dto.NoteCreate) (*models.Note, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	var id int64
	query := `INSERT INTO notes (title, content, folder_id) VALUES ($1, $2, $3) RETURNING id`
	if err := tx.QueryRowContext(ctx, query, in.Title.Value, in.Content.Value, in.FolderID.Ptr()).Scan(&id); err != nil {
		return nil, fmt.Errorf("error creating note: %w", err)
	}
	if err := insertNoteTags(ctx, tx, id, dto.TagIDs(in.Tags)); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("error committing note: %w", err)
	}
	return r.GetByID(ctx, id)
}

// Update applies the members present in patch. When patch carries tags, the
// note's tag set is replaced by them in the same transaction.
func (r *noteRepository) Update(ctx context.Context, id int64, patch dto.NotePatch) (*models.Note, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	// Row lock serializes concurrent updates of the same note.
	var locked int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM notes WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error locking note: %w", err)
	}

	var (
		sets []string
		args []any
	)
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, column+" = $"+strconv.Itoa(len(args)))
	}
	if patch.Title.Set {
		set("title", patch.Title.Value)
	}
	if patch.Content.Set {
		set("content", patch.Content.Value)
	}
	if patch.FolderID.Set {
		set("folder_id", patch.FolderID.Ptr())
	}
	if len(sets) > 0 {
		args = append(args, id)
		query := `UPDATE notes SET ` + strings.Join(sets, ", ") + ` WHERE id = $` + strconv.Itoa(len(args))
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return nil, fmt.Errorf("error updating note: %w", err)
		}
	}

	if patch.Tags.Set {
		if err := reconcileNoteTags(ctx, tx, id, dto.TagIDs(patch.Tags)); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("error committing note: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *noteRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting note: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error deleting note: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// reconcileNoteTags makes want the note's tag set. Tags kept from the
// current set keep their position; new ones are appended in request order.
func reconcileNoteTags(ctx context.Context, tx *sql.Tx, noteID int64, want []int64) error {
	result, err := tx.QueryContext(ctx, `SELECT tag_id FROM notes_tags WHERE note_id = $1 FOR UPDATE`, noteID)
	if err != nil {
		return fmt.Errorf("error reading note tags: %w", err)
	}
	have := make(map[int64]struct{})
	for result.Next() {
		var tagID int64
		if err := result.Scan(&tagID); err != nil {
			result.Close()
			return fmt.Errorf("error scanning note tag: %w", err)
		}
		have[tagID] = struct{}{}
	}
	if err := result.Err(); err != nil {
		result.Close()
		return fmt.Errorf("error iterating note tags: %w", err)
	}
	result.Close()

	wanted := make(map[int64]struct{}, len(want))
	added := make([]int64, 0, len(want))
	for _, tagID := range want {
		wanted[tagID] = struct{}{}
		if _, ok := have[tagID]; !ok {
			added = append(added, tagID)
		}
	}

	for tagID := range have {
		if _, ok := wanted[tagID]; ok {
			continue
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM notes_tags WHERE note_id = $1 AND tag_id = $2`, noteID, tagID); err != nil {
			return fmt.Errorf("error removing tag %d: %w", tagID, err)
		}
	}
	return insertNoteTags(ctx, tx, noteID, added)
}

func insertNoteTags(ctx context.Context, tx *sql.Tx, noteID int64, tagIDs []int64) error {
	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx, `INSERT INTO notes_tags (note_id, tag_id) VALUES ($1, $2)`, noteID, tagID); err != nil {
			return fmt.Errorf("error adding tag %d: %w", tagID, err)
		}
	}
	return nil
}
