package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"noteful/internal/database/dto"
	"noteful/internal/database/models"
)

type TagRepository interface {
	GetAll(ctx context.Context) ([]models.Tag, error)
	GetByID(ctx context.Context, id int64) (*models.Tag, error)
	Create(ctx context.Context, in dto.TagInput) (*models.Tag, error)
	Update(ctx context.Context, id int64, in dto.TagInput) (*models.Tag, error)
	Delete(ctx context.Context, id int64) error
}

type tagRepository struct {
	db *sql.DB
}

func NewTagRepository(db *sql.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) GetAll(ctx context.Context) ([]models.Tag, error) {
	result, err := r.db.QueryContext(ctx, `SELECT id, name FROM tags ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error querying tags: %w", err)
	}
	defer result.Close()

	tags := []models.Tag{}
	for result.Next() {
		var tag models.Tag
		if err := result.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, fmt.Errorf("error scanning tag: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tags: %w", err)
	}
	return tags, nil
}

func (r *tagRepository) GetByID(ctx context.Context, id int64) (*models.Tag, error) {
	tag := models.Tag{}
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM tags WHERE id = $1`, id).Scan(&tag.ID, &tag.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error getting tag: %w", err)
	}
	return &tag, nil
}

func (r *tagRepository) Create(ctx context.Context, in dto.TagInput) (*models.Tag, error) {
	tag := models.Tag{}
	query := `INSERT INTO tags (name) VALUES ($1) RETURNING id, name`
	if err := r.db.QueryRowContext(ctx, query, in.Name.Value).Scan(&tag.ID, &tag.Name); err != nil {
		return nil, fmt.Errorf("error creating tag: %w", err)
	}
	return &tag, nil
}

func (r *tagRepository) Update(ctx context.Context, id int64, in dto.TagInput) (*models.Tag, error) {
	tag := models.Tag{}
	query := `UPDATE tags SET name = $1 WHERE id = $2 RETURNING id, name`
	err := r.db.QueryRowContext(ctx, query, in.Name.Value, id).Scan(&tag.ID, &tag.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error updating tag: %w", err)
	}
	return &tag, nil
}

// Delete removes the tag and detaches it from every note.
func (r *tagRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting tag: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error deleting tag: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
