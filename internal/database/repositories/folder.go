package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"noteful/internal/database/dto"
	"noteful/internal/database/models"
)

type FolderRepository interface {
	GetAll(ctx context.Context) ([]models.Folder, error)
	GetByID(ctx context.Context, id int64) (*models.Folder, error)
	Create(ctx context.Context, in dto.FolderInput) (*models.Folder, error)
	Update(ctx context.Context, id int64, in dto.FolderInput) (*models.Folder, error)
	Delete(ctx context.Context, id int64) error
}

type folderRepository struct {
	db *sql.DB
}

func NewFolderRepository(db *sql.DB) FolderRepository {
	return &folderRepository{db: db}
}

func (r *folderRepository) GetAll(ctx context.Context) ([]models.Folder, error) {
	result, err := r.db.QueryContext(ctx, `SELECT id, name FROM folders ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error querying folders: %w", err)
	}
	defer result.Close()

	folders := []models.Folder{}
	for result.Next() {
		var folder models.Folder
		if err := result.Scan(&folder.ID, &folder.Name); err != nil {
			return nil, fmt.Errorf("error scanning folder: %w", err)
		}
		folders = append(folders, folder)
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("error iterating folders: %w", err)
	}
	return folders, nil
}

func (r *folderRepository) GetByID(ctx context.Context, id int64) (*models.Folder, error) {
	folder := models.Folder{}
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM folders WHERE id = $1`, id).Scan(&folder.ID, &folder.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error getting folder: %w", err)
	}
	return &folder, nil
}

func (r *folderRepository) Create(ctx context.Context, in dto.FolderInput) (*models.Folder, error) {
	folder := models.Folder{}
	query := `INSERT INTO folders (name) VALUES ($1) RETURNING id, name`
	if err := r.db.QueryRowContext(ctx, query, in.Name.Value).Scan(&folder.ID, &folder.Name); err != nil {
		return nil, fmt.Errorf("error creating folder: %w", err)
	}
	return &folder, nil
}

func (r *folderRepository) Update(ctx context.Context, id int64, in dto.FolderInput) (*models.Folder, error) {
	folder := models.Folder{}
	query := `UPDATE folders SET name = $1 WHERE id = $2 RETURNING id, name`
	err := r.db.QueryRowContext(ctx, query, in.Name.Value, id).Scan(&folder.ID, &folder.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error updating folder: %w", err)
	}
	return &folder, nil
}

// Delete removes the folder. Notes filed under it are kept and lose their
// folder.
func (r *folderRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM folders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting folder: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error deleting folder: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
