package dto

// FolderInput is the body of POST and PUT /api/folders.
type FolderInput struct {
	Name Field[string] `json:"name" validate:"required"`
}
