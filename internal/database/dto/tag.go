package dto

// TagInput is the body of POST and PUT /api/tags.
type TagInput struct {
	Name Field[string] `json:"name" validate:"required"`
}
