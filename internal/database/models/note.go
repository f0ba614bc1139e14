package models

// Note is the hydrated form of a note: its scalar columns, the folder it
// points at (if any) and its tags in join-table insertion order.
type Note struct {
	ID         int64   `json:"id"`
	Title      string  `json:"title"`
	Content    string  `json:"content"`
	FolderID   *int64  `json:"folderId"`
	FolderName *string `json:"folderName"`
	Tags       []Tag   `json:"tags"`
}

// NoteTag is a row of the notes_tags join table.
type NoteTag struct {
	NoteID int64 `json:"noteId"`
	TagID  int64 `json:"tagId"`
}

// NoteRow is one row of the notes ⟕ folders ⟕ notes_tags ⟕ tags join.
// A note with n tags produces n rows; a note without tags produces one row
// whose tag columns are NULL.
type NoteRow struct {
	NoteID     int64
	Title      string
	Content    string
	FolderID   *int64
	FolderName *string
	TagID      *int64
	TagName    *string
}
