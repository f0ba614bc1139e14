package dto

// NoteCreate is the body of POST /api/notes.
type NoteCreate struct {
	Title    Field[string]  `json:"title" validate:"required"`
	Content  Field[string]  `json:"content"`
	FolderID Field[int64]   `json:"folder_id"`
	Tags     Field[[]int64] `json:"tags"`
}

// NotePatch is the body of PUT /api/notes/:id. Only members present in the
// body are applied; Tags, when present, replaces the whole tag set.
type NotePatch struct {
	Title    Field[string]  `json:"title" validate:"required"`
	Content  Field[string]  `json:"content"`
	FolderID Field[int64]   `json:"folder_id"`
	Tags     Field[[]int64] `json:"tags"`
}

// NoteFilter narrows GET /api/notes. Zero values mean "no filter".
type NoteFilter struct {
	SearchTerm string
	FolderID   *int64
	TagID      *int64
}

// TagIDs returns the requested tag ids with duplicates removed, keeping the
// first occurrence of each.
func TagIDs(tags Field[[]int64]) []int64 {
	if !tags.Valid {
		return []int64{}
	}
	seen := make(map[int64]struct{}, len(tags.Value))
	ids := make([]int64, 0, len(tags.Value))
	for _, id := range tags.Value {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
