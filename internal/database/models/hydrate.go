package models

// HydrateNotes regroups flattened note×tag rows into notes carrying their tags.
//
// Rows are grouped by note id, so the input does not need to be sorted or
// even contiguous per note. Notes come out in the order their id is first
// seen, and each note's tags in the order they are first seen for it. Rows
// with a NULL tag id contribute no tag, and a tag id already attached to the
// note is skipped.
func HydrateNotes(rows []NoteRow) []Note {
	notes := make([]Note, 0, len(rows))
	index := make(map[int64]int, len(rows))
	seen := make(map[NoteTag]struct{}, len(rows))

	for _, row := range rows {
		i, ok := index[row.NoteID]
		if !ok {
			note := Note{
				ID:      row.NoteID,
				Title:   row.Title,
				Content: row.Content,
				Tags:    []Tag{},
			}
			if row.FolderID != nil {
				id := *row.FolderID
				note.FolderID = &id
				if row.FolderName != nil {
					name := *row.FolderName
					note.FolderName = &name
				}
			}
			i = len(notes)
			index[row.NoteID] = i
			notes = append(notes, note)
		}

		if row.TagID == nil {
			continue
		}
		key := NoteTag{NoteID: row.NoteID, TagID: *row.TagID}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		tag := Tag{ID: *row.TagID}
		if row.TagName != nil {
			tag.Name = *row.TagName
		}
		notes[i].Tags = append(notes[i].Tags, tag)
	}

	return notes
}
