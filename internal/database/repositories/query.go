package repositories

import (
	"strconv"
	"strings"

	"noteful/internal/database/dto"
)

// noteSelect yields one row per (note, tag) pair, or a single row with NULL
// tag columns for an untagged note.
const noteSelect = `
	SELECT n.id, n.title, n.content, n.folder_id, f.name, t.id, t.name
	FROM notes n
	LEFT JOIN folders f ON f.id = n.folder_id
	LEFT JOIN notes_tags nt ON nt.note_id = n.id
	LEFT JOIN tags t ON t.id = nt.tag_id`

const noteOrder = ` ORDER BY n.id, nt.seq`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// whereBuilder accumulates AND-ed conditions with numbered placeholders.
type whereBuilder struct {
	conds []string
	args  []any
}

// add appends cond, replacing each "?" with the next placeholder.
func (w *whereBuilder) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, strings.Replace(cond, "?", "$"+strconv.Itoa(len(w.args)), 1))
}

func (w *whereBuilder) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

func buildFindQuery(filter dto.NoteFilter) (string, []any) {
	var w whereBuilder
	if filter.SearchTerm != "" {
		w.add(`n.title LIKE ?`, "%"+likeEscaper.Replace(filter.SearchTerm)+"%")
	}
	if filter.FolderID != nil {
		w.add(`n.folder_id = ?`, *filter.FolderID)
	}
	if filter.TagID != nil {
		w.add(`n.id IN (SELECT note_id FROM notes_tags WHERE tag_id = ?)`, *filter.TagID)
	}
	return noteSelect + w.String() + noteOrder, w.args
}
