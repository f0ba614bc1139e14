package server

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"

	"noteful/internal/database/dto"
	"noteful/internal/database/models"
	"noteful/internal/database/repositories"
)

type fakeDB struct {
	status string
}

func (f *fakeDB) Health(context.Context) map[string]string {
	return map[string]string{"status": f.status}
}

func (f *fakeDB) DB() *sql.DB { return nil }

func (f *fakeDB) Close() error { return nil }

// fakeNotes keeps notes in memory. err, when set, is returned by every call.
type fakeNotes struct {
	mu     sync.Mutex
	notes  map[int64]models.Note
	nextID int64
	calls  int
	filter dto.NoteFilter
	err    error
}

func newFakeNotes(notes ...models.Note) *fakeNotes {
	f := &fakeNotes{notes: map[int64]models.Note{}, nextID: 1}
	for _, n := range notes {
		f.notes[n.ID] = n
		if n.ID >= f.nextID {
			f.nextID = n.ID + 1
		}
	}
	return f
}

func (f *fakeNotes) Find(_ context.Context, filter dto.NoteFilter) ([]models.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.filter = filter
	if f.err != nil {
		return nil, f.err
	}
	out := []models.Note{}
	for _, n := range f.notes {
		if strings.Contains(n.Title, filter.SearchTerm) {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeNotes) GetByID(_ context.Context, id int64) (*models.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	n, ok := f.notes[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &n, nil
}

func (f *fakeNotes) Create(_ context.Context, in dto.NoteCreate) (*models.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	n := models.Note{
		ID:       f.nextID,
		Title:    in.Title.Value,
		Content:  in.Content.Value,
		FolderID: in.FolderID.Ptr(),
		Tags:     tagsFor(dto.TagIDs(in.Tags)),
	}
	f.nextID++
	f.notes[n.ID] = n
	return &n, nil
}

func (f *fakeNotes) Update(_ context.Context, id int64, patch dto.NotePatch) (*models.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	n, ok := f.notes[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if patch.Title.Set {
		n.Title = patch.Title.Value
	}
	if patch.Content.Set {
		n.Content = patch.Content.Value
	}
	if patch.FolderID.Set {
		n.FolderID = patch.FolderID.Ptr()
	}
	if patch.Tags.Set {
		n.Tags = tagsFor(dto.TagIDs(patch.Tags))
	}
	f.notes[id] = n
	return &n, nil
}

func (f *fakeNotes) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return f.err
	}
	if _, ok := f.notes[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.notes, id)
	return nil
}

func tagsFor(ids []int64) []models.Tag {
	tags := make([]models.Tag, 0, len(ids))
	for _, id := range ids {
		tags = append(tags, models.Tag{ID: id})
	}
	return tags
}

// fakeNamed backs both the folder and the tag fakes.
type fakeNamed struct {
	mu     sync.Mutex
	names  map[int64]string
	nextID int64
	calls  int
}

func newFakeNamed(names map[int64]string) *fakeNamed {
	f := &fakeNamed{names: map[int64]string{}, nextID: 1}
	for id, name := range names {
		f.names[id] = name
		if id >= f.nextID {
			f.nextID = id + 1
		}
	}
	return f
}

func (f *fakeNamed) ids() []int64 {
	ids := make([]int64, 0, len(f.names))
	for id := range f.names {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (f *fakeNamed) get(id int64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	name, ok := f.names[id]
	if !ok {
		return "", repositories.ErrNotFound
	}
	return name, nil
}

func (f *fakeNamed) create(name string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	id := f.nextID
	f.nextID++
	f.names[id] = name
	return id
}

func (f *fakeNamed) update(id int64, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if _, ok := f.names[id]; !ok {
		return repositories.ErrNotFound
	}
	f.names[id] = name
	return nil
}

func (f *fakeNamed) remove(id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if _, ok := f.names[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.names, id)
	return nil
}

type fakeFolders struct{ *fakeNamed }

func (f fakeFolders) GetAll(context.Context) ([]models.Folder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Folder{}
	for _, id := range f.ids() {
		out = append(out, models.Folder{ID: id, Name: f.names[id]})
	}
	return out, nil
}

func (f fakeFolders) GetByID(_ context.Context, id int64) (*models.Folder, error) {
	name, err := f.get(id)
	if err != nil {
		return nil, err
	}
	return &models.Folder{ID: id, Name: name}, nil
}

func (f fakeFolders) Create(_ context.Context, in dto.FolderInput) (*models.Folder, error) {
	id := f.create(in.Name.Value)
	return &models.Folder{ID: id, Name: in.Name.Value}, nil
}

func (f fakeFolders) Update(_ context.Context, id int64, in dto.FolderInput) (*models.Folder, error) {
	if err := f.update(id, in.Name.Value); err != nil {
		return nil, err
	}
	return &models.Folder{ID: id, Name: in.Name.Value}, nil
}

func (f fakeFolders) Delete(_ context.Context, id int64) error {
	return f.remove(id)
}

type fakeTags struct{ *fakeNamed }

func (f fakeTags) GetAll(context.Context) ([]models.Tag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Tag{}
	for _, id := range f.ids() {
		out = append(out, models.Tag{ID: id, Name: f.names[id]})
	}
	return out, nil
}

func (f fakeTags) GetByID(_ context.Context, id int64) (*models.Tag, error) {
	name, err := f.get(id)
	if err != nil {
		return nil, err
	}
	return &models.Tag{ID: id, Name: name}, nil
}

func (f fakeTags) Create(_ context.Context, in dto.TagInput) (*models.Tag, error) {
	id := f.create(in.Name.Value)
	return &models.Tag{ID: id, Name: in.Name.Value}, nil
}

func (f fakeTags) Update(_ context.Context, id int64, in dto.TagInput) (*models.Tag, error) {
	if err := f.update(id, in.Name.Value); err != nil {
		return nil, err
	}
	return &models.Tag{ID: id, Name: in.Name.Value}, nil
}

func (f fakeTags) Delete(_ context.Context, id int64) error {
	return f.remove(id)
}
