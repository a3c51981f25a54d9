package folderservice

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/starford/noteful/internal/apperr"
	"github.com/starford/noteful/internal/models"
	"github.com/starford/noteful/internal/objectid"
	"github.com/starford/noteful/internal/testutil"
)

// fakeStore counts calls and lets tests inject failures. Only the methods
// the folder service uses do anything.
type fakeStore struct {
	mu      sync.Mutex
	folders map[string]models.Folder
	notes   map[string]string // note id -> folder id

	calls      atomic.Int32
	deleteErr  error
	detachErr  error
	detachWait chan struct{}
}

func newFakeStore() *fakeStore {
	return &fakeStore{folders: map[string]models.Folder{}, notes: map[string]string{}}
}

func (f *fakeStore) ListFolders(context.Context) ([]models.Folder, error) {
	f.calls.Add(1)
	return nil, nil
}

func (f *fakeStore) GetFolder(_ context.Context, id string) (models.Folder, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if fo, ok := f.folders[id]; ok {
		return fo, nil
	}
	return models.Folder{}, apperr.ErrNotFound
}

func (f *fakeStore) CreateFolder(_ context.Context, name string) (models.Folder, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	fo := models.Folder{ID: objectid.New(), Name: name}
	f.folders[fo.ID] = fo
	return fo, nil
}

func (f *fakeStore) UpdateFolder(_ context.Context, id, name string) (models.Folder, error) {
	f.calls.Add(1)
	return models.Folder{ID: id, Name: name}, nil
}

func (f *fakeStore) DeleteFolder(_ context.Context, id string) error {
	f.calls.Add(1)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.folders[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(f.folders, id)
	return nil
}

func (f *fakeStore) ListNotes(context.Context, models.NoteFilter) ([]models.Note, error) {
	return nil, nil
}

func (f *fakeStore) GetNote(context.Context, string) (models.Note, error) {
	return models.Note{}, apperr.ErrNotFound
}

func (f *fakeStore) CreateNote(_ context.Context, n models.Note) (models.Note, error) {
	return n, nil
}

func (f *fakeStore) DeleteNote(context.Context, string) error { return nil }

func (f *fakeStore) DeleteNotesByFolder(ctx context.Context, folderID string) (int64, error) {
	f.calls.Add(1)
	if f.detachWait != nil {
		select {
		case <-f.detachWait:
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	if f.detachErr != nil {
		return 0, f.detachErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for id, fid := range f.notes {
		if fid == folderID {
			delete(f.notes, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) ClearNotesFolder(_ context.Context, folderID string) (int64, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for id, fid := range f.notes {
		if fid == folderID {
			f.notes[id] = ""
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) CountNotesByFolder(_ context.Context, folderID string) (int, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, fid := range f.notes {
		if fid == folderID {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) addFolder(name string, notes int) string {
	id := objectid.New()
	f.folders[id] = models.Folder{ID: id, Name: name}
	for range notes {
		f.notes[objectid.New()] = id
	}
	return id
}

func (f *fakeStore) notesIn(folderID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, fid := range f.notes {
		if fid == folderID {
			n++
		}
	}
	return n
}

func TestMalformedIDNeverReachesStore(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		id := rapid.String().Filter(func(s string) bool { return !objectid.IsValid(s) }).Draw(t, "id")
		fs := newFakeStore()
		svc := NewService(fs, fs, Cascade, nil)
		ctx := context.Background()

		if _, err := svc.Get(ctx, id); !errors.Is(err, apperr.ErrInvalidID) {
			t.Fatalf("Get(%q) err = %v", id, err)
		}
		if _, err := svc.Update(ctx, id, "name"); !errors.Is(err, apperr.ErrInvalidID) {
			t.Fatalf("Update(%q) err = %v", id, err)
		}
		if err := svc.Delete(ctx, id); !errors.Is(err, apperr.ErrInvalidID) {
			t.Fatalf("Delete(%q) err = %v", id, err)
		}
		if n := fs.calls.Load(); n != 0 {
			t.Fatalf("store called %d times for malformed id %q", n, id)
		}
	})
}

func TestCreate_MissingName(t *testing.T) {
	fs := newFakeStore()
	svc := NewService(fs, fs, Cascade, nil)

	_, err := svc.Create(context.Background(), "")
	if !apperr.IsValidation(err) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if fs.calls.Load() != 0 {
		t.Error("store should not be called")
	}
	if len(fs.folders) != 0 {
		t.Error("no folder should be persisted")
	}
}

func TestUpdate_NameCheckedBeforeID(t *testing.T) {
	fs := newFakeStore()
	svc := NewService(fs, fs, Cascade, nil)

	_, err := svc.Update(context.Background(), "bad-id", "")
	if !apperr.IsValidation(err) {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestDelete_CascadeRemovesNotes(t *testing.T) {
	fs := newFakeStore()
	id := fs.addFolder("Work", 5)
	other := fs.addFolder("Home", 2)
	svc := NewService(fs, fs, Cascade, nil)

	if err := svc.Delete(context.Background(), id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := fs.folders[id]; ok {
		t.Error("folder still present")
	}
	if n := fs.notesIn(id); n != 0 {
		t.Errorf("notes left in folder = %d, want 0", n)
	}
	if n := fs.notesIn(other); n != 2 {
		t.Errorf("notes in other folder = %d, want 2", n)
	}
}

func TestDelete_MissingFolderIsNotFound(t *testing.T) {
	fs := newFakeStore()
	svc := NewService(fs, fs, Cascade, nil)

	err := svc.Delete(context.Background(), objectid.New())
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDelete_NoteFailureFailsWholeOperation(t *testing.T) {
	fs := newFakeStore()
	id := fs.addFolder("Work", 3)
	boom := errors.New("notes unavailable")
	fs.detachErr = boom
	svc := NewService(fs, fs, Cascade, nil)

	err := svc.Delete(context.Background(), id)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	// Not atomic: the folder delete is not rolled back.
	if _, ok := fs.folders[id]; ok {
		t.Error("folder delete should have been applied")
	}
	if n := fs.notesIn(id); n != 3 {
		t.Errorf("notes = %d, want 3 left behind", n)
	}
}

func TestDelete_FolderFailureSurfaces(t *testing.T) {
	fs := newFakeStore()
	id := fs.addFolder("Work", 1)
	boom := errors.New("disk full")
	fs.deleteErr = boom
	svc := NewService(fs, fs, Cascade, nil)

	if err := svc.Delete(context.Background(), id); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestDelete_WaitsForBothOperations(t *testing.T) {
	fs := newFakeStore()
	id := fs.addFolder("Work", 2)
	fs.detachWait = make(chan struct{})
	svc := NewService(fs, fs, Cascade, nil)

	done := make(chan error, 1)
	go func() { done <- svc.Delete(context.Background(), id) }()

	select {
	case err := <-done:
		t.Fatalf("Delete returned before notes were removed: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	close(fs.detachWait)
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Delete: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Delete did not return")
	}
	if n := fs.notesIn(id); n != 0 {
		t.Errorf("notes = %d, want 0", n)
	}
}

func TestDelete_SetNullKeepsNotes(t *testing.T) {
	fs := newFakeStore()
	id := fs.addFolder("Work", 4)
	svc := NewService(fs, fs, SetNull, nil)

	if err := svc.Delete(context.Background(), id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if n := fs.notesIn(id); n != 0 {
		t.Errorf("notes still filed = %d", n)
	}
	if n := fs.notesIn(""); n != 4 {
		t.Errorf("unfiled notes = %d, want 4", n)
	}
}

func TestDelete_RestrictRefusesNonEmptyFolder(t *testing.T) {
	fs := newFakeStore()
	busy := fs.addFolder("Work", 1)
	empty := fs.addFolder("Empty", 0)
	svc := NewService(fs, fs, Restrict, nil)

	if err := svc.Delete(context.Background(), busy); !errors.Is(err, apperr.ErrFolderInUse) {
		t.Fatalf("err = %v, want ErrFolderInUse", err)
	}
	if _, ok := fs.folders[busy]; !ok {
		t.Error("restricted folder was deleted")
	}
	if err := svc.Delete(context.Background(), empty); err != nil {
		t.Fatalf("Delete empty: %v", err)
	}
	if err := svc.Delete(context.Background(), empty); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestService_SQLiteDuplicateName(t *testing.T) {
	db := testutil.TestStore(t)
	svc := NewService(db, db, Cascade, nil)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "Work"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, "Work"); !errors.Is(err, apperr.ErrDuplicateName) {
		t.Fatalf("err = %v, want ErrDuplicateName", err)
	}
	all, err := svc.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Errorf("folders = %d, want 1", len(all))
	}
}
