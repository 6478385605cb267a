package photo

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	imgpkg "github.com/Young-Flame/PhotoYo/internal/pkg/imaging"
	"github.com/Young-Flame/PhotoYo/internal/pkg/policy"
	"github.com/Young-Flame/PhotoYo/internal/pkg/storage"
)

type fakePhotoRepo struct {
	mu     sync.Mutex
	photos map[int64]*Photo
	nextID int64
}

func newFakePhotoRepo() *fakePhotoRepo {
	return &fakePhotoRepo{photos: map[int64]*Photo{}, nextID: 1}
}

func (f *fakePhotoRepo) Create(_ context.Context, p *Photo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = f.nextID
	p.CreatedAt = time.Now()
	f.nextID++
	clone := *p
	f.photos[p.ID] = &clone
	return nil
}

func (f *fakePhotoRepo) GetByID(_ context.Context, id int64) (*Photo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.photos[id]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (f *fakePhotoRepo) List(_ context.Context, category string) ([]*Photo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*Photo{}
	for _, p := range f.photos {
		if category == "" || p.Category == category {
			clone := *p
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakePhotoRepo) ListByOwner(_ context.Context, ownerID int64) ([]*Photo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*Photo{}
	for _, p := range f.photos {
		if p.OwnerID == ownerID {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakePhotoRepo) TopByViews(_ context.Context, limit int) ([]*Photo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*Photo{}
	for _, p := range f.photos {
		clone := *p
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Views != out[j].Views {
			return out[i].Views > out[j].Views
		}
		return out[i].ID > out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakePhotoRepo) Update(_ context.Context, p *Photo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.photos[p.ID]
	if !ok {
		return ErrPhotoNotFound
	}
	stored.Title = p.Title
	stored.Description = p.Description
	stored.Category = p.Category
	return nil
}

func (f *fakePhotoRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.photos[id]; !ok {
		return ErrPhotoNotFound
	}
	delete(f.photos, id)
	return nil
}

func (f *fakePhotoRepo) IncrementViews(_ context.Context, id int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.photos[id]
	if !ok {
		return 0, ErrPhotoNotFound
	}
	p.Views++
	return p.Views, nil
}

func (f *fakePhotoRepo) IncrementLikes(_ context.Context, id int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.photos[id]
	if !ok {
		return 0, ErrPhotoNotFound
	}
	p.Likes++
	return p.Likes, nil
}

func (f *fakePhotoRepo) Count(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.photos), nil
}

func (f *fakePhotoRepo) SumViewsByOwner(_ context.Context, ownerID int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, p := range f.photos {
		if p.OwnerID == ownerID {
			total += p.Views
		}
	}
	return total, nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments []*Comment
	nextID   int64
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{nextID: 1}
}

func (f *fakeCommentRepo) Create(_ context.Context, c *Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.ID = f.nextID
	c.CreatedAt = time.Now()
	f.nextID++
	clone := *c
	f.comments = append(f.comments, &clone)
	return nil
}

func (f *fakeCommentRepo) ListByPhoto(_ context.Context, photoID int64) ([]*Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*Comment{}
	for _, c := range f.comments {
		if c.PhotoID == photoID {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeCommentRepo) Count(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.comments), nil
}

type fakeStorage struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{files: map[string][]byte{}}
}

func (f *fakeStorage) Save(_ context.Context, key string, r io.Reader, _ string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[key] = data
	return nil
}

func (f *fakeStorage) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.files, key)
	return nil
}

func (f *fakeStorage) GetURL(key string) string {
	return "/uploads/" + key
}

func newTestService() (*Service, *fakePhotoRepo, *fakeCommentRepo, *fakeStorage) {
	photos := newFakePhotoRepo()
	comments := newFakeCommentRepo()
	store := newFakeStorage()
	svc := NewService(photos, comments, store, imgpkg.NewProcessor(imgpkg.DefaultConfig()), 1<<20)
	return svc, photos, comments, store
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 10, 10))); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestUpload(t *testing.T) {
	ctx := context.Background()
	actor := &policy.Actor{ID: 1, Name: "Alice", Role: policy.RoleUser}

	t.Run("stores original and thumbnail", func(t *testing.T) {
		svc, _, _, store := newTestService()

		resp, err := svc.Upload(ctx, actor, &UploadRequest{Title: "Sunset"},
			bytes.NewReader(pngBytes(t)), "sunset.png")
		if err != nil {
			t.Fatalf("Upload() error = %v", err)
		}

		if resp.Category != DefaultCategory {
			t.Errorf("category = %q, want %q", resp.Category, DefaultCategory)
		}
		if resp.URL == "" || resp.ThumbURL == "" {
			t.Errorf("expected both URLs, got %q and %q", resp.URL, resp.ThumbURL)
		}
		if len(store.files) != 2 {
			t.Errorf("stored files = %d, want 2", len(store.files))
		}
	})

	t.Run("publishes without thumbnail when file is not decodable", func(t *testing.T) {
		svc, _, _, store := newTestService()

		resp, err := svc.Upload(ctx, actor, &UploadRequest{Title: "Broken", Category: "event"},
			strings.NewReader("not an image"), "broken.jpg")
		if err != nil {
			t.Fatalf("Upload() error = %v", err)
		}

		if resp.ThumbURL != "" {
			t.Errorf("thumb_url = %q, want empty", resp.ThumbURL)
		}
		if len(store.files) != 1 {
			t.Errorf("stored files = %d, want 1", len(store.files))
		}
	})

	t.Run("rejects disallowed extension", func(t *testing.T) {
		svc, _, _, _ := newTestService()

		_, err := svc.Upload(ctx, actor, &UploadRequest{Title: "Nope"},
			strings.NewReader("x"), "malware.exe")
		if err != storage.ErrExtNotAllowed {
			t.Errorf("error = %v, want ErrExtNotAllowed", err)
		}
	})

	t.Run("rejects oversized file", func(t *testing.T) {
		photos := newFakePhotoRepo()
		svc := NewService(photos, newFakeCommentRepo(), newFakeStorage(),
			imgpkg.NewProcessor(imgpkg.DefaultConfig()), 16)

		_, err := svc.Upload(ctx, actor, &UploadRequest{Title: "Big"},
			strings.NewReader(strings.Repeat("x", 17)), "big.jpg")
		if err != storage.ErrFileTooLarge {
			t.Errorf("error = %v, want ErrFileTooLarge", err)
		}
	})
}

func TestGetDetailCountsEveryView(t *testing.T) {
	ctx := context.Background()
	svc, photos, _, _ := newTestService()

	p := &Photo{Title: "Sunset", Category: "general", Filename: "s.png", OwnerID: 1}
	if err := photos.Create(ctx, p); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	for want := 1; want <= 3; want++ {
		detail, err := svc.GetDetail(ctx, p.ID)
		if err != nil {
			t.Fatalf("GetDetail() error = %v", err)
		}
		if detail.Photo.Views != want {
			t.Errorf("views = %d, want %d", detail.Photo.Views, want)
		}
	}

	if _, err := svc.GetDetail(ctx, 999); err != ErrPhotoNotFound {
		t.Errorf("error = %v, want ErrPhotoNotFound", err)
	}
}

func TestLikeCountsConcurrently(t *testing.T) {
	ctx := context.Background()
	svc, photos, _, _ := newTestService()

	p := &Photo{Title: "Sunset", Category: "general", Filename: "s.png", OwnerID: 1}
	if err := photos.Create(ctx, p); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Like(ctx, p.ID); err != nil {
				t.Errorf("Like() error = %v", err)
			}
		}()
	}
	wg.Wait()

	stored, _ := photos.GetByID(ctx, p.ID)
	if stored.Likes != n {
		t.Errorf("likes = %d, want %d", stored.Likes, n)
	}
}

func TestUpdatePolicy(t *testing.T) {
	ctx := context.Background()
	svc, photos, _, _ := newTestService()

	p := &Photo{Title: "Sunset", Category: "general", Filename: "s.png", OwnerID: 1}
	if err := photos.Create(ctx, p); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	owner := &policy.Actor{ID: 1, Role: policy.RoleUser}
	stranger := &policy.Actor{ID: 2, Role: policy.RoleUser}
	admin := &policy.Actor{ID: 3, Role: policy.RoleAdmin}

	if _, err := svc.Update(ctx, stranger, p.ID, &UpdateRequest{Title: "Hacked"}); err != ErrNotOwner {
		t.Errorf("stranger error = %v, want ErrNotOwner", err)
	}

	if _, err := svc.Update(ctx, owner, p.ID, &UpdateRequest{Title: "Dawn"}); err != nil {
		t.Errorf("owner error = %v", err)
	}

	resp, err := svc.Update(ctx, admin, p.ID, &UpdateRequest{Title: "Dusk", Category: "landscape"})
	if err != nil {
		t.Fatalf("admin error = %v", err)
	}
	if resp.Title != "Dusk" || resp.Category != "landscape" {
		t.Errorf("photo = %+v", resp)
	}
}

func TestDeleteRemovesFiles(t *testing.T) {
	ctx := context.Background()
	actor := &policy.Actor{ID: 1, Name: "Alice", Role: policy.RoleUser}
	svc, photos, _, store := newTestService()

	resp, err := svc.Upload(ctx, actor, &UploadRequest{Title: "Sunset"},
		bytes.NewReader(pngBytes(t)), "sunset.png")
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	if err := svc.Delete(ctx, actor, resp.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if p, _ := photos.GetByID(ctx, resp.ID); p != nil {
		t.Error("photo record still present")
	}
	if len(store.files) != 0 {
		t.Errorf("stored files = %d, want 0", len(store.files))
	}

	if err := svc.Delete(ctx, actor, resp.ID); err != ErrPhotoNotFound {
		t.Errorf("second delete error = %v, want ErrPhotoNotFound", err)
	}
}

func TestAddComment(t *testing.T) {
	ctx := context.Background()
	svc, photos, comments, _ := newTestService()
	actor := &policy.Actor{ID: 5, Name: "Bob", Role: policy.RoleUser}

	p := &Photo{Title: "Sunset", Category: "general", Filename: "s.png", OwnerID: 1}
	if err := photos.Create(ctx, p); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	c, err := svc.AddComment(ctx, actor, p.ID, &CommentRequest{Content: "  lovely light  "})
	if err != nil {
		t.Fatalf("AddComment() error = %v", err)
	}
	if c.Content != "lovely light" {
		t.Errorf("content = %q, want trimmed", c.Content)
	}
	if c.AuthorName != "Bob" {
		t.Errorf("author_name = %q, want Bob", c.AuthorName)
	}

	if _, err := svc.AddComment(ctx, actor, 999, &CommentRequest{Content: "hi"}); err != ErrPhotoNotFound {
		t.Errorf("error = %v, want ErrPhotoNotFound", err)
	}

	list, _ := comments.ListByPhoto(ctx, p.ID)
	if len(list) != 1 {
		t.Errorf("comments = %d, want 1", len(list))
	}
}

func TestFeaturedOrdersByViews(t *testing.T) {
	ctx := context.Background()
	svc, photos, _, _ := newTestService()

	for i := 0; i < 8; i++ {
		p := &Photo{Title: "p", Category: "general", Filename: "f.png", OwnerID: 1}
		if err := photos.Create(ctx, p); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		for v := 0; v < i; v++ {
			if _, err := photos.IncrementViews(ctx, p.ID); err != nil {
				t.Fatalf("IncrementViews() error = %v", err)
			}
		}
	}

	featured, err := svc.Featured(ctx)
	if err != nil {
		t.Fatalf("Featured() error = %v", err)
	}
	if len(featured) != FeaturedCount {
		t.Fatalf("featured = %d, want %d", len(featured), FeaturedCount)
	}
	for i := 1; i < len(featured); i++ {
		if featured[i].Views > featured[i-1].Views {
			t.Errorf("featured not ordered by views: %d before %d", featured[i-1].Views, featured[i].Views)
		}
	}
}
