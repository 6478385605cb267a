package contact

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type fakeContactRepo struct {
	contacts []*Contact
	nextID   int64
}

func (f *fakeContactRepo) Create(_ context.Context, c *Contact) error {
	f.nextID++
	c.ID = f.nextID
	c.CreatedAt = time.Now()
	clone := *c
	f.contacts = append(f.contacts, &clone)
	return nil
}

func (f *fakeContactRepo) List(_ context.Context) ([]*Contact, error) {
	return f.contacts, nil
}

func (f *fakeContactRepo) Count(_ context.Context) (int, error) {
	return len(f.contacts), nil
}

type fakeContactNotifier struct {
	events []*Contact
}

func (n *fakeContactNotifier) ContactCreated(c *Contact) {
	n.events = append(n.events, c)
}

func TestCreateContact(t *testing.T) {
	t.Run("valid submission stored and notified", func(t *testing.T) {
		repo := &fakeContactRepo{}
		notifier := &fakeContactNotifier{}
		h := NewHandler(repo, notifier)

		body := `{"name":"Alice","email":"Alice@Example.com","phone":"+7 700 000 0000","message":"Do you shoot weddings?"}`
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/v1/contacts", strings.NewReader(body))

		h.Create(rec, r)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
		if len(repo.contacts) != 1 {
			t.Fatalf("stored contacts = %d, want 1", len(repo.contacts))
		}
		if repo.contacts[0].Email != "alice@example.com" {
			t.Errorf("email = %q, want lowercased", repo.contacts[0].Email)
		}
		if len(notifier.events) != 1 {
			t.Errorf("notifier events = %d, want 1", len(notifier.events))
		}
	})

	t.Run("whitespace-only message rejected", func(t *testing.T) {
		repo := &fakeContactRepo{}
		h := NewHandler(repo, nil)

		body := `{"name":"Alice","email":"a@b.com","message":"   "}`
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/v1/contacts", strings.NewReader(body))

		h.Create(rec, r)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
		}
		if len(repo.contacts) != 0 {
			t.Errorf("stored contacts = %d, want 0", len(repo.contacts))
		}
	})

	t.Run("missing message rejected", func(t *testing.T) {
		repo := &fakeContactRepo{}
		h := NewHandler(repo, nil)

		body := `{"name":"Alice","email":"a@b.com"}`
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/v1/contacts", strings.NewReader(body))

		h.Create(rec, r)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
		}
		if len(repo.contacts) != 0 {
			t.Errorf("stored contacts = %d, want 0", len(repo.contacts))
		}
	})

	t.Run("invalid json rejected", func(t *testing.T) {
		h := NewHandler(&fakeContactRepo{}, nil)

		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/v1/contacts", strings.NewReader("{"))

		h.Create(rec, r)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})
}
