package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okamel/cvbank/internal/models"
	"github.com/okamel/cvbank/internal/utils"
)

func seedCV(t *testing.T, s *CVStore, id, nationality string, uploaded time.Time) {
	t.Helper()
	err := s.Create(context.Background(), &models.CV{
		ID:          id,
		Name:        "candidate " + id,
		Age:         30,
		Nationality: nationality,
		Experience:  "2 years",
		FileName:    "cv.pdf",
		FileType:    models.FileTypePDF,
		FilePath:    "/tmp/" + id + ".pdf",
		UploadDate:  uploaded,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
}

func TestCVStoreListOrdering(t *testing.T) {
	s := NewCVStore()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	seedCV(t, s, "a", "kenya", base)
	seedCV(t, s, "b", "philippines", base.Add(2*time.Hour))
	seedCV(t, s, "c", "kenya", base.Add(1*time.Hour))

	rows, err := s.ListAll(context.Background(), 50)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	got := []string{}
	for _, cv := range rows {
		got = append(got, cv.ID)
	}
	want := []string{"b", "c", "a"}
	if len(got) != len(want) {
		t.Fatalf("got %d rows, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order: got %v, want %v", got, want)
		}
	}
}

func TestCVStoreListByNationality(t *testing.T) {
	s := NewCVStore()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	seedCV(t, s, "a", "kenya", base)
	seedCV(t, s, "b", "philippines", base.Add(time.Hour))
	seedCV(t, s, "c", "kenya", base.Add(2*time.Hour))

	rows, err := s.ListByNationality(context.Background(), "kenya", 50)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].ID != "c" || rows[1].ID != "a" {
		t.Fatalf("got %s,%s want c,a", rows[0].ID, rows[1].ID)
	}
	for _, cv := range rows {
		if cv.Nationality != "kenya" {
			t.Fatalf("leaked nationality %q", cv.Nationality)
		}
	}
}

func TestCVStoreListLimit(t *testing.T) {
	s := NewCVStore()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	seedCV(t, s, "a", "kenya", base)
	seedCV(t, s, "b", "kenya", base.Add(time.Hour))
	seedCV(t, s, "c", "kenya", base.Add(2*time.Hour))

	rows, err := s.ListAll(context.Background(), 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].ID != "c" {
		t.Fatalf("cap should keep the newest records, got %s first", rows[0].ID)
	}
}

func TestCVStoreUpdatePartial(t *testing.T) {
	s := NewCVStore()
	uploaded := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	seedCV(t, s, "a", "kenya", uploaded)

	name := "X"
	got, err := s.Update(context.Background(), "a", models.CVUpdate{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Name != "X" {
		t.Fatalf("name not updated: %q", got.Name)
	}
	if got.Age != 30 || got.Nationality != "kenya" || got.Experience != "2 years" {
		t.Fatalf("unrelated fields changed: %+v", got)
	}
	if got.FileName != "cv.pdf" || got.FileType != models.FileTypePDF || !got.UploadDate.Equal(uploaded) {
		t.Fatalf("file metadata or upload date changed: %+v", got)
	}
}

func TestCVStoreUpdateMissing(t *testing.T) {
	s := NewCVStore()
	name := "X"
	if _, err := s.Update(context.Background(), "nope", models.CVUpdate{Name: &name}); !errors.Is(err, utils.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestCVStoreDeleteTwice(t *testing.T) {
	s := NewCVStore()
	seedCV(t, s, "a", "kenya", time.Now().UTC())

	if err := s.Delete(context.Background(), "a"); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if _, err := s.GetByID(context.Background(), "a"); !errors.Is(err, utils.ErrNotFound) {
		t.Fatalf("get after delete: want ErrNotFound, got %v", err)
	}
	if err := s.Delete(context.Background(), "a"); !errors.Is(err, utils.ErrNotFound) {
		t.Fatalf("second delete: want ErrNotFound, got %v", err)
	}
}

func TestCVStoreCopiesOnRead(t *testing.T) {
	s := NewCVStore()
	seedCV(t, s, "a", "kenya", time.Now().UTC())

	cv, err := s.GetByID(context.Background(), "a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	cv.Name = "mutated"

	again, err := s.GetByID(context.Background(), "a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if again.Name == "mutated" {
		t.Fatalf("caller mutation leaked into the store")
	}
}

func TestUserStore(t *testing.T) {
	s := NewUserStore()
	if _, err := s.GetByUsername(context.Background(), "admin"); !errors.Is(err, utils.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	u := &models.User{ID: "u1", Username: "admin", Password: "hash", CreatedAt: time.Now().UTC()}
	if err := s.Create(context.Background(), u); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := s.GetByUsername(context.Background(), "admin")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Password != "hash" {
		t.Fatalf("got %+v", got)
	}
}
