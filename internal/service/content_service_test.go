package service

import (
	"errors"
	"testing"

	"arrurru_training_backend/internal/model"
	"arrurru_training_backend/internal/repository"
	"arrurru_training_backend/internal/util"

	"gorm.io/gorm"
)

func newContentService(db *gorm.DB) *ContentService {
	return NewContentService(
		repository.NewContentRepository(db),
		repository.NewSettingRepository(db),
	)
}

func TestSyncFixturesSeedsAndIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newContentService(db)

	if err := svc.SyncFixtures(); err != nil {
		t.Fatalf("sync: %v", err)
	}
	pages, err := svc.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(pages) != len(builtinPages()) {
		t.Fatalf("expected %d builtin pages, got %d", len(builtinPages()), len(pages))
	}
	for _, p := range pages {
		if !p.Builtin {
			t.Fatalf("fixture page %s not marked builtin", p.Slug)
		}
	}

	if err := svc.SyncFixtures(); err != nil {
		t.Fatalf("second sync: %v", err)
	}
	again, _ := svc.List()
	if len(again) != len(pages) {
		t.Fatalf("second sync duplicated pages: %d != %d", len(again), len(pages))
	}
}

func TestSyncFixturesPreservesAuthoredPages(t *testing.T) {
	db := newTestDB(t)
	svc := newContentService(db)

	if err := svc.SyncFixtures(); err != nil {
		t.Fatalf("sync: %v", err)
	}

	// A manager edits a builtin page and adds a page of their own.
	builtin, err := svc.BySlug("philosophy")
	if err != nil {
		t.Fatalf("load builtin: %v", err)
	}
	edited, err := svc.Save(ContentPageRequest{
		ID:      builtin.ID,
		Section: builtin.Section,
		Title:   "Наша философия (отредактировано)",
		Slug:    builtin.Slug,
		Content: "новый текст",
	})
	if err != nil {
		t.Fatalf("edit builtin: %v", err)
	}
	if edited.Builtin {
		t.Fatal("editing a builtin page must convert it to authored")
	}

	authored, err := svc.Save(ContentPageRequest{
		Section: model.SectionTrainings,
		Title:   "Авторская страница",
		Slug:    "authored-page",
		Content: "текст",
	})
	if err != nil {
		t.Fatalf("create authored: %v", err)
	}

	// Pretend a new fixtures version shipped.
	settings := repository.NewSettingRepository(db)
	if err := settings.Set(fixturesVersionKey, "2000-01-0"); err != nil {
		t.Fatalf("reset version: %v", err)
	}
	if err := svc.SyncFixtures(); err != nil {
		t.Fatalf("resync: %v", err)
	}

	// The edited page kept the manager's changes, the authored page survived.
	reloaded, err := svc.BySlug("philosophy")
	if err != nil {
		t.Fatalf("reload edited: %v", err)
	}
	if reloaded.Title != "Наша философия (отредактировано)" {
		t.Fatalf("fixture sync overwrote an authored page: %s", reloaded.Title)
	}
	if _, err := svc.ByID(authored.ID); err != nil {
		t.Fatalf("authored page lost: %v", err)
	}

	// Untouched builtin pages were refreshed in place, not duplicated.
	var count int64
	db.Model(&model.ContentPage{}).Where("slug = ?", "module-1-intro").Count(&count)
	if count != 1 {
		t.Fatalf("expected one module-1-intro row, got %d", count)
	}
}

func TestSaveRejectsDuplicateSlug(t *testing.T) {
	db := newTestDB(t)
	svc := newContentService(db)

	if _, err := svc.Save(ContentPageRequest{
		Section: model.SectionCodice,
		Title:   "Первая",
		Slug:    "first",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Save(ContentPageRequest{
		Section: model.SectionCodice,
		Title:   "Вторая",
		Slug:    "first",
	}); !errors.Is(err, util.ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}

	// Updating a page keeping its own slug is fine.
	page, _ := svc.BySlug("first")
	if _, err := svc.Save(ContentPageRequest{
		ID:      page.ID,
		Section: page.Section,
		Title:   "Первая правка",
		Slug:    "first",
	}); err != nil {
		t.Fatalf("self-update: %v", err)
	}
}

func TestSaveUnknownIDFails(t *testing.T) {
	db := newTestDB(t)
	svc := newContentService(db)

	if _, err := svc.Save(ContentPageRequest{
		ID:      "does-not-exist",
		Section: model.SectionCodice,
		Title:   "Фантом",
		Slug:    "phantom",
	}); !errors.Is(err, util.ErrContentNotFound) {
		t.Fatalf("expected ErrContentNotFound, got %v", err)
	}

	var count int64
	db.Model(&model.ContentPage{}).Count(&count)
	if count != 0 {
		t.Fatal("an unknown id must not create a page")
	}
}

func TestStaffViewStripsAnswers(t *testing.T) {
	db := newTestDB(t)
	svc := newContentService(db)
	page := seedExamPage(t, db, "module-1", threeQuestions())

	view := svc.StaffView(page)
	if len(view.Exam) != 3 {
		t.Fatalf("expected 3 stripped questions, got %d", len(view.Exam))
	}
	if len(view.ContentPage.Exam) != 0 {
		t.Fatal("raw exam payload leaked into the staff view")
	}
	for _, q := range view.Exam {
		if len(q.Options) == 0 || q.Question == "" {
			t.Fatalf("stripped question lost its content: %+v", q)
		}
	}
}

func TestDeleteThenReuseSlug(t *testing.T) {
	db := newTestDB(t)
	svc := newContentService(db)

	page, err := svc.Save(ContentPageRequest{Section: model.SectionCodice, Title: "X", Slug: "x"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(page.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(page.ID); !errors.Is(err, util.ErrContentNotFound) {
		t.Fatalf("expected ErrContentNotFound on double delete, got %v", err)
	}
	if _, err := svc.Save(ContentPageRequest{Section: model.SectionCodice, Title: "Y", Slug: "x"}); err != nil {
		t.Fatalf("slug must be reusable after delete: %v", err)
	}
}
