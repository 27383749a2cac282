package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"yu-marketplace-backend/dao"
	"yu-marketplace-backend/model"
	"yu-marketplace-backend/pkg/apperr"
)

// fakeItemStore applies ListQuery in memory with the same semantics
// the SQL layer promises: case-insensitive filters and the id ASC
// tiebreak on every ordering.
type fakeItemStore struct {
	items []model.Item
}

func (f *fakeItemStore) Insert(ctx context.Context, item *model.Item) error {
	f.items = append(f.items, *item)
	return nil
}

func (f *fakeItemStore) Update(ctx context.Context, item *model.Item) error {
	for i := range f.items {
		if f.items[i].ID == item.ID {
			f.items[i] = *item
			return nil
		}
	}
	return nil
}

func (f *fakeItemStore) Delete(ctx context.Context, id string) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeItemStore) GetByID(ctx context.Context, id string) (*model.Item, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			item := f.items[i]
			return &item, nil
		}
	}
	return nil, nil
}

func (f *fakeItemStore) filtered(q dao.ListQuery) []model.Item {
	var out []model.Item
	for _, item := range f.items {
		if q.Category != "" && !strings.EqualFold(item.Category, q.Category) {
			continue
		}
		if q.Search != "" {
			needle := strings.ToLower(q.Search)
			if !strings.Contains(strings.ToLower(item.Name), needle) &&
				!strings.Contains(strings.ToLower(item.SellerName), needle) {
				continue
			}
		}
		out = append(out, item)
	}
	return out
}

func (f *fakeItemStore) List(ctx context.Context, q dao.ListQuery) ([]model.Item, error) {
	out := f.filtered(q)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch q.Sort {
		case dao.SortPriceAsc:
			if a.Price != b.Price {
				return a.Price < b.Price
			}
		case dao.SortPriceDesc:
			if a.Price != b.Price {
				return a.Price > b.Price
			}
		case dao.SortCategoryAsc:
			if a.Category != b.Category {
				return a.Category < b.Category
			}
		default:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
		}
		return a.ID < b.ID
	})
	if q.Offset >= len(out) {
		return nil, nil
	}
	out = out[q.Offset:]
	if q.Limit < len(out) {
		out = out[:q.Limit]
	}
	return out, nil
}

func (f *fakeItemStore) Count(ctx context.Context, q dao.ListQuery) (int, error) {
	return len(f.filtered(q)), nil
}

func (f *fakeItemStore) ListBySeller(ctx context.Context, sellerID string) ([]model.Item, error) {
	var out []model.Item
	for _, item := range f.items {
		if item.SellerID == sellerID {
			out = append(out, item)
		}
	}
	return out, nil
}

func seedItems(store *fakeItemStore, n int) {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		store.items = append(store.items, model.Item{
			ID:        fmt.Sprintf("i%03d", i),
			Name:      fmt.Sprintf("thing %d", i),
			Price:     i,
			Category:  "misc",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
}

func TestBrowsePagination(t *testing.T) {
	store := &fakeItemStore{}
	seedItems(store, 25)
	uc := NewItemUsecase(store, 10)
	ctx := context.Background()

	page1, err := uc.Browse(ctx, "", "", "", 1)
	if err != nil {
		t.Fatalf("Browse failed: %v", err)
	}
	if page1.Total != 25 || page1.TotalPages != 3 || len(page1.Items) != 10 {
		t.Fatalf("page 1 = total %d pages %d items %d", page1.Total, page1.TotalPages, len(page1.Items))
	}

	// Last page holds the remainder.
	page3, err := uc.Browse(ctx, "", "", "", 3)
	if err != nil {
		t.Fatalf("Browse failed: %v", err)
	}
	if len(page3.Items) != 5 {
		t.Fatalf("page 3 items = %d, want 5", len(page3.Items))
	}

	// Past the end: empty page, no error.
	page4, err := uc.Browse(ctx, "", "", "", 4)
	if err != nil {
		t.Fatalf("Browse failed: %v", err)
	}
	if len(page4.Items) != 0 || page4.TotalPages != 3 {
		t.Fatalf("page 4 = %d items, %d pages", len(page4.Items), page4.TotalPages)
	}
}

func TestBrowseFilterSortCompose(t *testing.T) {
	store := &fakeItemStore{}
	store.items = []model.Item{
		{ID: "a", Name: "calculus", Category: "Books", Price: 30},
		{ID: "b", Name: "lamp", Category: "furniture", Price: 5},
		{ID: "c", Name: "algebra", Category: "books", Price: 10},
		{ID: "d", Name: "poetry", Category: "books", Price: 20},
	}
	uc := NewItemUsecase(store, 10)

	page, err := uc.Browse(context.Background(), "books", "", dao.SortPriceAsc, 1)
	if err != nil {
		t.Fatalf("Browse failed: %v", err)
	}
	if len(page.Items) != 3 {
		t.Fatalf("expected 3 books, got %d", len(page.Items))
	}
	for i, item := range page.Items {
		if !strings.EqualFold(item.Category, "books") {
			t.Fatalf("non-book in results: %+v", item)
		}
		if i > 0 && page.Items[i-1].Price > item.Price {
			t.Fatalf("prices not non-decreasing: %+v", page.Items)
		}
	}
}

func TestBrowseSortTiebreakByID(t *testing.T) {
	store := &fakeItemStore{}
	store.items = []model.Item{
		{ID: "z", Name: "one", Price: 10},
		{ID: "a", Name: "two", Price: 10},
		{ID: "m", Name: "three", Price: 10},
	}
	uc := NewItemUsecase(store, 10)

	page, err := uc.Browse(context.Background(), "", "", dao.SortPriceAsc, 1)
	if err != nil {
		t.Fatalf("Browse failed: %v", err)
	}
	got := []string{page.Items[0].ID, page.Items[1].ID, page.Items[2].ID}
	if got[0] != "a" || got[1] != "m" || got[2] != "z" {
		t.Fatalf("equal prices not ordered by id: %v", got)
	}
}

func TestBrowseSearchMatchesNameOrSeller(t *testing.T) {
	store := &fakeItemStore{}
	store.items = []model.Item{
		{ID: "a", Name: "Desk Lamp", SellerName: "alice"},
		{ID: "b", Name: "Notebook", SellerName: "lampman"},
		{ID: "c", Name: "Pen", SellerName: "bob"},
	}
	uc := NewItemUsecase(store, 10)

	page, err := uc.Browse(context.Background(), "", "LAMP", "", 1)
	if err != nil {
		t.Fatalf("Browse failed: %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 matches (name and seller), got %d", len(page.Items))
	}
}

func TestCreateValidation(t *testing.T) {
	store := &fakeItemStore{}
	uc := NewItemUsecase(store, 10)
	seller := &model.User{ID: "u1", Username: "alice"}
	ctx := context.Background()

	if _, err := uc.Create(ctx, seller, ItemInput{Name: "", Price: 5}); !apperr.IsCode(err, apperr.CodeValidation) {
		t.Fatalf("expected VALIDATION for missing name, got %v", err)
	}
	if _, err := uc.Create(ctx, seller, ItemInput{Name: "pen", Price: -1}); !apperr.IsCode(err, apperr.CodeValidation) {
		t.Fatalf("expected VALIDATION for negative price, got %v", err)
	}
	if len(store.items) != 0 {
		t.Fatalf("rejected creates inserted %d items", len(store.items))
	}

	item, err := uc.Create(ctx, seller, ItemInput{Name: "pen", Price: 0})
	if err != nil {
		t.Fatalf("zero price should be accepted: %v", err)
	}
	if item.SellerID != "u1" || item.SellerName != "alice" {
		t.Fatalf("seller not recorded: %+v", item)
	}
}

func TestEditDeleteRequireOwnership(t *testing.T) {
	store := &fakeItemStore{}
	uc := NewItemUsecase(store, 10)
	owner := &model.User{ID: "u1", Username: "alice"}
	stranger := &model.User{ID: "u2", Username: "mallory"}
	ctx := context.Background()

	item, err := uc.Create(ctx, owner, ItemInput{Name: "bike", Price: 50})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := uc.Update(ctx, stranger, item.ID, ItemInput{Name: "stolen", Price: 1}); !apperr.IsCode(err, apperr.CodeForbidden) {
		t.Fatalf("expected FORBIDDEN on foreign edit, got %v", err)
	}
	if err := uc.Delete(ctx, stranger, item.ID); !apperr.IsCode(err, apperr.CodeForbidden) {
		t.Fatalf("expected FORBIDDEN on foreign delete, got %v", err)
	}

	got, _ := store.GetByID(ctx, item.ID)
	if got == nil || got.Name != "bike" {
		t.Fatalf("item mutated by rejected calls: %+v", got)
	}

	if _, err := uc.Update(ctx, owner, item.ID, ItemInput{Name: "bike v2", Price: 45}); err != nil {
		t.Fatalf("owner edit failed: %v", err)
	}
	if err := uc.Delete(ctx, owner, item.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if _, err := uc.Get(ctx, item.ID); !apperr.IsCode(err, apperr.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND after delete, got %v", err)
	}
}

func TestUpdateMissingItem(t *testing.T) {
	uc := NewItemUsecase(&fakeItemStore{}, 10)
	actor := &model.User{ID: "u1", Username: "alice"}

	if _, err := uc.Update(context.Background(), actor, "nope", ItemInput{Name: "x", Price: 1}); !apperr.IsCode(err, apperr.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}
