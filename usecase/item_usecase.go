package usecase

import (
	"context"
	"time"

	"yu-marketplace-backend/dao"
	"yu-marketplace-backend/model"
	"yu-marketplace-backend/pkg/apperr"
)

type ItemStore interface {
	Insert(ctx context.Context, item *model.Item) error
	Update(ctx context.Context, item *model.Item) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*model.Item, error)
	List(ctx context.Context, q dao.ListQuery) ([]model.Item, error)
	Count(ctx context.Context, q dao.ListQuery) (int, error)
	ListBySeller(ctx context.Context, sellerID string) ([]model.Item, error)
}

type ItemUsecase struct {
	repo     ItemStore
	pageSize int
}

func NewItemUsecase(repo ItemStore, pageSize int) *ItemUsecase {
	return &ItemUsecase{repo: repo, pageSize: pageSize}
}

// ItemInput carries the mutable listing fields.
type ItemInput struct {
	Name        string `json:"name"`
	Price       int    `json:"price"`
	Category    string `json:"category"`
	Location    string `json:"location"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

func validateItemInput(in ItemInput) error {
	if in.Name == "" {
		return apperr.Validation("missing item name")
	}
	if in.Price < 0 {
		return apperr.Validation("price must not be negative")
	}
	return nil
}

func (u *ItemUsecase) Create(ctx context.Context, seller *model.User, in ItemInput) (*model.Item, error) {
	if err := validateItemInput(in); err != nil {
		return nil, err
	}

	item := &model.Item{
		ID:          newULID(),
		Name:        in.Name,
		Price:       in.Price,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
		SellerID:    seller.ID,
		SellerName:  seller.Username,
		Location:    in.Location,
		Description: in.Description,
		CreatedAt:   time.Now(),
	}
	if err := u.repo.Insert(ctx, item); err != nil {
		return nil, apperr.Store("creating item", err)
	}
	return item, nil
}

func (u *ItemUsecase) Get(ctx context.Context, id string) (*model.Item, error) {
	item, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Store("looking up item", err)
	}
	if item == nil {
		return nil, apperr.NotFound("item not found")
	}
	return item, nil
}

// Update rewrites the listing fields. Only the seller may do this.
func (u *ItemUsecase) Update(ctx context.Context, actor *model.User, id string, in ItemInput) (*model.Item, error) {
	item, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.SellerID != actor.ID {
		return nil, apperr.Forbidden("only the seller can edit this item")
	}
	if err := validateItemInput(in); err != nil {
		return nil, err
	}

	item.Name = in.Name
	item.Price = in.Price
	item.Category = in.Category
	item.Location = in.Location
	item.Description = in.Description
	if in.ImageURL != "" {
		item.ImageURL = in.ImageURL
	}
	if err := u.repo.Update(ctx, item); err != nil {
		return nil, apperr.Store("updating item", err)
	}
	return item, nil
}

// Delete removes the listing. Messages about it are kept; the inbox
// drops them from view once the item no longer resolves.
func (u *ItemUsecase) Delete(ctx context.Context, actor *model.User, id string) error {
	item, err := u.Get(ctx, id)
	if err != nil {
		return err
	}
	if item.SellerID != actor.ID {
		return apperr.Forbidden("only the seller can delete this item")
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		return apperr.Store("deleting item", err)
	}
	return nil
}

// Page is one browse result page.
type Page struct {
	Items      []model.Item `json:"items"`
	Page       int          `json:"page"`
	TotalPages int          `json:"total_pages"`
	Total      int          `json:"total"`
}

// Browse applies the category filter, search, sort and offset
// pagination. Unknown sort values fall back to newest; a page past
// the end is an empty page, not an error.
func (u *ItemUsecase) Browse(ctx context.Context, category, search, sort string, page int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	switch sort {
	case dao.SortPriceAsc, dao.SortPriceDesc, dao.SortCategoryAsc:
	default:
		sort = dao.SortNewest
	}

	q := dao.ListQuery{
		Category: category,
		Search:   search,
		Sort:     sort,
		Limit:    u.pageSize,
		Offset:   (page - 1) * u.pageSize,
	}

	total, err := u.repo.Count(ctx, q)
	if err != nil {
		return nil, apperr.Store("counting items", err)
	}
	items, err := u.repo.List(ctx, q)
	if err != nil {
		return nil, apperr.Store("listing items", err)
	}
	if items == nil {
		items = []model.Item{}
	}

	return &Page{
		Items:      items,
		Page:       page,
		TotalPages: (total + u.pageSize - 1) / u.pageSize,
		Total:      total,
	}, nil
}
