package catalog

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/velora-beauty/velora/internal/audit"
	"github.com/velora-beauty/velora/internal/cache"
	"github.com/velora-beauty/velora/internal/shared"
)

// Service coordinates catalog reads/writes, the public listing cache, and
// audit records for every mutation.
type Service struct {
	repo     RepositoryPort
	cache    *cache.Cache
	recorder *audit.Recorder
	now      func() time.Time
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, c *cache.Cache, recorder *audit.Recorder) *Service {
	return &Service{repo: repo, cache: c, recorder: recorder, now: time.Now}
}

// PublicList returns all categories through the listing cache.
func (s *Service) PublicList(ctx context.Context) ([]Category, error) {
	var items []Category
	err := s.cache.FetchJSON(ctx, cache.KeyServicesList, &items, func(ctx context.Context) (interface{}, error) {
		return s.repo.ListCategories(ctx)
	})
	return items, err
}

// List returns all categories for the admin surface and audits the read.
func (s *Service) List(ctx context.Context, sess *shared.Session) ([]Category, error) {
	items, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, sess, "services:list", "service", map[string]any{"count": len(items)})
	return items, nil
}

// CreateCategory stores a new category. The slug defaults to a normalized
// form of the name when absent.
func (s *Service) CreateCategory(ctx context.Context, sess *shared.Session, cat Category) error {
	if cat.Name == "" {
		return fmt.Errorf("%w: name is required", shared.ErrValidation)
	}
	if cat.Slug == "" {
		cat.Slug = Slugify(cat.Name)
	}
	now := audit.FormatTime(s.now())
	cat.CreatedAt = now
	cat.UpdatedAt = now
	if err := s.repo.InsertCategory(ctx, cat); err != nil {
		return err
	}
	s.recorder.Record(ctx, sess, "services:create", "service", map[string]any{
		"name": cat.Name,
		"slug": cat.Slug,
	})
	return s.invalidate(ctx)
}

// UpdateCategory mutates category name/slug/description.
func (s *Service) UpdateCategory(ctx context.Context, sess *shared.Session, id string, cat Category) error {
	set := bson.M{"updatedAt": audit.FormatTime(s.now())}
	details := map[string]any{"resourceId": id}
	if cat.Name != "" {
		set["name"] = cat.Name
		details["name"] = cat.Name
	}
	if cat.Slug != "" {
		set["slug"] = cat.Slug
		details["slug"] = cat.Slug
	}
	if cat.Description != "" {
		set["description"] = cat.Description
	}
	if err := s.repo.UpdateCategory(ctx, id, set); err != nil {
		return err
	}
	s.recorder.Record(ctx, sess, "services:update", "service", details)
	return s.invalidate(ctx)
}

// DeleteCategory removes a category and everything nested in it.
func (s *Service) DeleteCategory(ctx context.Context, sess *shared.Session, id string) error {
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.recorder.Record(ctx, sess, "services:delete", "service", map[string]any{"resourceId": id})
	return s.invalidate(ctx)
}

// ListItems returns the service items of one category.
func (s *Service) ListItems(ctx context.Context, sess *shared.Session, categoryID string) ([]Item, error) {
	cat, err := s.repo.FindCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, sess, "serviceItems:list", "serviceItem", map[string]any{
		"categoryId": categoryID,
		"count":      len(cat.Services),
	})
	return cat.Services, nil
}

// CreateItem appends a service item to a category.
func (s *Service) CreateItem(ctx context.Context, sess *shared.Session, categoryID string, item Item) (Item, error) {
	if item.Name == "" {
		return Item{}, fmt.Errorf("%w: name is required", shared.ErrValidation)
	}
	if item.Slug == "" {
		item.Slug = Slugify(item.Name)
	}
	now := s.now()
	if item.ID == "" {
		item.ID = fmt.Sprintf("%s-%d", item.Slug, now.UnixMilli())
	}
	cat, err := s.repo.FindCategory(ctx, categoryID)
	if err != nil {
		return Item{}, err
	}
	if item.Position == 0 {
		item.Position = len(cat.Services)
	}
	ts := audit.FormatTime(now)
	item.CreatedAt = ts
	item.UpdatedAt = ts
	if err := s.repo.PushItem(ctx, categoryID, item, ts); err != nil {
		return Item{}, err
	}
	s.recorder.Record(ctx, sess, "serviceItems:create", "serviceItem", map[string]any{
		"categoryId": categoryID,
		"name":       item.Name,
		"slug":       item.Slug,
	})
	return item, s.invalidate(ctx)
}

// UpdateItem replaces a service item wholesale.
func (s *Service) UpdateItem(ctx context.Context, sess *shared.Session, categoryID string, item Item) error {
	if item.ID == "" {
		return fmt.Errorf("%w: item id is required", shared.ErrValidation)
	}
	ts := audit.FormatTime(s.now())
	item.UpdatedAt = ts
	if err := s.repo.ReplaceItem(ctx, categoryID, item, ts); err != nil {
		return err
	}
	s.recorder.Record(ctx, sess, "serviceItems:update", "serviceItem", map[string]any{
		"categoryId": categoryID,
		"resourceId": item.ID,
	})
	return s.invalidate(ctx)
}

// DeleteItem removes a service item from a category.
func (s *Service) DeleteItem(ctx context.Context, sess *shared.Session, categoryID, itemID string) error {
	ts := audit.FormatTime(s.now())
	if err := s.repo.PullItem(ctx, categoryID, itemID, ts); err != nil {
		return err
	}
	s.recorder.Record(ctx, sess, "serviceItems:delete", "serviceItem", map[string]any{
		"categoryId": categoryID,
		"resourceId": itemID,
	})
	return s.invalidate(ctx)
}

// CreateVariant appends a variant to a nested service item.
func (s *Service) CreateVariant(ctx context.Context, sess *shared.Session, categoryID, itemID string, variant Variant) (Variant, error) {
	if variant.Name == "" {
		return Variant{}, fmt.Errorf("%w: name is required", shared.ErrValidation)
	}
	now := s.now()
	if variant.ID == "" {
		variant.ID = fmt.Sprintf("%s-%d", Slugify(variant.Name), now.UnixMilli())
	}
	ts := audit.FormatTime(now)
	if err := s.repo.PushVariant(ctx, categoryID, itemID, variant, ts); err != nil {
		return Variant{}, err
	}
	s.recorder.Record(ctx, sess, "serviceVariants:create", "serviceVariant", map[string]any{
		"categoryId": categoryID,
		"itemId":     itemID,
		"name":       variant.Name,
	})
	return variant, s.invalidate(ctx)
}

// UpdateVariant replaces a variant in place.
func (s *Service) UpdateVariant(ctx context.Context, sess *shared.Session, categoryID, itemID string, variant Variant) error {
	if variant.ID == "" {
		return fmt.Errorf("%w: variant id is required", shared.ErrValidation)
	}
	ts := audit.FormatTime(s.now())
	if err := s.repo.ReplaceVariant(ctx, categoryID, itemID, variant, ts); err != nil {
		return err
	}
	s.recorder.Record(ctx, sess, "serviceVariants:update", "serviceVariant", map[string]any{
		"categoryId": categoryID,
		"itemId":     itemID,
		"resourceId": variant.ID,
	})
	return s.invalidate(ctx)
}

// DeleteVariant removes a variant from a nested service item.
func (s *Service) DeleteVariant(ctx context.Context, sess *shared.Session, categoryID, itemID, variantID string) error {
	ts := audit.FormatTime(s.now())
	if err := s.repo.PullVariant(ctx, categoryID, itemID, variantID, ts); err != nil {
		return err
	}
	s.recorder.Record(ctx, sess, "serviceVariants:delete", "serviceVariant", map[string]any{
		"categoryId": categoryID,
		"itemId":     itemID,
		"resourceId": variantID,
	})
	return s.invalidate(ctx)
}

func (s *Service) invalidate(ctx context.Context) error {
	return s.cache.Invalidate(ctx, cache.KeyServicesList)
}
