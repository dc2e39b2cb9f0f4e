package service

import (
	"gmmarket/internal/domain"
	"gmmarket/internal/repository"
)

// AdService handles ad lifecycle business logic
type AdService struct {
	adRepo repository.AdRepository
}

// NewAdService creates a new ad service
func NewAdService(adRepo repository.AdRepository) *AdService {
	return &AdService{adRepo: adRepo}
}

// Create validates a completed draft and stores the ad
func (s *AdService) Create(ownerID int64, draft domain.AdDraft) (int64, error) {
	if err := domain.ValidateTitle(draft.Title); err != nil {
		return 0, err
	}
	if err := domain.ValidateDescription(draft.Description); err != nil {
		return 0, err
	}
	if err := domain.ValidatePrice(draft.Price); err != nil {
		return 0, err
	}
	if _, err := domain.ParseCategory(string(draft.Category)); err != nil {
		return 0, err
	}

	photos := domain.FilterPhotos(draft.Photos)
	if len(photos) > domain.MaxPhotos {
		return 0, domain.Validationf("at most %d photos allowed, got %d", domain.MaxPhotos, len(photos))
	}

	return s.adRepo.Create(&domain.Ad{
		OwnerID:     ownerID,
		Title:       draft.Title,
		Description: draft.Description,
		Price:       draft.Price,
		Category:    draft.Category,
		Photos:      photos,
	})
}

// Get returns an active ad with its owner, or nil if absent
func (s *AdService) Get(id int64) (*domain.AdView, error) {
	return s.adRepo.GetByID(id)
}

// BrowsePage fetches one page of a category live: the page index is
// clamped to the current ad count, and the ad at that offset is
// re-fetched rather than snapshotted. Returns a nil ad for an empty
// category.
func (s *AdService) BrowsePage(category domain.Category, page int) (*domain.AdView, int, int, error) {
	total, err := s.adRepo.CountByCategory(category)
	if err != nil {
		return nil, 0, 0, err
	}
	if total == 0 {
		return nil, 0, 0, nil
	}

	if page < 0 {
		page = 0
	}
	if page > total-1 {
		page = total - 1
	}

	ads, err := s.adRepo.ListByCategory(category, page, 1)
	if err != nil {
		return nil, 0, 0, err
	}
	if len(ads) == 0 {
		return nil, total, page, nil
	}

	return &ads[0], total, page, nil
}

// UserAds returns the user's own active ads
func (s *AdService) UserAds(ownerID int64) ([]domain.Ad, error) {
	return s.adRepo.ListByOwner(ownerID)
}

// AllAds returns the admin audit view of all active ads
func (s *AdService) AllAds() ([]domain.AdView, error) {
	return s.adRepo.ListAll()
}

// UpdateTitle validates and stores a new title
func (s *AdService) UpdateTitle(id int64, title string) error {
	if err := domain.ValidateTitle(title); err != nil {
		return err
	}
	return s.adRepo.UpdateFields(id, domain.AdPatch{Title: &title})
}

// UpdateDescription validates and stores a new description
func (s *AdService) UpdateDescription(id int64, description string) error {
	if err := domain.ValidateDescription(description); err != nil {
		return err
	}
	return s.adRepo.UpdateFields(id, domain.AdPatch{Description: &description})
}

// UpdatePrice validates and stores a new price
func (s *AdService) UpdatePrice(id int64, price string) error {
	if err := domain.ValidatePrice(price); err != nil {
		return err
	}
	return s.adRepo.UpdateFields(id, domain.AdPatch{Price: &price})
}

// ReplacePhotos replaces the ad's photo list. Unlike creation, the
// replacement flow requires at least one valid photo.
func (s *AdService) ReplacePhotos(id int64, photos []string) error {
	photos = domain.FilterPhotos(photos)
	if len(photos) == 0 {
		return domain.Validationf("at least one photo required")
	}
	if len(photos) > domain.MaxPhotos {
		return domain.Validationf("at most %d photos allowed, got %d", domain.MaxPhotos, len(photos))
	}
	return s.adRepo.UpdateFields(id, domain.AdPatch{Photos: photos})
}

// Delete soft-deletes the ad; the row stays visible to admins
func (s *AdService) Delete(id int64) error {
	return s.adRepo.SoftDelete(id)
}
