package services

import (
	"errors"
	"fmt"

	"github.com/fossabot/short/internal/models"
	"github.com/fossabot/short/pkg/utils"

	"gorm.io/gorm"
)

var (
	// ErrSlugTaken signals a uniqueness conflict, either from the pre-check
	// or from the store's unique index.
	ErrSlugTaken = errors.New("slug already taken")
	// ErrSlugSpaceExhausted is the defensive bound on adaptive slug growth.
	ErrSlugSpaceExhausted = errors.New("slug space exhausted")
	// ErrBadStatus rejects toggling any status other than ok/proxy.
	ErrBadStatus = errors.New("status cannot be toggled")
)

// maxGeneratedSlugLength caps adaptive growth. The search space grows
// exponentially with length, so hitting this means something is badly wrong
// with the store, not with luck.
const maxGeneratedSlugLength = 32

type LinkService struct {
	db                *gorm.DB
	classifier        *Classifier
	initialSlugLength int
	slugGenerator     func(int) string
}

func NewLinkService(db *gorm.DB, classifier *Classifier, initialSlugLength int) *LinkService {
	if initialSlugLength < 2 {
		initialSlugLength = 6
	}
	return &LinkService{
		db:                db,
		classifier:        classifier,
		initialSlugLength: initialSlugLength,
		slugGenerator:     utils.GeneratePrefixedSlug,
	}
}

// FindBySlug returns the link for slug, or nil when it does not exist.
func (s *LinkService) FindBySlug(slug string) (*models.Link, error) {
	var link models.Link
	err := s.db.Where("slug = ?", slug).First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

// FindByURL returns some link targeting url, or nil. Used by the anonymous
// creation dedup path; which of several matches comes back is unspecified.
func (s *LinkService) FindByURL(url string) (*models.Link, error) {
	var link models.Link
	err := s.db.Where("url = ?", url).First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

// Insert stores a new link. The unique index on slug is the authoritative
// conflict signal: concurrent check-then-insert races surface here as
// ErrSlugTaken.
func (s *LinkService) Insert(link *models.Link) error {
	if err := s.db.Create(link).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrSlugTaken
		}
		return fmt.Errorf("CreateLink: %w", err)
	}
	return nil
}

// GenerateUniqueSlug produces a sentinel-prefixed random slug not present in
// the store at the moment of check. On collision the length grows by one and
// never shrinks, so retries search an exponentially larger space.
func (s *LinkService) GenerateUniqueSlug() (string, error) {
	for length := s.initialSlugLength; length <= maxGeneratedSlugLength; length++ {
		slug := s.slugGenerator(length)
		existing, err := s.FindBySlug(slug)
		if err != nil {
			return "", fmt.Errorf("GenerateSlug: %w", err)
		}
		if existing == nil {
			return slug, nil
		}
	}
	return "", ErrSlugSpaceExhausted
}

// DomainBanned classifies rawURL and checks the denylist.
func (s *LinkService) DomainBanned(rawURL string) (bool, error) {
	domain, err := s.classifier.RegistrableDomain(rawURL)
	if err != nil {
		return false, err
	}
	var ban models.BanDomain
	err = s.db.Where("domain = ?", domain).First(&ban).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("BanCheck: %w", err)
	}
	return true, nil
}

// VerifyPassword compares a plaintext management password against the stored
// SHA-256 digest. Links without a stored hash always fail: they are locked
// open for reads only.
func (s *LinkService) VerifyPassword(link *models.Link, password string) bool {
	if link == nil || !link.Managed() {
		return false
	}
	return utils.CheckPasswordHash(password, *link.PasswordHash)
}

func (s *LinkService) UpdateURL(slug, newURL string) error {
	if err := s.db.Model(&models.Link{}).Where("slug = ?", slug).Update("url", newURL).Error; err != nil {
		return fmt.Errorf("UpdateURL: %w", err)
	}
	return nil
}

// UpdateSlug renames a link in place. The old slug becomes immediately
// available for re-registration.
func (s *LinkService) UpdateSlug(oldSlug, newSlug string) error {
	existing, err := s.FindBySlug(newSlug)
	if err != nil {
		return fmt.Errorf("UpdateSlug: %w", err)
	}
	if existing != nil {
		return ErrSlugTaken
	}
	if err := s.db.Model(&models.Link{}).Where("slug = ?", oldSlug).Update("slug", newSlug).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrSlugTaken
		}
		return fmt.Errorf("UpdateSlug: %w", err)
	}
	return nil
}

func (s *LinkService) UpdatePassword(slug, passwordHash string) error {
	if err := s.db.Model(&models.Link{}).Where("slug = ?", slug).Update("password_hash", passwordHash).Error; err != nil {
		return fmt.Errorf("UpdatePassword: %w", err)
	}
	return nil
}

// ToggleStatus flips strictly between ok and proxy and returns the new
// status. Any other current status is ErrBadStatus: ban/skip/404 require
// direct store access.
func (s *LinkService) ToggleStatus(slug, currentStatus string) (string, error) {
	var newStatus string
	switch currentStatus {
	case models.StatusOK:
		newStatus = models.StatusProxy
	case models.StatusProxy:
		newStatus = models.StatusOK
	default:
		return "", ErrBadStatus
	}
	if err := s.db.Model(&models.Link{}).Where("slug = ?", slug).Update("status", newStatus).Error; err != nil {
		return "", fmt.Errorf("ToggleStatus: %w", err)
	}
	return newStatus, nil
}

// Delete removes the link row. Access logs are retained.
func (s *LinkService) Delete(slug string) error {
	if err := s.db.Where("slug = ?", slug).Delete(&models.Link{}).Error; err != nil {
		return fmt.Errorf("DeleteSlug: %w", err)
	}
	return nil
}
