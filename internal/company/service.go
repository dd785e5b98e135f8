package company

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/freightdeck/freightdeck/internal/docstore"
	"github.com/freightdeck/freightdeck/internal/media"
	"github.com/freightdeck/freightdeck/internal/shared"
)

// resolveAttempts bounds how long KYC waits for the signup write to land.
const resolveAttempts = 3

// Uploader sends one file to the media store.
type Uploader interface {
	Upload(ctx context.Context, kind media.ResourceKind, folder, publicID, filename string, file io.Reader) (media.Asset, error)
}

// KYCSubmission carries everything the KYC form posts.
type KYCSubmission struct {
	Documents    map[string]media.FileUpload
	Logo         *media.FileUpload
	UploadMethod string
	Description  string
	Flags        map[string]bool
}

// Service exposes the company profile and KYC submission.
type Service struct {
	store    docstore.Store
	resolver *Resolver
	uploader Uploader
	logger   *slog.Logger
	now      func() time.Time
}

func NewService(store docstore.Store, resolver *Resolver, uploader Uploader, logger *slog.Logger) *Service {
	return &Service{
		store:    store,
		resolver: resolver,
		uploader: uploader,
		logger:   logger,
		now:      time.Now,
	}
}

// Get returns the account's company profile.
func (s *Service) Get(ctx context.Context, userID string) (Profile, error) {
	records, err := s.store.FindByField(ctx, Collection, "userId", userID)
	if err != nil {
		return Profile{}, err
	}
	if len(records) == 0 {
		return Profile{}, fmt.Errorf("%w: company profile", shared.ErrNotFound)
	}
	return Profile{Key: records[0].Key, Doc: records[0].Doc}, nil
}

// SubmitKYC uploads the five compliance documents plus the logo, one
// after another, then merges the results into the company profile and
// moves its KYC state to pending.
//
// Uploads that succeed before a later one fails are NOT rolled back;
// resubmitting the form overwrites the document slots and is the
// intended recovery path.
func (s *Service) SubmitKYC(ctx context.Context, userID string, sub KYCSubmission) (Profile, error) {
	if err := validateKYC(sub); err != nil {
		return Profile{}, err
	}

	companyName, err := s.resolver.ResolveWithRetry(ctx, userID, resolveAttempts)
	if err != nil {
		return Profile{}, err
	}
	if companyName == "" {
		return Profile{}, fmt.Errorf("%w: company profile", shared.ErrNotFound)
	}
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return Profile{}, err
	}

	documents := docstore.Document{}
	for _, slot := range kycDocumentSlots {
		file, ok := sub.Documents[slot.FormField]
		if !ok {
			continue
		}
		asset, err := s.uploadDocument(ctx, companyName, slot.FormField, file)
		if err != nil {
			return Profile{}, fmt.Errorf("upload %s: %w", slot.FormField, err)
		}
		documents[slot.DocKey] = docstore.Document{"publicId": asset.PublicID, "url": asset.URL}
	}

	update := docstore.Document{
		"documents":            documents,
		"documentUploadMethod": sub.UploadMethod,
		"description":          sub.Description,
		"kycStatus":            "pending",
		"kycSubmittedAt":       s.now().UTC().Format(time.RFC3339),
	}
	for _, flag := range serviceFlags {
		update[flag] = sub.Flags[flag]
	}

	if sub.Logo != nil {
		folder := media.CompanyFolder(companyName, "logo")
		publicID := media.CompanyPublicID(sub.Logo.Filename, s.now())
		asset, err := s.uploader.Upload(ctx, media.KindImage, folder, publicID, sub.Logo.Filename, sub.Logo.Content)
		if err != nil {
			return Profile{}, fmt.Errorf("upload logo: %w", err)
		}
		update["company_logo"] = asset.URL
	}

	if err := s.store.Upsert(ctx, Collection, profile.Key, update, true); err != nil {
		return Profile{}, err
	}
	s.logger.Info("kyc submitted", "user_id", userID, "company", companyName)

	merged, err := s.store.Get(ctx, Collection, profile.Key)
	if err != nil {
		return Profile{}, err
	}
	return Profile{Key: profile.Key, Doc: merged}, nil
}

func (s *Service) uploadDocument(ctx context.Context, companyName, docType string, file media.FileUpload) (media.Asset, error) {
	if err := media.CheckSize(file.Size, media.MaxDocumentBytes); err != nil {
		return media.Asset{}, err
	}
	folder := media.CompanyFolder(companyName, docType)
	publicID := media.CompanyPublicID(file.Filename, s.now())
	return s.uploader.Upload(ctx, media.KindAuto, folder, publicID, file.Filename, file.Content)
}

func validateKYC(sub KYCSubmission) error {
	if len(strings.TrimSpace(sub.Description)) < 20 {
		return fmt.Errorf("%w: description must be at least 20 characters", shared.ErrValidation)
	}
	missing := make([]string, 0, len(kycDocumentSlots))
	for _, slot := range kycDocumentSlots {
		if _, ok := sub.Documents[slot.FormField]; !ok {
			missing = append(missing, slot.FormField)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing documents: %s", shared.ErrValidation, strings.Join(missing, ", "))
	}
	if sub.Logo != nil {
		if err := media.CheckSize(sub.Logo.Size, media.MaxLogoBytes); err != nil {
			return err
		}
		if err := media.CheckLogoContentType(sub.Logo.ContentType); err != nil {
			return err
		}
	}
	return nil
}
