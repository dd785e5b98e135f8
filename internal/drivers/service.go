package drivers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/freightdeck/freightdeck/internal/docstore"
	"github.com/freightdeck/freightdeck/internal/media"
	"github.com/freightdeck/freightdeck/internal/shared"
)

// CompanyResolver resolves the company name an account belongs to.
type CompanyResolver interface {
	Resolve(ctx context.Context, userID string) (string, error)
}

// Uploader sends one file to the media store.
type Uploader interface {
	Upload(ctx context.Context, kind media.ResourceKind, folder, publicID, filename string, file io.Reader) (media.Asset, error)
}

// Service exposes the driver roster and its approval workflow.
type Service struct {
	repo     Repository
	resolver CompanyResolver
	uploader Uploader
	logger   *slog.Logger
	now      func() time.Time
}

func NewService(repo Repository, resolver CompanyResolver, uploader Uploader, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		resolver: resolver,
		uploader: uploader,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *Service) attribution(ctx context.Context, userID string) (string, error) {
	company, err := s.resolver.Resolve(ctx, userID)
	if err != nil {
		return "", err
	}
	if company == "" {
		return corporateAdmin, nil
	}
	return company, nil
}

// List returns the account's driver roster after visibility and search
// filtering.
func (s *Service) List(ctx context.Context, userID, searchText string) ([]Driver, error) {
	company, err := s.resolver.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}

	all, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	visible := make([]Driver, 0, len(all))
	for _, d := range all {
		if Visible(d, company) {
			visible = append(visible, d)
		}
	}
	return Filter(visible, company, searchText), nil
}

// Save writes a driver record keyed by mobile number. The write replaces
// the stored document, so fields the form did not carry are pulled
// forward from the existing record first.
func (s *Service) Save(ctx context.Context, userID string, form docstore.Document) (Driver, error) {
	mobile := strings.TrimSpace(form.String("mobileNumber"))
	if mobile == "" || strings.TrimSpace(form.String("firstName")) == "" {
		return Driver{}, fmt.Errorf("%w: firstName and mobileNumber are required", shared.ErrValidation)
	}

	company, err := s.attribution(ctx, userID)
	if err != nil {
		return Driver{}, err
	}

	nowISO := s.now().UTC().Format(time.RFC3339)
	doc := form.Clone()
	doc["mobileNumber"] = mobile
	doc["userId"] = userID
	doc["approvalStatus"] = "approved"
	doc["approvedBy"] = company
	doc["approvedDate"] = nowISO

	existing, err := s.repo.Get(ctx, mobile)
	switch {
	case err == nil:
		for _, field := range []string{"registrationDate", "occupied", "documents"} {
			if _, ok := doc[field]; !ok {
				if v, ok := existing.Doc[field]; ok {
					doc[field] = v
				}
			}
		}
	case errors.Is(err, shared.ErrNotFound):
		doc["registrationDate"] = nowISO
	default:
		return Driver{}, err
	}
	if _, ok := doc["occupied"]; !ok {
		doc["occupied"] = false
	}

	if err := s.repo.Set(ctx, mobile, doc); err != nil {
		return Driver{}, err
	}
	s.logger.Info("driver saved", "mobile", mobile, "approved_by", company)
	return Driver{Key: mobile, Doc: doc}, nil
}

// Approve moves a pending driver onto the company's roster.
func (s *Service) Approve(ctx context.Context, userID, mobile string) error {
	if _, err := s.repo.Get(ctx, mobile); err != nil {
		return err
	}
	company, err := s.attribution(ctx, userID)
	if err != nil {
		return err
	}
	patch := docstore.Document{
		"approvalStatus": "approved",
		"approvedBy":     company,
		"approvedDate":   s.now().UTC().Format(time.RFC3339),
	}
	if err := s.repo.Merge(ctx, mobile, patch); err != nil {
		return err
	}
	s.logger.Info("driver approved", "mobile", mobile, "approved_by", company)
	return nil
}

// Reject marks a pending driver rejected with an audit trail. An empty
// reason is recorded as such rather than dropped.
func (s *Service) Reject(ctx context.Context, userID, mobile, reason string) error {
	if _, err := s.repo.Get(ctx, mobile); err != nil {
		return err
	}
	company, err := s.attribution(ctx, userID)
	if err != nil {
		return err
	}
	if strings.TrimSpace(reason) == "" {
		reason = "No reason provided"
	}
	patch := docstore.Document{
		"approvalStatus":  "rejected",
		"rejectedBy":      company,
		"rejectedDate":    s.now().UTC().Format(time.RFC3339),
		"rejectionReason": reason,
	}
	if err := s.repo.Merge(ctx, mobile, patch); err != nil {
		return err
	}
	s.logger.Info("driver rejected", "mobile", mobile, "rejected_by", company)
	return nil
}

// Delete removes a driver record.
func (s *Service) Delete(ctx context.Context, mobile string) error {
	if err := s.repo.Delete(ctx, mobile); err != nil {
		return err
	}
	s.logger.Info("driver deleted", "mobile", mobile)
	return nil
}

// UploadDocument stores one verification document for a driver and
// records where it landed on the driver's record.
func (s *Service) UploadDocument(ctx context.Context, mobile, docType string, file media.FileUpload) (media.Asset, error) {
	if !slices.Contains(DocumentTypes, docType) {
		return media.Asset{}, fmt.Errorf("%w: unknown document type %q", shared.ErrValidation, docType)
	}
	if err := media.CheckDriverContentType(file.ContentType); err != nil {
		return media.Asset{}, err
	}
	if err := media.CheckSize(file.Size, media.MaxDocumentBytes); err != nil {
		return media.Asset{}, err
	}
	existing, err := s.repo.Get(ctx, mobile)
	if err != nil {
		return media.Asset{}, err
	}

	folder := media.DriverFolder(mobile, docType)
	publicID := media.DriverPublicID(folder, docType, s.now())
	asset, err := s.uploader.Upload(ctx, media.KindAuto, folder, publicID, file.Filename, file.Content)
	if err != nil {
		return media.Asset{}, err
	}

	// Document merging is shallow, so the documents map is rebuilt in
	// full to keep the other slots.
	documents := docstore.Document{}
	for k, v := range existing.Doc.Map("documents") {
		documents[k] = v
	}
	documents[docType] = docstore.Document{"publicId": asset.PublicID, "url": asset.URL}
	patch := docstore.Document{"documents": documents}
	if err := s.repo.Merge(ctx, mobile, patch); err != nil {
		return media.Asset{}, err
	}
	s.logger.Info("driver document uploaded", "mobile", mobile, "doc_type", docType)
	return asset, nil
}
