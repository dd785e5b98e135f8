package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/freightdeck/freightdeck/internal/company"
	"github.com/freightdeck/freightdeck/internal/docstore"
	"github.com/freightdeck/freightdeck/internal/shared"
)

// SignupInput carries the registration form. FirebaseUID and KYCStatus
// arrive from migrated clients; both are optional.
type SignupInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	CompanyName string `json:"companyName"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	FirebaseUID string `json:"firebaseUid"`
	KYCStatus   string `json:"kycStatus"`
}

// Account is the public view of a signed-up user.
type Account struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	CompanyName string `json:"companyName"`
	PhoneNumber string `json:"phoneNumber"`
	KYCStatus   string `json:"kycStatus"`
}

// Service wraps authentication business rules.
type Service struct {
	repo   Repository
	store  docstore.Store
	tokens *shared.TokenManager
	logger *slog.Logger
	now    func() time.Time
}

// NewService constructs a new Service.
func NewService(repo Repository, store docstore.Store, tokens *shared.TokenManager, logger *slog.Logger) *Service {
	return &Service{repo: repo, store: store, tokens: tokens, logger: logger, now: time.Now}
}

// Signup registers an account and seeds its company profile document.
// Emails are stored lowercased; a second signup with the same email
// fails with a duplicate error.
func (s *Service) Signup(ctx context.Context, in SignupInput) (Account, error) {
	if err := validateSignup(in); err != nil {
		return Account{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, err
	}

	kycStatus := strings.TrimSpace(in.KYCStatus)
	if kycStatus == "" {
		kycStatus = "not-submitted"
	}
	var firebaseUID *string
	if uid := strings.TrimSpace(in.FirebaseUID); uid != "" {
		firebaseUID = &uid
	}

	user := User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: string(hash),
		CompanyName:  strings.TrimSpace(in.CompanyName),
		PhoneNumber:  formatMobile(in.PhoneNumber),
		Address:      strings.TrimSpace(in.Address),
		FirebaseUID:  firebaseUID,
		KYCStatus:    kycStatus,
		Role:         "corporate",
		IsActive:     true,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return Account{}, err
	}

	profile := docstore.Document{
		"company_name":    user.CompanyName,
		"businessAddress": user.Address,
		"primaryContact": docstore.Document{
			"firstName":    in.FirstName,
			"lastName":     in.LastName,
			"email":        user.Email,
			"mobileNumber": user.PhoneNumber,
		},
		"userId":       user.ID,
		"kycStatus":    user.KYCStatus,
		"documents":    nil,
		"company_logo": nil,
		"description":  "",
		"createdAt":    user.CreatedAt.Format(time.RFC3339),
	}
	for _, flag := range []string{"multimodalServices", "multitemperatureService", "partialLoadingAndUnloading", "realtimeTracking"} {
		profile[flag] = false
	}
	// The profile document is keyed by the company name. Registering an
	// existing company overwrites its profile, the same way a plain
	// set-doc does.
	if err := s.store.Upsert(ctx, company.Collection, user.CompanyName, profile, false); err != nil {
		// The account exists but its profile write failed. Surface the
		// error; the company resolver treats the missing profile as
		// recoverable and KYC retries the lookup.
		s.logger.Error("seed company profile", "user_id", user.ID, "error", err)
		return Account{}, err
	}

	s.logger.Info("account created", "user_id", user.ID, "company", user.CompanyName)
	return Account{
		ID:          user.ID,
		Email:       user.Email,
		CompanyName: user.CompanyName,
		PhoneNumber: user.PhoneNumber,
		KYCStatus:   user.KYCStatus,
	}, nil
}

// Signin validates credentials and issues a bearer token.
func (s *Service) Signin(ctx context.Context, email, password string) (string, Account, error) {
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return "", Account{}, shared.ErrInvalidCredentials
		}
		return "", Account{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", Account{}, shared.ErrInvalidCredentials
	}

	token, _, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return "", Account{}, err
	}

	account := Account{
		ID:          user.ID,
		Email:       user.Email,
		CompanyName: user.CompanyName,
		PhoneNumber: user.PhoneNumber,
		KYCStatus:   s.kycStatus(ctx, user),
	}
	return token, account, nil
}

// kycStatus prefers the live company profile over the status snapshot
// taken at signup.
func (s *Service) kycStatus(ctx context.Context, user User) string {
	doc, err := s.store.Get(ctx, company.Collection, user.CompanyName)
	if err != nil {
		if user.KYCStatus != "" {
			return user.KYCStatus
		}
		return "not-submitted"
	}
	return company.Profile{Doc: doc}.KYCStatus()
}
