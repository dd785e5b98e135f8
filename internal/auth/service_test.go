package auth

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/freightdeck/freightdeck/internal/company"
	"github.com/freightdeck/freightdeck/internal/docstore"
	"github.com/freightdeck/freightdeck/internal/shared"
)

type memoryRepo struct {
	mu    sync.Mutex
	users map[string]User // keyed by email
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: map[string]User{}}
}

func (r *memoryRepo) Create(_ context.Context, user User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Email]; ok {
		return shared.ErrDuplicate
	}
	r.users[user.Email] = user
	return nil
}

func (r *memoryRepo) FindByEmail(_ context.Context, email string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[email]
	if !ok {
		return User{}, shared.ErrNotFound
	}
	return user, nil
}

func (r *memoryRepo) FindByID(_ context.Context, id string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return User{}, shared.ErrNotFound
}

func (r *memoryRepo) CompanyNameOf(ctx context.Context, userID string) (string, error) {
	user, err := r.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.CompanyName, nil
}

func newTestService(t *testing.T) (*Service, *memoryRepo, docstore.Store) {
	t.Helper()
	repo := newMemoryRepo()
	store := docstore.NewMemory()
	tokens := shared.NewTokenManager("test-secret", "freightdeck-test", time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, store, tokens, logger), repo, store
}

func validInput() SignupInput {
	return SignupInput{
		Email:       "Asha@Example.com",
		Password:    "secret123",
		CompanyName: "Acme Logistics",
		PhoneNumber: "98765 43210",
		FirstName:   "Asha",
		LastName:    "Patel",
		Address:     "Pune, Maharashtra",
	}
}

func TestSignupCreatesAccountAndCompanyProfile(t *testing.T) {
	ctx := context.Background()
	svc, repo, store := newTestService(t)

	account, err := svc.Signup(ctx, validInput())
	require.NoError(t, err)
	require.Equal(t, "asha@example.com", account.Email)
	require.Equal(t, "+919876543210", account.PhoneNumber)
	require.Equal(t, "not-submitted", account.KYCStatus)

	user, err := repo.FindByEmail(ctx, "asha@example.com")
	require.NoError(t, err)
	require.NotEqual(t, "secret123", user.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")))
	require.Equal(t, "Pune, Maharashtra", user.Address)
	require.Equal(t, "corporate", user.Role)
	require.True(t, user.IsActive)
	require.Nil(t, user.FirebaseUID)

	profile, err := store.Get(ctx, company.Collection, "Acme Logistics")
	require.NoError(t, err)
	require.Equal(t, "Acme Logistics", profile.String("company_name"))
	require.Equal(t, account.ID, profile.String("userId"))
	require.Equal(t, "Pune, Maharashtra", profile.String("businessAddress"))
	require.Equal(t, "not-submitted", profile.String("kycStatus"))
	require.Equal(t, false, profile.Bool("realtimeTracking"))
	contact := profile.Map("primaryContact")
	require.Equal(t, "Asha", contact.String("firstName"))
	require.Equal(t, "+919876543210", contact.String("mobileNumber"))
}

func TestSignupSameCompanyNameSharesProfileDoc(t *testing.T) {
	ctx := context.Background()
	svc, _, store := newTestService(t)

	first, err := svc.Signup(ctx, validInput())
	require.NoError(t, err)

	in := validInput()
	in.Email = "ravi@example.com"
	in.FirstName = "Ravi"
	second, err := svc.Signup(ctx, in)
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	records, err := store.FindByField(ctx, company.Collection, "company_name", "Acme Logistics")
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "Acme Logistics", records[0].Key)
	require.Equal(t, second.ID, records[0].Doc.String("userId"))
}

func TestSignupStoresMigrationFields(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(t)

	in := validInput()
	in.FirebaseUID = "fb-uid-42"
	in.KYCStatus = "pending"

	account, err := svc.Signup(ctx, in)
	require.NoError(t, err)
	require.Equal(t, "pending", account.KYCStatus)

	user, err := repo.FindByEmail(ctx, "asha@example.com")
	require.NoError(t, err)
	require.NotNil(t, user.FirebaseUID)
	require.Equal(t, "fb-uid-42", *user.FirebaseUID)
	require.Equal(t, "pending", user.KYCStatus)
}

func TestSignupRejectsMissingFields(t *testing.T) {
	svc, _, _ := newTestService(t)

	in := validInput()
	in.CompanyName = ""
	in.PhoneNumber = "  "

	_, err := svc.Signup(context.Background(), in)
	require.ErrorIs(t, err, shared.ErrValidation)
	require.Contains(t, err.Error(), "companyName")
	require.Contains(t, err.Error(), "phoneNumber")
}

func TestSignupPasswordRules(t *testing.T) {
	svc, _, _ := newTestService(t)

	in := validInput()
	in.Password = "short1"
	_, err := svc.Signup(context.Background(), in)
	require.ErrorIs(t, err, shared.ErrValidation)

	in.Password = "lettersonly"
	_, err = svc.Signup(context.Background(), in)
	require.ErrorIs(t, err, shared.ErrValidation)

	in.Password = "12345678"
	_, err = svc.Signup(context.Background(), in)
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestSignupDuplicateEmailIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	_, err := svc.Signup(ctx, validInput())
	require.NoError(t, err)

	in := validInput()
	in.Email = "ASHA@EXAMPLE.COM"
	_, err = svc.Signup(ctx, in)
	require.ErrorIs(t, err, shared.ErrDuplicate)
}

func TestSigninIssuesToken(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	account, err := svc.Signup(ctx, validInput())
	require.NoError(t, err)

	token, got, err := svc.Signin(ctx, "asha@example.com", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, account.ID, got.ID)

	tokens := shared.NewTokenManager("test-secret", "freightdeck-test", time.Hour)
	identity, err := tokens.Validate(token)
	require.NoError(t, err)
	require.Equal(t, account.ID, identity.UserID)
}

func TestSigninRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	_, err := svc.Signup(ctx, validInput())
	require.NoError(t, err)

	_, _, err = svc.Signin(ctx, "asha@example.com", "wrongpass1")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)

	_, _, err = svc.Signin(ctx, "ghost@example.com", "secret123")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestFormatMobile(t *testing.T) {
	require.Equal(t, "+919876543210", formatMobile("98765 43210"))
	require.Equal(t, "+919876543210", formatMobile("+91 98765-43210"))
	require.Equal(t, "+919876543210", formatMobile("919876543210"))
}
