package authService

import (
	"DermAssist/internal/api/auth"
	authRepository "DermAssist/internal/api/auth/repository"
	screeningRepository "DermAssist/internal/api/screening/repository"
	"DermAssist/internal/entity"
	bcryptPkg "DermAssist/pkg/bcrypt"
	"DermAssist/pkg/redis"
	"DermAssist/pkg/utils"
	"database/sql"
	"errors"
	"io"
	"mime/multipart"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type fakeUsers struct {
	users        map[string]entity.User
	created      []entity.User
	createErr    error
	lastLoginFor string
	passwordFor  string
	newPassword  string
	photoFor     string
	photoURL     string
}

func (f *fakeUsers) CreateUser(_ context.Context, user entity.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, user)
	return nil
}

func (f *fakeUsers) GetUserByID(_ context.Context, id string) (entity.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return entity.User{}, sql.ErrNoRows
}

func (f *fakeUsers) GetUserByEmail(_ context.Context, email string) (entity.User, error) {
	if user, ok := f.users[email]; ok {
		return user, nil
	}
	return entity.User{}, sql.ErrNoRows
}

func (f *fakeUsers) GetUserByUsernameOrEmail(_ context.Context, identifier string) (entity.User, error) {
	for _, user := range f.users {
		if user.Username == identifier || user.Email == identifier {
			return user, nil
		}
	}
	return entity.User{}, sql.ErrNoRows
}

func (f *fakeUsers) UpdateLastLogin(_ context.Context, id string, _ time.Time) error {
	f.lastLoginFor = id
	return nil
}

func (f *fakeUsers) UpdatePassword(_ context.Context, id string, hashedPassword string) error {
	f.passwordFor = id
	f.newPassword = hashedPassword
	return nil
}

func (f *fakeUsers) UpdateProfilePhoto(_ context.Context, id string, photoURL string) error {
	f.photoFor = id
	f.photoURL = photoURL
	return nil
}

type fakeAuthRepo struct {
	users *fakeUsers
}

func (f *fakeAuthRepo) NewClient(tx bool) (authRepository.Client, error) {
	return authRepository.Client{
		Users:    f.users,
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

type fakeScanPredictions struct {
	count int
}

func (f *fakeScanPredictions) CreatePrediction(_ context.Context, _ entity.Prediction) error {
	return nil
}

func (f *fakeScanPredictions) GetByUserID(_ context.Context, _ string) ([]entity.Prediction, error) {
	return nil, nil
}

func (f *fakeScanPredictions) CountByUserID(_ context.Context, _ string) (int, error) {
	return f.count, nil
}

type fakeScanRepo struct {
	predictions *fakeScanPredictions
}

func (f *fakeScanRepo) NewClient(tx bool) (screeningRepository.Client, error) {
	return screeningRepository.Client{
		Predictions: f.predictions,
		Commit:      func() error { return nil },
		Rollback:    func() error { return nil },
	}, nil
}

type fakeMailer struct {
	sentTo    string
	sentToken string
	err       error
}

func (f *fakeMailer) SendResetEmail(userEmail string, fullName string, resetToken string) error {
	if f.err != nil {
		return f.err
	}
	f.sentTo = userEmail
	f.sentToken = resetToken
	return nil
}

type fakeTokenStore struct {
	resetTokens map[string]string
	blacklisted map[string]bool
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{
		resetTokens: map[string]string{},
		blacklisted: map[string]bool{},
	}
}

func (f *fakeTokenStore) SetResetToken(_ context.Context, token string, userID string, _ time.Duration) error {
	f.resetTokens[token] = userID
	return nil
}

func (f *fakeTokenStore) GetResetToken(_ context.Context, token string) (string, error) {
	userID, ok := f.resetTokens[token]
	if !ok {
		return "", redis.ErrTokenNotFound
	}
	return userID, nil
}

func (f *fakeTokenStore) DeleteResetToken(_ context.Context, token string) error {
	delete(f.resetTokens, token)
	return nil
}

func (f *fakeTokenStore) BlacklistToken(_ context.Context, token string, until time.Duration) error {
	if until <= 0 {
		return nil
	}
	f.blacklisted[token] = true
	return nil
}

func (f *fakeTokenStore) IsTokenBlacklisted(_ context.Context, token string) (bool, error) {
	return f.blacklisted[token], nil
}

type fakeS3 struct {
	uploadedURL string
	err         error
}

func (f *fakeS3) UploadFile(file *multipart.FileHeader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.uploadedURL, nil
}

func (f *fakeS3) PresignUrl(fileName string) (string, error) { return fileName, nil }
func (f *fakeS3) DeleteFile(fileName string) error           { return nil }

type testEnv struct {
	users      *fakeUsers
	mailer     *fakeMailer
	tokenStore *fakeTokenStore
	svc        IAuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "test-secret")

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	users := &fakeUsers{users: map[string]entity.User{}}
	mailer := &fakeMailer{}
	tokenStore := newFakeTokenStore()

	svc := New(
		logger,
		&fakeAuthRepo{users: users},
		&fakeScanRepo{predictions: &fakeScanPredictions{count: 3}},
		mailer,
		tokenStore,
		&fakeS3{uploadedURL: "https://bucket.s3.amazonaws.com/photo.png"},
		bcryptPkg.NewWithCost(4),
		utils.New(),
	)

	return &testEnv{users: users, mailer: mailer, tokenStore: tokenStore, svc: svc}
}

func (e *testEnv) addUser(t *testing.T, username, email, password string, active bool) entity.User {
	t.Helper()

	hashed, err := bcryptPkg.NewWithCost(4).HashPassword(password)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}

	user := entity.User{
		ID:       "01" + username,
		FullName: "Test " + username,
		Username: username,
		Email:    email,
		Password: hashed,
		IsActive: active,
	}
	e.users.users[email] = user
	return user
}

func TestRegister(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.svc.Register(context.Background(), auth.RegisterRequest{
		FullName: "Jamie Tan",
		Username: "jamie",
		Email:    "jamie@example.com",
		Password: "supersecret",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if resp.AccessToken == "" {
		t.Error("AccessToken is empty")
	}
	if resp.TokenType != "bearer" {
		t.Errorf("TokenType = %q, want %q", resp.TokenType, "bearer")
	}
	if len(env.users.created) != 1 {
		t.Fatalf("created %d users, want 1", len(env.users.created))
	}

	created := env.users.created[0]
	if created.Password == "supersecret" {
		t.Error("password stored in plain text")
	}
	if created.Role != "user" {
		t.Errorf("Role = %q, want %q", created.Role, "user")
	}
	if !created.IsActive {
		t.Error("new user is not active")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.users.createErr = auth.ErrEmailAlreadyRegistered

	_, err := env.svc.Register(context.Background(), auth.RegisterRequest{
		FullName: "Jamie Tan",
		Username: "jamie",
		Email:    "jamie@example.com",
		Password: "supersecret",
	})
	if !errors.Is(err, auth.ErrEmailAlreadyRegistered) {
		t.Fatalf("Register error = %v, want ErrEmailAlreadyRegistered", err)
	}
}

func TestLoginWithUsernameAndEmail(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "jamie", "jamie@example.com", "supersecret", true)

	for _, identifier := range []string{"jamie", "jamie@example.com"} {
		resp, err := env.svc.Login(context.Background(), auth.LoginRequest{
			Identifier: identifier,
			Password:   "supersecret",
		})
		if err != nil {
			t.Fatalf("Login(%q) returned error: %v", identifier, err)
		}
		if resp.AccessToken == "" {
			t.Errorf("Login(%q): empty access token", identifier)
		}
	}

	if env.users.lastLoginFor != "01jamie" {
		t.Errorf("last login updated for %q, want %q", env.users.lastLoginFor, "01jamie")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "jamie", "jamie@example.com", "supersecret", true)

	_, err := env.svc.Login(context.Background(), auth.LoginRequest{
		Identifier: "jamie",
		Password:   "wrong",
	})
	if !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("Login error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Login(context.Background(), auth.LoginRequest{
		Identifier: "nobody",
		Password:   "whatever",
	})
	if !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("Login error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginDeactivatedAccount(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "jamie", "jamie@example.com", "supersecret", false)

	_, err := env.svc.Login(context.Background(), auth.LoginRequest{
		Identifier: "jamie",
		Password:   "supersecret",
	})
	if !errors.Is(err, auth.ErrAccountDeactivated) {
		t.Fatalf("Login error = %v, want ErrAccountDeactivated", err)
	}
}

func TestLogoutBlacklistsToken(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "jamie", "jamie@example.com", "supersecret", true)

	resp, err := env.svc.Login(context.Background(), auth.LoginRequest{
		Identifier: "jamie",
		Password:   "supersecret",
	})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	if err := env.svc.Logout(context.Background(), resp.AccessToken); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if !env.tokenStore.blacklisted[resp.AccessToken] {
		t.Error("token not blacklisted after logout")
	}
}

func TestForgotPasswordKnownEmail(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "jamie", "jamie@example.com", "supersecret", true)

	err := env.svc.ForgotPassword(context.Background(), auth.ForgotPasswordRequest{
		Email: "jamie@example.com",
	})
	if err != nil {
		t.Fatalf("ForgotPassword returned error: %v", err)
	}

	if env.mailer.sentTo != "jamie@example.com" {
		t.Errorf("reset email sent to %q, want %q", env.mailer.sentTo, "jamie@example.com")
	}
	if env.mailer.sentToken == "" {
		t.Fatal("no reset token in email")
	}
	if env.tokenStore.resetTokens[env.mailer.sentToken] != "01jamie" {
		t.Error("reset token not stored for the user")
	}
}

func TestForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	env := newTestEnv(t)

	err := env.svc.ForgotPassword(context.Background(), auth.ForgotPasswordRequest{
		Email: "ghost@example.com",
	})
	if err != nil {
		t.Fatalf("ForgotPassword returned error for unknown email: %v", err)
	}
	if env.mailer.sentTo != "" {
		t.Error("reset email sent for unknown address")
	}
}

func TestResetPassword(t *testing.T) {
	env := newTestEnv(t)
	user := env.addUser(t, "jamie", "jamie@example.com", "supersecret", true)
	env.tokenStore.resetTokens["valid-token"] = user.ID

	err := env.svc.ResetPassword(context.Background(), auth.ResetPasswordRequest{
		Token:       "valid-token",
		NewPassword: "newsecret123",
	})
	if err != nil {
		t.Fatalf("ResetPassword returned error: %v", err)
	}

	if env.users.passwordFor != user.ID {
		t.Errorf("password updated for %q, want %q", env.users.passwordFor, user.ID)
	}
	if env.users.newPassword == "newsecret123" {
		t.Error("new password stored in plain text")
	}
	if _, ok := env.tokenStore.resetTokens["valid-token"]; ok {
		t.Error("reset token not deleted after use")
	}
}

func TestResetPasswordInvalidToken(t *testing.T) {
	env := newTestEnv(t)

	err := env.svc.ResetPassword(context.Background(), auth.ResetPasswordRequest{
		Token:       "bogus",
		NewPassword: "newsecret123",
	})
	if !errors.Is(err, auth.ErrInvalidResetToken) {
		t.Fatalf("ResetPassword error = %v, want ErrInvalidResetToken", err)
	}
}

func TestGetProfileIncludesScanCount(t *testing.T) {
	env := newTestEnv(t)
	user := env.addUser(t, "jamie", "jamie@example.com", "supersecret", true)

	resp, err := env.svc.GetProfile(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetProfile returned error: %v", err)
	}

	if resp.Username != "jamie" {
		t.Errorf("Username = %q, want %q", resp.Username, "jamie")
	}
	if resp.TotalScans != 3 {
		t.Errorf("TotalScans = %d, want 3", resp.TotalScans)
	}
}

func TestGetProfileUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.GetProfile(context.Background(), "missing")
	if !errors.Is(err, auth.ErrUserNotFound) {
		t.Fatalf("GetProfile error = %v, want ErrUserNotFound", err)
	}
}
