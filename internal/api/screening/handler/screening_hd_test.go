package screeningHandler

import (
	"DermAssist/internal/api/screening"
	"DermAssist/internal/entity"
	"DermAssist/internal/middleware"
	jwtPkg "DermAssist/pkg/jwt"
	"DermAssist/pkg/utils"
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type fakeScreeningService struct {
	predictResp  screening.PredictResponse
	predictErr   error
	predictUser  *entity.UserLoginData
	scans        []screening.ScanHistoryItem
	scansErr     error
	scansUserID  string
	predictCalls int
}

func (f *fakeScreeningService) Predict(_ context.Context, upload screening.ScanUpload, user *entity.UserLoginData) (screening.PredictResponse, error) {
	f.predictCalls++
	f.predictUser = user
	if f.predictErr != nil {
		return screening.PredictResponse{}, f.predictErr
	}
	return f.predictResp, nil
}

func (f *fakeScreeningService) GetUserScans(_ context.Context, userID string) ([]screening.ScanHistoryItem, error) {
	f.scansUserID = userID
	return f.scans, f.scansErr
}

type fakeRedis struct{}

func (f *fakeRedis) SetResetToken(ctx context.Context, token string, userID string, expiration time.Duration) error {
	return nil
}
func (f *fakeRedis) GetResetToken(ctx context.Context, token string) (string, error) {
	return "", nil
}
func (f *fakeRedis) DeleteResetToken(ctx context.Context, token string) error { return nil }
func (f *fakeRedis) BlacklistToken(ctx context.Context, token string, until time.Duration) error {
	return nil
}
func (f *fakeRedis) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	return false, nil
}

func newTestApp(t *testing.T, svc *fakeScreeningService) *fiber.App {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	mw := middleware.New(logger, &fakeRedis{})
	h := New(logger, validator.New(), mw, svc, utils.New())

	app := fiber.New()
	app.Use(mw.NewRequestIDMiddleware())
	h.Start(app)

	return app
}

func multipartBody(t *testing.T, fieldName, fileName, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(map[string][]string)
	header["Content-Disposition"] = []string{`form-data; name="` + fieldName + `"; filename="` + fileName + `"`}
	header["Content-Type"] = []string{contentType}

	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("failed to create multipart part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("failed to write multipart data: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	return body, writer.FormDataContentType()
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, string) {
	t.Helper()

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading response body: %v", err)
	}
	return resp, string(body)
}

func TestHandlePredictNoFile(t *testing.T) {
	app := newTestApp(t, &fakeScreeningService{})

	req := httptest.NewRequest(http.MethodPost, "/predict", nil)
	resp, body := doRequest(t, app, req)

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	if !strings.Contains(body, "No file uploaded") {
		t.Errorf("body = %q, want no-file message", body)
	}
}

func TestHandlePredictUnsupportedType(t *testing.T) {
	svc := &fakeScreeningService{predictErr: screening.ErrUnsupportedMediaType}
	app := newTestApp(t, svc)

	payload, contentType := multipartBody(t, "file", "anim.gif", "image/gif", []byte("GIF89a"))
	req := httptest.NewRequest(http.MethodPost, "/predict", payload)
	req.Header.Set("Content-Type", contentType)

	resp, body := doRequest(t, app, req)

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	if !strings.Contains(body, "Only JPEG and PNG") {
		t.Errorf("body = %q, want JPEG/PNG rejection message", body)
	}
}

func TestHandlePredictModelUnavailable(t *testing.T) {
	svc := &fakeScreeningService{predictErr: screening.ErrModelUnavailable}
	app := newTestApp(t, svc)

	payload, contentType := multipartBody(t, "file", "lesion.png", "image/png", []byte("fake png"))
	req := httptest.NewRequest(http.MethodPost, "/predict", payload)
	req.Header.Set("Content-Type", contentType)

	resp, body := doRequest(t, app, req)

	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", resp.StatusCode)
	}
	if !strings.Contains(body, "Model not loaded") {
		t.Errorf("body = %q, want model-unavailable message", body)
	}
}

func TestHandlePredictSuccessAnonymous(t *testing.T) {
	svc := &fakeScreeningService{
		predictResp: screening.PredictResponse{
			Diagnosis:     "nv",
			DiagnosisName: "Melanocytic Nevi",
			RiskLevel:     "Low Risk",
			Confidence:    0.9312,
			AllScores:     map[string]float64{"nv": 0.9312},
		},
	}
	app := newTestApp(t, svc)

	payload, contentType := multipartBody(t, "file", "lesion.png", "image/png", []byte("fake png"))
	req := httptest.NewRequest(http.MethodPost, "/predict", payload)
	req.Header.Set("Content-Type", contentType)

	resp, body := doRequest(t, app, req)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", resp.StatusCode, body)
	}
	for _, fragment := range []string{`"diagnosis":"nv"`, `"diagnosis_name":"Melanocytic Nevi"`, `"risk_level":"Low Risk"`, `"confidence":0.9312`} {
		if !strings.Contains(body, fragment) {
			t.Errorf("body missing %s: %s", fragment, body)
		}
	}
	if svc.predictUser != nil {
		t.Errorf("predict user = %+v, want nil without a token", svc.predictUser)
	}
}

func TestHandlePredictForwardsAuthenticatedUser(t *testing.T) {
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "test-secret")

	svc := &fakeScreeningService{
		predictResp: screening.PredictResponse{Diagnosis: "nv", AllScores: map[string]float64{}},
	}
	app := newTestApp(t, svc)

	token, _, err := jwtPkg.Sign(map[string]interface{}{
		"id":       "01USER",
		"username": "jamie",
		"email":    "jamie@example.com",
	}, time.Hour)
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}

	payload, contentType := multipartBody(t, "file", "lesion.png", "image/png", []byte("fake png"))
	req := httptest.NewRequest(http.MethodPost, "/predict", payload)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, body := doRequest(t, app, req)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", resp.StatusCode, body)
	}
	if svc.predictUser == nil {
		t.Fatal("predict user = nil, want authenticated user")
	}
	if svc.predictUser.ID != "01USER" {
		t.Errorf("predict user ID = %q, want %q", svc.predictUser.ID, "01USER")
	}
}

func TestHandleGetScansUnauthorized(t *testing.T) {
	app := newTestApp(t, &fakeScreeningService{})

	req := httptest.NewRequest(http.MethodGet, "/user/scans", nil)
	resp, _ := doRequest(t, app, req)

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestHandleGetScansSuccess(t *testing.T) {
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "test-secret")

	svc := &fakeScreeningService{
		scans: []screening.ScanHistoryItem{
			{ID: "01PRED", PredictedLabel: "mel", RiskLevel: "High Risk"},
		},
	}
	app := newTestApp(t, svc)

	token, _, err := jwtPkg.Sign(map[string]interface{}{
		"id":       "01USER",
		"username": "jamie",
		"email":    "jamie@example.com",
	}, time.Hour)
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/user/scans", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, body := doRequest(t, app, req)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", resp.StatusCode, body)
	}
	if svc.scansUserID != "01USER" {
		t.Errorf("scans queried for user %q, want %q", svc.scansUserID, "01USER")
	}
	if !strings.Contains(body, `"predicted_label":"mel"`) {
		t.Errorf("body missing scan entry: %s", body)
	}
}
