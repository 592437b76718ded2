package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"propertyhub-api/internal/model"
	"propertyhub-api/internal/repository"
	"propertyhub-api/pkg/config"
	"propertyhub-api/pkg/jwtutil"
	"propertyhub-api/prometheus"
)

// Metrics are registered globally, so they are initialized exactly once for
// the whole package.
func TestMain(m *testing.M) {
	cfg := &config.Config{}
	cfg.Metrics.Prefix = "propertyhub_test"
	cfg.JWT.SigningKey = "test-signing-key"
	cfg.JWT.ExpirationHours = 1
	prometheus.InitMetrics(cfg)
	jwtutil.Initialize(&cfg.JWT)
	os.Exit(m.Run())
}

type structValidator struct {
	validate *validator.Validate
}

func (v *structValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &structValidator{validate: validator.New()}
	return e
}

// doRequest runs a handler directly against a recorded request and returns
// the recorder. Path params are set explicitly since no router is involved.
func doRequest(e *echo.Echo, method, target string, body io.Reader, contentType string, params map[string]string, h echo.HandlerFunc) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath(target)
	names := make([]string, 0, len(params))
	values := make([]string, 0, len(params))
	for k, v := range params {
		names = append(names, k)
		values = append(values, v)
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func jsonRequest(e *echo.Echo, method, target, body string, params map[string]string, h echo.HandlerFunc) *httptest.ResponseRecorder {
	return doRequest(e, method, target, strings.NewReader(body), echo.MIMEApplicationJSON, params, h)
}

// fakeStorage records upload and delete calls in order.
type fakeStorage struct {
	events    []string
	deleteErr error
	uploadSeq int
}

func (f *fakeStorage) Upload(_ context.Context, filename string, _ io.Reader, _ string) (string, error) {
	f.uploadSeq++
	url := "https://test-bucket.s3.local/" + filename
	f.events = append(f.events, "upload:"+url)
	return url, nil
}

func (f *fakeStorage) Delete(_ context.Context, fileURL string) error {
	f.events = append(f.events, "delete:"+fileURL)
	return f.deleteErr
}

// recordingPropertyRepo wraps the memory repository and logs mutations into
// the same event stream as the fake storage, so tests can assert ordering
// between record and image deletion.
type recordingPropertyRepo struct {
	repository.PropertyRepository
	events *[]string
}

func (r *recordingPropertyRepo) Delete(ctx context.Context, mls string) error {
	err := r.PropertyRepository.Delete(ctx, mls)
	if err == nil {
		*r.events = append(*r.events, "record-delete:"+mls)
	}
	return err
}

func seedProperty(t *testing.T, repo repository.PropertyRepository, p model.Property) {
	t.Helper()
	if err := repo.Create(context.Background(), &p); err != nil {
		t.Fatalf("seed property %s: %v", p.MLS, err)
	}
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, want, rec.Body.String())
	}
}
