package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/tempestapp/tempest-cli/internal/client/authflow"
	"github.com/tempestapp/tempest-cli/internal/client/idle"
	"github.com/tempestapp/tempest-cli/internal/client/models"
	"github.com/tempestapp/tempest-cli/internal/client/session"
	"github.com/tempestapp/tempest-cli/internal/logging"
)

// memRepo is an in-memory metadata.Repository for tests.
type memRepo struct {
	data map[string][]byte
}

func newMemRepo() *memRepo { return &memRepo{data: make(map[string][]byte)} }

func (m *memRepo) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return v, nil
}
func (m *memRepo) Set(_ context.Context, key string, value []byte) error {
	m.data[key] = append([]byte(nil), value...)
	return nil
}
func (m *memRepo) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}
func (m *memRepo) Clear(_ context.Context) error {
	m.data = make(map[string][]byte)
	return nil
}

// fakeClient is a scriptable api.Client.
type fakeClient struct {
	loginResp  models.AuthResponse
	loginErr   error
	signupResp models.AuthResponse
	signupErr  error
	gotSignup  models.SignUpRequest

	otpBody    string
	otpErr     error
	verifyBody string
	verifyErr  error
	resetBody   string
	resetErr    error
	resetCalled bool

	user      models.User
	getErr    error
	updateErr error
	gotUpdate models.UpdateUserRequest
}

func (f *fakeClient) WebsiteInfo(context.Context) (models.Website, error) {
	return models.Website{Name: "Tempest"}, nil
}
func (f *fakeClient) SignUp(_ context.Context, req models.SignUpRequest) (models.AuthResponse, error) {
	f.gotSignup = req
	return f.signupResp, f.signupErr
}
func (f *fakeClient) Login(context.Context, string, string) (models.AuthResponse, error) {
	return f.loginResp, f.loginErr
}
func (f *fakeClient) RequestOTP(context.Context, string) (string, error) {
	return f.otpBody, f.otpErr
}
func (f *fakeClient) VerifyOTP(context.Context, string, string) (string, error) {
	return f.verifyBody, f.verifyErr
}
func (f *fakeClient) ResetPassword(context.Context, string, string) (string, error) {
	f.resetCalled = true
	return f.resetBody, f.resetErr
}
func (f *fakeClient) GetUser(context.Context, int64) (models.User, error) {
	return f.user, f.getErr
}
func (f *fakeClient) UpdateUser(_ context.Context, _ int64, req models.UpdateUserRequest) error {
	f.gotUpdate = req
	return f.updateErr
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// newTestApp builds an App on in-memory fakes. The idle timeout is long
// enough that the monitor never fires during a test.
func newTestApp(t *testing.T, fc *fakeClient) *App {
	t.Helper()
	log := testLogger()
	store := session.NewStore(newMemRepo(), log)
	return &App{
		log:     log,
		store:   store,
		client:  fc,
		flow:    authflow.NewFlow(fc, store, log),
		monitor: idle.NewMonitor(time.Hour, 5, idle.Callbacks{}),
	}
}

// stubInputs replaces the interactive input seams with scripted answers.
// Each call consumes the next answer in order.
func stubInputs(t *testing.T, texts, passwords []string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	ti, pi := 0, 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if ti >= len(texts) {
			return "", io.ErrUnexpectedEOF
		}
		v := texts[ti]
		ti++
		return v, nil
	}
	getPassword = func(_ string, _ io.Writer) (string, error) {
		if pi >= len(passwords) {
			return "", io.ErrUnexpectedEOF
		}
		v := passwords[pi]
		pi++
		return v, nil
	}
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

// captureOutput swallows printlnFn and records each printed line.
func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(args ...any) (int, error) {
		lines = append(lines, fmt.Sprint(args...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func contains(lines []string, want string) bool {
	for _, l := range lines {
		if l == want {
			return true
		}
	}
	return false
}
