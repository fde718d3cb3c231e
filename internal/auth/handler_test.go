package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/joshwmy/record-management/internal/session"
)

// Stub service so handler tests can force specific error paths.
type stubAuthService struct {
	registerErr error
	loginErr    error
	unlockErr   error
}

func (s *stubAuthService) Register(dto RegisterDTO) (*User, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return &User{Username: dto.Username}, nil
}

func (s *stubAuthService) Login(dto LoginDTO) (*session.Session, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return &session.Session{Username: dto.Username, Token: "token"}, nil
}

func (s *stubAuthService) Unlock(username string) error {
	return s.unlockErr
}

type stubInvalidator struct {
	err error
}

func (s *stubInvalidator) Invalidate(token string) error {
	return s.err
}

var _ = ginkgo.Describe("AuthHandler", func() {
	var (
		svc     *stubAuthService
		handler *Handler
		router  *chi.Mux
	)

	ginkgo.BeforeEach(func() {
		svc = &stubAuthService{}
		handler = NewHandler(svc, &stubInvalidator{})

		router = chi.NewRouter()
		router.Post("/auth/register", handler.Register)
		router.Post("/auth/login", handler.Login)
		router.Post("/admin/users/{username}/unlock", handler.Unlock)
	})

	ginkgo.Describe("when the credential store is unreachable", func() {
		storeErr := errors.Join(ErrStorageUnavailable, errors.New("database is locked"))

		ginkgo.It("should answer Register with 503", func() {
			svc.registerErr = storeErr

			req := httptest.NewRequest(http.MethodPost, "/auth/register",
				strings.NewReader(`{"username":"carol","password":"Valid1!pass"}`))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusServiceUnavailable))
			gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring("credential store unavailable"))
		})

		ginkgo.It("should answer Login with 503 instead of a generic server error", func() {
			svc.loginErr = storeErr

			req := httptest.NewRequest(http.MethodPost, "/auth/login",
				strings.NewReader(`{"username":"alice","password":"Correct1!"}`))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusServiceUnavailable))
			gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring("credential store unavailable"))
		})

		ginkgo.It("should answer Unlock with 503", func() {
			svc.unlockErr = storeErr

			req := httptest.NewRequest(http.MethodPost, "/admin/users/alice/unlock", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusServiceUnavailable))
		})
	})

	ginkgo.Describe("error taxonomy", func() {
		ginkgo.It("should keep invalid credentials at 401", func() {
			svc.loginErr = ErrInvalidCredentials

			req := httptest.NewRequest(http.MethodPost, "/auth/login",
				strings.NewReader(`{"username":"alice","password":"Wrong1!pw"}`))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		})

		ginkgo.It("should keep duplicate usernames at 409", func() {
			svc.registerErr = ErrDuplicateUser

			req := httptest.NewRequest(http.MethodPost, "/auth/register",
				strings.NewReader(`{"username":"alice","password":"Valid1!pass"}`))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusConflict))
		})
	})
})
