package session

import (
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/joshwmy/record-management/internal/authz"
)

func TestSession(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Session Module Suite")
}

// Mock session repository for testing
type mockSessionRepository struct {
	sessions      map[string]*Session
	returnError   bool
	errorToReturn error
}

func newMockSessionRepository() *mockSessionRepository {
	return &mockSessionRepository{sessions: make(map[string]*Session)}
}

func (m *mockSessionRepository) Create(s *Session) error {
	if m.returnError {
		return m.errorToReturn
	}
	copied := *s
	m.sessions[s.Token] = &copied
	return nil
}

func (m *mockSessionRepository) GetByToken(token string) (*Session, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	s, ok := m.sessions[token]
	if !ok {
		return nil, ErrSessionInvalid
	}
	copied := *s
	return &copied, nil
}

func (m *mockSessionRepository) DeleteByToken(token string) error {
	if m.returnError {
		return m.errorToReturn
	}
	delete(m.sessions, token)
	return nil
}

func (m *mockSessionRepository) DeleteExpired(now time.Time) (int64, error) {
	if m.returnError {
		return 0, m.errorToReturn
	}
	var removed int64
	for token, s := range m.sessions {
		if now.After(s.ExpiresAt) {
			delete(m.sessions, token)
			removed++
		}
	}
	return removed, nil
}

var _ = ginkgo.Describe("SessionManager", func() {
	var (
		manager  *Manager
		mockRepo *mockSessionRepository
		tokens   *JWTTokenGenerator
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockSessionRepository()
		tokens = NewJWTTokenGenerator("test-secret-at-least-32-characters!!")
		manager = NewManager(mockRepo, tokens, 24*time.Hour)
	})

	ginkgo.Describe("Create", func() {
		ginkgo.It("should issue a session bound to the user and role", func() {
			sess, err := manager.Create("alice", authz.RoleUser)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(sess.Username).To(gomega.Equal("alice"))
			gomega.Expect(sess.Role).To(gomega.Equal(authz.RoleUser))
			gomega.Expect(sess.Token).ToNot(gomega.BeEmpty())
			gomega.Expect(sess.ExpiresAt).To(gomega.BeTemporally("~", time.Now().Add(24*time.Hour), time.Minute))
		})

		ginkgo.It("should keep earlier sessions alive on repeat login", func() {
			first, err := manager.Create("alice", authz.RoleUser)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = manager.Create("alice", authz.RoleUser)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			validated, err := manager.Validate(first.Token)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(validated.Username).To(gomega.Equal("alice"))
		})
	})

	ginkgo.Describe("Validate", func() {
		ginkgo.It("should accept a live session", func() {
			sess, _ := manager.Create("alice", authz.RoleITAdmin)

			validated, err := manager.Validate(sess.Token)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(validated.Role).To(gomega.Equal(authz.RoleITAdmin))
		})

		ginkgo.It("should reject an empty token", func() {
			_, err := manager.Validate("")
			gomega.Expect(err).To(gomega.MatchError(ErrSessionInvalid))
		})

		ginkgo.It("should reject a garbage token", func() {
			_, err := manager.Validate("not-a-jwt")
			gomega.Expect(err).To(gomega.MatchError(ErrSessionInvalid))
		})

		ginkgo.It("should reject a token signed with another secret", func() {
			other := NewJWTTokenGenerator("some-other-secret-with-enough-bytes")
			now := time.Now()
			forged, err := other.Generate("alice", authz.RoleAdmin, now, now.Add(time.Hour))
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = manager.Validate(forged)
			gomega.Expect(err).To(gomega.MatchError(ErrSessionInvalid))
		})

		ginkgo.It("should reject a revoked session even with a valid token", func() {
			sess, _ := manager.Create("alice", authz.RoleUser)
			gomega.Expect(manager.Invalidate(sess.Token)).To(gomega.Succeed())

			_, err := manager.Validate(sess.Token)
			gomega.Expect(err).To(gomega.MatchError(ErrSessionInvalid))
		})

		ginkgo.It("should report an expired token and drop its row", func() {
			now := time.Now()
			token, err := tokens.Generate("alice", authz.RoleUser, now.Add(-2*time.Hour), now.Add(-time.Hour))
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			mockRepo.sessions[token] = &Session{
				Username:  "alice",
				Role:      authz.RoleUser,
				Token:     token,
				IssuedAt:  now.Add(-2 * time.Hour),
				ExpiresAt: now.Add(-time.Hour),
			}

			_, err = manager.Validate(token)

			gomega.Expect(err).To(gomega.MatchError(ErrSessionExpired))
			gomega.Expect(mockRepo.sessions).ToNot(gomega.HaveKey(token))
		})
	})

	ginkgo.Describe("Invalidate", func() {
		ginkgo.It("should be idempotent", func() {
			sess, _ := manager.Create("alice", authz.RoleUser)

			gomega.Expect(manager.Invalidate(sess.Token)).To(gomega.Succeed())
			gomega.Expect(manager.Invalidate(sess.Token)).To(gomega.Succeed())
			gomega.Expect(manager.Invalidate("")).To(gomega.Succeed())
		})
	})

	ginkgo.Describe("Sweep", func() {
		ginkgo.It("should remove only expired rows", func() {
			live, _ := manager.Create("alice", authz.RoleUser)
			now := time.Now()
			mockRepo.sessions["stale"] = &Session{
				Username:  "bob",
				Token:     "stale",
				ExpiresAt: now.Add(-time.Minute),
			}

			removed, err := manager.Sweep()

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(removed).To(gomega.Equal(int64(1)))
			gomega.Expect(mockRepo.sessions).To(gomega.HaveKey(live.Token))
		})
	})
})
