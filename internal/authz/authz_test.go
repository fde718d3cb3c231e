package authz

import (
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

func TestAuthz(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Authz Module Suite")
}

var _ = ginkgo.Describe("Can", func() {
	ginkgo.Context("for the admin role", func() {
		ginkgo.It("should allow every action in every domain", func() {
			for _, domain := range Domains() {
				for _, action := range Actions() {
					gomega.Expect(Can(RoleAdmin, domain, action)).To(gomega.BeTrue(),
						"admin should be allowed %s on %s", action, domain)
				}
			}
		})
	})

	ginkgo.Context("for the plain user role", func() {
		ginkgo.It("should allow viewing each business domain", func() {
			gomega.Expect(Can(RoleUser, DomainCybersecurity, ActionView)).To(gomega.BeTrue())
			gomega.Expect(Can(RoleUser, DomainTickets, ActionView)).To(gomega.BeTrue())
			gomega.Expect(Can(RoleUser, DomainDatasets, ActionView)).To(gomega.BeTrue())
		})

		ginkgo.It("should deny any write action", func() {
			for _, domain := range Domains() {
				for _, action := range []Action{ActionCreate, ActionUpdate, ActionDelete} {
					gomega.Expect(Can(RoleUser, domain, action)).To(gomega.BeFalse())
				}
			}
		})

		ginkgo.It("should deny the admin domain entirely", func() {
			for _, action := range Actions() {
				gomega.Expect(Can(RoleUser, DomainAdmin, action)).To(gomega.BeFalse())
			}
		})
	})

	ginkgo.Context("for domain admin roles", func() {
		type grant struct {
			role Role
			own  Domain
		}

		grants := []grant{
			{RoleCybersecurityAdmin, DomainCybersecurity},
			{RoleITAdmin, DomainTickets},
			{RoleDatasetsAdmin, DomainDatasets},
		}

		ginkgo.It("should give full access in the owned domain", func() {
			for _, g := range grants {
				for _, action := range []Action{ActionView, ActionCreate, ActionUpdate, ActionDelete} {
					gomega.Expect(Can(g.role, g.own, action)).To(gomega.BeTrue(),
						"%s should be allowed %s on %s", g.role, action, g.own)
				}
			}
		})

		ginkgo.It("should give view-only access in the other business domains", func() {
			for _, g := range grants {
				for _, domain := range []Domain{DomainCybersecurity, DomainTickets, DomainDatasets} {
					if domain == g.own {
						continue
					}
					gomega.Expect(Can(g.role, domain, ActionView)).To(gomega.BeTrue())
					gomega.Expect(Can(g.role, domain, ActionCreate)).To(gomega.BeFalse())
					gomega.Expect(Can(g.role, domain, ActionDelete)).To(gomega.BeFalse())
				}
			}
		})

		ginkgo.It("should deny user management", func() {
			for _, g := range grants {
				gomega.Expect(Can(g.role, DomainAdmin, ActionManageUsers)).To(gomega.BeFalse())
			}
		})
	})

	ginkgo.Context("with unknown inputs", func() {
		ginkgo.It("should deny unknown roles", func() {
			gomega.Expect(Can(Role("superuser"), DomainTickets, ActionView)).To(gomega.BeFalse())
		})

		ginkgo.It("should deny unknown domains", func() {
			gomega.Expect(Can(RoleAdmin, Domain("billing"), ActionView)).To(gomega.BeFalse())
		})

		ginkgo.It("should deny unknown actions", func() {
			gomega.Expect(Can(RoleAdmin, DomainTickets, Action("export"))).To(gomega.BeFalse())
		})

		ginkgo.It("should deny empty inputs", func() {
			gomega.Expect(Can("", "", "")).To(gomega.BeFalse())
		})
	})

	ginkgo.It("should return a decision for every known tuple", func() {
		// totality: the check never panics and always yields a boolean
		for _, role := range Roles() {
			for _, domain := range Domains() {
				for _, action := range Actions() {
					_ = Can(role, domain, action)
				}
			}
		}
	})
})

var _ = ginkgo.Describe("ParseRole", func() {
	ginkgo.It("should accept every declared role", func() {
		for _, role := range Roles() {
			parsed, err := ParseRole(string(role))
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(parsed).To(gomega.Equal(role))
		}
	})

	ginkgo.It("should reject unknown names", func() {
		_, err := ParseRole("root")
		gomega.Expect(err).To(gomega.HaveOccurred())
	})
})
