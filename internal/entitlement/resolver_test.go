package entitlement

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"kycgate/internal/catalog"
)

type ResolverSuite struct {
	suite.Suite
	store    *InMemoryStore
	resolver *Resolver
	ctx      context.Context
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverSuite))
}

func (s *ResolverSuite) SetupTest() {
	s.store = NewInMemoryStore()
	var err error
	s.resolver, err = NewResolver(s.store)
	s.Require().NoError(err)
	s.ctx = context.Background()
}

func (s *ResolverSuite) TestNewResolver() {
	_, err := NewResolver(nil)
	s.Require().Error(err)
}

func (s *ResolverSuite) TestResolve() {
	s.Run("active entitlement yields the cache window", func() {
		s.store.Put(&Entitlement{ClientID: 1, ServiceID: catalog.ServicePAN, Active: true, CacheDays: 7})

		window, err := s.resolver.Resolve(s.ctx, 1, "pan")
		s.Require().NoError(err)
		s.Equal(catalog.ServicePAN, window.ServiceID)
		s.Equal(7*24*time.Hour, window.Duration())
	})

	s.Run("unknown service name", func() {
		_, err := s.resolver.Resolve(s.ctx, 1, "PASSPORT")
		s.Require().ErrorIs(err, ErrServiceNotConfigured)
	})

	s.Run("no row for the pair", func() {
		_, err := s.resolver.Resolve(s.ctx, 1, "RC")
		s.Require().ErrorIs(err, ErrEntitlementMissing)
	})

	s.Run("inactive row", func() {
		s.store.Put(&Entitlement{ClientID: 1, ServiceID: catalog.ServiceBill, Active: false, CacheDays: 7})

		_, err := s.resolver.Resolve(s.ctx, 1, "BILL")
		s.Require().ErrorIs(err, ErrEntitlementDisabled)
	})

	s.Run("zero cache days is a valid window", func() {
		s.store.Put(&Entitlement{ClientID: 1, ServiceID: catalog.ServiceVoter, Active: true, CacheDays: 0})

		window, err := s.resolver.Resolve(s.ctx, 1, "VOTER")
		s.Require().NoError(err)
		s.Zero(window.Duration())
	})

	s.Run("entitlements are per client", func() {
		s.store.Put(&Entitlement{ClientID: 1, ServiceID: catalog.ServiceName, Active: true, CacheDays: 3})

		_, err := s.resolver.Resolve(s.ctx, 2, "NAME")
		s.Require().ErrorIs(err, ErrEntitlementMissing)
	})
}
