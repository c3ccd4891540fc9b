package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pharmago/pharmago_backend/internal/core/domain"
)

func TestPrincipalMatches(t *testing.T) {
	user := &domain.User{UserID: 1}
	customer := &domain.Customer{CustomerID: 2}

	manage := domain.Principal{Audience: domain.AudienceManage, User: user}
	assert.True(t, manage.Matches(domain.AudienceManage))
	assert.False(t, manage.Matches(domain.AudienceCustomer))

	cust := domain.Principal{Audience: domain.AudienceCustomer, Customer: customer}
	assert.True(t, cust.Matches(domain.AudienceCustomer))
	assert.False(t, cust.Matches(domain.AudienceManage))

	// A principal whose variant disagrees with its audience never matches.
	broken := domain.Principal{Audience: domain.AudienceManage, Customer: customer}
	assert.False(t, broken.Matches(domain.AudienceManage))
	assert.False(t, broken.Matches(domain.AudienceCustomer))

	both := domain.Principal{Audience: domain.AudienceManage, User: user, Customer: customer}
	assert.False(t, both.Matches(domain.AudienceManage))
}

func TestPrincipalID(t *testing.T) {
	manage := domain.Principal{Audience: domain.AudienceManage, User: &domain.User{UserID: 11}}
	assert.Equal(t, int64(11), manage.ID())

	cust := domain.Principal{Audience: domain.AudienceCustomer, Customer: &domain.Customer{CustomerID: 22}}
	assert.Equal(t, int64(22), cust.ID())

	assert.Equal(t, int64(0), domain.Principal{Audience: domain.AudienceManage}.ID())
}

func TestPrincipalActor(t *testing.T) {
	manage := domain.Principal{Audience: domain.AudienceManage, User: &domain.User{UserID: 11}}
	assert.Equal(t, domain.Actor{Kind: domain.ActorUser, ID: 11}, manage.Actor())

	cust := domain.Principal{Audience: domain.AudienceCustomer, Customer: &domain.Customer{CustomerID: 22}}
	assert.Equal(t, domain.Actor{Kind: domain.ActorCustomer, ID: 22}, cust.Actor())
}

func TestPrincipalIsDeleted(t *testing.T) {
	live := domain.Principal{Audience: domain.AudienceManage, User: &domain.User{UserID: 1}}
	assert.False(t, live.IsDeleted())

	deleted := domain.Principal{Audience: domain.AudienceManage, User: &domain.User{UserID: 1}}
	deleted.User.IsDelete = true
	assert.True(t, deleted.IsDeleted())

	// An unbound principal is treated as deleted.
	assert.True(t, domain.Principal{Audience: domain.AudienceCustomer}.IsDeleted())
}
