package domain

// Principal is the tagged union bound into the request context after
// authentication. Exactly one of User or Customer is set, matching the
// audience the token was decoded under.
type Principal struct {
	Audience Audience
	User     *User
	Customer *Customer
}

// ID returns the primary key of the bound variant.
func (p Principal) ID() int64 {
	switch p.Audience {
	case AudienceCustomer:
		if p.Customer != nil {
			return p.Customer.CustomerID
		}
	default:
		if p.User != nil {
			return p.User.UserID
		}
	}
	return 0
}

// IsDeleted reports whether the bound variant is soft deleted.
func (p Principal) IsDeleted() bool {
	switch p.Audience {
	case AudienceCustomer:
		return p.Customer == nil || p.Customer.IsDelete
	default:
		return p.User == nil || p.User.IsDelete
	}
}

// Matches reports whether the bound variant's type agrees with the audience:
// a user for manage, a customer for customer. The double check keeps a valid
// token for one audience from being accepted under the other.
func (p Principal) Matches(aud Audience) bool {
	if p.Audience != aud {
		return false
	}
	switch aud {
	case AudienceCustomer:
		return p.Customer != nil && p.User == nil
	default:
		return p.User != nil && p.Customer == nil
	}
}

// Actor converts the principal into the explicit actor passed to services.
func (p Principal) Actor() Actor {
	switch p.Audience {
	case AudienceCustomer:
		return Actor{Kind: ActorCustomer, ID: p.ID()}
	default:
		return Actor{Kind: ActorUser, ID: p.ID()}
	}
}
