package pos

import (
	"strings"

	"agri-pos/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CustomerDirectory is the read-only customer view the resolver matches
// against, satisfied by the catalog snapshot.
type CustomerDirectory interface {
	CustomerByPhone(phone string) (model.Customer, bool)
}

// ContactInfo is the contact form entered at the POS terminal.
type ContactInfo struct {
	Phone         string `json:"phone"`
	Name          string `json:"name"`
	Commune       string `json:"commune"`
	Village       string `json:"village"`
	AddressDetail string `json:"addressDetail"`
}

// trimmed returns a copy with all fields whitespace-trimmed.
func (c ContactInfo) trimmed() ContactInfo {
	return ContactInfo{
		Phone:         strings.TrimSpace(c.Phone),
		Name:          strings.TrimSpace(c.Name),
		Commune:       strings.TrimSpace(c.Commune),
		Village:       strings.TrimSpace(c.Village),
		AddressDetail: strings.TrimSpace(c.AddressDetail),
	}
}

// CustomerIntent is the record the checkout should persist: either a brand
// new customer or an in-place update of an existing one.
type CustomerIntent struct {
	Customer model.Customer
	Create   bool
}

// Resolver maps a phone number to an existing customer or describes a new
// one. Matching is exact string equality on the phone, no normalisation.
type Resolver struct {
	logger zerolog.Logger
}

// NewResolver creates a customer resolver.
func NewResolver(logger zerolog.Logger) *Resolver {
	return &Resolver{
		logger: logger.With().Str("component", "resolver").Logger(),
	}
}

// Resolve decides between updating the customer holding the entered phone and
// creating a new one. On update only the contact fields are overwritten; the
// identifier, phone and creation time of the stored record are preserved.
//
// Resolve never rejects a matching phone as a duplicate: at checkout a
// matching phone always means "this is that customer". DuplicatePhone is only
// enforced by CheckPhoneUnique during direct customer edits.
func (r *Resolver) Resolve(customers CustomerDirectory, in ContactInfo) (CustomerIntent, error) {
	in = in.trimmed()
	if in.Phone == "" {
		return CustomerIntent{}, model.MissingFieldError("phone")
	}
	if in.Name == "" {
		return CustomerIntent{}, model.MissingFieldError("name")
	}

	if existing, ok := customers.CustomerByPhone(in.Phone); ok {
		existing.Name = in.Name
		existing.Commune = in.Commune
		existing.Village = in.Village
		existing.AddressDetail = in.AddressDetail

		r.logger.Debug().
			Str("customer_id", existing.ID).
			Msg("resolved existing customer by phone")

		return CustomerIntent{Customer: existing}, nil
	}

	customer := model.Customer{
		ID:            uuid.NewString(),
		Name:          in.Name,
		Phone:         in.Phone,
		Commune:       in.Commune,
		Village:       in.Village,
		AddressDetail: in.AddressDetail,
		CreatedAt:     model.Now(),
	}

	r.logger.Debug().
		Str("customer_id", customer.ID).
		Msg("resolved new customer")

	return CustomerIntent{Customer: customer, Create: true}, nil
}

// CheckPhoneUnique fails with DuplicatePhone when a customer other than
// excludingID already holds the phone. Used by customer management, never by
// the checkout path.
func (r *Resolver) CheckPhoneUnique(customers CustomerDirectory, phone, excludingID string) error {
	existing, ok := customers.CustomerByPhone(phone)
	if ok && existing.ID != excludingID {
		return model.ErrDuplicatePhone
	}
	return nil
}
