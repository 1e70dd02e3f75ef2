package service

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/storefrontdev/storefront/internal/logging"
	"github.com/storefrontdev/storefront/internal/models"
	"github.com/storefrontdev/storefront/internal/repo"
)

// CartLinker is the piece of the cart service the address flow needs.
type CartLinker interface {
	AttachAddress(ctx context.Context, userID, addressID uuid.UUID) (*models.Cart, error)
}

type AddressService struct {
	Repo *repo.GormRepo
	Cart CartLinker
}

type AddressInput struct {
	RecipientName string
	Street        string
	Number        string
	Complement    string
	Neighborhood  string
	City          string
	State         string
	ZipCode       string
	Country       string
	Phone         string
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func validateAddress(in *AddressInput) error {
	if len(strings.TrimSpace(in.RecipientName)) < 2 {
		return fmt.Errorf("recipient_name must have at least 2 characters: %w", ErrValidation)
	}
	if len(strings.TrimSpace(in.Street)) < 5 {
		return fmt.Errorf("street must have at least 5 characters: %w", ErrValidation)
	}
	if strings.TrimSpace(in.Number) == "" {
		return fmt.Errorf("number is required: %w", ErrValidation)
	}
	if len(strings.TrimSpace(in.Neighborhood)) < 2 {
		return fmt.Errorf("neighborhood must have at least 2 characters: %w", ErrValidation)
	}
	if len(strings.TrimSpace(in.City)) < 2 {
		return fmt.Errorf("city must have at least 2 characters: %w", ErrValidation)
	}
	if len(strings.TrimSpace(in.State)) < 2 {
		return fmt.Errorf("state must have at least 2 characters: %w", ErrValidation)
	}
	if len(strings.TrimSpace(in.Country)) < 2 {
		return fmt.Errorf("country is required: %w", ErrValidation)
	}

	in.ZipCode = digitsOnly(in.ZipCode)
	if len(in.ZipCode) != 8 {
		return fmt.Errorf("zip_code must have 8 digits: %w", ErrValidation)
	}

	in.Phone = digitsOnly(in.Phone)
	if len(in.Phone) < 10 || len(in.Phone) > 11 {
		return fmt.Errorf("phone must have 10 or 11 digits: %w", ErrValidation)
	}

	return nil
}

// AddAddress validates and normalizes the fields, inserts the address,
// then tries to link it to the user's cart. The link is best effort: a
// failure there is logged and swallowed because the address itself was
// saved successfully.
func (s *AddressService) AddAddress(ctx context.Context, userID uuid.UUID, in AddressInput) (*models.ShippingAddress, error) {
	if err := validateAddress(&in); err != nil {
		return nil, err
	}

	address := &models.ShippingAddress{
		UserID:        userID,
		RecipientName: in.RecipientName,
		Street:        in.Street,
		Number:        in.Number,
		Complement:    in.Complement,
		Neighborhood:  in.Neighborhood,
		City:          in.City,
		State:         in.State,
		ZipCode:       in.ZipCode,
		Country:       in.Country,
		Phone:         in.Phone,
	}
	if err := s.Repo.CreateAddress(ctx, address); err != nil {
		return nil, err
	}

	if _, err := s.Cart.AttachAddress(ctx, userID, address.ID); err != nil {
		logging.FromContext(ctx).Warn("could not link address to cart",
			"address_id", address.ID, "error", err)
	}

	return address, nil
}

func (s *AddressService) ListAddresses(ctx context.Context, userID uuid.UUID) ([]models.ShippingAddress, error) {
	return s.Repo.ListAddresses(ctx, userID)
}
