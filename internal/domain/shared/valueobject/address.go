package valueobject

import (
	"encoding/json"
	"errors"
	"strings"
)

// Address is a value object representing a delivery address
// It is immutable - construct a new Address to change it
type Address struct {
	line1      string
	line2      string
	city       string
	region     string
	postalCode string
	country    string
}

// AddressOption is a functional option for configuring Address
type AddressOption func(*Address)

// WithLine2 sets the secondary address line (apartment, suite, ...)
func WithLine2(line2 string) AddressOption {
	return func(a *Address) {
		a.line2 = strings.TrimSpace(line2)
	}
}

// WithRegion sets the state/province/region
func WithRegion(region string) AddressOption {
	return func(a *Address) {
		a.region = strings.TrimSpace(region)
	}
}

// NewAddress creates a new Address with the required fields
// Line1, city, postal code and country are required
func NewAddress(line1, city, postalCode, country string, opts ...AddressOption) (Address, error) {
	line1 = strings.TrimSpace(line1)
	city = strings.TrimSpace(city)
	postalCode = strings.TrimSpace(postalCode)
	country = strings.TrimSpace(country)

	if line1 == "" {
		return Address{}, errors.New("address line cannot be empty")
	}
	if len(line1) > 200 {
		return Address{}, errors.New("address line cannot exceed 200 characters")
	}
	if city == "" {
		return Address{}, errors.New("city cannot be empty")
	}
	if postalCode == "" {
		return Address{}, errors.New("postal code cannot be empty")
	}
	if len(postalCode) > 20 {
		return Address{}, errors.New("postal code cannot exceed 20 characters")
	}
	if country == "" {
		return Address{}, errors.New("country cannot be empty")
	}

	addr := Address{
		line1:      line1,
		city:       city,
		postalCode: postalCode,
		country:    country,
	}

	for _, opt := range opts {
		opt(&addr)
	}

	return addr, nil
}

// Line1 returns the primary address line
func (a Address) Line1() string { return a.line1 }

// Line2 returns the secondary address line
func (a Address) Line2() string { return a.line2 }

// City returns the city
func (a Address) City() string { return a.city }

// Region returns the state/province/region
func (a Address) Region() string { return a.region }

// PostalCode returns the postal code
func (a Address) PostalCode() string { return a.postalCode }

// Country returns the country
func (a Address) Country() string { return a.country }

// IsZero returns true for an unset address
func (a Address) IsZero() bool {
	return a == Address{}
}

// String returns a single-line representation of the address
func (a Address) String() string {
	parts := []string{a.line1}
	if a.line2 != "" {
		parts = append(parts, a.line2)
	}
	parts = append(parts, a.city)
	if a.region != "" {
		parts = append(parts, a.region)
	}
	parts = append(parts, a.postalCode, a.country)
	return strings.Join(parts, ", ")
}

// addressJSON is the wire representation of Address
type addressJSON struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	Region     string `json:"region,omitempty"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// MarshalJSON implements json.Marshaler
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(addressJSON{
		Line1:      a.line1,
		Line2:      a.line2,
		City:       a.city,
		Region:     a.region,
		PostalCode: a.postalCode,
		Country:    a.country,
	})
}

// UnmarshalJSON implements json.Unmarshaler
func (a *Address) UnmarshalJSON(data []byte) error {
	var v addressJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	a.line1 = v.Line1
	a.line2 = v.Line2
	a.city = v.City
	a.region = v.Region
	a.postalCode = v.PostalCode
	a.country = v.Country
	return nil
}
