package address

import (
	"strings"
	"time"
)

// Address types accepted by the backend
const (
	TypeHome  = "Home"
	TypeWork  = "Work"
	TypeOther = "Other"
)

// Address is a saved delivery address as the backend returns it
type Address struct {
	ID           string     `json:"_id"`
	UserID       string     `json:"userId,omitempty"`
	FullName     string     `json:"fullName"`
	Phone        string     `json:"phone"`
	AltPhone     string     `json:"altPhone,omitempty"`
	Pincode      string     `json:"pincode"`
	AddressLine1 string     `json:"addressLine1"`
	AddressLine2 string     `json:"addressLine2"`
	Landmark     string     `json:"landmark,omitempty"`
	City         string     `json:"city"`
	State        string     `json:"state"`
	AddressType  string     `json:"addressType"`
	IsDefault    bool       `json:"isDefault"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

// Form is the editable part of an address
type Form struct {
	FullName     string `json:"fullName" validate:"required,min=2,max=100"`
	Phone        string `json:"phone" validate:"required,len=10,numeric"`
	AltPhone     string `json:"altPhone,omitempty" validate:"omitempty,len=10,numeric"`
	Pincode      string `json:"pincode" validate:"required,len=6,numeric"`
	AddressLine1 string `json:"addressLine1" validate:"required,max=200"`
	AddressLine2 string `json:"addressLine2" validate:"max=200"`
	Landmark     string `json:"landmark,omitempty" validate:"max=100"`
	City         string `json:"city" validate:"required,max=100"`
	State        string `json:"state" validate:"required,max=100"`
	AddressType  string `json:"addressType" validate:"required,oneof=Home Work Other"`
	IsDefault    bool   `json:"isDefault"`
}

// Normalize trims whitespace and defaults the address type to Home
func (f *Form) Normalize() {
	for _, s := range []*string{&f.FullName, &f.Phone, &f.AltPhone, &f.Pincode, &f.AddressLine1,
		&f.AddressLine2, &f.Landmark, &f.City, &f.State, &f.AddressType} {
		*s = strings.TrimSpace(*s)
	}
	if f.AddressType == "" {
		f.AddressType = TypeHome
	}
}

// InitialSelection picks the default address, else the first, else none
func InitialSelection(addresses []Address) string {
	for _, a := range addresses {
		if a.IsDefault {
			return a.ID
		}
	}
	if len(addresses) > 0 {
		return addresses[0].ID
	}
	return ""
}

// Find returns the address with id
func Find(addresses []Address, id string) (Address, bool) {
	for _, a := range addresses {
		if a.ID == id {
			return a, true
		}
	}
	return Address{}, false
}
