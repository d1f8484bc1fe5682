package domain

import (
	"strings"
	"time"
)

// Contact customer record deduplicated by (tenant, email) or (tenant, phone)
type Contact struct {
	ID        int64
	TenantID  int64
	Name      string
	Email     *string
	Phone     *string
	CreatedAt time.Time
}

// Customer identity submitted with a booking request
type Customer struct {
	Name  string
	Email *string
	Phone *string
}

// NormalizedEmail lowercases and trims the email, nil when absent or blank
func (c Customer) NormalizedEmail() *string {
	return normalize(c.Email, strings.ToLower)
}

// NormalizedPhone trims the phone, nil when absent or blank
func (c Customer) NormalizedPhone() *string {
	return normalize(c.Phone, nil)
}

func normalize(v *string, fn func(string) string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return nil
	}
	if fn != nil {
		s = fn(s)
	}
	return &s
}
