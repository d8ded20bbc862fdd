package models

import "time"

// User is an identity record. SiteSlug is empty for site owners (admins)
// and set to the storefront a shopper registered with.
type User struct {
	ID           string    `json:"-"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	DisplayName  string    `json:"displayName"`
	SiteSlug     string    `json:"siteSlug"`
	CreatedAt    time.Time `json:"createdAt"`
}
