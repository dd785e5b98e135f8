package auth

import "time"

// User is an account that can sign in to the dashboard. FirebaseUID
// cross-references an external auth provider account when one exists.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CompanyName  string
	PhoneNumber  string
	Address      string
	FirebaseUID  *string
	KYCStatus    string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
}
