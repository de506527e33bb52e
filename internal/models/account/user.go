package models

// User is the profile stored at user:<id>. It is written at sign-in and read-only afterwards.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image"`
}
