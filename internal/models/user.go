// Package models defines the records persisted by the Ticketly store:
// users, sessions and tickets.
package models

// User is a registered account as stored in the users collection.
// Password is kept verbatim; there is no hashing in this store.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// View strips the credential.
func (u User) View() UserView {
	return UserView{ID: u.ID, Email: u.Email, Name: u.Name}
}

// UserView is the credential-free projection handed to callers and stored
// as the current user of the active session.
type UserView struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Session is the single active login of this client.
type Session struct {
	Token string
	User  UserView
}
