package common

// Storage keys. Each key holds one complete blob; writes replace it whole.
const (
	KeyUsers       = "ticketapp_users"
	KeySession     = "ticketapp_session"
	KeyCurrentUser = "ticketapp_user"
	KeyTickets     = "ticketapp_tickets"
)
