package directory

// DefaultUsers returns the records every directory starts with unless
// seeding is disabled.
func DefaultUsers() []User {
	return []User{
		{ID: 1, Name: "John Doe", Email: "john.doe@example.com"},
		{ID: 2, Name: "Jane Smith", Email: "jane.smith@example.com"},
		{ID: 3, Name: "Bob Johnson", Email: "bob.johnson@example.com"},
		{ID: 4, Name: "Alice Brown", Email: "alice.brown@example.com"},
		{ID: 5, Name: "Charlie Wilson", Email: "charlie.wilson@example.com"},
	}
}
