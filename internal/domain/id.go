package domain

import "github.com/google/uuid"

// ValidID reports whether id can be a primary key. Every table keys its rows by UUID,
// so anything else can never match and must not reach the database.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
