package domain

import (
	"regexp"
	"strings"
	"time"
)

// Patient is the master patient record, keyed by hospital folder number
type Patient struct {
	ID           int64
	FirstName    string
	LastName     string
	DateOfBirth  time.Time
	FolderNumber string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// folderNumberPattern: one letter, two digits, a slash, then at least one digit.
// Example: T12/123456
var folderNumberPattern = regexp.MustCompile(`^[A-Za-z][0-9]{2}/[0-9]+$`)

// ValidFolderNumber reports whether the folder number matches the hospital
// file format. The input is trimmed first; lookups are case-insensitive.
func ValidFolderNumber(folderNumber string) bool {
	return folderNumberPattern.MatchString(strings.TrimSpace(folderNumber))
}

// TrimFolderNumber removes surrounding whitespace. Case is preserved as
// entered; matching happens case-insensitively at the storage layer.
func TrimFolderNumber(folderNumber string) string {
	return strings.TrimSpace(folderNumber)
}

// DemographicsDiffer reports whether any of the demographic fields differ
// from the given input. Used for upsert-by-folder on booking admission.
func (p *Patient) DemographicsDiffer(firstName, lastName string, dateOfBirth time.Time) bool {
	return p.FirstName != firstName ||
		p.LastName != lastName ||
		!SameDay(p.DateOfBirth, dateOfBirth)
}
