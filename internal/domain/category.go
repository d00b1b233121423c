package domain

// AppointmentCategory represents the type of an OPD appointment
type AppointmentCategory string

const (
	CategoryNewPatient      AppointmentCategory = "new"
	CategoryReview          AppointmentCategory = "review"
	CategoryChronicFollowUp AppointmentCategory = "chronic"
)

// AllCategories lists every category in the stable order used by API responses
var AllCategories = []AppointmentCategory{
	CategoryNewPatient,
	CategoryReview,
	CategoryChronicFollowUp,
}

// Valid returns true if the category is one of the three clinic categories
func (c AppointmentCategory) Valid() bool {
	switch c {
	case CategoryNewPatient, CategoryReview, CategoryChronicFollowUp:
		return true
	default:
		return false
	}
}

// CategoryLimits maps each appointment category to its daily booking limit.
// Loaded once at process start; never mutated afterwards.
type CategoryLimits map[AppointmentCategory]int

// Limit returns the daily limit for the category, 0 for unknown categories
func (l CategoryLimits) Limit(c AppointmentCategory) int {
	return l[c]
}

// DefaultCategoryLimits are the clinic's daily capacity limits per category
func DefaultCategoryLimits() CategoryLimits {
	return CategoryLimits{
		CategoryNewPatient:      20,
		CategoryReview:          40,
		CategoryChronicFollowUp: 40,
	}
}
