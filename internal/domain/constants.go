package domain

// Catalog defaults
const (
	DefaultOpenHour  = 9
	DefaultCloseHour = 17
)

// Business validation constants
const (
	MinDurationMinutes = 5
	MaxDurationMinutes = 1440 // 24 hours
	MinOpenHour        = 0
	MaxOpenHour        = 23
	MinCloseHour       = 1
	MaxCloseHour       = 24
	MaxNameLength      = 200
	MaxNotesLength     = 500
)

// Slot generation constants
const (
	MinStepMinutes     = 5
	DefaultStepMinutes = 30
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
