package domain

import "time"

// Service represents a laundry service offered in the catalog
type Service struct {
	ID              int64
	Name            string
	Description     string
	DurationMinutes int
	PriceCents      int64 // Price in minor currency units (kopecks)
	Active          bool
	OpenHour        int // Hour of day (UTC) when the first slot may start
	CloseHour       int // Hour of day (UTC) by which the last slot must end
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Duration returns the service duration
func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

// HasOperatingWindow returns true if the service opens before it closes
func (s *Service) HasOperatingWindow() bool {
	return s.OpenHour < s.CloseHour
}

// ServiceUpdate holds a partial update of a service; nil fields are left unchanged
type ServiceUpdate struct {
	Name            *string
	Description     *string
	DurationMinutes *int
	PriceCents      *int64
	Active          *bool
	OpenHour        *int
	CloseHour       *int
}

// Apply returns a copy of s with the update applied
func (u ServiceUpdate) Apply(s Service) Service {
	if u.Name != nil {
		s.Name = *u.Name
	}
	if u.Description != nil {
		s.Description = *u.Description
	}
	if u.DurationMinutes != nil {
		s.DurationMinutes = *u.DurationMinutes
	}
	if u.PriceCents != nil {
		s.PriceCents = *u.PriceCents
	}
	if u.Active != nil {
		s.Active = *u.Active
	}
	if u.OpenHour != nil {
		s.OpenHour = *u.OpenHour
	}
	if u.CloseHour != nil {
		s.CloseHour = *u.CloseHour
	}
	return s
}
