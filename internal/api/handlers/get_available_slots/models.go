package get_available_slots

import (
	"time"

	getAvailableSlots "github.com/m04kA/SMC-LaundryService/internal/usecase/get_available_slots"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	Date    string       `json:"date"`
	Service ServiceInfo  `json:"service"`
	Slots   []SlotResult `json:"slots"`
}

// ServiceInfo параметры услуги, по которым построены слоты
type ServiceInfo struct {
	ID              int64 `json:"id"`
	DurationMinutes int   `json:"durationMinutes"`
	OpenHour        int   `json:"openHour"`
	CloseHour       int   `json:"closeHour"`
}

// SlotResult свободный слот
type SlotResult struct {
	Start string `json:"start"` // RFC 3339, UTC
	End   string `json:"end"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	slots := make([]SlotResult, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResult{
			Start: s.Start.UTC().Format(time.RFC3339),
			End:   s.End.UTC().Format(time.RFC3339),
		})
	}

	return &SlotsResponse{
		Date: resp.Date,
		Service: ServiceInfo{
			ID:              resp.Service.ID,
			DurationMinutes: resp.Service.DurationMinutes,
			OpenHour:        resp.Service.OpenHour,
			CloseHour:       resp.Service.CloseHour,
		},
		Slots: slots,
	}
}
