package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

// ParseDate разбирает календарную дату YYYY-MM-DD как начало суток UTC
// Несуществующие даты (2025-02-30) отклоняются
func ParseDate(dateISO string) (time.Time, error) {
	day, err := time.ParseInLocation(domain.DateFormat, dateISO, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidDate, dateISO)
	}
	return day, nil
}

// OperatingWindow возвращает рабочее окно услуги [openHour:00, closeHour:00) UTC в указанный день
// Если openHour >= closeHour, окно пустое
func OperatingWindow(service domain.Service, dateISO string) (domain.Interval, error) {
	day, err := ParseDate(dateISO)
	if err != nil {
		return domain.Interval{}, err
	}

	return domain.Interval{
		Start: day.Add(time.Duration(service.OpenHour) * time.Hour),
		End:   day.Add(time.Duration(service.CloseHour) * time.Hour),
	}, nil
}

// ComputeSlots вычисляет свободные слоты услуги на день
//
// Кандидаты генерируются с шагом stepMinutes (не меньше 5 минут) от начала рабочего окна,
// пока слот длиной service.DurationMinutes помещается в окно целиком.
// Отбрасываются слоты, начинающиеся не позже now, и слоты, пересекающиеся с existing.
// Пересечение проверяется по правилу полуоткрытых интервалов: слот, заканчивающийся ровно
// в момент начала заказа, доступен.
//
// Флаг active услуги здесь не проверяется - это обязанность вызывающего кода.
// Функция чистая: одинаковые входные данные дают одинаковый результат.
func ComputeSlots(
	service domain.Service,
	dateISO string,
	stepMinutes int,
	existing []domain.Interval,
	now time.Time,
) ([]domain.Slot, error) {
	window, err := OperatingWindow(service, dateISO)
	if err != nil {
		return nil, err
	}

	if service.DurationMinutes < domain.MinDurationMinutes {
		return nil, fmt.Errorf("%w: %d minutes, minimum is %d",
			domain.ErrInvalidDuration, service.DurationMinutes, domain.MinDurationMinutes)
	}

	slots := make([]domain.Slot, 0)
	if window.IsEmpty() {
		return slots, nil
	}

	step := time.Duration(clampStep(stepMinutes)) * time.Minute
	duration := service.Duration()

	for start := window.Start; !start.Add(duration).After(window.End); start = start.Add(step) {
		// Только будущие слоты (строго позже текущего момента)
		if !start.After(now) {
			continue
		}

		candidate := domain.Interval{Start: start, End: start.Add(duration)}
		if candidate.OverlapsAny(existing) {
			continue
		}

		slots = append(slots, domain.Slot{Start: candidate.Start, End: candidate.End})
	}

	return slots, nil
}

// clampStep ограничивает шаг генерации снизу
func clampStep(stepMinutes int) int {
	if stepMinutes < domain.MinStepMinutes {
		return domain.MinStepMinutes
	}
	return stepMinutes
}
