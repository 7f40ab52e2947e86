package get_available_slots

import "github.com/m04kA/SMC-LaundryService/internal/domain"

// Request модель запроса на получение доступных слотов
type Request struct {
	ServiceID   int64  // ID услуги
	Date        string // Дата в формате YYYY-MM-DD (пусто - сегодня по UTC)
	StepMinutes *int   // Шаг генерации слотов (nil - значение по умолчанию, меньше 5 - поднимается до 5)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date    string        // Дата, на которую запрашивались слоты
	Service ServiceInfo   // Параметры услуги, по которым считались слоты
	Slots   []domain.Slot // Свободные слоты по возрастанию времени начала
}

// ServiceInfo параметры услуги в ответе
type ServiceInfo struct {
	ID              int64
	DurationMinutes int
	OpenHour        int
	CloseHour       int
}
