package create_order

import "time"

// Request модель запроса на создание заказа
type Request struct {
	UserID      int64     // ID пользователя из токена
	ServiceID   int64     // ID услуги
	ScheduledAt time.Time // Время начала
	Notes       string    // Комментарий к заказу (опционально)
}

// Response модель ответа с созданным заказом
type Response struct {
	ID                int64
	UserID            int64
	ServiceID         int64
	ScheduledStart    time.Time
	ScheduledEnd      time.Time
	Status            string
	Notes             string
	ServiceName       string
	ServicePriceCents int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
