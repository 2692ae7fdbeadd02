package list_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("list_availability: invalid input data")

	// ErrStorageUnavailable возвращается при недоступности хранилища.
	// Хендлер деградирует до пустого списка вместо ошибки 5xx.
	ErrStorageUnavailable = errors.New("list_availability: storage unavailable")
)
