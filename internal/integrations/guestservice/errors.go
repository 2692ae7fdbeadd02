package guestservice

import "errors"

var (
	// ErrGuestNotFound возвращается, когда профиль гостя не найден
	ErrGuestNotFound = errors.New("guest profile not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("guestservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("guestservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что GuestService недоступен; бронирование создаётся
	// без денормализованного профиля гостя.
	ErrServiceDegraded = errors.New("guestservice unavailable: graceful degradation applied")
)
