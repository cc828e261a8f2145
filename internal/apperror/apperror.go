package apperror

import (
	"errors"
	"fmt"
)

// Виды ошибок уровня сервиса. Обработчики сопоставляют их с HTTP статусами
// через errors.Is: ErrClientInput -> 400, ErrNotFound -> 404, остальное -> 500.
var (
	ErrClientInput = errors.New("неверные входные данные")
	ErrNotFound    = errors.New("не найдено")
)

func ClientInput(message string) error {
	return fmt.Errorf("%w: %s", ErrClientInput, message)
}

// NotFound скрывает различие между "не существует" и "принадлежит другому
// пользователю": наружу уходит один и тот же вид ошибки.
func NotFound(resource string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, resource)
}
