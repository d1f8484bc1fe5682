package txmanager

import "errors"

var (
	// ErrBeginTx не удалось открыть транзакцию
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommit не удалось зафиксировать транзакцию
	ErrCommit = errors.New("txmanager: failed to commit transaction")

	// ErrRetriesExhausted сериализуемая транзакция не прошла за отведённое число попыток
	ErrRetriesExhausted = errors.New("txmanager: serialization retries exhausted")
)
