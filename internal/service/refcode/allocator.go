package refcode

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// ExistsFunc проверяет, занят ли код. Вызывается в той же транзакции, что и вставка бронирования
type ExistsFunc func(ctx context.Context, code string) (bool, error)

// Allocator выдаёт короткие коды бронирований из фиксированного алфавита
type Allocator struct {
	alphabet    string
	length      int
	maxAttempts int
	source      io.Reader
	onCollision func()
}

type Option func(*Allocator)

// WithSource источник случайных байт (по умолчанию crypto/rand)
func WithSource(r io.Reader) Option {
	return func(a *Allocator) {
		a.source = r
	}
}

func WithMaxAttempts(n int) Option {
	return func(a *Allocator) {
		if n > 0 {
			a.maxAttempts = n
		}
	}
}

// WithCollisionObserver вызывается на каждый уже занятый код
func WithCollisionObserver(fn func()) Option {
	return func(a *Allocator) {
		a.onCollision = fn
	}
}

// NewAllocator создает аллокатор с алфавитом и длиной из domain
func NewAllocator(opts ...Option) *Allocator {
	a := &Allocator{
		alphabet:    domain.ReferenceCodeAlphabet,
		length:      domain.ReferenceCodeLength,
		maxAttempts: domain.ReferenceCodeMaxAttempts,
		source:      rand.Reader,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Generate возвращает случайный код без проверки уникальности
// Байты вне наибольшего кратного размера алфавита отбрасываются, поэтому символы равновероятны
func (a *Allocator) Generate() (string, error) {
	n := len(a.alphabet)
	limit := 256 - 256%n

	code := make([]byte, 0, a.length)
	buf := make([]byte, a.length)

	for len(code) < a.length {
		if _, err := io.ReadFull(a.source, buf); err != nil {
			return "", fmt.Errorf("%w: Generate - read random bytes: %w", ErrInternal, err)
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			code = append(code, a.alphabet[int(b)%n])
			if len(code) == a.length {
				break
			}
		}
	}

	return string(code), nil
}

// Allocate возвращает первый свободный код не более чем за maxAttempts попыток
func (a *Allocator) Allocate(ctx context.Context, exists ExistsFunc) (string, error) {
	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		code, err := a.Generate()
		if err != nil {
			return "", err
		}

		taken, err := exists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("%w: Allocate - check code uniqueness: %w", ErrInternal, err)
		}
		if !taken {
			return code, nil
		}

		if a.onCollision != nil {
			a.onCollision()
		}
	}

	return "", fmt.Errorf("%w: %d attempts", ErrExhausted, a.maxAttempts)
}
