package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/MikailBag/birthdaybot/internal/domain"
	"github.com/MikailBag/birthdaybot/internal/metrics"
	"github.com/MikailBag/birthdaybot/internal/queue"
)

var (
	ErrInvalidDate = errors.New("invalid birth date")
	ErrNoSender    = errors.New("message has no sender")
	ErrNoUsername  = errors.New("sender has no username")
)

// UserStore is the slice of the store the registrar needs.
type UserStore interface {
	PutUser(ctx context.Context, u *domain.User) error
}

type Registrar struct {
	Store UserStore
	Pub   queue.Publisher
}

func NewRegistrar(store UserStore, pub queue.Publisher) *Registrar {
	return &Registrar{Store: store, Pub: pub}
}

// Register validates the date text and upserts the user. Повторная
// регистрация полностью заменяет запись и сбрасывает маркер приветствия.
func (r *Registrar) Register(ctx context.Context, userID, chatID int64, username, dateText string) error {
	if userID == 0 {
		return ErrNoSender
	}
	if username == "" {
		return ErrNoUsername
	}
	date, err := domain.ParseDate(dateText)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, dateText)
	}

	u := &domain.User{
		ID:            userID,
		ChatID:        chatID,
		Birth:         date,
		LastGreetedAt: 0,
		Username:      username,
	}
	if err := r.Store.PutUser(ctx, u); err != nil {
		return fmt.Errorf("store user: %w", err)
	}
	metrics.RegistrationsTotal.Inc()

	if r.Pub != nil {
		_ = r.Pub.Publish(ctx, queue.Exchange, "user.registered",
			queue.UserRegistered{UserID: userID, ChatID: chatID, Username: username, Day: date.Day, Month: date.Month},
			"")
	}
	return nil
}
