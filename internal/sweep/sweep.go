package sweep

import (
	"context"
	"fmt"
	"time"

	"github.com/MikailBag/birthdaybot/internal/domain"
	"github.com/MikailBag/birthdaybot/internal/log"
	"github.com/MikailBag/birthdaybot/internal/metrics"
	"github.com/MikailBag/birthdaybot/internal/queue"
)

// Cooldown advances the marker past the next day's scan, so the user is not
// re-matched until next year's occurrence of their day/month.
const Cooldown int64 = 24*60*60 + 100

type Store interface {
	FindDue(ctx context.Context, day, month int, notGreetedSince int64) ([]domain.User, error)
	PutUser(ctx context.Context, u *domain.User) error
}

type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

type Sweeper struct {
	Store  Store
	Sender Sender
	Pub    queue.Publisher
}

func New(store Store, sender Sender, pub queue.Publisher) *Sweeper {
	return &Sweeper{Store: store, Sender: sender, Pub: pub}
}

// Result of one sweep. Failed lists users that stay eligible for the next run.
type Result struct {
	Sent   int
	Failed []int64
}

// Run greets every due user for the given moment. Per-user order: send first,
// advance the marker only after the send succeeded. One failed user does not
// abort the rest of the due set. Safe to re-run: processed users are already
// past the cool-down bound.
func (s *Sweeper) Run(ctx context.Context, today time.Time) (Result, error) {
	metrics.SweepRuns.Inc()
	now := today.Unix()
	day, month := today.Day(), int(today.Month())
	log.Infof("searching for greeties: day=%d month=%d", day, month)

	due, err := s.Store.FindDue(ctx, day, month, now)
	if err != nil {
		return Result{}, fmt.Errorf("find due users: %w", err)
	}
	// 29.02 в невисокосный год: поздравляем 28-го
	if day == 28 && month == 2 && !isLeap(today.Year()) {
		extra, err := s.Store.FindDue(ctx, 29, 2, now)
		if err != nil {
			return Result{}, fmt.Errorf("find leap-day users: %w", err)
		}
		due = append(due, extra...)
	}

	var res Result
	for _, u := range due {
		text := fmt.Sprintf("Happy birthday, @%s", u.Username)
		if err := s.Sender.SendMessage(ctx, u.ChatID, text); err != nil {
			metrics.GreetingFailures.Inc()
			log.Errorf("greet user %d: send failed: %v", u.ID, err)
			res.Failed = append(res.Failed, u.ID)
			continue
		}
		u.LastGreetedAt = now + Cooldown
		if err := s.Store.PutUser(ctx, &u); err != nil {
			// поздравление уже ушло; маркер не сдвинут — возможен редкий повтор
			log.Errorf("greet user %d: advance marker failed: %v", u.ID, err)
			res.Failed = append(res.Failed, u.ID)
			continue
		}
		metrics.GreetingsSent.Inc()
		res.Sent++

		if s.Pub != nil {
			_ = s.Pub.Publish(ctx, queue.Exchange, "birthday.greeted",
				queue.BirthdayGreeted{UserID: u.ID, ChatID: u.ChatID, Username: u.Username},
				"")
		}
	}
	return res, nil
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
