package repo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MikailBag/birthdaybot/internal/domain"
	"github.com/MikailBag/birthdaybot/internal/log"
	"github.com/MikailBag/birthdaybot/internal/metrics"
)

// PutUser — полный upsert по _id: последняя запись побеждает, частичных
// обновлений нет.
func (s *Store) PutUser(ctx context.Context, u *domain.User) error {
	_, err := s.colUsers.ReplaceOne(ctx,
		bson.M{"_id": u.ID},
		u,
		options.Replace().SetUpsert(true),
	)
	return err
}

// dueFilter matches users whose birthday is (day, month) and whose cool-down
// marker has elapsed.
func dueFilter(day, month int, notGreetedSince int64) bson.M {
	return bson.M{
		"birth.day":       day,
		"birth.month":     month,
		"last_greeted_at": bson.M{"$lte": notGreetedSince},
	}
}

// FindDue returns the due set for (day, month) at the given moment. Order is
// unspecified. A record that fails to decode is logged and skipped; it must
// not abort the rest of the scan.
func (s *Store) FindDue(ctx context.Context, day, month int, notGreetedSince int64) ([]domain.User, error) {
	cur, err := s.colUsers.Find(ctx, dueFilter(day, month, notGreetedSince))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []domain.User
	for cur.Next(ctx) {
		var u domain.User
		if err := cur.Decode(&u); err != nil {
			metrics.BadUserRecords.Inc()
			log.Errorf("skipping undecodable user record: %v", err)
			continue
		}
		out = append(out, u)
	}
	return out, cur.Err()
}
