package domain

// User is one registered chat participant. Keyed by the Telegram user id;
// re-registration fully replaces the record.
type User struct {
	ID            int64  `bson:"_id" json:"id"`
	ChatID        int64  `bson:"chat_id" json:"chat_id"`
	Birth         Date   `bson:"birth" json:"birth"`
	LastGreetedAt int64  `bson:"last_greeted_at" json:"last_greeted_at"` // unix seconds; 0 = never greeted
	Username      string `bson:"username,omitempty" json:"username,omitempty"`
}
