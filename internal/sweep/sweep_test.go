package sweep

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikailBag/birthdaybot/internal/domain"
)

type fakeStore struct {
	users map[int64]domain.User
}

func newFakeStore(users ...domain.User) *fakeStore {
	f := &fakeStore{users: map[int64]domain.User{}}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeStore) FindDue(ctx context.Context, day, month int, notGreetedSince int64) ([]domain.User, error) {
	var out []domain.User
	for _, u := range f.users {
		if u.Birth.Day == day && u.Birth.Month == month && u.LastGreetedAt <= notGreetedSince {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeStore) PutUser(ctx context.Context, u *domain.User) error {
	f.users[u.ID] = *u
	return nil
}

type sentMsg struct {
	chatID int64
	text   string
}

type fakeSender struct {
	sent    []sentMsg
	failFor map[int64]error // chatID -> error
}

func (f *fakeSender) SendMessage(ctx context.Context, chatID int64, text string) error {
	if err := f.failFor[chatID]; err != nil {
		return err
	}
	f.sent = append(f.sent, sentMsg{chatID, text})
	return nil
}

var march15 = time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)

func TestSweep_EndToEnd(t *testing.T) {
	st := newFakeStore(domain.User{ID: 42, ChatID: 100, Birth: domain.Date{Day: 15, Month: 3}, Username: "john"})
	snd := &fakeSender{}
	s := New(st, snd, nil)

	res, err := s.Run(context.Background(), march15)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent)
	assert.Empty(t, res.Failed)

	require.Len(t, snd.sent, 1)
	assert.Equal(t, int64(100), snd.sent[0].chatID)
	assert.Equal(t, "Happy birthday, @john", snd.sent[0].text)
	assert.Equal(t, march15.Unix()+Cooldown, st.users[42].LastGreetedAt)
}

func TestSweep_Rerun_NoDuplicate(t *testing.T) {
	st := newFakeStore(domain.User{ID: 42, ChatID: 100, Birth: domain.Date{Day: 15, Month: 3}, Username: "john"})
	snd := &fakeSender{}
	s := New(st, snd, nil)

	res, err := s.Run(context.Background(), march15)
	require.NoError(t, err)
	require.Equal(t, 1, res.Sent)

	// повторный запуск в ту же минуту — пустой due set
	res, err = s.Run(context.Background(), march15.Add(30*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Sent)
	assert.Len(t, snd.sent, 1, "at most one greeting per user")
}

func TestSweep_CooldownWindow(t *testing.T) {
	u := domain.User{ID: 42, ChatID: 100, Birth: domain.Date{Day: 15, Month: 3}, Username: "john",
		LastGreetedAt: march15.Unix() + 1000}
	st := newFakeStore(u)
	snd := &fakeSender{}
	s := New(st, snd, nil)

	// now < marker — не due
	res, err := s.Run(context.Background(), march15)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Sent)

	// now >= marker и день совпадает — due
	res, err = s.Run(context.Background(), march15.Add(1001*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent)
}

func TestSweep_PartialFailureIsolation(t *testing.T) {
	a := domain.User{ID: 1, ChatID: 10, Birth: domain.Date{Day: 15, Month: 3}, Username: "alice"}
	b := domain.User{ID: 2, ChatID: 20, Birth: domain.Date{Day: 15, Month: 3}, Username: "bob"}
	st := newFakeStore(a, b)
	snd := &fakeSender{failFor: map[int64]error{10: errors.New("blocked by user")}}
	s := New(st, snd, nil)

	res, err := s.Run(context.Background(), march15)
	require.NoError(t, err, "partial failure must not abort the sweep")
	assert.Equal(t, 1, res.Sent)
	assert.Equal(t, []int64{1}, res.Failed)

	assert.Equal(t, int64(0), st.users[1].LastGreetedAt, "failed user stays eligible")
	assert.Equal(t, march15.Unix()+Cooldown, st.users[2].LastGreetedAt)

	// следующий запуск доставляет только отставшего
	snd.failFor = nil
	res, err = s.Run(context.Background(), march15.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent)
	require.Len(t, snd.sent, 2)
	assert.Equal(t, int64(10), snd.sent[1].chatID)
}

func TestSweep_WrongDay_Empty(t *testing.T) {
	st := newFakeStore(domain.User{ID: 42, ChatID: 100, Birth: domain.Date{Day: 16, Month: 3}, Username: "john"})
	snd := &fakeSender{}
	s := New(st, snd, nil)

	res, err := s.Run(context.Background(), march15)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Sent)
	assert.Empty(t, snd.sent)
}

func TestSweep_LeapDay(t *testing.T) {
	u := domain.User{ID: 42, ChatID: 100, Birth: domain.Date{Day: 29, Month: 2}, Username: "leap"}

	// невисокосный год: поздравляем 28 февраля
	st := newFakeStore(u)
	snd := &fakeSender{}
	s := New(st, snd, nil)
	res, err := s.Run(context.Background(), time.Date(2025, time.February, 28, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent)

	// високосный год: 28-е их не трогает, 29-е поздравляет
	st = newFakeStore(u)
	snd = &fakeSender{}
	s = New(st, snd, nil)
	res, err = s.Run(context.Background(), time.Date(2024, time.February, 28, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Sent)
	res, err = s.Run(context.Background(), time.Date(2024, time.February, 29, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent)
}

func TestSweep_ManyDueUsers(t *testing.T) {
	st := newFakeStore()
	for i := int64(1); i <= 5; i++ {
		st.users[i] = domain.User{ID: i, ChatID: i * 10, Birth: domain.Date{Day: 15, Month: 3},
			Username: fmt.Sprintf("u%d", i)}
	}
	snd := &fakeSender{}
	s := New(st, snd, nil)

	res, err := s.Run(context.Background(), march15)
	require.NoError(t, err)
	assert.Equal(t, 5, res.Sent)
	assert.Len(t, snd.sent, 5)
}
