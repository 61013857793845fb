package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidDate = errors.New("invalid date")

// refYear — високосный опорный год: 29.02 проходит валидацию.
const refYear = 2016

// Date is a calendar day within a year. Year is kept only when the user
// supplied it; matching is done on Day/Month.
type Date struct {
	Day   int `bson:"day" json:"day"`
	Month int `bson:"month" json:"month"`
	Year  int `bson:"year,omitempty" json:"year,omitempty"`
}

// ParseDate parses "DD.MM" or "DD.MM.YYYY". The day/month pair must form a
// real calendar date in the reference year.
func ParseDate(s string) (Date, error) {
	items := strings.Split(strings.TrimSpace(s), ".")
	if len(items) != 2 && len(items) != 3 {
		return Date{}, ErrInvalidDate
	}
	day, err := strconv.Atoi(items[0])
	if err != nil || day < 1 || day > 31 {
		return Date{}, ErrInvalidDate
	}
	month, err := strconv.Atoi(items[1])
	if err != nil || month < 1 || month > 12 {
		return Date{}, ErrInvalidDate
	}
	year := 0
	if len(items) == 3 {
		year, err = strconv.Atoi(items[2])
		if err != nil || len(items[2]) != 4 || year < 1900 || year > 2100 {
			return Date{}, ErrInvalidDate
		}
	}
	t := time.Date(refYear, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || t.Month() != time.Month(month) {
		// time.Date нормализует переполнение (31.02 → 02.03)
		return Date{}, ErrInvalidDate
	}
	return Date{Day: day, Month: month, Year: year}, nil
}

func (d Date) String() string {
	if d.Year != 0 {
		return fmt.Sprintf("%02d.%02d.%04d", d.Day, d.Month, d.Year)
	}
	return fmt.Sprintf("%02d.%02d", d.Day, d.Month)
}
