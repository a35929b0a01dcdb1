package utils

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

const bookingIDPrefix = "BK"

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	NewBookingID() (string, error)
	NewSessionID() string
}

type utils struct {
	bookingIDLength int
}

func New() IUtils {
	return &utils{
		bookingIDLength: 8,
	}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

// NewBookingID returns "BK" followed by upper-case hex. The suffix always holds
// at least one digit so free text like "bkash" is never read as a booking id.
func (u *utils) NewBookingID() (string, error) {
	for {
		id, err := uuid.NewRandom()
		if err != nil {
			return "", err
		}

		suffix := strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))[:u.bookingIDLength]
		if strings.ContainsAny(suffix, "0123456789") {
			return bookingIDPrefix + suffix, nil
		}
	}
}

func (u *utils) NewSessionID() string {
	return uuid.NewString()
}
