package service

import (
	"fmt"
	"time"
)

const maxNumberAttempts = 1000

// nextDocumentNumber produces a `<prefix>-<year>-NNNNN` number. The candidate
// sequence starts at count+1 and walks forward past collisions; the unique
// index on the column stays authoritative for races that slip through. After
// too many collisions a millisecond-derived suffix is used instead.
func nextDocumentNumber(
	prefix string,
	count func() (int64, error),
	exists func(string) (bool, error),
) (string, error) {
	year := time.Now().Year()

	total, err := count()
	if err != nil {
		return "", err
	}

	for attempt := int64(0); attempt < maxNumberAttempts; attempt++ {
		candidate := fmt.Sprintf("%s-%d-%05d", prefix, year, total+1+attempt)
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}

	return fmt.Sprintf("%s-%d-%05d", prefix, year, time.Now().UnixMilli()%100000), nil
}
