package repository_test

import "time"

func time24h(days int) time.Duration {
	return time.Duration(days) * 24 * time.Hour
}
