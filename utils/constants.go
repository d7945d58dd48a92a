// File: utils/constants.go
package utils

import "time"

// BookingCachePrefix is the prefix used for Redis booking-response cache keys.
const BookingCachePrefix = "booking:"

// BookingCacheTTL is the time-to-live for cached terminal booking responses.
const BookingCacheTTL = 30 * time.Minute
