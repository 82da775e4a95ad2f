package resolver

import (
	"encoding/json"
	"sync"
	"time"
)

// UsageStats counts lookups of a provider.
type UsageStats struct {
	Name string

	mutex        sync.Mutex
	firstUsed    time.Time
	lastUsed     time.Time
	successCount uint64
	failureCount uint64
}

// Used registers a lookup result.
func (u *UsageStats) Used(err error) {
	now := time.Now()

	u.mutex.Lock()
	defer u.mutex.Unlock()

	if u.firstUsed.IsZero() {
		u.firstUsed = now
	}

	u.lastUsed = now

	if err == nil {
		u.successCount++
	} else {
		u.failureCount++
	}
}

// Counts returns a number of successful and failed lookups.
func (u *UsageStats) Counts() (uint64, uint64) {
	u.mutex.Lock()
	defer u.mutex.Unlock()

	return u.successCount, u.failureCount
}

func (u *UsageStats) MarshalJSON() ([]byte, error) {
	var firstUsedTime, lastUsedTime int64

	u.mutex.Lock()

	if !u.firstUsed.IsZero() {
		firstUsedTime = u.firstUsed.Unix()
	}

	if !u.lastUsed.IsZero() {
		lastUsedTime = u.lastUsed.Unix()
	}

	rawStruct := struct {
		Name         string `json:"name"`
		FirstUsed    int64  `json:"first_used"`
		LastUsed     int64  `json:"last_used"`
		SuccessCount uint64 `json:"success_count"`
		FailureCount uint64 `json:"failure_count"`
	}{
		Name:         u.Name,
		FirstUsed:    firstUsedTime,
		LastUsed:     lastUsedTime,
		SuccessCount: u.successCount,
		FailureCount: u.failureCount,
	}

	u.mutex.Unlock()

	return json.Marshal(&rawStruct)
}
