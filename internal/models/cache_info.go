package models

// CacheLevel reports which record layer served a lookup
type CacheLevel string

const (
	CacheLevelL1      CacheLevel = "L1"
	CacheLevelL2      CacheLevel = "L2"
	CacheLevelDurable CacheLevel = "DURABLE"
	CacheLevelMiss    CacheLevel = "MISS"
)

// CacheStatus reports how a resolve request was answered
type CacheStatus string

const (
	CacheStatusHit         CacheStatus = "HIT"
	CacheStatusMiss        CacheStatus = "MISS"
	CacheStatusPlaceholder CacheStatus = "PLACEHOLDER"
)

// CacheResult represents the result of a level-aware cache lookup
type CacheResult struct {
	Record *CacheRecord
	Level  CacheLevel
	Found  bool
}
