package config

// CacheKeyStruct builds the Redis keys used by the exam subsystem.
type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// ExamStatsSnapshotKey returns the cache key for the admin stats snapshot.
func (r *CacheKeyStruct) ExamStatsSnapshotKey() string {
	return "exam_stats:snapshot"
}

var CacheKey = NewCacheKeyStruct()
