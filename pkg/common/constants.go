package common

const (
	RedisKeyScanLock = "scan:lock"
	RedisKeyLastScan = "scan:last"

	StatusSuccess = "SUCCESS"
	StatusFailed  = "FAILED"
	StatusSkipped = "SKIPPED"
)
