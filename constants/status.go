package constants

// RunStatus summarizes how a run ended; it is logged with the final event.
type RunStatus string

const (
	RunStatusOK         RunStatus = "OK"          // tables found on the first attempt
	RunStatusFallbackOK RunStatus = "FALLBACK_OK" // tables found by the permissive retry
	RunStatusFailed     RunStatus = "FAILED"      // terminal failure
)
