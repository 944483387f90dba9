package constants

import "os"

const (
	DefaultMaxVoices  = 8
	DefaultStrategy   = "first_fit"
	MetaTrackName     = "Meta Track"
	VoiceTrackPrefix  = "Voice"
	NumChannels       = 16
	PercussionChannel = 9
	EnvPrefix         = "FLATTENMIDI"
)

func getEnvOr(key string, fallback string) string {
	val := os.Getenv(key)
	if val != "" {
		return val
	}
	return fallback
}

func GetOutputSuffix() string {
	return getEnvOr("OUTPUT_SUFFIX", "_Flattened")
}

func GetServeAddr() string {
	return getEnvOr("SERVE_ADDR", ":8080")
}

func GetDynamoEndpoint() string {
	return getEnvOr("DYNAMODB_ENDPOINT", "http://localhost:8000")
}

func GetDynamoRegion() string {
	return getEnvOr("AWS_REGION", "localhost")
}

func GetRunsTable() string {
	return getEnvOr("FLATTENMIDI_TABLE", "flattenmidi-runs")
}

// uploads larger than this are rejected by the server
const MaxUploadBytes = 16 * 1024 * 1024
