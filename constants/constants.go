package constants

import "os"

const AppName = "diatonicpad"

func getenv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

// GetAssetsDir is the root that asset paths such as "audio/<name>.wav" are relative to.
func GetAssetsDir() string {
	return getenv("ASSETS_PATH", "./assets")
}

func GetDataFile() string {
	return getenv("DATA_PATH", "./data/progressions.json")
}

func GetExportDir() string {
	return getenv("EXPORT_PATH", "./data")
}

func GetDynamoEndpoint() string {
	return getenv("DYNAMODB_ENDPOINT", "http://localhost:8000")
}

const DynamoTable = "diatonicpad-progressions"

const DynamoRegion = "localhost"

// MaxVoices is the number of chords allowed to sound at once.
const MaxVoices = 8

// ProgressEvery is how many generated samples pass between progress lines.
const ProgressEvery = 50
