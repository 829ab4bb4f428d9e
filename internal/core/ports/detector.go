package ports

// SettingsDetector reports settings values for the machine kiln runs on.
//
//go:generate mockgen -source=detector.go -destination=mocks/mock_detector.go -package=mocks
type SettingsDetector interface {
	// Detect returns axis -> value for every axis it can determine (e.g., "os" -> "Linux").
	Detect() map[string]string
}
