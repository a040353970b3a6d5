package normalize

// formatErrorMessage is the FormatError text.
const formatErrorMessage = "payload is neither an array, an object with .value, a USGS time-series response, nor a geospatial feature collection"

// FormatError is returned when a payload matches none of the known shapes.
// Payload holds the raw bytes so callers can log them.
type FormatError struct {
	Payload []byte
	Err     error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return formatErrorMessage + ": " + e.Err.Error()
	}
	return formatErrorMessage
}

func (e *FormatError) Unwrap() error { return e.Err }
