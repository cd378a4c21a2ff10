package models

// DataKind names a raw record series exposed by the data endpoint.
type DataKind string

const (
	DataKindActivity  DataKind = "activity"
	DataKindSleep     DataKind = "sleep"
	DataKindHeartRate DataKind = "heartrate"
	DataKindSport     DataKind = "sport"
	DataKindBody      DataKind = "body"
	DataKindUser      DataKind = "user"
	DataKindLatest    DataKind = "latest"
)

// ParseDataKind validates a raw data kind.
func ParseDataKind(s string) (DataKind, bool) {
	switch k := DataKind(s); k {
	case DataKindActivity, DataKindSleep, DataKindHeartRate, DataKindSport,
		DataKindBody, DataKindUser, DataKindLatest:
		return k, true
	}
	return "", false
}

// ChatRequest is the body of a chat assistant request.
type ChatRequest struct {
	Message string `json:"message"`
}
