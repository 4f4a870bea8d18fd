package domain

type RecordingPurpose string

const (
	PurposeYouTube     RecordingPurpose = "YouTube"
	PurposePlanner     RecordingPurpose = "Planner"
	PurposeSmartCourse RecordingPurpose = "Smart Course"
	PurposeLive        RecordingPurpose = "Live"
)

// RecordingPurposes lists every valid purpose in presentation order.
var RecordingPurposes = []RecordingPurpose{
	PurposeYouTube,
	PurposePlanner,
	PurposeSmartCourse,
	PurposeLive,
}

// PurposeStyle carries the display attributes of a purpose. Dispatch is by
// enum value, never by matching free-form strings.
type PurposeStyle struct {
	Color string
}

var purposeStyles = map[RecordingPurpose]PurposeStyle{
	PurposeYouTube:     {Color: "#EF4444"},
	PurposePlanner:     {Color: "#3B82F6"},
	PurposeSmartCourse: {Color: "#10B981"},
	PurposeLive:        {Color: "#A855F7"},
}

func (p RecordingPurpose) Valid() bool {
	_, ok := purposeStyles[p]
	return ok
}

func (p RecordingPurpose) Style() PurposeStyle {
	return purposeStyles[p]
}

type Booking struct {
	ID        string           `json:"id"`
	Studio    string           `json:"studio"`
	Date      string           `json:"date"`       // YYYY-MM-DD
	StartTime string           `json:"start_time"` // HH:MM, 30-minute aligned
	EndTime   string           `json:"end_time"`   // HH:MM, 30-minute aligned, > StartTime
	Name      string           `json:"name"`
	Purpose   RecordingPurpose `json:"recording_purpose"`
	Subject   string           `json:"subject"`
}

// NewBooking is a Booking without an ID; the repository assigns one on insert.
type NewBooking struct {
	Studio    string           `json:"studio"`
	Date      string           `json:"date"`
	StartTime string           `json:"start_time"`
	EndTime   string           `json:"end_time"`
	Name      string           `json:"name"`
	Purpose   RecordingPurpose `json:"recording_purpose"`
	Subject   string           `json:"subject"`
}
