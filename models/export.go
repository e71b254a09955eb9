package models

// ScheduleRow is the flattened wire shape for one (category, team)
// placement in a finalized schedule. A timeslot's category map becomes
// one row per occupied cell, tagged with the slot's hour and minute.
type ScheduleRow struct {
	CategoryName string `json:"categoryName" yaml:"categoryName"`
	Hour         int    `json:"hour" yaml:"hour"`
	Minute       int    `json:"minute" yaml:"minute"`
	TeamNumber   int    `json:"teamNumber" yaml:"teamNumber"`
}

// FinalistCategory describes one scheduled category within an
// exported schedule, with its judging room for the award division.
type FinalistCategory struct {
	CategoryName string `json:"categoryName" yaml:"categoryName"`
	Room         string `json:"room" yaml:"room"`
}

// ScheduleExport is a finalized schedule for one award division in the
// shape the server consumes.
type ScheduleExport struct {
	Division   string             `json:"division" yaml:"division"`
	Categories []FinalistCategory `json:"categories" yaml:"categories"`
	Schedule   []ScheduleRow      `json:"schedule" yaml:"schedule"`
}

// Nominee is one team nominated into a non-numeric category together
// with the judges that nominated it.
type Nominee struct {
	TeamNumber int      `json:"teamNumber" yaml:"teamNumber"`
	Judges     []string `json:"judges,omitempty" yaml:"judges,omitempty"`
}

// NonNumericNominees collects the nominees of one non-numeric
// category for upload.
type NonNumericNominees struct {
	CategoryName string    `json:"categoryName" yaml:"categoryName"`
	Nominees     []Nominee `json:"nominees" yaml:"nominees"`
}
