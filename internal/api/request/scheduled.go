package request

type CreateScheduledRequest struct {
	Description  string  `json:"description"`
	Kind         string  `json:"kind"`
	Value        float64 `json:"value"`
	Currency     string  `json:"currency"`
	ScheduleKind string  `json:"scheduleKind"`
	StartDate    string  `json:"startDate"`
	EndDate      string  `json:"endDate"`
}

type UpdateScheduledRequest struct {
	Description  *string  `json:"description,omitempty"`
	Kind         *string  `json:"kind,omitempty"`
	Value        *float64 `json:"value,omitempty"`
	Currency     *string  `json:"currency,omitempty"`
	ScheduleKind *string  `json:"scheduleKind,omitempty"`
	StartDate    *string  `json:"startDate,omitempty"`
	EndDate      *string  `json:"endDate,omitempty"`
}
