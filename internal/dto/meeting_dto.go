package dto

import "time"

type StartMeetingRequest struct {
	Task        string   `json:"task" validate:"required"`
	UserProfile string   `json:"user_profile"`
	Agents      []string `json:"agents" validate:"required,min=1"`
	Turns       int      `json:"turns" validate:"min=0,max=10"`
	MeetingType string   `json:"meeting_type"`
}

type MeetingRunResponse struct {
	RunId           string            `json:"run_id"`
	Task            string            `json:"task"`
	MeetingType     string            `json:"meeting_type"`
	Turns           int               `json:"turns"`
	Recommendations map[string]string `json:"recommendations"`
	CompletedAt     time.Time         `json:"completed_at"`
}

type PersonaResponse struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Company     string `json:"company"`
	Role        string `json:"role"`
	Description string `json:"description"`
}
