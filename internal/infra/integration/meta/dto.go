package meta

import "time"

// LeadEventInput is what the rest of the app hands the client. The raw email
// is hashed before it goes on the wire.
type LeadEventInput struct {
	Email         string
	EventTime     time.Time
	ClientIP      string
	UserAgent     string
	TestEventCode string
}

// --- PAYLOADS: what the client sends to the Conversions API ---

type eventRequest struct {
	Data          []event `json:"data"`
	TestEventCode string  `json:"test_event_code,omitempty"`
}

type event struct {
	EventName    string   `json:"event_name"`
	EventTime    int64    `json:"event_time"`
	EventID      string   `json:"event_id"`
	ActionSource string   `json:"action_source"`
	UserData     userData `json:"user_data"`
}

type userData struct {
	Em              []string `json:"em"`
	ClientIPAddress string   `json:"client_ip_address,omitempty"`
	ClientUserAgent string   `json:"client_user_agent,omitempty"`
}

// --- RESPONSE: what the API returns on success ---

type eventResponse struct {
	EventsReceived int    `json:"events_received"`
	FBTraceID      string `json:"fbtrace_id"`
}
