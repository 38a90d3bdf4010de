package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventMatchFinalized EventType = "match-finalized"
)

// MatchFinalizedEvent is the payload published when a match completes.
type MatchFinalizedEvent struct {
	MatchID       string `msgpack:"match_id"`
	TeamID        string `msgpack:"team_id"`
	Opponent      string `msgpack:"opponent"`
	OurScore      int    `msgpack:"our_score"`
	OpponentScore int    `msgpack:"opponent_score"`
	FinalMinute   int    `msgpack:"final_minute"`
}
