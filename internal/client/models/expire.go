package models

import "errors"

// ExpireOption selects how long a transfer lives on the server. The server
// interprets the raw integer; the labels are for presentation only.
type ExpireOption int

const (
	Expire15Minutes ExpireOption = iota
	Expire1Hour
	Expire12Hours
	Expire1Day
	Expire3Days
)

var ErrInvalidExpireOption = errors.New("invalid expire option")

var expireLabels = map[ExpireOption]string{
	Expire15Minutes: "15 minutes",
	Expire1Hour:     "1 hour",
	Expire12Hours:   "12 hours",
	Expire1Day:      "1 day",
	Expire3Days:     "3 days",
}

func (e ExpireOption) Valid() bool {
	_, ok := expireLabels[e]
	return ok
}

func (e ExpireOption) Label() string {
	if label, ok := expireLabels[e]; ok {
		return label
	}
	return "unknown"
}
