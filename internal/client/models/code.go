package models

import (
	"errors"
	"strconv"
)

// Code is a transfer code issued by the server: a 5-digit integer in the
// closed range [10000, 99999]. Immutable once issued.
type Code int

const (
	CodeMin Code = 10000
	CodeMax Code = 99999
)

var ErrInvalidCode = errors.New("invalid code")

// Valid reports whether c falls inside the 5-digit code range.
func (c Code) Valid() bool {
	return c >= CodeMin && c <= CodeMax
}

func (c Code) String() string {
	return strconv.Itoa(int(c))
}

// ParseCode converts a textual code into a Code, rejecting anything that is
// not a 5-digit integer in range.
func ParseCode(s string) (Code, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, ErrInvalidCode
	}
	c := Code(n)
	if !c.Valid() {
		return 0, ErrInvalidCode
	}
	return c, nil
}
