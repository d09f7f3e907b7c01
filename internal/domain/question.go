package domain

import (
	"fmt"
	"time"
)

// OptionKey identifies one of the four answer choices of a question.
type OptionKey string

const (
	OptionA OptionKey = "a"
	OptionB OptionKey = "b"
	OptionC OptionKey = "c"
	OptionD OptionKey = "d"
)

// OptionKeys lists the choice keys in their canonical order.
var OptionKeys = []OptionKey{OptionA, OptionB, OptionC, OptionD}

// Options holds the four choice texts of a multiple-choice question.
type Options struct {
	A string `json:"a"`
	B string `json:"b"`
	C string `json:"c"`
	D string `json:"d"`
}

// Text returns the choice text for a key, or "" for an unknown key.
func (o Options) Text(key OptionKey) string {
	switch key {
	case OptionA:
		return o.A
	case OptionB:
		return o.B
	case OptionC:
		return o.C
	case OptionD:
		return o.D
	default:
		return ""
	}
}

// Question is the domain model for a single multiple-choice question.
// OwnerID references the creating teacher; only approved questions are
// eligible for delivery to students.
type Question struct {
	ID        string
	Prompt    string
	Options   Options
	Answer    OptionKey
	Subject   string
	OwnerID   string
	Approved  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate enforces the structural invariants every persisted question must
// satisfy: non-empty prompt, all four option texts present, and an answer
// key that is one of a|b|c|d.
func (q *Question) Validate() error {
	if q.Prompt == "" {
		return fmt.Errorf("missing or invalid question text")
	}
	for _, key := range OptionKeys {
		if q.Options.Text(key) == "" {
			return fmt.Errorf("option %q must be a non-empty string", key)
		}
	}
	switch q.Answer {
	case OptionA, OptionB, OptionC, OptionD:
		return nil
	default:
		return fmt.Errorf("answer must be one of 'a', 'b', 'c', or 'd'")
	}
}
