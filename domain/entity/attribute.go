// Package entity holds the runtime representation of Entities and their
// Attributes: the typed state that broker messages update and that
// condition evaluation reads.
package entity

import "fmt"

// Kind identifies an Attribute's declared variant.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindString
	KindBool
	KindTime
	KindList
	KindDict
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	case KindList:
		return "list"
	case KindDict:
		return "dict"
	default:
		return "unknown"
	}
}

// Time is an hour/minute/second triple with the range invariants from the
// model: 0<=hour<=24, 0<=minute<60, 0<=second<60.
type Time struct {
	Hour   int
	Minute int
	Second int
}

// ToInt encodes a Time as second + (minute<<8) + (hour<<16), making ordering
// comparisons monotone within a day.
func (t Time) ToInt() int {
	return t.Second + (t.Minute << 8) + (t.Hour << 16)
}

func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// Validate checks the Time component range invariants.
func (t Time) Validate() error {
	if t.Hour < 0 || t.Hour > 24 {
		return fmt.Errorf("time: hour %d out of range [0,24]", t.Hour)
	}
	if t.Minute < 0 || t.Minute >= 60 {
		return fmt.Errorf("time: minute %d out of range [0,60)", t.Minute)
	}
	if t.Second < 0 || t.Second >= 60 {
		return fmt.Errorf("time: second %d out of range [0,60)", t.Second)
	}
	return nil
}

// Attribute is a typed, named field of an Entity. Value holds the initial
// value that seeds the store (package store keeps the runtime values that
// inbound messages update); its concrete Go type matches Kind:
//
//	KindInt    -> int
//	KindFloat  -> float64
//	KindString -> string
//	KindBool   -> bool
//	KindTime   -> Time
//	KindList   -> []any
//	KindDict   -> map[string]any
type Attribute struct {
	Name  string
	Kind  Kind
	Value any
}

// NewAttribute builds an Attribute with the zero value appropriate to kind.
func NewAttribute(name string, kind Kind, initial any) *Attribute {
	a := &Attribute{Name: name, Kind: kind}
	if initial != nil {
		a.Value = initial
		return a
	}
	switch kind {
	case KindInt:
		a.Value = 0
	case KindFloat:
		a.Value = 0.0
	case KindString:
		a.Value = ""
	case KindBool:
		a.Value = false
	case KindTime:
		a.Value = Time{}
	case KindList:
		a.Value = []any{}
	case KindDict:
		a.Value = map[string]any{}
	}
	return a
}
