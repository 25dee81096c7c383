package models

import (
	"encoding/json"
	"fmt"
)

// KPIKind identifies which variant a KPIValue holds. Aggregation strategies
// are validated against a KPI's declared kind at registration time, not at
// aggregation time (spec design note: mismatched strategy/kind combinations
// are a configuration error, not a runtime one).
type KPIKind int

const (
	// KindNumeric holds a plain float64 (complexity, churn, hotspot, ...).
	KindNumeric KPIKind = iota
	// KindOwnership holds a per-author share breakdown.
	KindOwnership
	// KindClassification holds a free-form descriptive string
	// (e.g. "Single owner: alice", "3 authors").
	KindClassification
)

func (k KPIKind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindOwnership:
		return "ownership"
	case KindClassification:
		return "classification"
	default:
		return "unknown"
	}
}

// AuthorShare is one author's share of a file's current lines, as a
// percentage in [0, 100], rounded to the nearest whole percent.
type AuthorShare struct {
	Name  string
	Share int
}

// Ownership is the structured value of an ownership KPI.
type Ownership struct {
	Authors      []AuthorShare
	PrimaryOwner string
}

// KPIValue is a named measurement attached to a File and propagated to
// ScanDirs by an aggregation strategy. It is a closed tagged variant: exactly
// one of the three payload fields is meaningful, selected by Kind.
type KPIValue struct {
	Name string
	kind KPIKind

	numeric        float64
	ownership      Ownership
	classification string
}

// NewNumericKPI builds a Numeric-kind KPIValue.
func NewNumericKPI(name string, value float64) KPIValue {
	return KPIValue{Name: name, kind: KindNumeric, numeric: value}
}

// NewOwnershipKPI builds an Ownership-kind KPIValue.
func NewOwnershipKPI(name string, value Ownership) KPIValue {
	return KPIValue{Name: name, kind: KindOwnership, ownership: value}
}

// NewClassificationKPI builds a Classification-kind KPIValue.
func NewClassificationKPI(name, value string) KPIValue {
	return KPIValue{Name: name, kind: KindClassification, classification: value}
}

// Kind reports which variant this value holds.
func (v KPIValue) Kind() KPIKind { return v.kind }

// Numeric returns the numeric payload. Panics if Kind() != KindNumeric;
// callers must check Kind first, matching the closed-variant contract.
func (v KPIValue) Numeric() float64 {
	if v.kind != KindNumeric {
		panic(fmt.Sprintf("KPIValue %q: Numeric() called on a %s value", v.Name, v.kind))
	}
	return v.numeric
}

// Ownership returns the ownership payload. Panics if Kind() != KindOwnership.
func (v KPIValue) Ownership() Ownership {
	if v.kind != KindOwnership {
		panic(fmt.Sprintf("KPIValue %q: Ownership() called on a %s value", v.Name, v.kind))
	}
	return v.ownership
}

// Classification returns the classification payload. Panics if
// Kind() != KindClassification.
func (v KPIValue) Classification() string {
	if v.kind != KindClassification {
		panic(fmt.Sprintf("KPIValue %q: Classification() called on a %s value", v.Name, v.kind))
	}
	return v.classification
}

// kpiValueJSON is the wire shape for KPIValue: the closed-variant payload
// fields are unexported so the default json encoding would drop them
// entirely. Only the field matching Kind is populated on encode.
type kpiValueJSON struct {
	Name           string    `json:"name"`
	Kind           KPIKind   `json:"kind"`
	Numeric        *float64  `json:"numeric,omitempty"`
	Ownership      *Ownership `json:"ownership,omitempty"`
	Classification *string   `json:"classification,omitempty"`
}

// MarshalJSON encodes the variant selected by Kind.
func (v KPIValue) MarshalJSON() ([]byte, error) {
	wire := kpiValueJSON{Name: v.Name, Kind: v.kind}
	switch v.kind {
	case KindNumeric:
		wire.Numeric = &v.numeric
	case KindOwnership:
		wire.Ownership = &v.ownership
	case KindClassification:
		wire.Classification = &v.classification
	}
	return json.Marshal(wire)
}

// UnmarshalJSON decodes the variant selected by Kind.
func (v *KPIValue) UnmarshalJSON(data []byte) error {
	var wire kpiValueJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	v.Name = wire.Name
	v.kind = wire.Kind
	if wire.Numeric != nil {
		v.numeric = *wire.Numeric
	}
	if wire.Ownership != nil {
		v.ownership = *wire.Ownership
	}
	if wire.Classification != nil {
		v.classification = *wire.Classification
	}
	return nil
}
