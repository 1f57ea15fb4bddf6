package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"order-intake/internal/catalog"
	"order-intake/internal/match"
)

// Status tags a LineOutcome.
type Status string

const (
	StatusValidated         Status = "VALIDATED"
	StatusMOQNotMet         Status = "MOQ_NOT_MET"
	StatusInsufficientStock Status = "INSUFFICIENT_STOCK"
	StatusNotFound          Status = "NOT_FOUND"
	StatusMultipleMatches   Status = "MULTIPLE_MATCHES"
	StatusMissingQuantity   Status = "MISSING_QUANTITY"
)

// Statuses lists every line status.
var Statuses = []Status{
	StatusValidated, StatusMOQNotMet, StatusInsufficientStock,
	StatusNotFound, StatusMultipleMatches, StatusMissingQuantity,
}

// LineOutcome is the closed set of results for one requested line. Only the
// types in this package implement it.
type LineOutcome interface {
	Status() Status
	Line() LineInfo
	sealed()
}

// LineInfo is common to every outcome.
type LineInfo struct {
	Reference string
	Quantity  *int
	Issue     string
}

func (l LineInfo) Line() LineInfo { return l }
func (LineInfo) sealed()          {}

// Validated is a fulfillable line ready for pricing. Total is null when the
// entry's price is unknown.
type Validated struct {
	LineInfo
	Entry      catalog.Entry
	Confidence int
	Total      decimal.NullDecimal
}

type MOQNotMet struct {
	LineInfo
	Entry catalog.Entry
}

type InsufficientStock struct {
	LineInfo
	Entry catalog.Entry
}

type NotFound struct {
	LineInfo
}

// MultipleMatches carries every candidate that cleared the threshold,
// confidence descending.
type MultipleMatches struct {
	LineInfo
	Candidates []match.Match
}

type MissingQuantity struct {
	LineInfo
}

func (Validated) Status() Status         { return StatusValidated }
func (MOQNotMet) Status() Status         { return StatusMOQNotMet }
func (InsufficientStock) Status() Status { return StatusInsufficientStock }
func (NotFound) Status() Status          { return StatusNotFound }
func (MultipleMatches) Status() Status   { return StatusMultipleMatches }
func (MissingQuantity) Status() Status   { return StatusMissingQuantity }

// OrderResult is the validated order: passthrough header fields and one
// outcome per accepted input line, in input order.
type OrderResult struct {
	ID              uuid.UUID
	CustomerName    string
	DeliveryAddress string
	DeliveryDate    string
	CustomerNotes   string
	Outcomes        []LineOutcome
	// Skipped counts input lines dropped for a blank product reference.
	Skipped       int
	Consolidation []ConsolidationSuggestion
}

// Counts tallies outcomes by status.
func (r OrderResult) Counts() map[Status]int {
	m := make(map[Status]int, len(Statuses))
	for _, o := range r.Outcomes {
		m[o.Status()]++
	}
	return m
}
