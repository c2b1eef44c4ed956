package models

import "time"

// Direction is the flow direction of a cash movement
type Direction string

const (
	Inflow  Direction = "entrada"
	Outflow Direction = "saida"
)

// RawTransaction represents a cash movement as handed over by the record store
type RawTransaction struct {
	ID          FlexString `json:"id"`
	Date        string     `json:"data"`
	Amount      FlexString `json:"valor"`
	Type        string     `json:"tipo"`
	Category    string     `json:"categoria"`
	Description string     `json:"descricao"`
}

// Transaction represents a normalized cash movement
type Transaction struct {
	ID          string
	Date        time.Time
	Amount      float64
	Direction   Direction
	Category    string
	Description string
}
