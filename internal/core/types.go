package core

import "flyrecord/pkg/domain"

type (
	EntityType       = domain.EntityType
	Base             = domain.Base
	Client           = domain.Client
	Airline          = domain.Airline
	Flight           = domain.Flight
	Transaction      = domain.Transaction
	TransactionView  = domain.TransactionView
	PersistentStore  = domain.PersistentStore
	ValidationError  = domain.ValidationError
	NotFoundError    = domain.NotFoundError
	IntegrityError   = domain.IntegrityError
	PersistenceError = domain.PersistenceError
)

const (
	EntityClient  = domain.EntityClient
	EntityAirline = domain.EntityAirline
	EntityFlight  = domain.EntityFlight
)
