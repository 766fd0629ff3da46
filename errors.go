package scanq

import "errors"

const Namespace = "scanq"

var (
	ErrInvalidConfig   = errors.New(Namespace + ": invalid configuration")
	ErrInvalidCapacity = errors.New(
		Namespace + ": queue capacity must be a positive integer",
	)
	ErrInvalidParties = errors.New(
		Namespace + ": rendezvous requires at least one party",
	)
	ErrRendezvousBroken = errors.New(
		Namespace + ": rendezvous entered by more parties than configured",
	)
)
