package bank

import (
	"context"
	"time"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	URLSource interface {
		APIURL(ctx context.Context) (string, error)
	}
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)
