package events

import (
	"context"

	"github.com/goodnatureofminers/fiatramps-backend/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Publisher interface {
		Publish(ctx context.Context, event model.Event) error
	}
	Conn interface {
		Publish(subject string, data []byte) error
	}
)
