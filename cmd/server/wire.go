//go:build wireinject

package main

import (
	"github.com/google/wire"
)

func CreateApplication() (*Application, error) {
	wire.Build(applicationSet)
	return nil, nil
}
