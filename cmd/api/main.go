package main

import (
	"go.uber.org/fx"

	"github.com/Tomiris95/orderdesk/internal/app"
)

func main() {
	fx.New(app.Module).Run()
}
