package payment

import (
	"go.uber.org/fx"

	"github.com/cineconnect/sponsorpay/internal/platform/payhere"
)

// Module wires the gateway client and the order orchestrator.
var Module = fx.Options(
	fx.Provide(payhere.NewClient),
	fx.Provide(func(c *payhere.Client) Gateway { return c }),
	fx.Provide(NewService),
)
