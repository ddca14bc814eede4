package carrier

import (
	"log/slog"
	"net/http"

	"storefront/config"
	"storefront/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type ClientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func NewCarrierClient(params ClientParams) (service.CarrierClient, error) {
	if params.Config.Carrier.BaseURL == "" {
		return nil, errors.New("carrier base url must be provided")
	}

	return NewHTTPClient(params.Config.Carrier, &http.Client{}, params.Logger), nil
}

// Module provides the carrier FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewCarrierClient),
)
