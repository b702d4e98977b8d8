package organization

import (
	"github.com/pitchfork-audio/pitchfork/internal/organization/repository"
	"github.com/pitchfork-audio/pitchfork/internal/organization/service"
	"go.uber.org/fx"
)

var Module = fx.Module("organization.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
