package audit

import (
	"github.com/pitchfork-audio/pitchfork/internal/audit/repository"
	"github.com/pitchfork-audio/pitchfork/internal/audit/service"
	"go.uber.org/fx"
)

var Module = fx.Module("audit.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
