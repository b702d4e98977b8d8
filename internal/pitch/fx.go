package pitch

import (
	"github.com/pitchfork-audio/pitchfork/internal/pitch/repository"
	"github.com/pitchfork-audio/pitchfork/internal/pitch/service"
	"go.uber.org/fx"
)

var Module = fx.Module("pitch.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
