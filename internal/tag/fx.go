package tag

import (
	"github.com/pitchfork-audio/pitchfork/internal/tag/repository"
	"github.com/pitchfork-audio/pitchfork/internal/tag/service"
	"go.uber.org/fx"
)

var Module = fx.Module("tag.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
