package song

import (
	"github.com/pitchfork-audio/pitchfork/internal/song/repository"
	"github.com/pitchfork-audio/pitchfork/internal/song/service"
	"go.uber.org/fx"
)

var Module = fx.Module("song.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
