package auth

import (
	"github.com/pitchfork-audio/pitchfork/internal/auth/repository"
	"github.com/pitchfork-audio/pitchfork/internal/auth/service"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
