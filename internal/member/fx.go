package member

import (
	"github.com/pitchfork-audio/pitchfork/internal/member/repository"
	"github.com/pitchfork-audio/pitchfork/internal/member/service"
	"go.uber.org/fx"
)

var Module = fx.Module("member.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
