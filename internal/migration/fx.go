package migration

import (
	auditdomain "github.com/pitchfork-audio/pitchfork/internal/audit/domain"
	authdomain "github.com/pitchfork-audio/pitchfork/internal/auth/domain"
	"github.com/pitchfork-audio/pitchfork/internal/config"
	memberdomain "github.com/pitchfork-audio/pitchfork/internal/member/domain"
	organizationdomain "github.com/pitchfork-audio/pitchfork/internal/organization/domain"
	pitchdomain "github.com/pitchfork-audio/pitchfork/internal/pitch/domain"
	"github.com/pitchfork-audio/pitchfork/internal/seed"
	songdomain "github.com/pitchfork-audio/pitchfork/internal/song/domain"
	tagdomain "github.com/pitchfork-audio/pitchfork/internal/tag/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// sqlite and mysql are dev/test targets; let gorm derive the
			// schema from the models instead of maintaining dialect ports
			// of the SQL migrations.
			if err := conn.AutoMigrate(
				&authdomain.User{},
				&authdomain.Session{},
				&organizationdomain.Organization{},
				&memberdomain.Member{},
				&songdomain.Song{},
				&tagdomain.Tag{},
				&pitchdomain.Pitch{},
				&pitchdomain.PitchTag{},
				&pitchdomain.TargetArtist{},
				&auditdomain.AuditLog{},
			); err != nil {
				return err
			}
		}

		if cfg.Bootstrap.Enabled {
			return seed.EnsureDefaultOrgAndAdmin(conn, cfg.Bootstrap)
		}
		return nil
	}),
)
