package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/pitchfork-audio/pitchfork/internal/audit"
	auditdomain "github.com/pitchfork-audio/pitchfork/internal/audit/domain"
	"github.com/pitchfork-audio/pitchfork/internal/auth"
	authdomain "github.com/pitchfork-audio/pitchfork/internal/auth/domain"
	"github.com/pitchfork-audio/pitchfork/internal/auth/session"
	"github.com/pitchfork-audio/pitchfork/internal/authz"
	"github.com/pitchfork-audio/pitchfork/internal/config"
	"github.com/pitchfork-audio/pitchfork/internal/member"
	memberdomain "github.com/pitchfork-audio/pitchfork/internal/member/domain"
	"github.com/pitchfork-audio/pitchfork/internal/organization"
	organizationdomain "github.com/pitchfork-audio/pitchfork/internal/organization/domain"
	"github.com/pitchfork-audio/pitchfork/internal/pitch"
	pitchdomain "github.com/pitchfork-audio/pitchfork/internal/pitch/domain"
	"github.com/pitchfork-audio/pitchfork/internal/song"
	songdomain "github.com/pitchfork-audio/pitchfork/internal/song/domain"
	"github.com/pitchfork-audio/pitchfork/internal/tag"
	tagdomain "github.com/pitchfork-audio/pitchfork/internal/tag/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	authz.Module,
	audit.Module,
	auth.Module,
	session.Module,
	member.Module,
	organization.Module,
	song.Module,
	pitch.Module,
	tag.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(AccessLogMiddleware(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger) *gin.Engine {
	return NewEngine(log)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	log             *zap.Logger
	authsvc         authdomain.Service
	sessions        *session.Manager
	guard           *authz.Guard
	genID           *snowflake.Node
	auditSvc        auditdomain.Service
	organizationSvc organizationdomain.Service
	memberSvc       memberdomain.Service
	songSvc         songdomain.Service
	pitchSvc        pitchdomain.Service
	tagSvc          tagdomain.Service
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	Log             *zap.Logger
	Authsvc         authdomain.Service
	Sessions        *session.Manager
	Guard           *authz.Guard
	GenID           *snowflake.Node
	AuditSvc        auditdomain.Service
	OrganizationSvc organizationdomain.Service
	MemberSvc       memberdomain.Service
	SongSvc         songdomain.Service
	PitchSvc        pitchdomain.Service
	TagSvc          tagdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		log:             p.Log.Named("http.server"),
		authsvc:         p.Authsvc,
		sessions:        p.Sessions,
		guard:           p.Guard,
		genID:           p.GenID,
		auditSvc:        p.AuditSvc,
		organizationSvc: p.OrganizationSvc,
		memberSvc:       p.MemberSvc,
		songSvc:         p.SongSvc,
		pitchSvc:        p.PitchSvc,
		tagSvc:          p.TagSvc,
	}

	svc.registerAuthRoutes()
	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/auth")

	auth.POST("/register", s.Register)
	auth.POST("/login", s.Login)
	auth.POST("/logout", s.Logout)
	auth.GET("/me", s.AuthRequired(), s.Me)

	user := auth.Group("/user", s.AuthRequired())
	{
		user.GET("/orgs", s.ListUserOrgs)
		user.POST("/using/:orgId", s.UseOrg)
	}
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api", s.AuthRequired())

	ownerOrAdmin := authz.RequireRoles(memberdomain.RoleOwner, memberdomain.RoleAdmin)
	ownerOnly := authz.RequireRoles(memberdomain.RoleOwner)
	songwriter := authz.RequireTypes(memberdomain.TypeSongwriter)
	manager := authz.RequireTypes(memberdomain.TypeManager)

	api.POST("/organizations", s.CreateOrg)
	api.GET("/organizations", s.ListMyOrgs)

	org := api.Group("/organizations/:orgId")
	{
		org.GET("", s.OrgMember(authz.AnyMember), s.GetOrg)
		org.PATCH("", s.OrgMember(ownerOrAdmin), s.UpdateOrg)
		org.DELETE("", s.OrgMember(ownerOnly), s.DeleteOrg)

		members := org.Group("/members")
		{
			members.POST("", s.OrgMember(ownerOrAdmin), s.AddMember)
			members.GET("", s.OrgMember(authz.AnyMember), s.ListMembers)
			members.GET("/:memberId", s.OrgMember(authz.AnyMember), s.GetMember)
			members.PATCH("/:memberId", s.OrgMember(ownerOrAdmin), s.UpdateMember)
			members.DELETE("/:memberId", s.OrgMember(ownerOrAdmin), s.RemoveMember)
		}

		songs := org.Group("/songs")
		{
			songs.POST("", s.OrgMember(songwriter), s.CreateSong)
			songs.GET("", s.OrgMember(manager), s.ListSongs)
			songs.GET("/my", s.OrgMember(songwriter), s.ListMySongs)
			songs.GET("/:songId", s.OrgMember(manager), s.GetSong)
			songs.PATCH("/:songId", s.OrgMember(songwriter), s.UpdateSong)
			songs.DELETE("/:songId", s.OrgMember(songwriter), s.DeleteSong)
		}

		pitches := org.Group("/pitches", s.OrgMember(authz.AnyMember))
		{
			pitches.POST("", s.CreatePitch)
			pitches.GET("", s.ListPitches)
			pitches.GET("/song/:songId", s.ListPitchesBySong)
			pitches.GET("/:pitchId", s.GetPitch)
			pitches.PATCH("/:pitchId", s.UpdatePitch)
			pitches.DELETE("/:pitchId", s.DeletePitch)
		}

		tags := org.Group("/tags", s.OrgMember(authz.AnyMember))
		{
			tags.POST("", s.CreateTag)
			tags.GET("", s.ListTags)
			tags.DELETE("/:tagId", s.DeleteTag)
		}

		org.GET("/audit-logs", s.OrgMember(ownerOrAdmin), s.ListAuditLogs)
	}
}
