package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/pitchfork-audio/pitchfork/internal/audit/domain"
	"github.com/pitchfork-audio/pitchfork/internal/audit/repository"
	"github.com/pitchfork-audio/pitchfork/pkg/db"
	"github.com/pitchfork-audio/pitchfork/pkg/db/pagination"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.AuditLog{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return NewService(zap.NewNop(), repository.NewRepository(conn), node)
}

func record(t *testing.T, svc domain.Service, orgID snowflake.ID, action, targetType string) {
	t.Helper()
	actorID := snowflake.ID(7)
	require.NoError(t, svc.Record(context.Background(), &orgID, &actorID, action, targetType, nil, nil))
}

func TestRecordRequiresAction(t *testing.T) {
	svc := newTestService(t)
	orgID := snowflake.ID(10)

	err := svc.Record(context.Background(), &orgID, nil, "  ", "song", nil, nil)
	require.ErrorIs(t, err, domain.ErrInvalidAction)
}

func TestListFilters(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	record(t, svc, 10, "song.uploaded", "song")
	record(t, svc, 10, "pitch.created", "pitch")
	record(t, svc, 20, "song.uploaded", "song")

	resp, err := svc.List(ctx, 10, domain.ListRequest{})
	require.NoError(t, err)
	require.Len(t, resp.AuditLogs, 2)

	resp, err = svc.List(ctx, 10, domain.ListRequest{Action: "song.uploaded"})
	require.NoError(t, err)
	require.Len(t, resp.AuditLogs, 1)
	require.Equal(t, "song.uploaded", resp.AuditLogs[0].Action)

	resp, err = svc.List(ctx, 10, domain.ListRequest{TargetType: "pitch"})
	require.NoError(t, err)
	require.Len(t, resp.AuditLogs, 1)
}

func TestListPagination(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		record(t, svc, 10, fmt.Sprintf("action.%d", i), "song")
	}

	first, err := svc.List(ctx, 10, domain.ListRequest{Pagination: pagination.Pagination{PageSize: 2}})
	require.NoError(t, err)
	require.Len(t, first.AuditLogs, 2)
	require.True(t, first.HasMore)
	require.NotEmpty(t, first.NextPageToken)

	second, err := svc.List(ctx, 10, domain.ListRequest{Pagination: pagination.Pagination{
		PageSize:  2,
		PageToken: first.NextPageToken,
	}})
	require.NoError(t, err)
	require.Len(t, second.AuditLogs, 2)
	require.True(t, second.HasMore)

	// newest first; pages never overlap
	require.Less(t, uint64(second.AuditLogs[0].ID), uint64(first.AuditLogs[1].ID))

	third, err := svc.List(ctx, 10, domain.ListRequest{Pagination: pagination.Pagination{
		PageSize:  2,
		PageToken: second.NextPageToken,
	}})
	require.NoError(t, err)
	require.Len(t, third.AuditLogs, 1)
	require.False(t, third.HasMore)
	require.Empty(t, third.NextPageToken)
}

func TestListInvalidPageToken(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.List(context.Background(), 10, domain.ListRequest{Pagination: pagination.Pagination{
		PageToken: "not-a-token",
	}})
	require.ErrorIs(t, err, domain.ErrInvalidPageToken)
}
