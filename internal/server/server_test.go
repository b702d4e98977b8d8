package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	auditdomain "github.com/pitchfork-audio/pitchfork/internal/audit/domain"
	auditrepository "github.com/pitchfork-audio/pitchfork/internal/audit/repository"
	auditservice "github.com/pitchfork-audio/pitchfork/internal/audit/service"
	authdomain "github.com/pitchfork-audio/pitchfork/internal/auth/domain"
	authrepository "github.com/pitchfork-audio/pitchfork/internal/auth/repository"
	authservice "github.com/pitchfork-audio/pitchfork/internal/auth/service"
	"github.com/pitchfork-audio/pitchfork/internal/auth/session"
	"github.com/pitchfork-audio/pitchfork/internal/authz"
	"github.com/pitchfork-audio/pitchfork/internal/config"
	memberdomain "github.com/pitchfork-audio/pitchfork/internal/member/domain"
	memberrepository "github.com/pitchfork-audio/pitchfork/internal/member/repository"
	memberservice "github.com/pitchfork-audio/pitchfork/internal/member/service"
	organizationdomain "github.com/pitchfork-audio/pitchfork/internal/organization/domain"
	organizationrepository "github.com/pitchfork-audio/pitchfork/internal/organization/repository"
	organizationservice "github.com/pitchfork-audio/pitchfork/internal/organization/service"
	pitchdomain "github.com/pitchfork-audio/pitchfork/internal/pitch/domain"
	pitchrepository "github.com/pitchfork-audio/pitchfork/internal/pitch/repository"
	pitchservice "github.com/pitchfork-audio/pitchfork/internal/pitch/service"
	songdomain "github.com/pitchfork-audio/pitchfork/internal/song/domain"
	songrepository "github.com/pitchfork-audio/pitchfork/internal/song/repository"
	songservice "github.com/pitchfork-audio/pitchfork/internal/song/service"
	tagdomain "github.com/pitchfork-audio/pitchfork/internal/tag/domain"
	tagrepository "github.com/pitchfork-audio/pitchfork/internal/tag/repository"
	tagservice "github.com/pitchfork-audio/pitchfork/internal/tag/service"
	"github.com/pitchfork-audio/pitchfork/pkg/db"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := conn.AutoMigrate(
		&authdomain.User{}, &authdomain.Session{},
		&organizationdomain.Organization{}, &memberdomain.Member{},
		&songdomain.Song{}, &tagdomain.Tag{},
		&pitchdomain.Pitch{}, &pitchdomain.PitchTag{}, &pitchdomain.TargetArtist{},
		&auditdomain.AuditLog{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	log := zap.NewNop()
	cfg := config.Config{HTTPAddr: ":0"}

	users, sessions := authrepository.New(conn)
	memberRepo := memberrepository.NewRepository(conn)
	auditSvc := auditservice.NewService(log, auditrepository.NewRepository(conn), node)
	songSvc := songservice.NewService(log, songrepository.NewRepository(conn), node, auditSvc)
	tagSvc := tagservice.NewService(log, tagrepository.NewRepository(conn), node)

	return NewServer(ServerParams{
		Gin:             NewEngine(log),
		Cfg:             cfg,
		Log:             log,
		Authsvc:         authservice.New(log, users, sessions, node),
		Sessions:        session.NewManager(cfg),
		Guard:           authz.NewGuard(log, memberRepo),
		GenID:           node,
		AuditSvc:        auditSvc,
		OrganizationSvc: organizationservice.NewService(conn, log, organizationrepository.NewRepository(conn), memberRepo, node, auditSvc),
		MemberSvc:       memberservice.NewService(log, memberRepo, node, auditSvc),
		SongSvc:         songSvc,
		PitchSvc:        pitchservice.NewService(conn, log, pitchrepository.NewRepository(conn), songSvc, tagSvc, node, auditSvc),
		TagSvc:          tagSvc,
	})
}

func doJSON(t *testing.T, srv *Server, method, path string, body any, cookie string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: cookie})
	}

	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return out
}

// signUp registers a user, logs in, and returns the session cookie value.
func signUp(t *testing.T, srv *Server, email string) string {
	t.Helper()

	w := doJSON(t, srv, http.MethodPost, "/auth/register", gin.H{
		"email":    email,
		"password": "correct horse battery",
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("register: status = %d, body = %s", w.Code, w.Body.String())
	}

	w = doJSON(t, srv, http.MethodPost, "/auth/login", gin.H{
		"email":    email,
		"password": "correct horse battery",
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login: status = %d, body = %s", w.Code, w.Body.String())
	}

	for _, c := range w.Result().Cookies() {
		if c.Name == session.DefaultCookieName && c.Value != "" {
			return c.Value
		}
	}
	t.Fatal("login did not set a session cookie")
	return ""
}

// createOrg creates an organization and makes it the caller's active one.
func createOrg(t *testing.T, srv *Server, cookie, name, slug string) string {
	t.Helper()

	w := doJSON(t, srv, http.MethodPost, "/api/organizations", gin.H{
		"name": name,
		"slug": slug,
	}, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("create org: status = %d, body = %s", w.Code, w.Body.String())
	}
	org := decodeBody(t, w)["org"].(map[string]any)
	orgID := org["id"].(string)

	switchOrg(t, srv, cookie, orgID)
	return orgID
}

func switchOrg(t *testing.T, srv *Server, cookie, orgID string) {
	t.Helper()
	w := doJSON(t, srv, http.MethodPost, "/auth/user/using/"+orgID, nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("switch org: status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestUnauthenticatedRequests(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/auth/me", "/api/organizations", "/api/organizations/1"} {
		w := doJSON(t, srv, http.MethodGet, path, nil, "")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: status = %d, want 401", path, w.Code)
		}
	}

	w := doJSON(t, srv, http.MethodGet, "/api/organizations/1", nil, "not-a-real-token")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bogus cookie: status = %d, want 401", w.Code)
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/health", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	srv := newTestServer(t)

	signUp(t, srv, "jamie@example.com")

	w := doJSON(t, srv, http.MethodPost, "/auth/register", gin.H{
		"email":    "jamie@example.com",
		"password": "correct horse battery",
	}, "")
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409, body = %s", w.Code, w.Body.String())
	}
}

func TestOrgAccessRequiresActiveOrg(t *testing.T) {
	srv := newTestServer(t)
	cookie := signUp(t, srv, "owner@example.com")

	w := doJSON(t, srv, http.MethodPost, "/api/organizations", gin.H{
		"name": "Acme Records",
		"slug": "acme-records",
	}, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("create org: status = %d, body = %s", w.Code, w.Body.String())
	}
	orgID := decodeBody(t, w)["org"].(map[string]any)["id"].(string)

	// owner membership exists, but the session has no active organization
	w = doJSON(t, srv, http.MethodGet, "/api/organizations/"+orgID, nil, cookie)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403, body = %s", w.Code, w.Body.String())
	}

	switchOrg(t, srv, cookie, orgID)

	w = doJSON(t, srv, http.MethodGet, "/api/organizations/"+orgID, nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body = %s", w.Code, w.Body.String())
	}
}

func TestTenantMismatchAcrossOrgs(t *testing.T) {
	srv := newTestServer(t)
	cookie := signUp(t, srv, "owner@example.com")

	first := createOrg(t, srv, cookie, "Acme", "acme")
	second := createOrg(t, srv, cookie, "Beta", "beta")

	// second is now active; requests against first are rejected even
	// though the caller owns both
	w := doJSON(t, srv, http.MethodGet, "/api/organizations/"+first, nil, cookie)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403, body = %s", w.Code, w.Body.String())
	}

	w = doJSON(t, srv, http.MethodGet, "/api/organizations/"+second, nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body = %s", w.Code, w.Body.String())
	}
}

func TestNonMemberGetsForbidden(t *testing.T) {
	srv := newTestServer(t)
	owner := signUp(t, srv, "owner@example.com")
	orgID := createOrg(t, srv, owner, "Acme", "acme")

	outsider := signUp(t, srv, "outsider@example.com")

	// a non-member cannot even make the organization active
	w := doJSON(t, srv, http.MethodPost, "/auth/user/using/"+orgID, nil, outsider)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403, body = %s", w.Code, w.Body.String())
	}
}

func TestRolePolicyOnRoutes(t *testing.T) {
	srv := newTestServer(t)
	owner := signUp(t, srv, "owner@example.com")
	orgID := createOrg(t, srv, owner, "Acme", "acme")

	memberCookie := signUp(t, srv, "writer@example.com")
	memberUserID := userID(t, srv, memberCookie)

	w := doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/organizations/%s/members", orgID), gin.H{
		"user_id": memberUserID,
		"role":    "member",
		"type":    "songwriter",
	}, owner)
	if w.Code != http.StatusOK {
		t.Fatalf("add member: status = %d, body = %s", w.Code, w.Body.String())
	}

	switchOrg(t, srv, memberCookie, orgID)

	// plain members cannot manage membership
	w = doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/organizations/%s/members", orgID), gin.H{
		"user_id": memberUserID,
		"role":    "member",
		"type":    "manager",
	}, memberCookie)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403, body = %s", w.Code, w.Body.String())
	}

	// only the owner can delete the organization
	w = doJSON(t, srv, http.MethodDelete, "/api/organizations/"+orgID, nil, memberCookie)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403, body = %s", w.Code, w.Body.String())
	}
}

func TestTypePolicyOnSongRoutes(t *testing.T) {
	srv := newTestServer(t)
	owner := signUp(t, srv, "owner@example.com")
	orgID := createOrg(t, srv, owner, "Acme", "acme")

	writer := signUp(t, srv, "writer@example.com")
	writerID := userID(t, srv, writer)
	addMember(t, srv, owner, orgID, writerID, "member", "songwriter")
	switchOrg(t, srv, writer, orgID)

	songsPath := fmt.Sprintf("/api/organizations/%s/songs", orgID)

	// songwriters upload; managers browse
	w := doJSON(t, srv, http.MethodPost, songsPath, gin.H{
		"title":      "demo",
		"file_path":  "uploads/demo.mp3",
		"file_name":  "demo.mp3",
		"mime_type":  "audio/mpeg",
		"size_bytes": 1048576,
	}, writer)
	if w.Code != http.StatusOK {
		t.Fatalf("upload: status = %d, body = %s", w.Code, w.Body.String())
	}

	w = doJSON(t, srv, http.MethodGet, songsPath, nil, writer)
	if w.Code != http.StatusForbidden {
		t.Fatalf("songwriter browsing catalog: status = %d, want 403", w.Code)
	}

	w = doJSON(t, srv, http.MethodGet, songsPath+"/my", nil, writer)
	if w.Code != http.StatusOK {
		t.Fatalf("own songs: status = %d, body = %s", w.Code, w.Body.String())
	}

	// the owner was seeded as a manager and can browse but not upload
	w = doJSON(t, srv, http.MethodGet, songsPath, nil, owner)
	if w.Code != http.StatusOK {
		t.Fatalf("manager browsing: status = %d, body = %s", w.Code, w.Body.String())
	}
	w = doJSON(t, srv, http.MethodPost, songsPath, gin.H{
		"title":      "manager demo",
		"file_path":  "uploads/x.mp3",
		"file_name":  "x.mp3",
		"mime_type":  "audio/mpeg",
		"size_bytes": 1,
	}, owner)
	if w.Code != http.StatusForbidden {
		t.Fatalf("manager uploading: status = %d, want 403", w.Code)
	}
}

func TestErrorStatusMapping(t *testing.T) {
	srv := newTestServer(t)
	owner := signUp(t, srv, "owner@example.com")
	orgID := createOrg(t, srv, owner, "Acme", "acme")

	// 409 on duplicate slug
	w := doJSON(t, srv, http.MethodPost, "/api/organizations", gin.H{
		"name": "Other",
		"slug": "acme",
	}, owner)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate slug: status = %d, want 409", w.Code)
	}

	// 400 on malformed route id
	w = doJSON(t, srv, http.MethodGet, "/api/organizations/not-a-number", nil, owner)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad org id: status = %d, want 400", w.Code)
	}

	// 404 on a missing resource inside the active org
	w = doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/organizations/%s/songs/123456789", orgID), nil, owner)
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing song: status = %d, want 404", w.Code)
	}

	body := decodeBody(t, w)
	if _, ok := body["error"]; !ok {
		t.Fatalf("expected error envelope, got %s", w.Body.String())
	}
}

func userID(t *testing.T, srv *Server, cookie string) string {
	t.Helper()
	w := doJSON(t, srv, http.MethodGet, "/auth/me", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("me: status = %d, body = %s", w.Code, w.Body.String())
	}
	meta, ok := decodeBody(t, w)["metadata"].(map[string]any)
	if !ok {
		t.Fatalf("unexpected me payload: %s", w.Body.String())
	}
	id, ok := meta["user_id"].(string)
	if !ok {
		t.Fatalf("me payload missing user_id: %s", w.Body.String())
	}
	return id
}

func addMember(t *testing.T, srv *Server, ownerCookie, orgID, targetUserID, role, memberType string) {
	t.Helper()
	w := doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/organizations/%s/members", orgID), gin.H{
		"user_id": targetUserID,
		"role":    role,
		"type":    memberType,
	}, ownerCookie)
	if w.Code != http.StatusOK {
		t.Fatalf("add member: status = %d, body = %s", w.Code, w.Body.String())
	}
}
