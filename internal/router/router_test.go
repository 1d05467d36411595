package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	_ "dcover/docs"
	"dcover/internal/auth"
	"dcover/internal/config"
	"dcover/internal/handler"
	"dcover/internal/middleware"
	"dcover/internal/model"
	"dcover/internal/repository"
	"dcover/internal/router"
	"dcover/internal/service"
	"dcover/internal/storage"
	"dcover/internal/testutil"
)

type memTokens struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func (m *memTokens) Revoke(_ context.Context, id string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[id] = true
	return nil
}

func (m *memTokens) IsRevoked(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.revoked[id], nil
}

type testServer struct {
	e   *echo.Echo
	gdb *gorm.DB
	jwt *auth.JWTService
}

func newServer(t *testing.T) *testServer {
	gdb, rdb := testutil.NewDB(t)
	cfg := &config.Config{UploadDir: t.TempDir(), MaxAudioUploadMB: 1, MaxImageUploadMB: 1}

	userRepo := repository.NewUserRepository(gdb, rdb)
	songRepo := repository.NewSongRepository(gdb, rdb)
	albumRepo := repository.NewAlbumRepository(gdb, rdb)
	messageRepo := repository.NewMessageRepository(gdb, rdb)

	jwtService := auth.NewJWTService("test-secret")
	tokens := &memTokens{revoked: map[string]bool{}}
	store, err := storage.NewLocalStorage(cfg.UploadDir)
	require.NoError(t, err)

	notifications := service.NewNotificationService(repository.NewNotificationRepository(gdb, rdb))
	uploads := service.NewUploadService(store, "", service.UploadLimits{AudioMB: 1, ImageMB: 1})
	e := echo.New()
	router.Register(e, cfg, middleware.NewAuthenticator(userRepo, tokens, jwtService.Secret()), router.Handlers{
		Auth:         handler.NewAuthHandler(service.NewAuthService(userRepo, jwtService, tokens, nil, cfg.IsAdminEmail)),
		Song:         handler.NewSongHandler(service.NewSongService(songRepo, albumRepo, userRepo, notifications, uploads)),
		Album:        handler.NewAlbumHandler(service.NewAlbumService(albumRepo, userRepo)),
		Comment:      handler.NewCommentHandler(service.NewCommentService(repository.NewCommentRepository(gdb, rdb), songRepo, userRepo, notifications)),
		Follow:       handler.NewFollowHandler(service.NewFollowService(repository.NewFollowRepository(gdb, rdb), userRepo, notifications)),
		User:         handler.NewUserHandler(service.NewUserService(userRepo)),
		Banner:       handler.NewBannerHandler(service.NewBannerService(repository.NewBannerRepository(gdb))),
		Notification: handler.NewNotificationHandler(notifications),
		Message:      handler.NewMessageHandler(service.NewMessageService(messageRepo, userRepo, notifications)),
		Upload:       handler.NewUploadHandler(uploads),
	})
	return &testServer{e: e, gdb: gdb, jwt: jwtService}
}

func (s *testServer) token(t *testing.T, u *model.User) string {
	token, err := s.jwt.GenerateToken(u.ID, u.Email)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func songPath(id uint, suffix string) string {
	return "/api/songs/" + strconv.FormatUint(uint64(id), 10) + suffix
}

func TestHealthz(t *testing.T) {
	s := newServer(t)
	rec := s.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestSwaggerDocumentCoversRoutes(t *testing.T) {
	s := newServer(t)
	rec := s.do(t, http.MethodGet, "/swagger/doc.json", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var doc struct {
		BasePath    string                                `json:"basePath"`
		Paths       map[string]map[string]json.RawMessage `json:"paths"`
		Definitions map[string]json.RawMessage            `json:"definitions"`
	}
	decode(t, rec, &doc)
	require.Equal(t, "/api", doc.BasePath)
	assert.Contains(t, doc.Definitions, "model.SongView")
	assert.Contains(t, doc.Definitions, "errors.ErrorResponse")

	documented := 0
	for _, r := range s.e.Routes() {
		if !strings.HasPrefix(r.Path, "/api/") || strings.HasSuffix(r.Path, "/*") {
			continue
		}
		switch r.Method {
		case http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete:
		default:
			continue
		}
		segments := strings.Split(strings.TrimPrefix(r.Path, "/api"), "/")
		for i, seg := range segments {
			if strings.HasPrefix(seg, ":") {
				segments[i] = "{" + seg[1:] + "}"
			}
		}
		path := strings.Join(segments, "/")
		if assert.Contains(t, doc.Paths, path, "undocumented route %s %s", r.Method, r.Path) {
			assert.Contains(t, doc.Paths[path], strings.ToLower(r.Method), "undocumented route %s %s", r.Method, r.Path)
		}
		documented++
	}
	assert.Equal(t, 54, documented)
}

func TestGoogleSignInThenMe(t *testing.T) {
	s := newServer(t)

	rec := s.do(t, http.MethodPost, "/api/auth/google", "", map[string]string{
		"googleId": "g-1", "email": "Singer@Example.com", "name": "Singer",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res struct {
		Token string     `json:"token"`
		User  model.User `json:"user"`
	}
	decode(t, rec, &res)
	require.NotEmpty(t, res.Token)
	assert.Equal(t, "singer@example.com", res.User.Email)

	rec = s.do(t, http.MethodGet, "/api/auth/me", res.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me model.User
	decode(t, rec, &me)
	assert.Equal(t, res.User.ID, me.ID)

	rec = s.do(t, http.MethodPost, "/api/auth/logout", res.Token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = s.do(t, http.MethodGet, "/api/auth/me", res.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGoogleSignIn_MissingEmail(t *testing.T) {
	s := newServer(t)
	rec := s.do(t, http.MethodPost, "/api/auth/google", "", map[string]string{"googleId": "g-1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	decode(t, rec, &body)
	assert.Equal(t, "email is required", body["error"])
}

func TestAuthRequired(t *testing.T) {
	s := newServer(t)

	rec := s.do(t, http.MethodPost, "/api/songs", "", map[string]string{"title": "x"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/songs", "garbage", map[string]string{"title": "x"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSuspendedUserRejected(t *testing.T) {
	s := newServer(t)
	u := testutil.CreateUser(t, s.gdb, "muted")
	require.NoError(t, s.gdb.Model(u).Update("suspended", true).Error)

	rec := s.do(t, http.MethodGet, "/api/auth/me", s.token(t, u), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPrivateSongVisibility(t *testing.T) {
	s := newServer(t)
	owner := testutil.CreateUser(t, s.gdb, "owner")
	other := testutil.CreateUser(t, s.gdb, "other")
	song := testutil.CreateSong(t, s.gdb, owner.ID, "secret", false)

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, songPath(song.ID, ""), "", nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, songPath(song.ID, ""), s.token(t, other), nil).Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, songPath(song.ID, ""), s.token(t, owner), nil).Code)

	var feed []model.SongView
	decode(t, s.do(t, http.MethodGet, "/api/songs", "", nil), &feed)
	assert.Empty(t, feed)

	var mine []model.SongView
	decode(t, s.do(t, http.MethodGet, "/api/songs/user/"+strconv.Itoa(int(owner.ID)), s.token(t, owner), nil), &mine)
	assert.Len(t, mine, 1)
}

func TestSongLifecycle(t *testing.T) {
	s := newServer(t)
	owner := testutil.CreateUser(t, s.gdb, "owner")
	fan := testutil.CreateUser(t, s.gdb, "fan")
	ownerToken, fanToken := s.token(t, owner), s.token(t, fan)

	rec := s.do(t, http.MethodPost, "/api/songs", ownerToken, map[string]any{
		"title": "Hallelujah", "originalArtist": "Leonard Cohen", "audioFile": "https://cdn.example.com/h.mp3",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var song model.SongView
	decode(t, rec, &song)
	assert.True(t, song.Visible())

	rec = s.do(t, http.MethodPost, songPath(song.ID, "/like"), fanToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var like service.LikeResult
	decode(t, rec, &like)
	assert.True(t, like.Liked)
	assert.Equal(t, 1, like.Likes)

	rec = s.do(t, http.MethodPost, songPath(song.ID, "/play"), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var plays map[string]int
	decode(t, rec, &plays)
	assert.Equal(t, 1, plays["plays"])

	rec = s.do(t, http.MethodPost, "/api/comments", fanToken, map[string]any{"songId": song.ID, "content": "  lovely  "})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/notifications", ownerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var list service.NotificationList
	decode(t, rec, &list)
	assert.Len(t, list.Notifications, 2)
	assert.EqualValues(t, 2, list.UnreadCount)

	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodDelete, songPath(song.ID, ""), fanToken, nil).Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodDelete, songPath(song.ID, ""), ownerToken, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, songPath(song.ID, ""), ownerToken, nil).Code)
}

func TestAdminGuard(t *testing.T) {
	s := newServer(t)
	user := testutil.CreateUser(t, s.gdb, "plain")
	admin := testutil.CreateUser(t, s.gdb, "boss")
	require.NoError(t, s.gdb.Model(admin).Update("role", model.RoleAdmin).Error)

	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/users", "", nil).Code)
	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, "/api/users", s.token(t, user), nil).Code)

	rec := s.do(t, http.MethodGet, "/api/users", s.token(t, admin), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var users []model.AdminUserView
	decode(t, rec, &users)
	assert.Len(t, users, 2)

	path := "/api/users/" + strconv.Itoa(int(admin.ID)) + "/suspend"
	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodPatch, path, s.token(t, admin), map[string]bool{"suspended": true}).Code)
}

func TestBannerWindowCanBeCleared(t *testing.T) {
	s := newServer(t)
	admin := testutil.CreateUser(t, s.gdb, "boss")
	require.NoError(t, s.gdb.Model(admin).Update("role", model.RoleAdmin).Error)
	token := s.token(t, admin)

	rec := s.do(t, http.MethodPost, "/api/banners", token, map[string]any{
		"title": "Summer", "imageUrl": "https://cdn.example.com/s.jpg",
		"startDate": "2020-01-01T00:00:00Z", "endDate": "2020-02-01T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var banner model.Banner
	decode(t, rec, &banner)

	var active []model.Banner
	decode(t, s.do(t, http.MethodGet, "/api/banners", "", nil), &active)
	assert.Empty(t, active)

	rec = s.do(t, http.MethodPatch, "/api/banners/"+strconv.Itoa(int(banner.ID)), token, map[string]any{"endDate": nil})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &banner)
	assert.Nil(t, banner.EndDate)
	assert.NotNil(t, banner.StartDate)

	decode(t, s.do(t, http.MethodGet, "/api/banners", "", nil), &active)
	assert.Len(t, active, 1)
}

func TestFollowAndMessage(t *testing.T) {
	s := newServer(t)
	ana := testutil.CreateUser(t, s.gdb, "ana")
	ben := testutil.CreateUser(t, s.gdb, "ben")
	anaToken, benToken := s.token(t, ana), s.token(t, ben)
	benID := strconv.Itoa(int(ben.ID))

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/follows/"+strconv.Itoa(int(ana.ID)), anaToken, nil).Code)
	assert.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/follows/"+benID, anaToken, nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/follows/"+benID, anaToken, nil).Code)

	var status map[string]bool
	decode(t, s.do(t, http.MethodGet, "/api/follows/check/"+benID, anaToken, nil), &status)
	assert.True(t, status["isFollowing"])

	rec := s.do(t, http.MethodPost, "/api/messages", anaToken, map[string]any{"recipientId": ben.ID, "content": "hi"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var msg model.Message
	decode(t, rec, &msg)

	var unread map[string]int64
	decode(t, s.do(t, http.MethodGet, "/api/messages/unread-count", benToken, nil), &unread)
	assert.EqualValues(t, 1, unread["unreadCount"])

	convPath := "/api/messages/conversations/" + strconv.Itoa(int(msg.ConversationID))
	rec = s.do(t, http.MethodGet, convPath, benToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var thread service.Thread
	decode(t, rec, &thread)
	assert.Len(t, thread.Messages, 1)
	assert.Equal(t, ana.ID, thread.OtherUser.ID)

	decode(t, s.do(t, http.MethodGet, "/api/messages/unread-count", benToken, nil), &unread)
	assert.EqualValues(t, 0, unread["unreadCount"])

	outsider := testutil.CreateUser(t, s.gdb, "cid")
	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, convPath, s.token(t, outsider), nil).Code)
}

func TestUploadAudio(t *testing.T) {
	s := newServer(t)
	u := testutil.CreateUser(t, s.gdb, "singer")

	upload := func(name string) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		part, err := w.CreateFormFile("file", name)
		require.NoError(t, err)
		_, err = part.Write([]byte("ID3 fake audio"))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/upload/audio", &buf)
		req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+s.token(t, u))
		rec := httptest.NewRecorder()
		s.e.ServeHTTP(rec, req)
		return rec
	}

	rec := upload("take1.MP3")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var body map[string]string
	decode(t, rec, &body)
	assert.Regexp(t, `^/uploads/audio/[0-9a-z]{26}\.mp3$`, body["url"])

	assert.Equal(t, http.StatusBadRequest, upload("notes.txt").Code)
}
