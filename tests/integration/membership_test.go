//go:build integration
// +build integration

package integration

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	groupModel "github.com/clatterline/messenger/internal/group/model"
	groupRouter "github.com/clatterline/messenger/internal/group/router"
	banModel "github.com/clatterline/messenger/internal/moderation/model"
	moderationReports "github.com/clatterline/messenger/internal/moderation/reports"
	moderationRepo "github.com/clatterline/messenger/internal/moderation/repository"
	moderationRouter "github.com/clatterline/messenger/internal/moderation/router"
	moderationService "github.com/clatterline/messenger/internal/moderation/service"
	statisticsRouter "github.com/clatterline/messenger/internal/statistics/router"
	userModel "github.com/clatterline/messenger/internal/user/model"
	userRepo "github.com/clatterline/messenger/internal/user/repository"
	userRouter "github.com/clatterline/messenger/internal/user/router"
	"github.com/clatterline/messenger/pkg/keymutex"
)

const reportThreshold = 3

func setupDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	var sqlDB *sql.DB
	sqlDB, err = db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&userModel.User{}, &groupModel.Group{}, &banModel.Ban{})
	require.NoError(t, err)

	return db
}

func setupRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop().Sugar()

	modSvc := moderationService.New(
		moderationRepo.New(db, logger),
		userRepo.New(db, logger),
		moderationReports.New(),
		reportThreshold,
		logger,
	)

	r := gin.New()
	userRouter.RegisterRoutes(r, db, logger)
	moderationRouter.RegisterRoutes(r, modSvc, logger)
	groupRouter.RegisterRoutes(r, db, modSvc, keymutex.New(), logger)
	statisticsRouter.RegisterRoutes(r, db, logger)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, actorID string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if actorID != "" {
		req.Header.Set("X-User-Id", actorID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, r *gin.Engine, userID, username string) {
	w := doJSON(t, r, http.MethodPost, "/users/register", "", map[string]string{
		"user_id":  userID,
		"username": username,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func createGroup(t *testing.T, r *gin.Engine, creatorID string, body map[string]any) groupModel.GroupResponse {
	w := doJSON(t, r, http.MethodPost, "/groups/create", creatorID, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp groupModel.GroupResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestMembershipLifecycle(t *testing.T) {
	t.Run("join approve leave with promotion", func(t *testing.T) {
		r := setupRouter(setupDB(t))
		registerUser(t, r, "alice", "Alice")
		registerUser(t, r, "bob", "Bob")

		group := createGroup(t, r, "alice", map[string]any{"name": "reading club"})
		assert.Equal(t, []string{"alice"}, group.AdminIDs)

		// Bob asks to join and lands in the pending set.
		w := doJSON(t, r, http.MethodPost, "/groups/join", "bob", map[string]string{
			"group_id": group.GroupID,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		// Alice approves.
		w = doJSON(t, r, http.MethodPost, "/groups/approve", "alice", map[string]string{
			"group_id": group.GroupID,
			"user_id":  "bob",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var approved groupModel.GroupResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &approved))
		assert.Contains(t, approved.MemberIDs, "bob")
		assert.Empty(t, approved.PendingRequestIDs)

		// The last admin leaves; bob is promoted.
		w = doJSON(t, r, http.MethodPost, "/groups/leave", "alice", map[string]string{
			"group_id": group.GroupID,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var left groupModel.LeaveGroupResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &left))
		assert.False(t, left.GroupDeleted)
		assert.Equal(t, "bob", left.PromotedAdminID)

		w = doJSON(t, r, http.MethodGet, "/groups/isMember?group_id="+group.GroupID+"&user_id=bob", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var membership groupModel.IsMemberResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &membership))
		assert.True(t, membership.IsMember)
	})

	t.Run("delete rule destroys group when last admin leaves", func(t *testing.T) {
		r := setupRouter(setupDB(t))
		registerUser(t, r, "alice", "Alice")
		registerUser(t, r, "bob", "Bob")

		group := createGroup(t, r, "alice", map[string]any{
			"name":            "reading club",
			"member_ids":      []string{"bob"},
			"last_admin_rule": "delete",
		})

		w := doJSON(t, r, http.MethodPost, "/groups/leave", "alice", map[string]string{
			"group_id": group.GroupID,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var left groupModel.LeaveGroupResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &left))
		assert.True(t, left.GroupDeleted)

		w = doJSON(t, r, http.MethodGet, "/groups/get?group_id="+group.GroupID, "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("reject is idempotent over HTTP", func(t *testing.T) {
		r := setupRouter(setupDB(t))
		registerUser(t, r, "alice", "Alice")
		registerUser(t, r, "bob", "Bob")

		group := createGroup(t, r, "alice", map[string]any{"name": "reading club"})
		w := doJSON(t, r, http.MethodPost, "/groups/join", "bob", map[string]string{
			"group_id": group.GroupID,
		})
		require.Equal(t, http.StatusOK, w.Code)

		body := map[string]string{"group_id": group.GroupID, "user_id": "bob"}
		w = doJSON(t, r, http.MethodPost, "/groups/reject", "alice", body)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		w = doJSON(t, r, http.MethodPost, "/groups/reject", "alice", body)
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	t.Run("non-admin operations are forbidden", func(t *testing.T) {
		r := setupRouter(setupDB(t))
		registerUser(t, r, "alice", "Alice")
		registerUser(t, r, "bob", "Bob")
		registerUser(t, r, "carol", "Carol")

		group := createGroup(t, r, "alice", map[string]any{
			"name":       "reading club",
			"member_ids": []string{"bob"},
		})
		w := doJSON(t, r, http.MethodPost, "/groups/join", "carol", map[string]string{
			"group_id": group.GroupID,
		})
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, r, http.MethodPost, "/groups/approve", "bob", map[string]string{
			"group_id": group.GroupID,
			"user_id":  "carol",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = doJSON(t, r, http.MethodPost, "/groups/banMember", "bob", map[string]string{
			"group_id": group.GroupID,
			"user_id":  "alice",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("missing acting user header", func(t *testing.T) {
		r := setupRouter(setupDB(t))

		w := doJSON(t, r, http.MethodPost, "/groups/create", "", map[string]any{"name": "x"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
