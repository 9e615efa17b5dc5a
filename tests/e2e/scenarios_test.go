//go:build e2e
// +build e2e

package e2e

import (
	"encoding/json"
	"fmt"
	"net/http"

	groupModel "github.com/clatterline/messenger/internal/group/model"
	banModel "github.com/clatterline/messenger/internal/moderation/model"
)

func (s *E2ETestSuite) TestHealth() {
	resp, _ := s.doJSON(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *E2ETestSuite) TestMembershipLifecycle() {
	s.registerUser("alice", "Alice")
	s.registerUser("bob", "Bob")
	s.registerUser("carol", "Carol")

	resp, body := s.doJSON(http.MethodPost, "/groups/create", "alice", map[string]any{
		"name":       "reading club",
		"member_ids": []string{"bob"},
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode, string(body))

	var group groupModel.GroupResponse
	s.Require().NoError(json.Unmarshal(body, &group))
	s.Equal([]string{"alice", "bob"}, group.MemberIDs)
	s.Equal([]string{"alice"}, group.AdminIDs)

	// Carol joins and is approved.
	resp, body = s.doJSON(http.MethodPost, "/groups/join", "carol", map[string]string{
		"group_id": group.GroupID,
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))

	resp, body = s.doJSON(http.MethodPost, "/groups/approve", "alice", map[string]string{
		"group_id": group.GroupID,
		"user_id":  "carol",
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))

	// The last admin leaves; the first remaining member is promoted.
	resp, body = s.doJSON(http.MethodPost, "/groups/leave", "alice", map[string]string{
		"group_id": group.GroupID,
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))

	var left groupModel.LeaveGroupResponse
	s.Require().NoError(json.Unmarshal(body, &left))
	s.False(left.GroupDeleted)
	s.Equal("bob", left.PromotedAdminID)

	resp, body = s.doJSON(http.MethodGet, "/groups/get?group_id="+group.GroupID, "", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Require().NoError(json.Unmarshal(body, &group))
	s.Equal([]string{"bob"}, group.AdminIDs)
	s.Equal([]string{"bob", "carol"}, group.MemberIDs)
}

func (s *E2ETestSuite) TestDeleteRuleDestroysGroup() {
	s.registerUser("alice", "Alice")
	s.registerUser("bob", "Bob")

	resp, body := s.doJSON(http.MethodPost, "/groups/create", "alice", map[string]any{
		"name":            "ephemeral",
		"member_ids":      []string{"bob"},
		"last_admin_rule": "delete",
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode, string(body))

	var group groupModel.GroupResponse
	s.Require().NoError(json.Unmarshal(body, &group))

	resp, body = s.doJSON(http.MethodPost, "/groups/leave", "alice", map[string]string{
		"group_id": group.GroupID,
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))

	var left groupModel.LeaveGroupResponse
	s.Require().NoError(json.Unmarshal(body, &left))
	s.True(left.GroupDeleted)

	resp, body = s.doJSON(http.MethodGet, "/groups/get?group_id="+group.GroupID, "", nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
	s.Equal("NOT_FOUND", s.parseErrorCode(body))
}

func (s *E2ETestSuite) TestReportThresholdAutoBan() {
	s.registerUser("target", "Target")
	for i := 1; i <= reportThreshold; i++ {
		s.registerUser(fmt.Sprintf("r%d", i), fmt.Sprintf("Reporter%d", i))
	}

	var last banModel.ReportResponse
	for i := 1; i <= reportThreshold; i++ {
		resp, body := s.doJSON(http.MethodPost, "/moderation/report", fmt.Sprintf("r%d", i), map[string]string{
			"target_user_id": "target",
			"reason":         "spam",
		})
		s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))
		s.Require().NoError(json.Unmarshal(body, &last))
	}

	s.Require().True(last.AutoBanned)
	s.Require().NotNil(last.Ban)
	s.Equal(banModel.SystemActorID, last.Ban.BannedByUserID)
	s.Equal(banModel.ReasonMultipleReports, last.Ban.Reason)
	s.Len(last.Ban.ReporterIDs, reportThreshold)

	// The banned user cannot create groups anymore.
	resp, body := s.doJSON(http.MethodPost, "/groups/create", "target", map[string]any{
		"name": "hideout",
	})
	s.Equal(http.StatusForbidden, resp.StatusCode, string(body))
	s.Equal("FORBIDDEN", s.parseErrorCode(body))
}

func (s *E2ETestSuite) TestManualBanUnbanRoundTrip() {
	s.registerUser("mod", "Moderator")
	s.registerUser("target", "Target")

	resp, body := s.doJSON(http.MethodPost, "/moderation/ban", "mod", map[string]string{
		"target_user_id": "target",
		"reason":         "admin_decision",
		"scope":          "global",
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode, string(body))

	var banResp banModel.BanResponse
	s.Require().NoError(json.Unmarshal(body, &banResp))

	// Duplicate ban on the same tuple is a conflict.
	resp, _ = s.doJSON(http.MethodPost, "/moderation/ban", "mod", map[string]string{
		"target_user_id": "target",
		"reason":         "admin_decision",
		"scope":          "global",
	})
	s.Equal(http.StatusConflict, resp.StatusCode)

	resp, _ = s.doJSON(http.MethodGet, "/moderation/validateAccess?user_id=target", "", nil)
	s.Equal(http.StatusForbidden, resp.StatusCode)

	resp, body = s.doJSON(http.MethodPost, "/moderation/unban", "mod", map[string]string{
		"ban_id": banResp.Ban.BanID,
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))

	resp, _ = s.doJSON(http.MethodGet, "/moderation/validateAccess?user_id=target", "", nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	// The ban row survives as an inactive record.
	var count int64
	s.db.Table("bans").Count(&count)
	s.Equal(int64(1), count)
}

func (s *E2ETestSuite) TestStatisticsEndpoints() {
	s.registerUser("alice", "Alice")
	s.registerUser("mod", "Moderator")
	s.registerUser("target", "Target")

	resp, body := s.doJSON(http.MethodPost, "/groups/create", "alice", map[string]any{
		"name": "reading club",
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode, string(body))

	resp, body = s.doJSON(http.MethodPost, "/moderation/ban", "mod", map[string]string{
		"target_user_id": "target",
		"reason":         "spam",
		"scope":          "global",
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode, string(body))

	resp, body = s.doJSON(http.MethodGet, "/statistics/moderation", "", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var modStats struct {
		TotalBans  int64 `json:"total_bans"`
		ActiveBans int64 `json:"active_bans"`
	}
	s.Require().NoError(json.Unmarshal(body, &modStats))
	s.Equal(int64(1), modStats.TotalBans)
	s.Equal(int64(1), modStats.ActiveBans)

	resp, body = s.doJSON(http.MethodGet, "/statistics/groups", "", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var groupStats struct {
		TotalGroups  int64 `json:"total_groups"`
		TotalMembers int64 `json:"total_members"`
	}
	s.Require().NoError(json.Unmarshal(body, &groupStats))
	s.Equal(int64(1), groupStats.TotalGroups)
	s.Equal(int64(1), groupStats.TotalMembers)
}
