package integration_test

import (
	"net/http"
	"testing"

	"dealflow_backend/internal/models"
	"dealflow_backend/internal/services/dto"
	"dealflow_backend/test/helpers"

	"github.com/stretchr/testify/require"
)

// matchPair создает стартап и инвестора с профилями и доводит их до матча через API
func matchPair(t *testing.T, ts *helpers.TestServer) (startup, investor *models.User, startupToken, investorToken string, match *dto.MatchResponse) {
	t.Helper()
	startup, _ = helpers.CreateStartup(t, ts.DB)
	investor, _ = helpers.CreateInvestor(t, ts.DB)
	startupToken = ts.Token(t, startup)
	investorToken = ts.Token(t, investor)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/matching/swipe", investorToken,
		map[string]string{"target_id": startup.ID, "direction": "right"})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/matching/swipe", startupToken,
		map[string]string{"target_id": investor.ID, "direction": "right"})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var swipe dto.SwipeResponse
	helpers.DecodeJSON(t, body, &swipe)
	require.True(t, swipe.IsMatch, body)
	require.NotNil(t, swipe.Match)
	return startup, investor, startupToken, investorToken, swipe.Match
}

func errorCode(t *testing.T, body string) string {
	t.Helper()
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	helpers.DecodeJSON(t, body, &resp)
	return resp.Error.Code
}
